package legacy

import "errors"

var (
	ErrInvalidString      = errors.New("legacy: malformed condition string")
	ErrUnsupportedType    = errors.New("legacy: unsupported condition type")
	ErrTruncated          = errors.New("legacy: truncated input")
	ErrTrailingData       = errors.New("legacy: trailing data")
	ErrInvalidFingerprint = errors.New("legacy: fingerprint must be 32 bytes")
	ErrNonMinimalLength   = errors.New("legacy: non-minimal length prefix")
	ErrPrefixTooLong      = errors.New("legacy: prefix longer than 16777215 bytes")
	ErrConditionMismatch  = errors.New("legacy: fulfillment does not match condition")
)
