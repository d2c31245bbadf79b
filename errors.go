package cryptoconditions

import "errors"

// Decoding errors. These are fatal: the input is not a canonical condition or
// fulfillment.
var (
	ErrUnknownType      = errors.New("cryptoconditions: unknown condition type")
	ErrInvalidBitString = errors.New("cryptoconditions: invalid subtypes bit string")
	ErrTrailingData     = errors.New("cryptoconditions: trailing data")
	ErrEmptyFulfillment = errors.New("cryptoconditions: empty fulfillment")
	ErrInvalidURI       = errors.New("cryptoconditions: invalid condition uri")
)

// Construction errors.
var (
	ErrInvalidFingerprint       = errors.New("cryptoconditions: fingerprint must be 32 bytes")
	ErrInvalidSubtypes          = errors.New("cryptoconditions: invalid subtypes")
	ErrInvalidThreshold         = errors.New("cryptoconditions: threshold must be at least 1")
	ErrThresholdTooLarge        = errors.New("cryptoconditions: threshold exceeds number of subconditions")
	ErrInsufficientFulfillments = errors.New("cryptoconditions: fewer fulfillments than threshold")
	ErrCostOverflow             = errors.New("cryptoconditions: cost overflows uint64")
	ErrNilCondition             = errors.New("cryptoconditions: nil condition")
	ErrNilFulfillment           = errors.New("cryptoconditions: nil fulfillment")
	ErrInvalidPublicKey         = errors.New("cryptoconditions: invalid public key")
	ErrInvalidSignatureSize     = errors.New("cryptoconditions: invalid signature size")
	ErrUnboundedFulfillment     = errors.New("cryptoconditions: fulfillment size cannot be bounded")
)

// Verification errors. They signal caller misuse; a proof that simply does
// not hold is reported as false with a nil error.
var (
	ErrTypeMismatch      = errors.New("cryptoconditions: condition type mismatch")
	ErrConditionMismatch = errors.New("cryptoconditions: fulfillment does not match condition")
)
