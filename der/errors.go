package der

import "errors"

var (
	// ErrInvalidTag is returned for tags using the high-tag-number form or a
	// class other than context-specific/universal.
	ErrInvalidTag = errors.New("der: invalid tag")

	// ErrUnexpectedTag is returned when the next element carries a different tag
	// than the one the caller asked for.
	ErrUnexpectedTag = errors.New("der: unexpected tag")

	// ErrIndefiniteLength is returned for the BER indefinite length form (0x80).
	ErrIndefiniteLength = errors.New("der: indefinite length")

	// ErrLengthTooLong is returned when a long-form length uses more than four
	// length bytes.
	ErrLengthTooLong = errors.New("der: length indicator too long")

	// ErrNonMinimalLength is returned when a length is not in its shortest form.
	ErrNonMinimalLength = errors.New("der: non-minimal length")

	// ErrLengthExceedsBudget is returned when an element declares more content
	// than its enclosing element has left.
	ErrLengthExceedsBudget = errors.New("der: length exceeds enclosing budget")

	// ErrTruncated is returned when the input ends inside a tag or length.
	ErrTruncated = errors.New("der: truncated input")

	// ErrInvalidInteger is returned for an empty INTEGER body.
	ErrInvalidInteger = errors.New("der: invalid integer")

	// ErrNegativeInteger is returned when an unsigned field decodes negative.
	ErrNegativeInteger = errors.New("der: negative integer")

	// ErrNonMinimalInteger is returned for INTEGERs with redundant leading bytes.
	ErrNonMinimalInteger = errors.New("der: non-minimal integer")

	// ErrIntegerOverflow is returned when an INTEGER does not fit in a uint64.
	ErrIntegerOverflow = errors.New("der: integer overflows uint64")
)
