package nbt

import (
	"fmt"

	"github.com/pkg/errors"
)

// Decode errors. These are always returned wrapped in a *DecodeError.
var (
	ErrTruncated      = errors.New("unexpected end of data")
	ErrNegativeLength = errors.New("negative length")
	ErrDepthExceeded  = errors.New("maximum nesting depth exceeded")
	ErrTrailingData   = errors.New("trailing data after root tag")
)

var (
	ErrInvalidType    = errors.New("invalid type")
	ErrAllocation     = errors.New("allocation failed")
	ErrNilTag         = errors.New("nil tag")
	ErrNotContainer   = errors.New("tag is not a list or object")
	ErrNotList        = errors.New("tag is not a list")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrElementType    = errors.New("element type does not match list")
	ErrAttached       = errors.New("tag is already attached")
	ErrNotMember      = errors.New("tag is not a child of this container")
	ErrCycle          = errors.New("tag cannot be added to its own subtree")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrStringTooLong  = errors.New("string too long")
	ErrKeyTooLong     = errors.New("key too long")
	ErrArrayTooLong   = errors.New("array too long")
	ErrListTypeLocked = errors.New("list element type cannot change while the list has children")
	ErrNotFound       = errors.New("no such tag")
)

// DecodeError reports malformed input together with the offset at which it
// was detected.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("nbt: decode error at offset %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Cause() error {
	return e.Err
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err was produced by malformed input.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
