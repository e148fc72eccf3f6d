package datrie

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by ExactMatch when the key is not stored.
	ErrNotFound = errors.New("datrie: key not found")

	// ErrNoValue is returned by Traverse when the consumed prefix is a valid
	// path but not a complete key. The cursor remains usable.
	ErrNoValue = errors.New("datrie: no value at current position")

	// ErrDead is returned by Traverse when the path cannot be extended. The
	// cursor is invalid until Reset.
	ErrDead = errors.New("datrie: traversal cursor is dead")

	// ErrValuesLength is returned by BuildWithValues when the values slice
	// does not match the keys slice in length.
	ErrValuesLength = errors.New("datrie: values length does not match keys")

	// ErrMisaligned is returned by SetArray when the borrowed bytes are not
	// aligned for the unit width.
	ErrMisaligned = errors.New("datrie: array bytes are not unit-aligned")
)

// DuplicateKeyError indicates two equal keys in the build input, which would
// make the value assignment ambiguous.
type DuplicateKeyError struct {
	Index int // input position of the later occurrence
	Key   []byte
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("datrie: duplicate key %q at input index %d", e.Key, e.Index)
}

// InvalidValueError indicates a value that cannot be represented in the
// terminal encoding.
type InvalidValueError struct {
	Index int
	Value int64
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("datrie: invalid value %d at input index %d (values must be non-negative)", e.Value, e.Index)
}

// SizeLimitError indicates that construction would exceed the configured
// unit limit.
type SizeLimitError struct {
	Limit     int
	Requested int
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("datrie: array would exceed the limit of %d units (need %d)", e.Limit, e.Requested)
}
