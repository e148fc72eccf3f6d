// Package units defines the fixed-width storage unit of the double array
// and the reversible encoding that packs a terminal value into the BASE field.
//
// Keeping the encode/decode functions here, away from the search and build
// logic, lets them be tested in isolation.
package units

import "unsafe"

// Value is the integer width of the array. It covers both stored values and
// array indices, so the two supported configurations are 32-bit (default)
// and 64-bit (large dictionaries or wide values).
type Value interface {
	~int32 | ~int64
}

// Unit is one element of the double array.
//
// Base is the transition offset of an internal state, or a negative encoded
// value when the cell is a terminal leaf. Check holds the BASE of the parent
// state; since the builder assigns each BASE offset to at most one state,
// Check uniquely identifies the owning parent.
type Unit[V Value] struct {
	Base  V
	Check V
}

// EndCode is the transition code reserved for key termination. Raw key bytes
// are shifted by one (see Code) so that no byte maps to it.
const EndCode = 0

// Code maps a key byte to its transition code.
func Code(b byte) int {
	return int(b) + 1
}

// EncodeValue packs a non-negative value into a BASE field. The result is
// always negative, which is what distinguishes a leaf cell from an internal
// cell (whose BASE is a positive offset).
func EncodeValue[V Value](v V) V {
	return -v - 1
}

// DecodeValue is the inverse of EncodeValue.
func DecodeValue[V Value](base V) V {
	return -base - 1
}

// IsValue reports whether a BASE field holds an encoded value.
func IsValue[V Value](base V) bool {
	return base < 0
}

// Size returns the byte size of one unit.
func Size[V Value]() int {
	var u Unit[V]
	return int(unsafe.Sizeof(u))
}

// AsBytes returns the raw bytes backing a unit slice without copying.
// The result aliases u and is only valid while u is reachable.
func AsBytes[V Value](u []Unit[V]) []byte {
	if len(u) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&u[0])), len(u)*Size[V]())
}

// FromBytes reinterprets a byte slice as a unit slice without copying.
// The data must be aligned (see Aligned) and its length is truncated to a
// whole number of units. The result aliases b.
func FromBytes[V Value](b []byte) []Unit[V] {
	n := len(b) / Size[V]()
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*Unit[V])(unsafe.Pointer(&b[0])), n)
}

// Aligned reports whether b is suitably aligned to be viewed as units.
func Aligned[V Value](b []byte) bool {
	if len(b) == 0 {
		return true
	}
	var u Unit[V]
	return uintptr(unsafe.Pointer(&b[0]))%unsafe.Alignof(u) == 0
}
