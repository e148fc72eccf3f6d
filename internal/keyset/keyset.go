// Package keyset prepares builder input: it resolves default values, sorts a
// working index permutation into construction order, and exposes depth-wise
// access to the sorted keys.
package keyset

import (
	"bytes"
	"sort"

	"github.com/hupe1980/datrie/internal/units"
)

// Keyset is the ephemeral input of a build. It never owns key bytes and is
// discarded once construction finishes.
type Keyset[V units.Value] struct {
	keys   [][]byte
	values []V
	order  []int
}

// New resolves values and sorts the keyset into construction order.
//
// Construction order is ascending byte-wise lexicographic order with shorter
// keys before longer ones on a shared prefix (bytes.Compare semantics).
// When values is nil, the value of each key defaults to its position in the
// original input, resolved before sorting. The sort is stable so that the
// later of two equal keys is reported by Duplicate.
func New[V units.Value](keys [][]byte, values []V) *Keyset[V] {
	ks := &Keyset[V]{
		keys:   keys,
		values: values,
		order:  make([]int, len(keys)),
	}
	for i := range ks.order {
		ks.order[i] = i
	}
	if ks.values == nil {
		ks.values = make([]V, len(keys))
		for i := range ks.values {
			ks.values[i] = V(i)
		}
	}

	sort.SliceStable(ks.order, func(i, j int) bool {
		return bytes.Compare(keys[ks.order[i]], keys[ks.order[j]]) < 0
	})

	return ks
}

// Len returns the number of keys.
func (ks *Keyset[V]) Len() int {
	return len(ks.keys)
}

// Key returns the i-th key in construction order.
func (ks *Keyset[V]) Key(i int) []byte {
	return ks.keys[ks.order[i]]
}

// Value returns the value of the i-th key in construction order.
func (ks *Keyset[V]) Value(i int) V {
	return ks.values[ks.order[i]]
}

// Index returns the original input position of the i-th key in
// construction order.
func (ks *Keyset[V]) Index(i int) int {
	return ks.order[i]
}

// Duplicate scans for equal adjacent keys in construction order. It returns
// the original input position of the second occurrence, or false when all
// keys are distinct.
func (ks *Keyset[V]) Duplicate() (int, bool) {
	for i := 1; i < len(ks.order); i++ {
		if bytes.Equal(ks.keys[ks.order[i-1]], ks.keys[ks.order[i]]) {
			return ks.order[i], true
		}
	}
	return 0, false
}

// CodeAt returns the transition code of the i-th sorted key at the given
// depth, or units.EndCode when the key is exhausted at that depth.
func (ks *Keyset[V]) CodeAt(i, depth int) int {
	k := ks.keys[ks.order[i]]
	if depth >= len(k) {
		return units.EndCode
	}
	return units.Code(k[depth])
}
