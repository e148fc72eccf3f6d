package datrie

import (
	"time"

	"github.com/hupe1980/datrie/internal/units"
)

// Result is one query match.
type Result[V Value] struct {
	Value  V
	Length int // number of key bytes matched
}

// Cursor is the caller-owned state of an incremental traversal. The zero
// value starts at the root. Node identifies the current trie state and Pos
// counts the key bytes consumed so far.
type Cursor struct {
	Node int
	Pos  int
}

// Reset returns the cursor to the root. Required after Traverse reports
// ErrDead before the cursor can be reused.
func (c *Cursor) Reset() {
	*c = Cursor{}
}

// ExactMatch looks up key and returns its value and matched length, or
// ErrNotFound when key is not stored. To match a bounded portion of a longer
// buffer, slice it: ExactMatch(buf[:n]).
func (da *DoubleArray[V]) ExactMatch(key []byte) (Result[V], error) {
	var start time.Time
	if da.metrics != nil {
		start = time.Now()
	}

	r, err := da.exactMatch(key)

	if da.metrics != nil {
		da.metrics.RecordQuery(QueryExactMatch, time.Since(start), err == nil)
	}
	return r, err
}

func (da *DoubleArray[V]) exactMatch(key []byte) (Result[V], error) {
	u := da.units
	if len(u) == 0 {
		return Result[V]{}, ErrNotFound
	}

	b := int(u[0].Base)
	for _, c := range key {
		p := b + units.Code(c)
		if p <= 0 || p >= len(u) || int(u[p].Check) != b {
			return Result[V]{}, ErrNotFound
		}
		b = int(u[p].Base)
	}

	if b > 0 && b < len(u) && int(u[b].Check) == b && units.IsValue(u[b].Base) {
		return Result[V]{Value: units.DecodeValue(u[b].Base), Length: len(key)}, nil
	}
	return Result[V]{}, ErrNotFound
}

// CommonPrefixSearch returns every stored key that is a prefix of key, in
// strictly increasing length order (shortest first). The result is empty
// when no prefix of key is stored.
func (da *DoubleArray[V]) CommonPrefixSearch(key []byte) []Result[V] {
	var start time.Time
	if da.metrics != nil {
		start = time.Now()
	}

	var results []Result[V]
	da.commonPrefixSearch(key, func(r Result[V]) bool {
		results = append(results, r)
		return true
	})

	if da.metrics != nil {
		da.metrics.RecordQuery(QueryPrefixSearch, time.Since(start), len(results) > 0)
	}
	return results
}

// CommonPrefixSearchInto is CommonPrefixSearch writing into a caller buffer.
// At most len(buf) results are written; further matches are discarded while
// the walk runs to completion. It returns the number of results written.
// Callers needing the full match set must supply sufficient capacity.
func (da *DoubleArray[V]) CommonPrefixSearchInto(key []byte, buf []Result[V]) int {
	var start time.Time
	if da.metrics != nil {
		start = time.Now()
	}

	n := 0
	da.commonPrefixSearch(key, func(r Result[V]) bool {
		if n < len(buf) {
			buf[n] = r
			n++
		}
		return true
	})

	if da.metrics != nil {
		da.metrics.RecordQuery(QueryPrefixSearch, time.Since(start), n > 0)
	}
	return n
}

// commonPrefixSearch walks key from the root, emitting a result at every
// terminal state passed, including the zero-length prefix when the empty
// key is stored.
func (da *DoubleArray[V]) commonPrefixSearch(key []byte, emit func(Result[V]) bool) {
	u := da.units
	if len(u) == 0 {
		return
	}

	b := int(u[0].Base)
	for i := 0; ; i++ {
		if b > 0 && b < len(u) && int(u[b].Check) == b && units.IsValue(u[b].Base) {
			if !emit(Result[V]{Value: units.DecodeValue(u[b].Base), Length: i}) {
				return
			}
		}
		if i == len(key) {
			return
		}
		p := b + units.Code(key[i])
		if p <= 0 || p >= len(u) || int(u[p].Check) != b {
			return
		}
		b = int(u[p].Base)
	}
}

// Traverse advances the cursor from its current position through the
// remaining bytes of key, one transition per byte.
//
// Outcomes:
//   - a transition is missing: the cursor is invalidated and ErrDead is
//     returned; the cursor must be Reset before reuse.
//   - all transitions succeed but the reached state holds no value:
//     ErrNoValue is returned and the cursor remains valid, ready to consume
//     more input appended to key.
//   - the reached state is terminal: its value is returned.
//
// Feeding a key byte-by-byte and inspecting the final outcome is equivalent
// to ExactMatch on the whole key, which is what makes streaming matchers
// (e.g. tokenizers) cheap: the walk never restarts as the candidate grows.
func (da *DoubleArray[V]) Traverse(key []byte, c *Cursor) (V, error) {
	var start time.Time
	if da.metrics != nil {
		start = time.Now()
	}

	v, err := da.traverse(key, c)

	if da.metrics != nil {
		da.metrics.RecordQuery(QueryTraverse, time.Since(start), err == nil)
	}
	return v, err
}

func (da *DoubleArray[V]) traverse(key []byte, c *Cursor) (V, error) {
	var zero V
	if c.Node < 0 {
		return zero, ErrDead
	}

	u := da.units
	if len(u) == 0 || c.Node >= len(u) {
		c.Node = -1
		return zero, ErrDead
	}

	b := int(u[c.Node].Base)
	for c.Pos < len(key) {
		p := b + units.Code(key[c.Pos])
		if p <= 0 || p >= len(u) || int(u[p].Check) != b {
			c.Node = -1
			return zero, ErrDead
		}
		c.Node = p
		c.Pos++
		b = int(u[p].Base)
	}

	if b > 0 && b < len(u) && int(u[b].Check) == b && units.IsValue(u[b].Base) {
		return units.DecodeValue(u[b].Base), nil
	}
	return zero, ErrNoValue
}
