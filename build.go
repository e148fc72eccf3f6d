package datrie

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/datrie/internal/keyset"
	"github.com/hupe1980/datrie/internal/units"
)

// trieBuilder holds the transient construction state: the growing unit
// array, the intrusive free list threaded through unused cells, and the set
// of BASE offsets already assigned to a state.
//
// Free cells form a circular doubly-linked list over the array itself:
// Check = -next and Base = -prev. A cell is free exactly when Check < 0,
// which is what the offset search tests. The list is kept in ascending index
// order (growth appends at the tail, removal preserves order), so scanning
// from the head yields the smallest usable offset and placement is
// deterministic for a given key order.
type trieBuilder[V Value] struct {
	ks       *keyset.Keyset[V]
	units    []units.Unit[V]
	used     *roaring.Bitmap
	freeHead int
	maxIndex int
	maxUnits int
	placed   int
	progress ProgressFunc
}

// childRange is one distinct transition code at the current depth, together
// with the sub-range of sorted keys sharing it.
type childRange struct {
	code   int
	lo, hi int
}

func newTrieBuilder[V Value](ks *keyset.Keyset[V], capacity, maxUnits int) *trieBuilder[V] {
	if capacity < 512 {
		capacity = 512
	}
	if maxUnits > 0 && capacity > maxUnits {
		capacity = maxUnits
	}
	tb := &trieBuilder[V]{
		ks:       ks,
		units:    make([]units.Unit[V], capacity),
		used:     roaring.New(),
		freeHead: -1,
		maxUnits: maxUnits,
	}
	tb.linkFree(1, capacity)
	return tb
}

// linkFree appends the cells [lo, hi) to the tail of the free list.
func (tb *trieBuilder[V]) linkFree(lo, hi int) {
	if lo >= hi {
		return
	}
	for i := lo; i < hi; i++ {
		tb.units[i].Base = V(-(i - 1))
		tb.units[i].Check = V(-(i + 1))
	}
	if tb.freeHead < 0 {
		tb.units[lo].Base = V(-(hi - 1))
		tb.units[hi-1].Check = V(-lo)
		tb.freeHead = lo
		return
	}
	head := tb.freeHead
	tail := int(-tb.units[head].Base)
	tb.units[tail].Check = V(-lo)
	tb.units[lo].Base = V(-tail)
	tb.units[hi-1].Check = V(-head)
	tb.units[head].Base = V(-(hi - 1))
}

// popFree removes cell i from the free list and clears it.
func (tb *trieBuilder[V]) popFree(i int) {
	prev := int(-tb.units[i].Base)
	next := int(-tb.units[i].Check)
	if next == i {
		tb.freeHead = -1
	} else {
		tb.units[prev].Check = V(-next)
		tb.units[next].Base = V(-prev)
		if tb.freeHead == i {
			tb.freeHead = next
		}
	}
	tb.units[i] = units.Unit[V]{}
}

// grow extends the array to hold at least need units, doubling capacity and
// linking the fresh cells into the free list.
func (tb *trieBuilder[V]) grow(need int) error {
	size := len(tb.units)
	newSize := size
	for newSize < need {
		newSize *= 2
	}
	if tb.maxUnits > 0 && newSize > tb.maxUnits {
		if need > tb.maxUnits {
			return &SizeLimitError{Limit: tb.maxUnits, Requested: need}
		}
		newSize = tb.maxUnits
	}
	grown := make([]units.Unit[V], newSize)
	copy(grown, tb.units)
	tb.units = grown
	tb.linkFree(size, newSize)
	return nil
}

func (tb *trieBuilder[V]) ensure(idx int) error {
	if idx < len(tb.units) {
		return nil
	}
	return tb.grow(idx + 1)
}

// fetch collects the distinct transition codes at depth across the sorted
// key range [lo, hi), in ascending code order. A key exhausted at this depth
// contributes the end code; sorting guarantees it comes first.
func (tb *trieBuilder[V]) fetch(lo, hi, depth int) []childRange {
	var children []childRange
	cur := -1
	for i := lo; i < hi; i++ {
		code := tb.ks.CodeAt(i, depth)
		if code != cur {
			children = append(children, childRange{code: code, lo: i, hi: i + 1})
			cur = code
		} else {
			children[len(children)-1].hi = i + 1
		}
	}
	return children
}

// fits reports whether every child cell at the candidate offset is free.
// Cells beyond the current array end count as free; ensure grows the array
// before they are claimed.
func (tb *trieBuilder[V]) fits(begin int, children []childRange) bool {
	for _, c := range children {
		idx := begin + c.code
		if idx >= len(tb.units) {
			continue
		}
		if tb.units[idx].Check >= 0 {
			return false
		}
	}
	return true
}

// findBegin scans the free list in ascending index order for the smallest
// BASE offset whose child cells are all free and which no other state uses
// yet. The array is grown when the current free cells cannot host the child
// set.
func (tb *trieBuilder[V]) findBegin(children []childRange) (int, error) {
	first := children[0].code
	for {
		pos := tb.freeHead
		for pos >= 0 {
			begin := pos - first
			if begin >= 1 && !tb.used.Contains(uint32(begin)) && tb.fits(begin, children) {
				return begin, nil
			}
			next := int(-tb.units[pos].Check)
			if next == tb.freeHead {
				break
			}
			pos = next
		}
		if err := tb.grow(len(tb.units) + 1); err != nil {
			return 0, err
		}
	}
}

// insert places the children of one state and recurses into each sub-range.
// It returns the BASE offset assigned to the state.
//
// Claiming every child cell before recursing keeps sibling subtrees from
// stealing the cells of a later sibling.
func (tb *trieBuilder[V]) insert(lo, hi, depth int) (int, error) {
	children := tb.fetch(lo, hi, depth)

	begin, err := tb.findBegin(children)
	if err != nil {
		return 0, err
	}
	if err := tb.ensure(begin + children[len(children)-1].code); err != nil {
		return 0, err
	}
	tb.used.Add(uint32(begin))

	for _, c := range children {
		idx := begin + c.code
		tb.popFree(idx)
		tb.units[idx].Check = V(begin)
		if idx > tb.maxIndex {
			tb.maxIndex = idx
		}
	}

	for _, c := range children {
		if c.code == units.EndCode {
			tb.units[begin].Base = units.EncodeValue(tb.ks.Value(c.lo))
			tb.placed++
			if tb.progress != nil {
				tb.progress(tb.placed, tb.ks.Len())
			}
			continue
		}
		childBegin, err := tb.insert(c.lo, c.hi, depth+1)
		if err != nil {
			return 0, err
		}
		tb.units[begin+c.code].Base = V(childBegin)
	}

	return begin, nil
}

// finish trims the array to the highest allocated cell and zeroes the cells
// still on the free list. The free-list threading is construction-only state
// and never part of the persisted format; zeroing it also makes the output
// bytes deterministic.
func (tb *trieBuilder[V]) finish() []units.Unit[V] {
	size := tb.maxIndex + 1
	u := tb.units[:size:size]
	for i := range u {
		if u[i].Check < 0 {
			u[i] = units.Unit[V]{}
		}
	}
	return u
}

func (b Builder[V]) run(keys [][]byte, values []V) (*DoubleArray[V], error) {
	if values != nil && len(values) != len(keys) {
		return nil, ErrValuesLength
	}
	for i, v := range values {
		if v < 0 {
			return nil, &InvalidValueError{Index: i, Value: int64(v)}
		}
	}

	ks := keyset.New(keys, values)
	if idx, ok := ks.Duplicate(); ok {
		return nil, &DuplicateKeyError{Index: idx, Key: keys[idx]}
	}

	tb := newTrieBuilder(ks, b.initialCapacity, b.maxUnits)
	tb.progress = b.progress

	if ks.Len() > 0 {
		begin, err := tb.insert(0, ks.Len(), 0)
		if err != nil {
			return nil, err
		}
		tb.units[0].Base = V(begin)
	}

	u := tb.finish()
	return &DoubleArray[V]{
		units: u,
		size:  len(u),
	}, nil
}
