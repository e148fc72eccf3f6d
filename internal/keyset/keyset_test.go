package keyset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/datrie/internal/units"
)

func bkeys(keys ...string) [][]byte {
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return out
}

func TestSortOrder(t *testing.T) {
	// Unsorted input with a prefix pair; shorter must sort first.
	ks := New[int32](bkeys("TOTAL", "A", "TO", "TOTALLY"), nil)

	require.Equal(t, 4, ks.Len())
	assert.Equal(t, []byte("A"), ks.Key(0))
	assert.Equal(t, []byte("TO"), ks.Key(1))
	assert.Equal(t, []byte("TOTAL"), ks.Key(2))
	assert.Equal(t, []byte("TOTALLY"), ks.Key(3))
}

func TestDefaultValuesFollowInputOrder(t *testing.T) {
	// Default values are assigned by original input position, before sorting.
	ks := New[int32](bkeys("TOTAL", "A", "TO"), nil)

	assert.Equal(t, int32(1), ks.Value(0)) // "A" was input index 1
	assert.Equal(t, int32(2), ks.Value(1)) // "TO" was input index 2
	assert.Equal(t, int32(0), ks.Value(2)) // "TOTAL" was input index 0
	assert.Equal(t, 1, ks.Index(0))
}

func TestExplicitValues(t *testing.T) {
	ks := New(bkeys("B", "A"), []int64{10, 20})

	assert.Equal(t, int64(20), ks.Value(0))
	assert.Equal(t, int64(10), ks.Value(1))
}

func TestDuplicate(t *testing.T) {
	ks := New[int32](bkeys("A", "B", "A", "C"), nil)

	idx, ok := ks.Duplicate()
	require.True(t, ok)
	assert.Equal(t, 2, idx) // the later occurrence, by input position

	ks = New[int32](bkeys("A", "B", "C"), nil)
	_, ok = ks.Duplicate()
	assert.False(t, ok)
}

func TestCodeAt(t *testing.T) {
	ks := New[int32](bkeys("AB"), nil)

	assert.Equal(t, units.Code('A'), ks.CodeAt(0, 0))
	assert.Equal(t, units.Code('B'), ks.CodeAt(0, 1))
	assert.Equal(t, units.EndCode, ks.CodeAt(0, 2))
}

func TestEmptyKeyAndBinaryContent(t *testing.T) {
	ks := New[int32]([][]byte{{}, {0x00}, {0xFF}}, nil)

	assert.Equal(t, []byte{}, ks.Key(0))
	assert.Equal(t, units.EndCode, ks.CodeAt(0, 0))
	assert.Equal(t, 1, ks.CodeAt(1, 0))   // 0x00 shifts to code 1
	assert.Equal(t, 256, ks.CodeAt(2, 0)) // 0xFF shifts to code 256
}
