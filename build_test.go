package datrie

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/datrie/testutil"
)

func TestBuildDefaultValuesFollowInputOrder(t *testing.T) {
	// Input order determines values even when keys are unsorted.
	keys := [][]byte{
		[]byte("zebra"),
		[]byte("apple"),
		[]byte("mango"),
	}
	da, err := Build[int32](keys)
	require.NoError(t, err)

	for i, key := range keys {
		r, err := da.ExactMatch(key)
		require.NoError(t, err)
		assert.Equal(t, int32(i), r.Value, "key %q", key)
	}
}

func TestBuildWithValues(t *testing.T) {
	keys := [][]byte{
		[]byte("a"),
		[]byte("b"),
	}
	da, err := BuildWithValues(keys, []int32{41, 17})
	require.NoError(t, err)

	r, err := da.ExactMatch([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, int32(41), r.Value)

	r, err = da.ExactMatch([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, int32(17), r.Value)
}

func TestBuildSharedValues(t *testing.T) {
	// Distinct keys may map to the same value.
	keys := [][]byte{
		[]byte("color"),
		[]byte("colour"),
	}
	da, err := BuildWithValues(keys, []int32{7, 7})
	require.NoError(t, err)

	for _, key := range keys {
		r, err := da.ExactMatch(key)
		require.NoError(t, err)
		assert.Equal(t, int32(7), r.Value)
	}
}

func TestBuildDuplicateKey(t *testing.T) {
	keys := [][]byte{
		[]byte("dup"),
		[]byte("other"),
		[]byte("dup"),
	}
	_, err := Build[int32](keys)

	var dupErr *DuplicateKeyError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, []byte("dup"), dupErr.Key)
	assert.Equal(t, 2, dupErr.Index)
}

func TestBuildNegativeValue(t *testing.T) {
	keys := [][]byte{
		[]byte("a"),
		[]byte("b"),
	}
	_, err := BuildWithValues(keys, []int32{0, -5})

	var valErr *InvalidValueError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, 1, valErr.Index)
	assert.Equal(t, int64(-5), valErr.Value)
}

func TestBuildValuesLengthMismatch(t *testing.T) {
	keys := [][]byte{
		[]byte("a"),
		[]byte("b"),
	}
	_, err := BuildWithValues(keys, []int32{1})
	assert.ErrorIs(t, err, ErrValuesLength)

	_, err = New[int32]().BuildWithValues(keys, nil)
	assert.ErrorIs(t, err, ErrValuesLength)
}

func TestBuildMap(t *testing.T) {
	da, err := New[int32]().BuildMap(map[string]int32{
		"alpha": 10,
		"beta":  20,
		"gamma": 30,
	})
	require.NoError(t, err)

	r, err := da.ExactMatch([]byte("beta"))
	require.NoError(t, err)
	assert.Equal(t, int32(20), r.Value)
}

func TestBuildDeterministic(t *testing.T) {
	rng := testutil.NewRNG(11)
	keys := rng.Keys(2000, 10)
	values := make([]int32, len(keys))
	for i := range values {
		values[i] = int32(rng.Intn(1 << 20))
	}

	first, err := BuildWithValues(keys, values)
	require.NoError(t, err)
	second, err := BuildWithValues(keys, values)
	require.NoError(t, err)
	assert.Equal(t, first.Bytes(), second.Bytes())

	// Input order must not affect the array: same mapping, permuted input.
	permKeys := make([][]byte, len(keys))
	permValues := make([]int32, len(values))
	for i, j := range testutil.NewRNG(12).Perm(len(keys)) {
		permKeys[i] = keys[j]
		permValues[i] = values[j]
	}
	third, err := BuildWithValues(permKeys, permValues)
	require.NoError(t, err)
	assert.Equal(t, first.Bytes(), third.Bytes())
}

func TestBuildSaveDeterministic(t *testing.T) {
	keys := testutil.NewRNG(21).Keys(500, 8)

	var a, b bytes.Buffer

	da, err := Build[int32](keys)
	require.NoError(t, err)
	require.NoError(t, da.Save(&a))

	db, err := Build[int32](keys)
	require.NoError(t, err)
	require.NoError(t, db.Save(&b))

	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestBuildMaxUnits(t *testing.T) {
	keys := testutil.NewRNG(31).Keys(5000, 12)

	_, err := New[int32]().MaxUnits(64).Build(keys)

	var sizeErr *SizeLimitError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 64, sizeErr.Limit)
}

func TestBuildProgress(t *testing.T) {
	keys := dictKeys()

	var calls int
	lastPlaced := 0
	da, err := New[int32]().
		ProgressFunc(func(placed, total int) {
			calls++
			assert.Equal(t, len(keys), total)
			assert.Greater(t, placed, lastPlaced)
			lastPlaced = placed
		}).
		Build(keys)
	require.NoError(t, err)
	require.NotNil(t, da)

	assert.Equal(t, len(keys), calls)
	assert.Equal(t, len(keys), lastPlaced)
}

func TestBuildInitialCapacity(t *testing.T) {
	// A tiny initial capacity forces regrowth; the result must not differ.
	keys := testutil.NewRNG(41).Keys(1000, 8)

	small, err := New[int32]().InitialCapacity(1).Build(keys)
	require.NoError(t, err)
	large, err := New[int32]().InitialCapacity(1 << 16).Build(keys)
	require.NoError(t, err)

	assert.Equal(t, small.Bytes(), large.Bytes())
}

func TestBuildInt64(t *testing.T) {
	// Values beyond the int32 range require the wide configuration.
	wide := int64(1) << 40
	da, err := BuildWithValues([][]byte{[]byte("big")}, []int64{wide})
	require.NoError(t, err)

	r, err := da.ExactMatch([]byte("big"))
	require.NoError(t, err)
	assert.Equal(t, wide, r.Value)
}

func TestMustBuildPanics(t *testing.T) {
	keys := [][]byte{
		[]byte("dup"),
		[]byte("dup"),
	}
	assert.Panics(t, func() {
		New[int32]().MustBuild(keys)
	})
}

func TestBuildLargeKeySet(t *testing.T) {
	rng := testutil.NewRNG(51)
	keys := rng.Keys(10000, 12)

	da, err := Build[int32](keys)
	require.NoError(t, err)

	for i, key := range keys {
		r, err := da.ExactMatch(key)
		require.NoError(t, err, "key %q", key)
		assert.Equal(t, int32(i), r.Value)
	}

	for _, key := range rng.MissingKeys(1000, 12, keys) {
		_, err := da.ExactMatch(key)
		assert.True(t, errors.Is(err, ErrNotFound), "key %q should be absent", key)
	}
}

func TestBuildLargeBinaryKeySet(t *testing.T) {
	rng := testutil.NewRNG(61)
	keys := rng.BinaryKeys(5000, 16)

	da, err := Build[int32](keys)
	require.NoError(t, err)

	for i, key := range keys {
		r, err := da.ExactMatch(key)
		require.NoError(t, err, "key %x", key)
		assert.Equal(t, int32(i), r.Value)
	}
}
