package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(42).Keys(100, 8)
	b := NewRNG(42).Keys(100, 8)
	assert.Equal(t, a, b)
}

func TestRNGReset(t *testing.T) {
	r := NewRNG(7)
	first := r.Keys(50, 8)
	r.Reset()
	second := r.Keys(50, 8)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(7), r.Seed())
}

func TestKeysDistinct(t *testing.T) {
	keys := NewRNG(1).Keys(500, 8)
	require.Len(t, keys, 500)

	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		assert.NotEmpty(t, key)
		assert.LessOrEqual(t, len(key), 8)
		_, dup := seen[string(key)]
		assert.False(t, dup, "duplicate key %q", key)
		seen[string(key)] = struct{}{}
	}
}

func TestMissingKeysDisjoint(t *testing.T) {
	r := NewRNG(3)
	keys := r.Keys(200, 6)
	missing := r.MissingKeys(200, 6, keys)
	require.Len(t, missing, 200)

	present := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		present[string(key)] = struct{}{}
	}
	for _, key := range missing {
		_, ok := present[string(key)]
		assert.False(t, ok, "key %q is in the excluded set", key)
	}
}

func TestBinaryKeys(t *testing.T) {
	keys := NewRNG(5).BinaryKeys(100, 16)
	require.Len(t, keys, 100)
	for _, key := range keys {
		assert.NotEmpty(t, key)
		assert.LessOrEqual(t, len(key), 16)
	}
}
