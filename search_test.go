package datrie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/datrie/testutil"
)

func TestCommonPrefixSearchLengths(t *testing.T) {
	rng := testutil.NewRNG(71)
	keys := rng.Keys(5000, 10)

	da, err := Build[int32](keys)
	require.NoError(t, err)

	stored := make(map[string]int32, len(keys))
	for i, key := range keys {
		stored[string(key)] = int32(i)
	}

	for _, key := range keys[:500] {
		results := da.CommonPrefixSearch(key)
		require.NotEmpty(t, results)

		// Strictly increasing lengths, every result a stored prefix, and the
		// full key always present as the last result.
		prev := -1
		for _, r := range results {
			assert.Greater(t, r.Length, prev)
			prev = r.Length

			want, ok := stored[string(key[:r.Length])]
			require.True(t, ok, "prefix %q not stored", key[:r.Length])
			assert.Equal(t, want, r.Value)
		}
		assert.Equal(t, len(key), results[len(results)-1].Length)
	}
}

func TestCommonPrefixSearchInto(t *testing.T) {
	da, err := Build[int32](dictKeys())
	require.NoError(t, err)

	key := []byte("TOTALLY")

	t.Run("SufficientCapacity", func(t *testing.T) {
		buf := make([]Result[int32], 8)
		n := da.CommonPrefixSearchInto(key, buf)
		require.Equal(t, 3, n)
		assert.Equal(t, da.CommonPrefixSearch(key), buf[:n])
	})

	t.Run("Truncated", func(t *testing.T) {
		buf := make([]Result[int32], 2)
		n := da.CommonPrefixSearchInto(key, buf)
		require.Equal(t, 2, n)
		assert.Equal(t, Result[int32]{Value: 1, Length: 2}, buf[0])
		assert.Equal(t, Result[int32]{Value: 2, Length: 5}, buf[1])
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		assert.Equal(t, 0, da.CommonPrefixSearchInto(key, nil))
	})
}

func TestTraverse(t *testing.T) {
	da, err := Build[int32](dictKeys())
	require.NoError(t, err)

	t.Run("CompleteKey", func(t *testing.T) {
		var c Cursor
		v, err := da.Traverse([]byte("TOTAL"), &c)
		require.NoError(t, err)
		assert.Equal(t, int32(2), v)
		assert.Equal(t, 5, c.Pos)
	})

	t.Run("NoValue", func(t *testing.T) {
		var c Cursor
		_, err := da.Traverse([]byte("TOT"), &c)
		assert.ErrorIs(t, err, ErrNoValue)

		// The cursor stays valid: appending the rest of the key resumes the
		// walk instead of restarting it.
		v, err := da.Traverse([]byte("TOTAL"), &c)
		require.NoError(t, err)
		assert.Equal(t, int32(2), v)
	})

	t.Run("Incremental", func(t *testing.T) {
		key := []byte("TOTALLY")
		var c Cursor
		for i := 1; i < len(key); i++ {
			_, err := da.Traverse(key[:i], &c)
			if i == 2 || i == 5 {
				assert.NoError(t, err, "prefix %q is a stored key", key[:i])
			} else {
				assert.ErrorIs(t, err, ErrNoValue, "prefix %q", key[:i])
			}
			assert.Equal(t, i, c.Pos)
		}
		v, err := da.Traverse(key, &c)
		require.NoError(t, err)
		assert.Equal(t, int32(3), v)
	})

	t.Run("Dead", func(t *testing.T) {
		var c Cursor
		_, err := da.Traverse([]byte("TOXIC"), &c)
		assert.ErrorIs(t, err, ErrDead)

		// A dead cursor stays dead until Reset.
		_, err = da.Traverse([]byte("TOTAL"), &c)
		assert.ErrorIs(t, err, ErrDead)

		c.Reset()
		v, err := da.Traverse([]byte("TOTAL"), &c)
		require.NoError(t, err)
		assert.Equal(t, int32(2), v)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		var c Cursor
		_, err := da.Traverse(nil, &c)
		assert.ErrorIs(t, err, ErrNoValue)
		assert.Equal(t, Cursor{}, c)
	})
}

func TestTraverseMatchesExactMatch(t *testing.T) {
	rng := testutil.NewRNG(81)
	keys := rng.Keys(2000, 10)

	da, err := Build[int32](keys)
	require.NoError(t, err)

	probe := make([][]byte, 0, 400)
	probe = append(probe, keys[:200]...)
	probe = append(probe, rng.MissingKeys(200, 10, keys)...)
	for _, key := range probe {
		r, matchErr := da.ExactMatch(key)

		// Byte-by-byte traversal must agree with the one-shot lookup.
		var c Cursor
		var v int32
		var travErr error
		for i := 1; i <= len(key); i++ {
			v, travErr = da.Traverse(key[:i], &c)
			if travErr == ErrDead {
				break
			}
		}

		if matchErr == nil {
			require.NoError(t, travErr, "key %q", key)
			assert.Equal(t, r.Value, v)
		} else {
			assert.Error(t, travErr, "key %q", key)
		}
	}
}

func TestConcurrentReaders(t *testing.T) {
	rng := testutil.NewRNG(91)
	keys := rng.Keys(3000, 10)

	da, err := Build[int32](keys)
	require.NoError(t, err)

	missing := rng.MissingKeys(500, 10, keys)

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i, key := range keys {
				r, err := da.ExactMatch(key)
				if err != nil {
					return err
				}
				if r.Value != int32(i) {
					return assert.AnError
				}
			}
			for _, key := range missing {
				if _, err := da.ExactMatch(key); err != ErrNotFound {
					return assert.AnError
				}
				da.CommonPrefixSearch(key)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
