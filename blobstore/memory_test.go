package blobstore

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	payload := []byte("in memory")
	require.NoError(t, store.Put(ctx, "m.dic", payload))

	blob, err := store.Open(ctx, "m.dic")
	require.NoError(t, err)
	defer blob.Close()

	assert.Equal(t, int64(len(payload)), blob.Size())

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	payload := []byte{1, 2, 3}
	require.NoError(t, store.Put(ctx, "m.dic", payload))

	// Mutating the caller's slice must not change the stored blob.
	payload[0] = 99

	blob, err := store.Open(ctx, "m.dic")
	require.NoError(t, err)
	defer blob.Close()

	p := make([]byte, 3)
	_, err = blob.ReadAt(ctx, p, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, p)
}

func TestMemoryStoreNotFound(t *testing.T) {
	_, err := NewMemoryStore().Open(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStoreDeleteAndList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Put(ctx, "x/1", []byte("1")))
	require.NoError(t, store.Put(ctx, "x/2", []byte("2")))
	require.NoError(t, store.Put(ctx, "y/3", []byte("3")))

	names, err := store.List(ctx, "x/")
	require.NoError(t, err)
	assert.Equal(t, []string{"x/1", "x/2"}, names)

	require.NoError(t, store.Delete(ctx, "x/1"))

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"x/2", "y/3"}, names)
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "shared", []byte("data")))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				blob, err := store.Open(ctx, "shared")
				if assert.NoError(t, err) {
					_ = blob.Close()
				}
			}
		}()
	}
	wg.Wait()
}
