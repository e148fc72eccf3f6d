// Package testutil provides deterministic random data generators for tests
// and benchmarks.
package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Bytes returns a random byte string of length n. Any byte value can occur,
// including 0x00 and 0xFF.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(r.rand.Intn(256))
	}
	return b
}

// Keys generates num distinct random keys with lengths in [1, maxLen].
// Keys are drawn from the uppercase alphabet so that common prefixes occur
// frequently. Locks only once per call.
func (r *RNG) Keys(num, maxLen int) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, num)
	keys := make([][]byte, 0, num)

	for len(keys) < num {
		key := make([]byte, 1+r.rand.Intn(maxLen))
		for i := range key {
			key[i] = 'A' + byte(r.rand.Intn(26))
		}
		if _, ok := seen[string(key)]; ok {
			continue
		}
		seen[string(key)] = struct{}{}
		keys = append(keys, key)
	}

	return keys
}

// MissingKeys generates num distinct random keys that are not contained in
// exclude. The generated keys use the same alphabet and length range as Keys.
func (r *RNG) MissingKeys(num, maxLen int, exclude [][]byte) [][]byte {
	present := make(map[string]struct{}, len(exclude))
	for _, key := range exclude {
		present[string(key)] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, num)
	keys := make([][]byte, 0, num)

	for len(keys) < num {
		key := make([]byte, 1+r.rand.Intn(maxLen))
		for i := range key {
			key[i] = 'A' + byte(r.rand.Intn(26))
		}
		if _, ok := present[string(key)]; ok {
			continue
		}
		if _, ok := seen[string(key)]; ok {
			continue
		}
		seen[string(key)] = struct{}{}
		keys = append(keys, key)
	}

	return keys
}

// BinaryKeys generates num distinct random keys over the full byte alphabet,
// with lengths in [1, maxLen]. Useful for exercising non-text keys.
func (r *RNG) BinaryKeys(num, maxLen int) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, num)
	keys := make([][]byte, 0, num)

	for len(keys) < num {
		key := make([]byte, 1+r.rand.Intn(maxLen))
		for i := range key {
			key[i] = byte(r.rand.Intn(256))
		}
		if _, ok := seen[string(key)]; ok {
			continue
		}
		seen[string(key)] = struct{}{}
		keys = append(keys, key)
	}

	return keys
}
