// This file implements the fluent builder API for constructing dictionaries.
// Builders are immutable - each method returns a new builder with the updated
// configuration.

package datrie

import (
	"time"
)

// ProgressFunc is called during construction after each key is placed.
// placed counts placed keys; total is the size of the key set.
type ProgressFunc func(placed, total int)

// Builder is an immutable fluent builder for constructing a DoubleArray.
// Each method returns a new builder with the updated configuration.
//
// Example:
//
//	da, err := datrie.New[int32]().
//	    InitialCapacity(1 << 16).
//	    Logger(datrie.NewTextLogger(slog.LevelInfo)).
//	    Build(keys)
type Builder[V Value] struct {
	initialCapacity int
	maxUnits        int
	progress        ProgressFunc
	logger          *Logger
	metrics         MetricsCollector
}

// New creates a builder with default configuration.
func New[V Value]() Builder[V] {
	return Builder[V]{
		initialCapacity: 1 << 13,
	}
}

// InitialCapacity sets the initial unit capacity of the array. Larger values
// avoid regrowth for big key sets. Default: 8192.
func (b Builder[V]) InitialCapacity(n int) Builder[V] {
	b.initialCapacity = n
	return b
}

// MaxUnits caps the array size during construction. Exceeding the cap fails
// the build with a SizeLimitError instead of exhausting memory.
// Default: 0 (unlimited).
func (b Builder[V]) MaxUnits(n int) Builder[V] {
	b.maxUnits = n
	return b
}

// ProgressFunc sets a callback invoked as keys are placed.
func (b Builder[V]) ProgressFunc(fn ProgressFunc) Builder[V] {
	b.progress = fn
	return b
}

// Logger sets the structured logger for operation tracing.
func (b Builder[V]) Logger(l *Logger) Builder[V] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b Builder[V]) Metrics(mc MetricsCollector) Builder[V] {
	b.metrics = mc
	return b
}

// Build constructs a dictionary from keys. The value of the i-th key is i.
//
// Keys may hold arbitrary bytes and need not be sorted; the builder sorts a
// working permutation internally. Equal keys fail the build with a
// DuplicateKeyError.
func (b Builder[V]) Build(keys [][]byte) (*DoubleArray[V], error) {
	return b.build(keys, nil)
}

// BuildWithValues constructs a dictionary with explicit non-negative values,
// parallel to keys.
func (b Builder[V]) BuildWithValues(keys [][]byte, values []V) (*DoubleArray[V], error) {
	if values == nil {
		return nil, ErrValuesLength
	}
	return b.build(keys, values)
}

// BuildMap constructs a dictionary from a map. Construction is deterministic
// despite map iteration order because the builder sorts the keys.
func (b Builder[V]) BuildMap(m map[string]V) (*DoubleArray[V], error) {
	keys := make([][]byte, 0, len(m))
	values := make([]V, 0, len(m))
	for k, v := range m {
		keys = append(keys, []byte(k))
		values = append(values, v)
	}
	return b.build(keys, values)
}

// MustBuild is Build but panics on error. Intended for static key sets known
// to be valid.
func (b Builder[V]) MustBuild(keys [][]byte) *DoubleArray[V] {
	da, err := b.Build(keys)
	if err != nil {
		panic(err)
	}
	return da
}

func (b Builder[V]) build(keys [][]byte, values []V) (*DoubleArray[V], error) {
	logger := b.logger
	if logger == nil {
		logger = NoopLogger()
	}

	start := time.Now()
	da, err := b.run(keys, values)
	duration := time.Since(start)

	numUnits := 0
	if da != nil {
		da.logger = logger
		da.metrics = b.metrics
		numUnits = da.size
	}
	logger.LogBuild(len(keys), numUnits, duration, err)
	if b.metrics != nil {
		b.metrics.RecordBuild(len(keys), numUnits, duration, err)
	}
	return da, err
}

// Build constructs a dictionary from keys with default configuration.
// The value of the i-th key is i.
func Build[V Value](keys [][]byte) (*DoubleArray[V], error) {
	return New[V]().Build(keys)
}

// BuildWithValues constructs a dictionary with explicit values and default
// configuration.
func BuildWithValues[V Value](keys [][]byte, values []V) (*DoubleArray[V], error) {
	return New[V]().BuildWithValues(keys, values)
}
