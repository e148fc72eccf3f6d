package datrie

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/datrie/blobstore"
	"github.com/hupe1980/datrie/internal/units"
	"github.com/hupe1980/datrie/persistence"
)

// Value is the integer width of the array, covering both stored values and
// array offsets. The default configuration is int32; int64 supports larger
// dictionaries and wider values. The width is fixed at compile time.
type Value interface {
	~int32 | ~int64
}

// DoubleArray is a static dictionary mapping byte-string keys to integer
// values, backed by a double-array trie.
//
// A DoubleArray is immutable once built or loaded and is safe for unlimited
// concurrent readers. Construction replaces the whole structure; there is no
// incremental insert or delete.
type DoubleArray[V Value] struct {
	units   []units.Unit[V]
	size    int
	closer  io.Closer
	logger  *Logger
	metrics MetricsCollector
}

// DoubleArray32 is the default 32-bit configuration.
type DoubleArray32 = DoubleArray[int32]

// DoubleArray64 is the wide 64-bit configuration.
type DoubleArray64 = DoubleArray[int64]

// Option configures a DoubleArray created by Load, Open or FromBytes.
type Option func(*config)

type config struct {
	logger  *Logger
	metrics MetricsCollector
}

// WithLogger configures structured logging for operations.
func WithLogger(l *Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics configures a metrics collector for monitoring operations.
func WithMetrics(mc MetricsCollector) Option {
	return func(c *config) {
		c.metrics = mc
	}
}

func applyOptions(opts []Option) config {
	c := config{
		logger: NoopLogger(),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&c)
		}
	}
	return c
}

// Size returns the number of units in the array. It reports 0 for a borrowed
// view installed without an explicit size; queries work regardless.
func (da *DoubleArray[V]) Size() int {
	return da.size
}

// TotalSize returns the array size in bytes, based on Size.
func (da *DoubleArray[V]) TotalSize() int {
	return da.size * units.Size[V]()
}

// Bytes returns the raw array contents without the persisted header. The
// slice aliases the array and must not be mutated; it is the form accepted
// by SetArray.
func (da *DoubleArray[V]) Bytes() []byte {
	return units.AsBytes(da.units)
}

// SetArray installs a borrowed view over caller-owned, already-formatted
// array bytes (as produced by Bytes) without copying. The extent is unknown,
// so Size reports 0. Any previously held content is discarded.
//
// The caller must keep data alive and unmutated for the lifetime of the
// view. No content validation is performed: queries against a malformed
// region have undefined results.
func (da *DoubleArray[V]) SetArray(data []byte) error {
	return da.setArray(data, 0)
}

// SetArraySized is SetArray with a known unit count, which Size will report.
func (da *DoubleArray[V]) SetArraySized(data []byte, n int) error {
	if n < 0 || n*units.Size[V]() > len(data) {
		return fmt.Errorf("datrie: declared size %d exceeds %d bytes of array data", n, len(data))
	}
	return da.setArray(data, n)
}

func (da *DoubleArray[V]) setArray(data []byte, n int) error {
	if !units.Aligned[V](data) {
		return ErrMisaligned
	}
	if da.closer != nil {
		_ = da.closer.Close()
		da.closer = nil
	}
	da.units = units.FromBytes[V](data)
	da.size = n
	if da.logger == nil {
		da.logger = NoopLogger()
	}
	return nil
}

// FromBytes creates a borrowed view over array bytes. See SetArray.
func FromBytes[V Value](data []byte, opts ...Option) (*DoubleArray[V], error) {
	c := applyOptions(opts)
	da := &DoubleArray[V]{logger: c.logger, metrics: c.metrics}
	if err := da.SetArray(data); err != nil {
		return nil, err
	}
	return da, nil
}

// Close releases any resources backing the array, such as a memory mapping
// installed by Open. It is a no-op for heap-owned arrays.
func (da *DoubleArray[V]) Close() error {
	if da.closer == nil {
		return nil
	}
	err := da.closer.Close()
	da.closer = nil
	da.units = nil
	da.size = 0
	return err
}

// Save writes the dictionary to w in the persisted binary format.
func (da *DoubleArray[V]) Save(w io.Writer, opts ...persistence.SaveOption) error {
	start := time.Now()
	n, err := persistence.Save(w, da.units, opts...)
	da.logger.LogSave(n, time.Since(start), err)
	if da.metrics != nil {
		da.metrics.RecordSave(n, time.Since(start), err)
	}
	return err
}

// SaveToFile writes the dictionary to path atomically (temp file + rename).
func (da *DoubleArray[V]) SaveToFile(path string, opts ...persistence.SaveOption) error {
	return persistence.SaveToFile(path, func(w io.Writer) error {
		return da.Save(w, opts...)
	})
}

// Load reads a dictionary from r.
func Load[V Value](r io.Reader, opts ...Option) (*DoubleArray[V], error) {
	c := applyOptions(opts)
	start := time.Now()

	u, err := persistence.Load[V](r)
	c.logger.LogLoad(len(u), time.Since(start), err)
	if c.metrics != nil {
		c.metrics.RecordLoad(len(u)*units.Size[V](), time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	return &DoubleArray[V]{
		units:   u,
		size:    len(u),
		logger:  c.logger,
		metrics: c.metrics,
	}, nil
}

// LoadFromFile reads a dictionary from the file at path.
func LoadFromFile[V Value](path string, opts ...Option) (*DoubleArray[V], error) {
	var da *DoubleArray[V]
	err := persistence.LoadFromFile(path, func(r io.Reader) error {
		loaded, err := Load[V](r, opts...)
		if err != nil {
			return err
		}
		da = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return da, nil
}

// Open memory-maps the dictionary file at path and installs a zero-copy view
// over the mapping. The file must have been saved without compression.
// Close releases the mapping.
func Open[V Value](path string, opts ...Option) (*DoubleArray[V], error) {
	c := applyOptions(opts)

	m, err := persistence.OpenMapped[V](path)
	if err != nil {
		return nil, err
	}

	return &DoubleArray[V]{
		units:   m.Units,
		size:    m.Count,
		closer:  m,
		logger:  c.logger,
		metrics: c.metrics,
	}, nil
}

// SaveToStore serializes the dictionary and writes it to a blob store.
func (da *DoubleArray[V]) SaveToStore(ctx context.Context, store blobstore.BlobStore, name string, opts ...persistence.SaveOption) error {
	var buf writerBuffer
	if err := da.Save(&buf, opts...); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.data)
}

// LoadFromStore reads a dictionary from a blob store. When the blob supports
// zero-copy access (blobstore.Mappable) and the dictionary was saved without
// compression, the array is viewed directly over the blob's memory and the
// blob stays open until Close.
func LoadFromStore[V Value](ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*DoubleArray[V], error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	if m, ok := blob.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err == nil {
			if u, count, err := persistence.View[V](data); err == nil {
				c := applyOptions(opts)
				return &DoubleArray[V]{
					units:   u,
					size:    count,
					closer:  blob,
					logger:  c.logger,
					metrics: c.metrics,
				}, nil
			}
		}
		// Fall through to a copying load (e.g. compressed payload).
	}

	defer blob.Close()

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return Load[V](rc, opts...)
}

// writerBuffer is a minimal in-memory io.Writer that keeps its backing slice
// accessible without the bytes.Buffer read-side bookkeeping.
type writerBuffer struct {
	data []byte
}

func (b *writerBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}
