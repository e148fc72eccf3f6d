package persistence

import (
	"github.com/hupe1980/datrie/internal/mmap"
	"github.com/hupe1980/datrie/internal/units"
)

// Mapped is a dictionary viewed directly over a memory-mapped file. Units
// aliases the mapping and becomes invalid after Close.
type Mapped[V units.Value] struct {
	Units []units.Unit[V]
	Count int

	m *mmap.File
}

// OpenMapped memory-maps the dictionary file at path and returns a zero-copy
// view. The file must have been saved without compression.
func OpenMapped[V units.Value](path string) (*Mapped[V], error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	u, count, err := View[V](m.Data)
	if err != nil {
		_ = m.Close()
		return nil, err
	}

	return &Mapped[V]{Units: u, Count: count, m: m}, nil
}

// Close releases the mapping. Any views into Units become invalid.
func (m *Mapped[V]) Close() error {
	if m == nil {
		return nil
	}
	m.Units = nil
	if m.m != nil {
		err := m.m.Close()
		m.m = nil
		return err
	}
	return nil
}
