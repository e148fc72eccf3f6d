// Package persistence implements the binary format of persisted
// dictionaries: a fixed little-endian header followed by the raw unit
// payload, optionally compressed and always checksummed.
//
// The uncompressed layout is mmap-compatible: the payload bytes are exactly
// the in-memory array, so a mapped file can be queried without
// deserialization (see OpenMapped).
package persistence

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/hupe1980/datrie/internal/units"
)

// SaveOption configures Save.
type SaveOption func(*saveOptions)

type saveOptions struct {
	compression Compression
	limitBPS    int
}

// WithCompression selects the payload codec. Default: CompressionNone.
func WithCompression(c Compression) SaveOption {
	return func(o *saveOptions) {
		o.compression = c
	}
}

// WithIOLimit throttles the write rate to bytesPerSec. Useful for background
// snapshots that must not starve foreground IO. Default: unlimited.
func WithIOLimit(bytesPerSec int) SaveOption {
	return func(o *saveOptions) {
		o.limitBPS = bytesPerSec
	}
}

// Save writes the unit array to w in the persisted format and returns the
// number of bytes written on success.
func Save[V units.Value](w io.Writer, u []units.Unit[V], opts ...SaveOption) (int, error) {
	var o saveOptions
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	raw := units.AsBytes(u)
	payload, err := compress(o.compression, raw)
	if err != nil {
		return 0, err
	}

	header := FileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		UnitSize:    uint8(units.Size[V]()),
		Compression: uint8(o.compression),
		UnitCount:   uint64(len(u)),
		PayloadSize: uint64(len(payload)),
		Checksum:    crc32.ChecksumIEEE(payload),
	}

	out := w
	if o.limitBPS > 0 {
		out = NewThrottledWriter(w, o.limitBPS)
	}

	if err := binary.Write(out, binary.LittleEndian, &header); err != nil {
		return 0, err
	}
	if _, err := out.Write(payload); err != nil {
		return 0, err
	}
	return HeaderSize + len(payload), nil
}

// Load reads a dictionary from r into a freshly allocated, heap-owned unit
// array. The declared sizes and the checksum are validated; inconsistencies
// are reported as ErrCorruptData (or a ChecksumMismatchError).
func Load[V units.Value](r io.Reader) ([]units.Unit[V], error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: truncated header", ErrCorruptData)
		}
		return nil, err
	}
	if err := validateHeader[V](&header); err != nil {
		return nil, err
	}

	payload := make([]byte, header.PayloadSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: declared %d payload bytes, %v", ErrCorruptData, header.PayloadSize, err)
	}
	if actual := crc32.ChecksumIEEE(payload); actual != header.Checksum {
		return nil, &ChecksumMismatchError{Expected: header.Checksum, Actual: actual}
	}

	rawSize := int(header.UnitCount) * units.Size[V]()
	raw, err := decompress(Compression(header.Compression), payload, rawSize)
	if err != nil {
		return nil, err
	}
	if len(raw) != rawSize {
		return nil, fmt.Errorf("%w: payload decodes to %d bytes, header declares %d units", ErrCorruptData, len(raw), header.UnitCount)
	}

	// Copy into a unit slice so the result is aligned and owned.
	out := make([]units.Unit[V], header.UnitCount)
	copy(units.AsBytes(out), raw)
	return out, nil
}

// View installs a zero-copy unit view over a complete in-memory dictionary
// image (header + payload), as produced by Save without compression. It
// returns the view and the declared unit count. The view aliases data.
func View[V units.Value](data []byte) ([]units.Unit[V], int, error) {
	if len(data) < HeaderSize {
		return nil, 0, fmt.Errorf("%w: truncated header", ErrCorruptData)
	}

	var header FileHeader
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &header); err != nil {
		return nil, 0, err
	}
	if err := validateHeader[V](&header); err != nil {
		return nil, 0, err
	}
	if Compression(header.Compression) != CompressionNone {
		return nil, 0, ErrCompressedMapping
	}

	payload := data[HeaderSize:]
	if uint64(len(payload)) < header.PayloadSize {
		return nil, 0, fmt.Errorf("%w: declared %d payload bytes, have %d", ErrCorruptData, header.PayloadSize, len(payload))
	}
	payload = payload[:header.PayloadSize]

	if actual := crc32.ChecksumIEEE(payload); actual != header.Checksum {
		return nil, 0, &ChecksumMismatchError{Expected: header.Checksum, Actual: actual}
	}
	if !units.Aligned[V](payload) {
		return nil, 0, fmt.Errorf("%w: payload is not unit-aligned", ErrCorruptData)
	}

	return units.FromBytes[V](payload), int(header.UnitCount), nil
}

func validateHeader[V units.Value](h *FileHeader) error {
	if h.Magic != MagicNumber {
		return fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, h.Version)
	}
	if h.UnitSize != uint8(units.Size[V]()) {
		return fmt.Errorf("%w: file has %d-byte units, want %d", ErrUnitSizeMismatch, h.UnitSize, units.Size[V]())
	}
	if Compression(h.Compression) == CompressionNone && h.PayloadSize != h.UnitCount*uint64(units.Size[V]()) {
		return fmt.Errorf("%w: %d units do not fit %d payload bytes", ErrCorruptData, h.UnitCount, h.PayloadSize)
	}
	return nil
}
