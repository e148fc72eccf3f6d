package persistence

import "errors"

const (
	// MagicNumber identifies datrie binary files (ASCII: "DAT1").
	MagicNumber = 0x44415431
	// Version is the current file format version (v1.0.0).
	Version = 0x00010000

	// HeaderSize is the fixed byte size of FileHeader on the wire.
	HeaderSize = 32
)

// Compression selects the payload codec of a saved dictionary.
type Compression uint8

const (
	// CompressionNone stores the raw array. Required for memory-mapped loads.
	CompressionNone Compression = iota
	// CompressionZstd compresses the array with zstd.
	CompressionZstd
	// CompressionLZ4 compresses the array with the LZ4 frame format.
	CompressionLZ4
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrUnitSizeMismatch   = errors.New("unit width does not match dictionary type")
	ErrCorruptData        = errors.New("corrupt dictionary data")
	ErrUnknownCompression = errors.New("unknown compression codec")
	ErrCompressedMapping  = errors.New("compressed dictionaries cannot be memory-mapped")
)

// FileHeader is the 32-byte header at the start of every dictionary file.
// All fields are little-endian.
type FileHeader struct {
	Magic       uint32 // 0x44415431 ("DAT1")
	Version     uint32 // File format version
	UnitSize    uint8  // Byte size of one unit (8 or 16)
	Compression uint8  // Payload codec
	Padding     [2]byte
	UnitCount   uint64 // Number of units in the array
	PayloadSize uint64 // Byte size of the payload as stored (compressed size)
	Checksum    uint32 // CRC32 of the stored payload
}
