package persistence

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

func compress(c Compression, raw []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return raw, nil

	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil

	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}

// decompress decodes payload back to the raw array bytes. rawSize is the
// expected decoded size from the header, used to cap allocations; the caller
// still verifies the exact length.
func decompress(c Compression, payload []byte, rawSize int) ([]byte, error) {
	switch c {
	case CompressionNone:
		return payload, nil

	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(payload, make([]byte, 0, rawSize))

	case CompressionLZ4:
		zr := lz4.NewReader(bytes.NewReader(payload))
		raw := make([]byte, 0, rawSize)
		buf := bytes.NewBuffer(raw)
		if _, err := io.Copy(buf, io.LimitReader(zr, int64(rawSize)+1)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}
