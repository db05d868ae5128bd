package tracefile

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// Compression represents the compression algorithm of a trace payload
type Compression uint8

const (
	CompressionNone   Compression = 0
	CompressionLZ4    Compression = 1
	CompressionSnappy Compression = 2
)

// String returns the configuration name of the algorithm
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionSnappy:
		return "snappy"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression converts a configuration name to a Compression
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return CompressionNone, errors.Newf("unsupported compression %q (must be none, lz4, or snappy)", name)
	}
}

// compress encodes data with the requested algorithm. The algorithm actually
// used is returned: lz4 falls back to none for incompressible input.
func compress(data []byte, compression Compression) ([]byte, Compression, error) {
	switch compression {
	case CompressionNone:
		return data, CompressionNone, nil

	case CompressionLZ4:
		compressed := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, compressed, nil)
		if err != nil {
			return nil, CompressionNone, errors.Wrap(err, "lz4 compression failed")
		}
		if n == 0 || n >= len(data) {
			return data, CompressionNone, nil
		}
		return compressed[:n], CompressionLZ4, nil

	case CompressionSnappy:
		return snappy.Encode(nil, data), CompressionSnappy, nil

	default:
		return nil, CompressionNone, errors.Newf("unsupported compression type: %d", compression)
	}
}

// maxExpansion is the largest decoded/encoded size ratio of each algorithm
func maxExpansion(compression Compression) int {
	switch compression {
	case CompressionLZ4:
		return 255
	case CompressionSnappy:
		return 32
	default:
		return 1
	}
}

// decompress reverses compress; size is the uncompressed payload size
func decompress(data []byte, compression Compression, size int) ([]byte, error) {
	if limit := len(data) * maxExpansion(compression); size > limit {
		return nil, errors.Newf("payload size %d exceeds maximum %s expansion of %d bytes", size, compression, len(data))
	}

	switch compression {
	case CompressionNone:
		if len(data) != size {
			return nil, errors.Newf("payload size mismatch: got %d, expected %d", len(data), size)
		}
		return data, nil

	case CompressionLZ4:
		decompressed := make([]byte, size)
		n, err := lz4.UncompressBlock(data, decompressed)
		if err != nil {
			return nil, errors.Wrap(err, "lz4 decompression failed")
		}
		if n != size {
			return nil, errors.Newf("lz4 decompression size mismatch: got %d, expected %d", n, size)
		}
		return decompressed, nil

	case CompressionSnappy:
		n, err := snappy.DecodedLen(data)
		if err != nil {
			return nil, errors.Wrap(err, "snappy decompression failed")
		}
		if n != size {
			return nil, errors.Newf("snappy decompression size mismatch: got %d, expected %d", n, size)
		}
		decompressed, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, errors.Wrap(err, "snappy decompression failed")
		}
		if len(decompressed) != size {
			return nil, errors.Newf("snappy decompression size mismatch: got %d, expected %d", len(decompressed), size)
		}
		return decompressed, nil

	default:
		return nil, errors.Newf("unsupported compression type: %d", compression)
	}
}
