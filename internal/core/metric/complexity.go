package metric

import (
	"encoding/binary"

	"github.com/klauspost/compress/gzip"
	"github.com/valyala/bytebufferpool"
)

// CompressionDelta measures the change in compressibility between the two
// sequences: the fractional change in gzip-compressed size of the 4-byte
// little-endian token encoding. Positive values mean the transformation made
// the sequence less compressible (more random), negative more redundant.
//
// An empty sequence is encoded as a single zero byte so the ratio stays
// finite.
func CompressionDelta(before, after []int, _ map[string]interface{}) map[string]float64 {
	sizeBefore := compressedSize(before)
	sizeAfter := compressedSize(after)

	if sizeBefore == 0 {
		return map[string]float64{
			"delta":       0.0,
			"before_size": 0.0,
			"after_size":  float64(sizeAfter),
			"ratio":       1.0,
		}
	}

	return map[string]float64{
		"delta":       float64(sizeAfter-sizeBefore) / float64(sizeBefore),
		"before_size": float64(sizeBefore),
		"after_size":  float64(sizeAfter),
		"ratio":       float64(sizeAfter) / float64(sizeBefore),
	}
}

func compressedSize(tokens []int) int {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	out := bytebufferpool.Get()
	defer bytebufferpool.Put(out)

	if len(tokens) == 0 {
		buf.WriteByte(0) //nolint:errcheck // ByteBuffer writes never fail
	} else {
		var scratch [4]byte
		for _, t := range tokens {
			binary.LittleEndian.PutUint32(scratch[:], uint32(int32(t)))
			buf.Write(scratch[:]) //nolint:errcheck // ByteBuffer writes never fail
		}
	}

	zw, err := gzip.NewWriterLevel(out, 6)
	if err != nil {
		// Level 6 is always valid; reaching this means a library defect.
		return 0
	}
	if _, err := zw.Write(buf.B); err != nil {
		zw.Close() //nolint:errcheck
		return 0
	}
	if err := zw.Close(); err != nil {
		return 0
	}

	return out.Len()
}
