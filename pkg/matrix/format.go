package matrix

import (
	"encoding/binary"
	"math"
)

/*
layout file matrix (native byte order):

	offset 0   8 byte    magic
	offset 8   8 byte    N (uint64)
	offset 16  8*N*N     float64 row-major, dist[i*N+j]

id list disimpan terpisah dengan urutan yang sama dengan baris/kolom matrix.
*/
const (
	Magic      uint64 = 0x47a9b290e72d9f21
	HeaderSize        = 16
	valueSize         = 8
)

var byteOrder = binary.NativeEndian

// FileSize. ukuran file matrix untuk n id.
func FileSize(n uint64) int64 {
	return HeaderSize + valueSize*int64(n)*int64(n)
}

func putHeader(buf []byte, n uint64) {
	byteOrder.PutUint64(buf[0:8], Magic)
	byteOrder.PutUint64(buf[8:16], n)
}

func putValue(buf []byte, v float64) {
	byteOrder.PutUint64(buf, math.Float64bits(v))
}
