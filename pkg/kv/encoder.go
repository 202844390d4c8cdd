package kv

import (
	"encoding/binary"

	kbinary "github.com/kelindar/binary"
	"github.com/lintang-b-s/nodedist/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nodedist/pkg/errs"
)

const keySize = 16

// pairValue. value yang disimpan per pasangan point, id nya ada di key.
type pairValue struct {
	Weighted   float64
	Real       float64
	FromOffset float64
	ToOffset   float64
}

// pairKey. (min, max) big-endian, jadi (a,b) dan (b,a) satu key dan iterasi key urut id.
func pairKey(a, b uint64) []byte {
	if a > b {
		a, b = b, a
	}
	key := make([]byte, keySize)
	binary.BigEndian.PutUint64(key[0:8], a)
	binary.BigEndian.PutUint64(key[8:16], b)
	return key
}

func encodeRecord(rec routingalgorithm.Record) ([]byte, error) {
	from, to := rec.FromOffset, rec.ToOffset
	if rec.FromPoint > rec.ToPoint {
		from, to = to, from
	}
	return kbinary.Marshal(pairValue{
		Weighted:   rec.Weighted,
		Real:       rec.Real,
		FromOffset: from,
		ToOffset:   to,
	})
}

// decodeRecord. record untuk query (a, b), offset ditukar kalau a > b.
func decodeRecord(a, b uint64, bb []byte) (routingalgorithm.Record, error) {
	var v pairValue
	if err := kbinary.Unmarshal(bb, &v); err != nil {
		return routingalgorithm.Record{}, errs.WrapErrorf(err, errs.ErrFormat, "decoding pair %d -- %d", a, b)
	}
	rec := routingalgorithm.Record{
		FromPoint:  a,
		ToPoint:    b,
		Weighted:   v.Weighted,
		Real:       v.Real,
		FromOffset: v.FromOffset,
		ToOffset:   v.ToOffset,
	}
	if a > b {
		rec.FromOffset, rec.ToOffset = rec.ToOffset, rec.FromOffset
	}
	return rec, nil
}
