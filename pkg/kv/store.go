package kv

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lintang-b-s/nodedist/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nodedist/pkg/errs"
)

const (
	BackendBadger = "badger"
	BackendPebble = "pebble"
	BackendBolt   = "bolt"

	batchSize = 1000
)

// PairStore. record jarak antar point di disk, key (min id, max id).
type PairStore interface {
	PutBatch(ctx context.Context, records []routingalgorithm.Record) error
	// Get. ok false kalau pasangan tidak ada.
	Get(a, b uint64) (routingalgorithm.Record, bool, error)
	Close() error
}

// Open. backend: badger | pebble | bolt. dir dibuat kalau belum ada.
func Open(backend, dir string) (PairStore, error) {
	log.Printf("opening %s pair store at %s", backend, dir)
	switch backend {
	case BackendBadger:
		return OpenBadger(dir)
	case BackendPebble:
		return OpenPebble(dir)
	case BackendBolt:
		return OpenBolt(filepath.Join(dir, "pairs.db"))
	default:
		return nil, errs.NewErrorf(errs.ErrInvalidArgument, "unknown store backend %q", backend)
	}
}

// RequireEmptyDir. dir harus belum ada atau kosong, supaya pasangan dari run sebelumnya tidak ikut ke matrix.
func RequireEmptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errs.WrapErrorf(err, errs.ErrIO, "reading store dir %s", dir)
	}
	if len(entries) > 0 {
		return errs.NewErrorf(errs.ErrInvalidArgument, "store dir %s is not empty", dir)
	}
	return nil
}

type encodedPair struct {
	key   []byte
	value []byte
}

// encodeBatch. dipakai semua backend sebelum write batch.
func encodeBatch(ctx context.Context, records []routingalgorithm.Record) ([]encodedPair, error) {
	out := make([]encodedPair, 0, len(records))
	for _, rec := range records {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		val, err := encodeRecord(rec)
		if err != nil {
			return nil, errs.WrapErrorf(err, errs.ErrIO, "encoding pair %d -- %d", rec.FromPoint, rec.ToPoint)
		}
		out = append(out, encodedPair{key: pairKey(rec.FromPoint, rec.ToPoint), value: val})
	}
	return out, nil
}
