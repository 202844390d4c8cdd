package kv

import (
	"context"
	"errors"

	"github.com/cockroachdb/pebble"
	"github.com/lintang-b-s/nodedist/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nodedist/pkg/errs"
)

type PebbleStore struct {
	db *pebble.DB
}

func OpenPebble(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrIO, "opening pebble db %s", dir)
	}
	return &PebbleStore{db}, nil
}

func (k *PebbleStore) PutBatch(ctx context.Context, records []routingalgorithm.Record) error {
	pairs, err := encodeBatch(ctx, records)
	if err != nil {
		return err
	}

	batch := k.db.NewBatch()
	defer batch.Close()

	for _, p := range pairs {
		if err := batch.Set(p.key, p.value, nil); err != nil {
			return errs.WrapErrorf(err, errs.ErrIO, "pebble batch set")
		}
	}
	if err := batch.Commit(pebble.NoSync); err != nil {
		return errs.WrapErrorf(err, errs.ErrIO, "saving %d pairs", len(pairs))
	}
	return nil
}

func (k *PebbleStore) Get(a, b uint64) (routingalgorithm.Record, bool, error) {
	val, closer, err := k.db.Get(pairKey(a, b))
	if errors.Is(err, pebble.ErrNotFound) {
		return routingalgorithm.Record{}, false, nil
	}
	if err != nil {
		return routingalgorithm.Record{}, false, errs.WrapErrorf(err, errs.ErrIO, "pebble get %d -- %d", a, b)
	}
	defer closer.Close()

	rec, err := decodeRecord(a, b, val)
	return rec, err == nil, err
}

// Close. flush memtable dulu supaya record NoSync tidak hilang.
func (k *PebbleStore) Close() error {
	if err := k.db.Flush(); err != nil {
		k.db.Close()
		return errs.WrapErrorf(err, errs.ErrIO, "pebble flush")
	}
	return k.db.Close()
}
