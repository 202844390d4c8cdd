package kv

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/lintang-b-s/nodedist/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nodedist/pkg/errs"
)

type BadgerStore struct {
	db *badger.DB
}

func OpenBadger(dir string) (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrIO, "opening badger db %s", dir)
	}
	return &BadgerStore{db}, nil
}

func (k *BadgerStore) PutBatch(ctx context.Context, records []routingalgorithm.Record) error {
	pairs, err := encodeBatch(ctx, records)
	if err != nil {
		return err
	}

	batch := k.db.NewWriteBatch()
	defer batch.Cancel()

	for _, p := range pairs {
		if err := batch.Set(p.key, p.value); err != nil {
			return errs.WrapErrorf(err, errs.ErrIO, "badger batch set")
		}
	}

	if err := batch.Flush(); err != nil {
		return errs.WrapErrorf(err, errs.ErrIO, "saving %d pairs", len(pairs))
	}
	return nil
}

func (k *BadgerStore) Get(a, b uint64) (routingalgorithm.Record, bool, error) {
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(pairKey(a, b))
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return routingalgorithm.Record{}, false, nil
	}
	if err != nil {
		return routingalgorithm.Record{}, false, errs.WrapErrorf(err, errs.ErrIO, "badger get %d -- %d", a, b)
	}

	rec, err := decodeRecord(a, b, val)
	return rec, err == nil, err
}

func (k *BadgerStore) Close() error {
	return k.db.Close()
}
