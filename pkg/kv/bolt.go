package kv

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/lintang-b-s/nodedist/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nodedist/pkg/errs"
	bolt "go.etcd.io/bbolt"
)

const pairsBucket = "pairs"

type BoltStore struct {
	db *bolt.DB
}

func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrIO, "creating %s", filepath.Dir(path))
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrIO, "opening bolt db %s", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(pairsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errs.WrapErrorf(err, errs.ErrIO, "creating bucket %s", pairsBucket)
	}
	return &BoltStore{db}, nil
}

func (k *BoltStore) PutBatch(ctx context.Context, records []routingalgorithm.Record) error {
	pairs, err := encodeBatch(ctx, records)
	if err != nil {
		return err
	}

	err = k.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(pairsBucket))
		for _, p := range pairs {
			if err := b.Put(p.key, p.value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errs.WrapErrorf(err, errs.ErrIO, "saving %d pairs", len(pairs))
	}
	return nil
}

func (k *BoltStore) Get(a, b uint64) (routingalgorithm.Record, bool, error) {
	var val []byte
	err := k.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(pairsBucket)).Get(pairKey(a, b))
		if v != nil {
			// v cuma valid selama transaksi
			val = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return routingalgorithm.Record{}, false, errs.WrapErrorf(err, errs.ErrIO, "bolt get %d -- %d", a, b)
	}
	if val == nil {
		return routingalgorithm.Record{}, false, nil
	}

	rec, err := decodeRecord(a, b, val)
	return rec, err == nil, err
}

func (k *BoltStore) Close() error {
	return k.db.Close()
}
