package kv

import (
	"context"

	"github.com/lintang-b-s/nodedist/pkg/engine/routingalgorithm"
)

// StoreSink. routingalgorithm.Sink yang menyimpan record ke PairStore per batch.
// id point dicatat urut first-seen, jadi urutan baris matrix sama dengan versi in-memory.
type StoreSink struct {
	ctx     context.Context
	store   PairStore
	buf     []routingalgorithm.Record
	ids     []uint64
	seen    map[uint64]struct{}
	written int
}

func NewStoreSink(ctx context.Context, store PairStore) *StoreSink {
	return &StoreSink{
		ctx:   ctx,
		store: store,
		buf:   make([]routingalgorithm.Record, 0, batchSize),
		seen:  make(map[uint64]struct{}),
	}
}

func (s *StoreSink) Emit(rec routingalgorithm.Record) error {
	s.see(rec.FromPoint)
	s.see(rec.ToPoint)
	s.buf = append(s.buf, rec)
	if len(s.buf) == batchSize {
		return s.Flush()
	}
	return nil
}

func (s *StoreSink) see(id uint64) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

// Flush. simpan sisa buffer. harus dipanggil setelah run selesai.
func (s *StoreSink) Flush() error {
	if len(s.buf) == 0 {
		return nil
	}
	if err := s.store.PutBatch(s.ctx, s.buf); err != nil {
		return err
	}
	s.written += len(s.buf)
	s.buf = s.buf[:0]
	return nil
}

func (s *StoreSink) IDs() []uint64 {
	return s.ids
}

func (s *StoreSink) Written() int {
	return s.written
}

// PairSource. PairStore sebagai input matrix writer (matrix.LookupFunc lewat Lookup).
type PairSource struct {
	store  PairStore
	metric routingalgorithm.Metric
}

func NewPairSource(store PairStore, metric routingalgorithm.Metric) *PairSource {
	return &PairSource{store: store, metric: metric}
}

func (p *PairSource) Lookup(a, b uint64) (float64, bool, error) {
	rec, ok, err := p.store.Get(a, b)
	if err != nil || !ok {
		return 0, ok, err
	}
	return p.metric.Of(rec), true, nil
}
