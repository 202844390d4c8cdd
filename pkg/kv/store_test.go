package kv

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/nodedist/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nodedist/pkg/errs"
	"github.com/lintang-b-s/nodedist/pkg/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var backends = []string{BackendBadger, BackendPebble, BackendBolt}

func TestPairKeyOrder(t *testing.T) {
	assert.Equal(t, pairKey(3, 9), pairKey(9, 3))
	assert.Equal(t, -1, bytes.Compare(pairKey(1, 300), pairKey(2, 0)))
	assert.Len(t, pairKey(1, 2), keySize)
}

func TestStoreRoundTrip(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			store, err := Open(backend, t.TempDir())
			require.NoError(t, err)
			defer store.Close()

			records := []routingalgorithm.Record{
				{FromPoint: 1, ToPoint: 2, Weighted: 9.5, Real: 12, FromOffset: 1, ToOffset: 2},
				{FromPoint: 1, ToPoint: 3, Weighted: 4, Real: 4, FromOffset: 1, ToOffset: 0.5},
			}
			require.NoError(t, store.PutBatch(context.Background(), records))

			got, ok, err := store.Get(1, 2)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, records[0], got)

			// arah sebaliknya: offset ikut ditukar
			got, ok, err = store.Get(3, 1)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, routingalgorithm.Record{FromPoint: 3, ToPoint: 1, Weighted: 4, Real: 4,
				FromOffset: 0.5, ToOffset: 1}, got)

			_, ok, err = store.Get(2, 3)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStoreCancelledContext(t *testing.T) {
	store, err := Open(BackendBolt, t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = store.PutBatch(ctx, []routingalgorithm.Record{{FromPoint: 1, ToPoint: 2}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("leveldb", t.TempDir())
	assert.True(t, errs.Is(err, errs.ErrInvalidArgument))
}

/*
	1 ----5.0---- 2 ----7.0---- 3
	A(100)      C(150)          B(200)
*/
func TestStoreSinkToMatrix(t *testing.T) {
	g := newLineGraph()
	points := routingalgorithm.NewPointIndex()
	points.Add(1, routingalgorithm.Point{ID: 100})
	points.Add(2, routingalgorithm.Point{ID: 150})
	points.Add(3, routingalgorithm.Point{ID: 200})

	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			store, err := Open(backend, t.TempDir())
			require.NoError(t, err)
			defer store.Close()

			sink := NewStoreSink(context.Background(), store)
			rt := routingalgorithm.NewRouteAlgorithm(g, points, routingalgorithm.DefaultOptions())
			_, err = rt.Run(sink)
			require.NoError(t, err)
			require.NoError(t, sink.Flush())
			assert.Equal(t, 3, sink.Written())
			assert.Equal(t, []uint64{100, 150, 200}, sink.IDs())

			var buf bytes.Buffer
			src := NewPairSource(store, routingalgorithm.MetricReal)
			require.NoError(t, matrix.WriteMatrixFrom(&buf, sink.IDs(), src.Lookup))
			assert.Equal(t, int(matrix.FileSize(3)), buf.Len())

			d, ok, err := src.Lookup(200, 100)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, 12.0, d)
		})
	}
}

func TestRequireEmptyDir(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, RequireEmptyDir(dir))
	assert.NoError(t, RequireEmptyDir(filepath.Join(dir, "fresh")))

	store, err := Open(BackendBolt, dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	err = RequireEmptyDir(dir)
	assert.True(t, errs.Is(err, errs.ErrInvalidArgument))
}
