package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lintang-b-s/nodedist/pkg/engine/routingalgorithm"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSearch(t *testing.T) {
	m := NewBatchMetrics("nodedist")
	m.ObserveSearch(routingalgorithm.SearchStats{State: routingalgorithm.StateDone, Settled: 10, Records: 4,
		EarlyExit: true, Duration: time.Millisecond})
	m.ObserveSearch(routingalgorithm.SearchStats{State: routingalgorithm.StateFailed, Settled: 3})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.searches.WithLabelValues("done")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.searches.WithLabelValues("failed")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.records))
	assert.Equal(t, 13.0, testutil.ToFloat64(m.settled))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.earlyExits))
	assert.Equal(t, 1, testutil.CollectAndCount(m.searchDuration))
}

func TestWriteTextfile(t *testing.T) {
	m := NewBatchMetrics("sampletrips")
	m.ObserveTrips(100, 7, 1)
	m.SetMatrixIDs(3)

	path := filepath.Join(t.TempDir(), "nodedist.prom")
	require.NoError(t, m.WriteTextfile(path))
	bb, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(bb), `nodedist_sampled_trips_total{job_name="sampletrips",outcome="rejected"} 7`)
	assert.Contains(t, string(bb), `nodedist_matrix_ids{job_name="sampletrips"} 3`)

	assert.NoError(t, m.WriteTextfile(""))
}
