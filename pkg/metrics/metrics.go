package metrics

import (
	"github.com/lintang-b-s/nodedist/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nodedist/pkg/errs"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nodedist"

// BatchMetrics. metric satu batch job, ditulis ke textfile node-exporter di akhir job.
// implement routingalgorithm.Observer, aman dipanggil dari banyak worker.
type BatchMetrics struct {
	registry *prometheus.Registry

	searches       *prometheus.CounterVec
	records        prometheus.Counter
	settled        prometheus.Counter
	earlyExits     prometheus.Counter
	searchDuration prometheus.Histogram
	trips          *prometheus.CounterVec
	matrixIDs      prometheus.Gauge
}

func NewBatchMetrics(job string) *BatchMetrics {
	constLabels := prometheus.Labels{"job_name": job}
	m := &BatchMetrics{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "searches_total",
			Help:        "Shortest path searches by terminal state.",
			ConstLabels: constLabels,
		}, []string{"state"}),
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "records_total",
			Help:        "Point pair records emitted.",
			ConstLabels: constLabels,
		}),
		settled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "settled_nodes_total",
			Help:        "Nodes extracted from the frontier.",
			ConstLabels: constLabels,
		}),
		earlyExits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "early_exits_total",
			Help:        "Searches stopped once every point was reached.",
			ConstLabels: constLabels,
		}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "search_duration_seconds",
			Help:        "Duration of one single-source search.",
			ConstLabels: constLabels,
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		trips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "sampled_trips_total",
			Help:        "Sampled trips by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		matrixIDs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "matrix_ids",
			Help:        "Rows (and columns) of the written distance matrix.",
			ConstLabels: constLabels,
		}),
	}

	m.registry.MustRegister(m.searches, m.records, m.settled, m.earlyExits, m.searchDuration, m.trips, m.matrixIDs)
	return m
}

func (m *BatchMetrics) ObserveSearch(stats routingalgorithm.SearchStats) {
	m.searches.WithLabelValues(stats.State.String()).Inc()
	m.records.Add(float64(stats.Records))
	m.settled.Add(float64(stats.Settled))
	if stats.EarlyExit {
		m.earlyExits.Inc()
	}
	m.searchDuration.Observe(stats.Duration.Seconds())
}

func (m *BatchMetrics) ObserveTrips(accepted, rejected, missing int) {
	m.trips.WithLabelValues("accepted").Add(float64(accepted))
	m.trips.WithLabelValues("rejected").Add(float64(rejected))
	m.trips.WithLabelValues("missing_distance").Add(float64(missing))
}

func (m *BatchMetrics) SetMatrixIDs(n int) {
	m.matrixIDs.Set(float64(n))
}

func (m *BatchMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile. path kosong = tidak ditulis.
func (m *BatchMetrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errs.WrapErrorf(err, errs.ErrIO, "writing metrics to %s", path)
	}
	return nil
}
