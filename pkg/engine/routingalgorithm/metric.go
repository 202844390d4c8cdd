package routingalgorithm

import "github.com/lintang-b-s/nodedist/pkg/errs"

// Metric. nilai record yang dipakai sebagai jarak di matrix.
type Metric string

const (
	MetricWeighted Metric = "weighted"
	MetricReal     Metric = "real"
	MetricTotal    Metric = "total" // real + offset kedua point
)

func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case MetricWeighted, MetricReal, MetricTotal:
		return m, nil
	default:
		return "", errs.NewErrorf(errs.ErrInvalidArgument, "unknown distance metric %q", s)
	}
}

func (m Metric) Of(rec Record) float64 {
	switch m {
	case MetricWeighted:
		return rec.Weighted
	case MetricTotal:
		return rec.Total()
	default:
		return rec.Real
	}
}
