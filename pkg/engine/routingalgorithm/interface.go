package routingalgorithm

import "github.com/lintang-b-s/nodedist/pkg/datastructure"

// Graph. road network yang dibaca search. read-only selama search berjalan.
type Graph interface {
	Neighbors(node uint64) map[uint64]datastructure.EdgeInfo
	Weight(e datastructure.EdgeInfo) float64
}

// Sink. tujuan record hasil search (tsv writer, pair store, distance list di memori).
type Sink interface {
	Emit(rec Record) error
}

// SinkFunc. adapter fungsi biasa jadi Sink.
type SinkFunc func(rec Record) error

func (f SinkFunc) Emit(rec Record) error {
	return f(rec)
}

// Observer. dipanggil sekali per source setelah search selesai (sukses ataupun gagal).
type Observer interface {
	ObserveSearch(stats SearchStats)
}
