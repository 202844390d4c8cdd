package routingalgorithm

import (
	"time"

	"github.com/lintang-b-s/nodedist/pkg/datastructure"
	"github.com/lintang-b-s/nodedist/pkg/errs"
)

type SearchState int

const (
	StateInit SearchState = iota
	StateSearching
	StateSatisfied // semua target point sudah ketemu, search berhenti lebih awal
	StateExhausted // frontier kosong
	StateDone
	StateFailed
)

func (s SearchState) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateSearching:
		return "searching"
	case StateSatisfied:
		return "satisfied"
	case StateExhausted:
		return "exhausted"
	case StateDone:
		return "done"
	default:
		return "failed"
	}
}

type SearchStats struct {
	Source   uint64
	State    SearchState
	Settled  int // jumlah node yang di-extract dari frontier
	Reached  int // jumlah point yang sudah ketemu
	Records  int
	// EarlyExit. true kalau search berhenti karena semua point sudah ketemu, bukan karena frontier habis.
	EarlyExit bool
	Duration  time.Duration
}

type Options struct {
	// EarlyExit. stop search begitu semua target point ketemu. false = drain semua frontier.
	EarlyExit bool
	// Workers. jumlah search yang jalan paralel di Run.
	Workers int
	// Progress. tampilkan progress bar di stderr.
	Progress bool
}

func DefaultOptions() Options {
	return Options{
		EarlyExit: true,
		Workers:   1,
	}
}

type RouteAlgorithm struct {
	graph    Graph
	points   *PointIndex
	opts     Options
	observer Observer
}

func NewRouteAlgorithm(graph Graph, points *PointIndex, opts Options) *RouteAlgorithm {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &RouteAlgorithm{
		graph:  graph,
		points: points,
		opts:   opts,
	}
}

func (rt *RouteAlgorithm) SetObserver(o Observer) {
	rt.observer = o
}

// frontierItem. payload entry frontier. weighted distance jadi priority heap, node id jadi tie-break.
type frontierItem struct {
	real float64
	node uint64
	pred uint64
}

/*
SearchFrom. dijkstra dari satu source node ke semua point.

setiap node yang di-extract dari frontier dan punya point menghasilkan record untuk setiap pasangan
(point di source, point di node tsb) dengan id point source < id point node.
search berhenti begitu jumlah point yang ketemu == total point (kalau EarlyExit). frontier habis sebelum
semua point ketemu = ErrIncompleteSearch.

decrease-key: setiap node maksimal punya satu entry di frontier (entryMap). kalau node sudah punya tentative
distance tapi entry nya tidak ada di frontier berarti cost map & frontier tidak sinkron -> ErrQueueInvariant.
*/
func (rt *RouteAlgorithm) SearchFrom(source uint64, sink Sink) (stats SearchStats, err error) {
	st := time.Now()
	stats = SearchStats{Source: source, State: StateInit}
	defer func() {
		stats.Duration = time.Since(st)
		if err != nil {
			stats.State = StateFailed
		}
		if rt.observer != nil {
			rt.observer.ObserveSearch(stats)
		}
	}()

	sourcePoints := rt.points.At(source)
	target := rt.points.Total()

	cost := make(map[uint64]float64)
	entryMap := make(map[uint64]*datastructure.Entry[frontierItem])

	pq := datastructure.NewFibonacciHeap[frontierItem]()
	cost[source] = 0.0
	entryMap[source] = pq.Insert(frontierItem{real: 0, node: source, pred: source}, 0.0, source)

	stats.State = StateSearching
	for !pq.IsEmpty() {
		currItem := pq.ExtractMin()
		curr := currItem.GetElem()
		d := currItem.GetPriority()
		realD := curr.real
		delete(entryMap, curr.node)
		stats.Settled++

		if pts := rt.points.At(curr.node); len(pts) > 0 {
			stats.Reached += len(pts)
			for _, p1 := range sourcePoints {
				for _, p2 := range pts {
					if p1.ID >= p2.ID {
						continue
					}
					err = sink.Emit(Record{
						FromPoint:  p1.ID,
						ToPoint:    p2.ID,
						Weighted:   d,
						Real:       realD,
						FromOffset: p1.Offset,
						ToOffset:   p2.Offset,
					})
					if err != nil {
						return stats, errs.WrapErrorf(err, errs.ErrIO, "emitting record %d -- %d", p1.ID, p2.ID)
					}
					stats.Records++
				}
			}
		}

		if stats.Reached == target {
			stats.State = StateSatisfied
			if rt.opts.EarlyExit {
				stats.EarlyExit = true
				break
			}
		}

		for toNodeID, edge := range rt.graph.Neighbors(curr.node) {
			newCost := d + rt.graph.Weight(edge)
			newReal := realD + edge.Dist

			oldCost, ok := cost[toNodeID]
			if !ok {
				cost[toNodeID] = newCost
				entryMap[toNodeID] = pq.Insert(frontierItem{real: newReal, node: toNodeID, pred: curr.node},
					newCost, toNodeID)
			} else if newCost < oldCost {
				entry, inQueue := entryMap[toNodeID]
				if !inQueue {
					err = errs.NewErrorf(errs.ErrQueueInvariant, "node %d not found in the queue (distance: %f)",
						toNodeID, oldCost)
					return stats, err
				}
				cost[toNodeID] = newCost
				pq.DecreaseKey(entry, newCost)
				entry.SetElem(frontierItem{real: newReal, node: toNodeID, pred: curr.node})
			}
		}
	}

	if stats.Reached != target {
		stats.State = StateExhausted
		err = errs.NewErrorf(errs.ErrIncompleteSearch, "not all points found from node %d (%d of %d)",
			source, stats.Reached, target)
		return stats, err
	}

	stats.State = StateDone
	return stats, nil
}
