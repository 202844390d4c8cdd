package loader

import (
	"context"
	"log"
	"math"
	"strings"

	"github.com/lintang-b-s/nodedist/pkg/datastructure"
	"github.com/lintang-b-s/nodedist/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nodedist/pkg/errs"
	"github.com/lintang-b-s/nodedist/pkg/matrix"
	"github.com/lintang-b-s/nodedist/pkg/osmparser"
	"github.com/lintang-b-s/nodedist/pkg/tablereader"
)

// validDistance. jarak harus >= 0 dan berhingga. NaN juga ditolak.
func validDistance(d float64) bool {
	return d >= 0 && !math.IsInf(d, 1)
}

func isOSM(path string) bool {
	return strings.HasSuffix(path, ".osm.pbf") || strings.HasSuffix(path, ".osm")
}

// LoadNetwork. edge list "n1 n2 d" (disimetrisasi) atau file openstreetmap (.osm.pbf / .osm).
func LoadNetwork(ctx context.Context, path string) (*datastructure.Graph, error) {
	log.Printf("reading network file %s", path)
	g := datastructure.NewGraph()

	if isOSM(path) {
		network, err := osmparser.NewOSMParser().Parse(ctx, path)
		if err != nil {
			return nil, err
		}
		for _, e := range network.Edges {
			// beberapa way bisa menghubungkan dua junction yang sama, ambil yang terpendek
			if old, ok := g.Edge(e.From, e.To); ok && old.Dist <= e.Dist {
				continue
			}
			g.AddEdge(e.From, e.To, e.Dist)
		}
		log.Printf("%d nodes, %d edges read", g.NumNodes(), g.NumEdges())
		return g, nil
	}

	r, err := tablereader.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for r.Next() {
		n1, err := r.Uint64(0)
		if err != nil {
			return nil, err
		}
		n2, err := r.Uint64(1)
		if err != nil {
			return nil, err
		}
		d, err := r.Float64(2)
		if err != nil {
			return nil, err
		}
		if !validDistance(d) {
			return nil, r.Fail("invalid edge distance %f", d)
		}
		g.AddEdge(n1, n2, d)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	log.Printf("%d nodes, %d edges read", g.NumNodes(), g.NumEdges())
	return g, nil
}

// LoadImprovedEdges. "n1 n2" per baris. edge yang tidak ada di graph = ErrGraphConsistency.
func LoadImprovedEdges(g *datastructure.Graph, path string, weightFactor float64) error {
	r, err := tablereader.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	for r.Next() {
		n1, err := r.Uint64(0)
		if err != nil {
			return err
		}
		n2, err := r.Uint64(1)
		if err != nil {
			return err
		}
		if err := g.MarkImproved(n1, n2, weightFactor); err != nil {
			return errs.WrapErrorf(err, errs.Code(err), "%s:%d", r.Name(), r.Line())
		}
	}
	if err := r.Err(); err != nil {
		return err
	}

	log.Printf("%d improved edges read", g.NumImproved())
	return nil
}

// LoadPoints. "pointID nodeID offset" per baris. node yang tidak ada di graph = ErrInputFormat.
func LoadPoints(g *datastructure.Graph, path string) (*routingalgorithm.PointIndex, error) {
	r, err := tablereader.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	points := routingalgorithm.NewPointIndex()
	for r.Next() {
		id, err := r.Uint64(0)
		if err != nil {
			return nil, err
		}
		node, err := r.Uint64(1)
		if err != nil {
			return nil, err
		}
		offset, err := r.Float64(2)
		if err != nil {
			return nil, err
		}
		if !validDistance(offset) {
			return nil, r.Fail("point %d: invalid offset %f", id, offset)
		}
		if !g.HasNode(node) {
			return nil, r.Fail("point %d: node %d not in network", id, node)
		}
		points.Add(node, routingalgorithm.Point{ID: id, Offset: offset})
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	log.Printf("%d points on %d nodes read", points.Total(), points.NumSources())
	return points, nil
}

// NetworkPoints. setiap node jadi point dengan id node itu sendiri, offset 0.
func NetworkPoints(g *datastructure.Graph) *routingalgorithm.PointIndex {
	points := routingalgorithm.NewPointIndex()
	for _, n := range g.Nodes() {
		points.Add(n, routingalgorithm.Point{ID: n})
	}
	return points
}

/*
LoadPairDistances. distance list "n1 n2 d", atau output 6 kolom nodedist
(n1 n2 weighted real offset1 offset2) dengan metric memilih kolom.
*/
func LoadPairDistances(path string, metric routingalgorithm.Metric) (*matrix.PairDistances, error) {
	r, err := tablereader.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	pd := matrix.NewPairDistances()
	for r.Next() {
		n1, err := r.Uint64(0)
		if err != nil {
			return nil, err
		}
		n2, err := r.Uint64(1)
		if err != nil {
			return nil, err
		}

		var d float64
		if r.NumFields() < 6 {
			d, err = r.Float64(2)
		} else {
			d, err = recordMetric(r, metric)
		}
		if err != nil {
			return nil, err
		}
		if !validDistance(d) {
			return nil, r.Fail("invalid distance %f", d)
		}
		pd.Add(n1, n2, d)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	log.Printf("%d nodes, %d distances read", pd.Len(), pd.NumPairs())
	return pd, nil
}

func recordMetric(r *tablereader.Reader, metric routingalgorithm.Metric) (float64, error) {
	rec := routingalgorithm.Record{}
	var err error
	if rec.Weighted, err = r.Float64(2); err != nil {
		return 0, err
	}
	if rec.Real, err = r.Float64(3); err != nil {
		return 0, err
	}
	if rec.FromOffset, err = r.Float64(4); err != nil {
		return 0, err
	}
	if rec.ToOffset, err = r.Float64(5); err != nil {
		return 0, err
	}
	return metric.Of(rec), nil
}
