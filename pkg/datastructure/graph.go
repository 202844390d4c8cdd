package datastructure

import (
	"log"
	"math"
	"sort"

	"github.com/lintang-b-s/nodedist/pkg/errs"
)

// EdgeInfo. data satu arah edge (a -> b). edge selalu disimpan dua arah dengan Dist & Improved yang sama.
type EdgeInfo struct {
	Dist     float64 // panjang fisik edge
	Improved bool    // edge bagian dari improved network
}

// Graph. adjacency map dari road network yang sudah disimetriskan.
type Graph struct {
	adj            map[uint64]map[uint64]EdgeInfo
	improvedFactor float64
	improvedCount  int
	numEdges       int
}

func NewGraph() *Graph {
	return &Graph{
		adj:            make(map[uint64]map[uint64]EdgeInfo),
		improvedFactor: 1.0,
	}
}

// AddEdge. insert edge (a,b) dan (b,a). kalau edge sudah ada, ditimpa (flag improved ikut direset).
func (g *Graph) AddEdge(a, b uint64, dist float64) {
	if old, ok := g.adj[a][b]; ok {
		if old.Improved {
			g.improvedCount--
		}
	} else {
		g.numEdges++
	}
	g.setEdge(a, b, EdgeInfo{Dist: dist})
	g.setEdge(b, a, EdgeInfo{Dist: dist})
}

func (g *Graph) setEdge(from, to uint64, e EdgeInfo) {
	if _, ok := g.adj[from]; !ok {
		g.adj[from] = make(map[uint64]EdgeInfo)
	}
	g.adj[from][to] = e
}

/*
MarkImproved. tandai edge (a,b) sebagai bagian dari improved network.

weighted cost edge improved = Dist / weightFactor. weightFactor <= 1 tetap diterima tapi di-log,
karena improved edge jadi lebih lambat (atau sama) dibanding edge biasa.
semua edge improved di satu graph pakai weightFactor yang sama.
*/
func (g *Graph) MarkImproved(a, b uint64, weightFactor float64) error {
	if !(weightFactor > 0) || math.IsInf(weightFactor, 1) {
		return errs.NewErrorf(errs.ErrInvalidArgument, "improved edge weight must be positive and finite, got %g", weightFactor)
	}
	if g.improvedCount > 0 && weightFactor != g.improvedFactor {
		return errs.NewErrorf(errs.ErrInvalidArgument, "improved edge weight %g differs from previously used %g",
			weightFactor, g.improvedFactor)
	}

	ab, okAB := g.adj[a][b]
	ba, okBA := g.adj[b][a]
	if !okAB || !okBA {
		return errs.NewErrorf(errs.ErrGraphConsistency, "improved edge %d -- %d not in network", a, b)
	}

	if g.improvedCount == 0 && weightFactor <= 1 {
		log.Printf("improved edge weight seems too low (%g <= 1)", weightFactor)
	}
	g.improvedFactor = weightFactor

	if !ab.Improved {
		g.improvedCount++
	}
	ab.Improved = true
	ba.Improved = true
	g.adj[a][b] = ab
	g.adj[b][a] = ba
	return nil
}

// Weight. weighted cost edge e, yang dipakai buat urutan search (bukan buat real distance).
func (g *Graph) Weight(e EdgeInfo) float64 {
	if e.Improved {
		return e.Dist / g.improvedFactor
	}
	return e.Dist
}

func (g *Graph) ImprovedFactor() float64 {
	return g.improvedFactor
}

// NumImproved. jumlah edge undirected yang ditandai improved.
func (g *Graph) NumImproved() int {
	return g.improvedCount
}

// Neighbors. return adjacency node. node yang tidak ada di graph return map kosong (nil), bukan error.
func (g *Graph) Neighbors(node uint64) map[uint64]EdgeInfo {
	return g.adj[node]
}

func (g *Graph) HasNode(node uint64) bool {
	_, ok := g.adj[node]
	return ok
}

func (g *Graph) HasEdge(a, b uint64) bool {
	_, ok := g.adj[a][b]
	return ok
}

func (g *Graph) Edge(a, b uint64) (EdgeInfo, bool) {
	e, ok := g.adj[a][b]
	return e, ok
}

func (g *Graph) NumNodes() int {
	return len(g.adj)
}

// NumEdges. jumlah edge undirected.
func (g *Graph) NumEdges() int {
	return g.numEdges
}

// Nodes. semua node id, urut ascending.
func (g *Graph) Nodes() []uint64 {
	nodes := make([]uint64, 0, len(g.adj))
	for n := range g.adj {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	return nodes
}
