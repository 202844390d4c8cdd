package kv

import "github.com/lintang-b-s/nodedist/pkg/datastructure"

func newLineGraph() *datastructure.Graph {
	g := datastructure.NewGraph()
	g.AddEdge(1, 2, 5.0)
	g.AddEdge(2, 3, 7.0)
	return g
}
