package routingalgorithm

import "sort"

// Point. titik eksternal (gedung, halte) yang di-assign ke satu node, dengan offset jarak ke node tsb.
type Point struct {
	ID     uint64
	Offset float64
}

// PointIndex. node -> points. satu node bisa punya banyak point.
type PointIndex struct {
	byNode map[uint64][]Point
	total  int
}

func NewPointIndex() *PointIndex {
	return &PointIndex{
		byNode: make(map[uint64][]Point),
	}
}

func (p *PointIndex) Add(node uint64, pt Point) {
	p.byNode[node] = append(p.byNode[node], pt)
	p.total++
}

// At. points di node. nil kalau node tidak punya point.
func (p *PointIndex) At(node uint64) []Point {
	return p.byNode[node]
}

// Total. jumlah semua point (target count setiap search).
func (p *PointIndex) Total() int {
	return p.total
}

func (p *PointIndex) NumSources() int {
	return len(p.byNode)
}

// Sources. semua node yang punya point, urut ascending.
func (p *PointIndex) Sources() []uint64 {
	sources := make([]uint64, 0, len(p.byNode))
	for n := range p.byNode {
		sources = append(sources, n)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources
}

// Record. jarak antara dua point di node berbeda (atau node sama), FromPoint < ToPoint.
type Record struct {
	FromPoint  uint64
	ToPoint    uint64
	Weighted   float64
	Real       float64
	FromOffset float64
	ToOffset   float64
}

// Total. real distance ditambah offset kedua point.
func (r Record) Total() float64 {
	return r.Real + r.FromOffset + r.ToOffset
}
