package trips

import (
	"log"

	"github.com/lintang-b-s/nodedist/pkg/tablereader"
)

const hours = 24

type stopPair struct {
	from uint64
	to   uint64
}

// Demand. jumlah trip agregat per (pasangan halte, jam).
type Demand struct {
	index   map[stopPair]int
	pairs   []stopPair
	weights []float64 // len(pairs) * 24, index pair*24 + jam
	records int
}

func NewDemand() *Demand {
	return &Demand{
		index: make(map[stopPair]int),
	}
}

// Add. false kalau salah satu halte tidak punya gedung (record di-skip).
// pasangan yang sama boleh muncul lebih dari sekali, jumlahnya diakumulasi.
func (d *Demand) Add(stops *Stops, hour int, s1, s2 uint64, cnt float64) bool {
	s1 = stops.Resolve(s1)
	s2 = stops.Resolve(s2)
	if stops.Buildings(s1) == nil || stops.Buildings(s2) == nil {
		return false
	}

	p := stopPair{s1, s2}
	id, ok := d.index[p]
	if !ok {
		id = len(d.pairs)
		d.index[p] = id
		d.pairs = append(d.pairs, p)
		d.weights = append(d.weights, make([]float64, hours)...)
	}
	d.weights[id*hours+hour] += cnt
	d.records++
	return true
}

func (d *Demand) NumPairs() int {
	return len(d.pairs)
}

func (d *Demand) Records() int {
	return d.records
}

// LoadDemand. "jam(0..23) s1 s2 cnt" per baris. path kosong = stdin.
func LoadDemand(path string, stops *Stops) (*Demand, error) {
	r, err := tablereader.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	d := NewDemand()
	for r.Next() {
		h, err := r.UintBounded(0, 0, hours-1)
		if err != nil {
			return nil, err
		}
		s1, err := r.Uint64(1)
		if err != nil {
			return nil, err
		}
		s2, err := r.Uint64(2)
		if err != nil {
			return nil, err
		}
		cnt, err := r.Uint64(3)
		if err != nil {
			return nil, err
		}
		d.Add(stops, int(h), s1, s2, float64(cnt))
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	log.Printf("%d records read, %d pairs", d.records, len(d.pairs))
	return d, nil
}
