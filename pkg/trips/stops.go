package trips

import (
	"github.com/lintang-b-s/nodedist/pkg/geo"
	"github.com/lintang-b-s/nodedist/pkg/tablereader"
)

// Building. gedung (id = kode pos) yang di-assign ke node network dengan jarak Dist ke node tsb.
type Building struct {
	ID   uint64
	Node uint64
	Dist float64
}

// Stops. halte -> gedung yang dilayani halte tsb.
// halte yang punya pasangan (halte arah sebaliknya) diganti dengan pasangannya.
type Stops struct {
	replace   map[uint64]uint64
	buildings map[uint64][]Building
}

func NewStops(replace map[uint64]uint64) *Stops {
	if replace == nil {
		replace = make(map[uint64]uint64)
	}
	return &Stops{
		replace:   replace,
		buildings: make(map[uint64][]Building),
	}
}

// Resolve. id halte setelah diganti pasangannya (kalau ada).
func (s *Stops) Resolve(stop uint64) uint64 {
	if other, ok := s.replace[stop]; ok {
		return other
	}
	return stop
}

func (s *Stops) AddBuilding(stop uint64, b Building) {
	stop = s.Resolve(stop)
	s.buildings[stop] = append(s.buildings[stop], b)
}

// Buildings. nil kalau halte tidak punya gedung.
func (s *Stops) Buildings(stop uint64) []Building {
	return s.buildings[stop]
}

func (s *Stops) Len() int {
	return len(s.buildings)
}

// LoadStopPairs. "s1 s2" per baris, s1 diganti s2.
func LoadStopPairs(path string) (map[uint64]uint64, error) {
	pairs := make(map[uint64]uint64)
	if path == "" {
		return pairs, nil
	}

	r, err := tablereader.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for r.Next() {
		s1, err := r.Uint64(0)
		if err != nil {
			return nil, err
		}
		s2, err := r.Uint64(1)
		if err != nil {
			return nil, err
		}
		pairs[s1] = s2
	}
	return pairs, r.Err()
}

/*
LoadStops. dua file csv dengan header:

	nodesPath: id,nid,dist   gedung -> node network
	stopsPath: pc,stop       gedung -> halte

gedung di stopsPath yang tidak ada di nodesPath = ErrInputFormat.
*/
func LoadStops(nodesPath, stopsPath string, replace map[uint64]uint64) (*Stops, error) {
	buildingNodes := make(map[uint64]Building)
	r, err := tablereader.Open(nodesPath, tablereader.WithDelimiter(','), tablereader.WithHeader())
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for r.Next() {
		id, err := r.Uint64(0)
		if err != nil {
			return nil, err
		}
		nid, err := r.Uint64(1)
		if err != nil {
			return nil, err
		}
		dist, err := r.Float64(2)
		if err != nil {
			return nil, err
		}
		buildingNodes[id] = Building{ID: id, Node: nid, Dist: dist}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	stops := NewStops(replace)
	sr, err := tablereader.Open(stopsPath, tablereader.WithDelimiter(','), tablereader.WithHeader())
	if err != nil {
		return nil, err
	}
	defer sr.Close()

	for sr.Next() {
		pc, err := sr.Uint64(0)
		if err != nil {
			return nil, err
		}
		stop, err := sr.Uint64(1)
		if err != nil {
			return nil, err
		}
		b, ok := buildingNodes[pc]
		if !ok {
			return nil, sr.Fail("building %d has no network node", pc)
		}
		stops.AddBuilding(stop, b)
	}
	if err := sr.Err(); err != nil {
		return nil, err
	}
	return stops, nil
}

// LoadCoords. csv "lat,lon,id" dengan header.
func LoadCoords(path string) (map[uint64]geo.Coordinate, error) {
	r, err := tablereader.Open(path, tablereader.WithDelimiter(','), tablereader.WithHeader())
	if err != nil {
		return nil, err
	}
	defer r.Close()

	coords := make(map[uint64]geo.Coordinate)
	for r.Next() {
		lat, err := r.Float64(0)
		if err != nil {
			return nil, err
		}
		lon, err := r.Float64(1)
		if err != nil {
			return nil, err
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return nil, r.Fail("invalid coordinate %f,%f", lat, lon)
		}
		id, err := r.Uint64(2)
		if err != nil {
			return nil, err
		}
		coords[id] = geo.NewCoordinate(lat, lon)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return coords, nil
}
