package trips

import (
	"github.com/lintang-b-s/nodedist/pkg/errs"
	"github.com/lintang-b-s/nodedist/pkg/geo"
	"github.com/lintang-b-s/nodedist/pkg/tablereader"
)

// TripWriter. output tsv trip, plus csv koordinat gedung kalau coords di-set.
type TripWriter struct {
	out       *tablereader.Writer
	coordsOut *tablereader.Writer
	coords    map[uint64]geo.Coordinate
}

func NewTripWriter(out, coordsOut *tablereader.Writer, coords map[uint64]geo.Coordinate) *TripWriter {
	return &TripWriter{
		out:       out,
		coordsOut: coordsOut,
		coords:    coords,
	}
}

func (w *TripWriter) Write(t Trip) error {
	err := w.out.Printf("%d\t%d\t%d\t%d\t%d\t%f\t%d\t%f\t%f\t%d\t%d\n",
		t.Seq, t.Seq, t.Start, t.End, t.FromNode, t.FromDist, t.ToNode, t.ToDist, t.NetworkDist,
		t.FromBuilding, t.ToBuilding)
	if err != nil || w.coordsOut == nil {
		return err
	}

	c1, ok := w.coords[t.FromBuilding]
	if !ok {
		return errs.NewErrorf(errs.ErrNotFound, "no coordinates for building %d", t.FromBuilding)
	}
	c2, ok := w.coords[t.ToBuilding]
	if !ok {
		return errs.NewErrorf(errs.ErrNotFound, "no coordinates for building %d", t.ToBuilding)
	}
	return w.coordsOut.Printf("%d,%d,%d,%d,%f,%f,%f,%f\n",
		t.Seq, t.Seq, t.Start, t.End, c1.Lat, c1.Lon, c2.Lat, c2.Lon)
}
