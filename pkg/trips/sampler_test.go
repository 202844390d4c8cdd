package trips

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintang-b-s/nodedist/pkg/errs"
	"github.com/lintang-b-s/nodedist/pkg/geo"
	"github.com/lintang-b-s/nodedist/pkg/matrix"
	"github.com/lintang-b-s/nodedist/pkg/tablereader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
node network: 1, 2, 3. jarak: 1-2 = 100, 1-3 = 400, 2-3 = 300.

halte 10 -> gedung 501 (node 1, 5m), 502 (node 2, 10m)
halte 20 -> gedung 601 (node 3, 20m)
halte 21 dipasangkan ke 20
*/
func newFixture(t *testing.T) (*matrix.DenseMatrix, *Stops) {
	t.Helper()
	pd := matrix.NewPairDistances()
	pd.Add(1, 2, 100)
	pd.Add(1, 3, 400)
	pd.Add(2, 3, 300)
	dm, err := matrix.NewDenseMatrix(pd)
	require.NoError(t, err)

	stops := NewStops(map[uint64]uint64{21: 20})
	stops.AddBuilding(10, Building{ID: 501, Node: 1, Dist: 5})
	stops.AddBuilding(10, Building{ID: 502, Node: 2, Dist: 10})
	stops.AddBuilding(21, Building{ID: 601, Node: 3, Dist: 20})
	return dm, stops
}

func sampleAll(t *testing.T, s *Sampler) []Trip {
	t.Helper()
	out := []Trip{}
	require.NoError(t, s.Run(func(tr Trip) error {
		out = append(out, tr)
		return nil
	}))
	return out
}

func TestDemandSkipsStopsWithoutBuildings(t *testing.T) {
	_, stops := newFixture(t)
	d := NewDemand()

	assert.True(t, d.Add(stops, 7, 10, 21, 3))
	assert.True(t, d.Add(stops, 7, 10, 20, 2))
	assert.False(t, d.Add(stops, 8, 10, 99, 5))

	// 21 diganti 20, jadi satu pair
	assert.Equal(t, 1, d.NumPairs())
	assert.Equal(t, 2, d.Records())
	assert.Equal(t, 5.0, d.weights[7])
}

func TestSamplerTrips(t *testing.T) {
	dm, stops := newFixture(t)
	d := NewDemand()
	d.Add(stops, 7, 10, 20, 4)

	opts := DefaultOptions()
	opts.Trips = 200
	opts.Seed = 42
	opts.SpeedKmh = 36 // 10 m/s
	s, err := NewSampler(dm, stops, d, opts)
	require.NoError(t, err)

	trips := sampleAll(t, s)
	require.Len(t, trips, 200)
	seenFrom := map[uint64]bool{}
	for i, tr := range trips {
		assert.Equal(t, i, tr.Seq)
		assert.GreaterOrEqual(t, tr.Start, uint32(7*3600))
		assert.Less(t, tr.Start, uint32(8*3600))
		assert.Equal(t, uint64(3), tr.ToNode)
		assert.Equal(t, uint64(601), tr.ToBuilding)

		switch tr.FromBuilding {
		case 501:
			assert.Equal(t, 400.0, tr.NetworkDist)
			assert.Equal(t, tr.Start+43, tr.End) // (5+20+400)/10 = 42.5 -> 43
		case 502:
			assert.Equal(t, 300.0, tr.NetworkDist)
			assert.Equal(t, tr.Start+33, tr.End)
		default:
			t.Fatalf("unexpected building %d", tr.FromBuilding)
		}
		seenFrom[tr.FromBuilding] = true
	}
	assert.Len(t, seenFrom, 2)
}

func TestSamplerFollowsDemandWeights(t *testing.T) {
	dm, stops := newFixture(t)
	d := NewDemand()
	d.Add(stops, 7, 10, 20, 1)
	d.Add(stops, 18, 20, 10, 3)

	opts := DefaultOptions()
	opts.Trips = 4000
	opts.Seed = 3
	s, err := NewSampler(dm, stops, d, opts)
	require.NoError(t, err)

	evening := 0
	for _, tr := range sampleAll(t, s) {
		hour := tr.Start / 3600
		require.True(t, hour == 7 || hour == 18, "hour %d has no demand", hour)
		if hour == 18 {
			evening++
			assert.Equal(t, uint64(601), tr.FromBuilding)
		}
	}
	assert.InDelta(t, 0.75, float64(evening)/4000, 0.03)
}

func TestSamplerReproducible(t *testing.T) {
	dm, stops := newFixture(t)
	d := NewDemand()
	d.Add(stops, 7, 10, 20, 4)
	d.Add(stops, 18, 20, 10, 9)

	opts := DefaultOptions()
	opts.Trips = 50
	opts.Seed = 7

	s1, err := NewSampler(dm, stops, d, opts)
	require.NoError(t, err)
	s2, err := NewSampler(dm, stops, d, opts)
	require.NoError(t, err)
	assert.Equal(t, sampleAll(t, s1), sampleAll(t, s2))

	opts.Seed = 8
	s3, err := NewSampler(dm, stops, d, opts)
	require.NoError(t, err)
	assert.NotEqual(t, sampleAll(t, s1), sampleAll(t, s3))
}

func TestSamplerMaxDist(t *testing.T) {
	dm, stops := newFixture(t)
	d := NewDemand()
	d.Add(stops, 0, 10, 20, 1)

	opts := DefaultOptions()
	opts.Trips = 100
	opts.MaxDist = 350
	s, err := NewSampler(dm, stops, d, opts)
	require.NoError(t, err)

	for _, tr := range sampleAll(t, s) {
		assert.LessOrEqual(t, tr.Dist(), 350.0)
		assert.Equal(t, uint64(502), tr.FromBuilding)
	}
	assert.Greater(t, s.Rejected(), 0)

	// tidak ada trip yang mungkin diterima
	opts.MaxDist = 10
	s, err = NewSampler(dm, stops, d, opts)
	require.NoError(t, err)
	_, err = s.Sample(0)
	assert.True(t, errs.Is(err, errs.ErrInvalidArgument))
}

func TestSamplerNoDemand(t *testing.T) {
	dm, stops := newFixture(t)
	_, err := NewSampler(dm, stops, NewDemand(), DefaultOptions())
	assert.True(t, errs.Is(err, errs.ErrInvalidArgument))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadInputs(t *testing.T) {
	dir := t.TempDir()
	pairsPath := writeFile(t, dir, "pairs.txt", "21 20\n")
	nodesPath := writeFile(t, dir, "bnodes.csv", "id,nid,dist\n501,1,5\n502,2,10\n601,3,20\n")
	stopsPath := writeFile(t, dir, "bstops.csv", "pc,stop\n501,10\n502,10\n601,21\n")
	tripsPath := writeFile(t, dir, "trips.txt", "7 10 21 4\n7 10 20 1\n8 10 99 3\n")
	coordsPath := writeFile(t, dir, "coords.csv", "lat,lon,id\n1.5,103.8,501\n1.6,103.9,502\n1.7,104.0,601\n")

	replace, err := LoadStopPairs(pairsPath)
	require.NoError(t, err)
	stops, err := LoadStops(nodesPath, stopsPath, replace)
	require.NoError(t, err)
	assert.Len(t, stops.Buildings(20), 1)
	assert.Nil(t, stops.Buildings(21))

	d, err := LoadDemand(tripsPath, stops)
	require.NoError(t, err)
	assert.Equal(t, 1, d.NumPairs())
	assert.Equal(t, 5.0, d.weights[7])

	coords, err := LoadCoords(coordsPath)
	require.NoError(t, err)
	assert.Equal(t, geo.NewCoordinate(1.7, 104.0), coords[601])

	bad := writeFile(t, dir, "badtrips.txt", "24 10 20 1\n")
	_, err = LoadDemand(bad, stops)
	assert.True(t, errs.Is(err, errs.ErrInputFormat))

	badStops := writeFile(t, dir, "badstops.csv", "pc,stop\n999,10\n")
	_, err = LoadStops(nodesPath, badStops, replace)
	assert.True(t, errs.Is(err, errs.ErrInputFormat))
}

func TestTripWriter(t *testing.T) {
	var out, coordsOut bytes.Buffer
	coords := map[uint64]geo.Coordinate{501: {Lat: 1.5, Lon: 103.8}, 601: {Lat: 1.7, Lon: 104}}
	w := NewTripWriter(tablereader.NewWriter(&out, "trips"), tablereader.NewWriter(&coordsOut, "coords"), coords)

	tr := Trip{Seq: 3, Start: 100, End: 143, FromNode: 1, FromDist: 5, ToNode: 3, ToDist: 20,
		NetworkDist: 400, FromBuilding: 501, ToBuilding: 601}
	require.NoError(t, w.Write(tr))
	require.NoError(t, w.out.Flush())
	require.NoError(t, w.coordsOut.Flush())

	assert.Equal(t, "3\t3\t100\t143\t1\t5.000000\t3\t20.000000\t400.000000\t501\t601\n", out.String())
	assert.True(t, strings.HasPrefix(coordsOut.String(), "3,3,100,143,1.500000,103.800000,"))

	tr.ToBuilding = 999
	err := w.Write(tr)
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}
