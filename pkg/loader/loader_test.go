package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/nodedist/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nodedist/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

/*
	1 ----5.0---- 2 ----7.0---- 3
*/
func TestLoadNetworkImprovedAndPoints(t *testing.T) {
	dir := t.TempDir()
	netPath := writeFile(t, dir, "edges.txt", "1 2 5.0\n2 3 7.0\n")
	improvedPath := writeFile(t, dir, "improved.txt", "2 1\n")
	pointsPath := writeFile(t, dir, "points.txt", "100 1 0\n200 3 0\n")

	g, err := LoadNetwork(context.Background(), netPath)
	require.NoError(t, err)
	assert.Equal(t, 3, g.NumNodes())
	require.NoError(t, LoadImprovedEdges(g, improvedPath, 2.0))
	assert.Equal(t, 1, g.NumImproved())

	points, err := LoadPoints(g, pointsPath)
	require.NoError(t, err)
	assert.Equal(t, 2, points.Total())

	records := []routingalgorithm.Record{}
	rt := routingalgorithm.NewRouteAlgorithm(g, points, routingalgorithm.DefaultOptions())
	_, err = rt.Run(routingalgorithm.SinkFunc(func(rec routingalgorithm.Record) error {
		records = append(records, rec)
		return nil
	}))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 9.5, records[0].Weighted)
	assert.Equal(t, 12.0, records[0].Real)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	netPath := writeFile(t, dir, "edges.txt", "1 2 5.0\n2 3 7.0\n")
	g, err := LoadNetwork(context.Background(), netPath)
	require.NoError(t, err)

	err = LoadImprovedEdges(g, writeFile(t, dir, "improved.txt", "1 3\n"), 2.0)
	assert.True(t, errs.Is(err, errs.ErrGraphConsistency))

	_, err = LoadPoints(g, writeFile(t, dir, "points.txt", "100 9 0\n"))
	assert.True(t, errs.Is(err, errs.ErrInputFormat))

	_, err = LoadNetwork(context.Background(), writeFile(t, dir, "bad.txt", "1 2 x\n"))
	assert.True(t, errs.Is(err, errs.ErrInputFormat))

	_, err = LoadNetwork(context.Background(), writeFile(t, dir, "neg.txt", "1 2 -1\n"))
	assert.True(t, errs.Is(err, errs.ErrInputFormat))
}

func TestLoadRejectsNonFiniteDistances(t *testing.T) {
	dir := t.TempDir()

	for _, content := range []string{"1 2 NaN\n", "1 2 5\n2 3 +Inf\n"} {
		_, err := LoadNetwork(context.Background(), writeFile(t, dir, "edges.txt", content))
		assert.True(t, errs.Is(err, errs.ErrInputFormat), content)
	}

	g, err := LoadNetwork(context.Background(), writeFile(t, dir, "edges.txt", "1 2 5.0\n"))
	require.NoError(t, err)
	for _, content := range []string{"100 1 NaN\n", "100 1 -2\n", "100 1 Inf\n"} {
		_, err := LoadPoints(g, writeFile(t, dir, "points.txt", content))
		assert.True(t, errs.Is(err, errs.ErrInputFormat), content)
	}

	_, err = LoadPairDistances(writeFile(t, dir, "dist.txt", "10 20 NaN\n"), routingalgorithm.MetricReal)
	assert.True(t, errs.Is(err, errs.ErrInputFormat))
}

/*
	      3
	    /   \
	1 ------- 2

way 10: 1,2 (lurus). way 11: 1,3,2 (memutar, ditulis belakangan). edge 1 -- 2 harus yang pendek.
*/
func TestLoadNetworkOSMKeepsShortestParallelWay(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
 <node id="1" lat="0" lon="0"/>
 <node id="2" lat="0" lon="0.001"/>
 <node id="3" lat="0.001" lon="0.0005"/>
 <way id="10">
  <nd ref="1"/><nd ref="2"/>
  <tag k="highway" v="residential"/>
 </way>
 <way id="11">
  <nd ref="1"/><nd ref="3"/><nd ref="2"/>
  <tag k="highway" v="residential"/>
 </way>
</osm>
`
	g, err := LoadNetwork(context.Background(), writeFile(t, t.TempDir(), "map.osm", content))
	require.NoError(t, err)
	assert.Equal(t, 1, g.NumEdges())

	e, ok := g.Edge(1, 2)
	require.True(t, ok)
	assert.InDelta(t, 111.2, e.Dist, 0.5)
	e, ok = g.Edge(2, 1)
	require.True(t, ok)
	assert.InDelta(t, 111.2, e.Dist, 0.5)
}

func TestNetworkPoints(t *testing.T) {
	dir := t.TempDir()
	g, err := LoadNetwork(context.Background(), writeFile(t, dir, "edges.txt", "3 1 1\n1 2 1\n"))
	require.NoError(t, err)

	points := NetworkPoints(g)
	assert.Equal(t, 3, points.Total())
	assert.Equal(t, []uint64{1, 2, 3}, points.Sources())
	assert.Equal(t, []routingalgorithm.Point{{ID: 2}}, points.At(2))
}

func TestLoadPairDistances(t *testing.T) {
	dir := t.TempDir()

	pd, err := LoadPairDistances(writeFile(t, dir, "dist.txt", "10 20 3\n10 30 4\n20 30 5\n"), routingalgorithm.MetricReal)
	require.NoError(t, err)
	assert.Equal(t, []uint64{10, 20, 30}, pd.IDs())
	d, ok := pd.Distance(30, 20)
	assert.True(t, ok)
	assert.Equal(t, 5.0, d)

	six := "100\t200\t9.500000\t12.000000\t1.000000\t2.000000\n"
	for metric, want := range map[routingalgorithm.Metric]float64{
		routingalgorithm.MetricWeighted: 9.5,
		routingalgorithm.MetricReal:     12,
		routingalgorithm.MetricTotal:    15,
	} {
		pd, err := LoadPairDistances(writeFile(t, dir, "nd.txt", six), metric)
		require.NoError(t, err)
		d, _ := pd.Distance(200, 100)
		assert.Equal(t, want, d, metric)
	}
}
