package osmparser

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/lintang-b-s/nodedist/pkg/errs"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
	            5
	            |
	            4
	            |
	1 --------- 2 --------- 3

way 10 (residential): 1,2,3. way 11 (residential): 2,4,5. way 12 (footway): 4,1 -> di-skip.
*/
const smallOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
 <node id="1" lat="0" lon="0"/>
 <node id="2" lat="0" lon="0.001"/>
 <node id="3" lat="0" lon="0.002"/>
 <node id="4" lat="0.001" lon="0.001"/>
 <node id="5" lat="0.002" lon="0.001"/>
 <way id="10">
  <nd ref="1"/><nd ref="2"/><nd ref="3"/>
  <tag k="highway" v="residential"/>
 </way>
 <way id="11">
  <nd ref="2"/><nd ref="4"/><nd ref="5"/>
  <tag k="highway" v="residential"/>
 </way>
 <way id="12">
  <nd ref="4"/><nd ref="1"/>
  <tag k="highway" v="footway"/>
 </way>
</osm>
`

func writeOSM(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.osm")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseSmallMap(t *testing.T) {
	network, err := NewOSMParser().Parse(context.Background(), writeOSM(t, smallOSM))
	require.NoError(t, err)

	edges := network.Edges
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	require.Len(t, edges, 3)

	assert.Equal(t, uint64(1), edges[0].From)
	assert.Equal(t, uint64(2), edges[0].To)
	assert.InDelta(t, 111.2, edges[0].Dist, 0.5)

	assert.Equal(t, uint64(2), edges[1].From)
	assert.Equal(t, uint64(3), edges[1].To)

	// node 4 cuma dilewati satu way, bukan titik potong
	assert.Equal(t, uint64(2), edges[2].From)
	assert.Equal(t, uint64(5), edges[2].To)
	assert.InDelta(t, 222.4, edges[2].Dist, 1.0)

	assert.Len(t, network.Coords, 4)
	_, ok := network.Coords[4]
	assert.False(t, ok)
}

func TestParseMissingNode(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
 <node id="1" lat="0" lon="0"/>
 <way id="10">
  <nd ref="1"/><nd ref="99"/>
  <tag k="highway" v="primary"/>
 </way>
</osm>
`
	_, err := NewOSMParser().Parse(context.Background(), writeOSM(t, content))
	assert.True(t, errs.Is(err, errs.ErrGraphConsistency))
}

func TestParseNegativeNodeID(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
 <node id="1" lat="0" lon="0"/>
 <node id="-5" lat="0" lon="0.001"/>
 <way id="10">
  <nd ref="1"/><nd ref="-5"/>
  <tag k="highway" v="primary"/>
 </way>
</osm>
`
	_, err := NewOSMParser().Parse(context.Background(), writeOSM(t, content))
	assert.True(t, errs.Is(err, errs.ErrInputFormat))
}

func TestClosedWaySplit(t *testing.T) {
	p := NewOSMParser()
	way := &osm.Way{
		ID: 1,
		Nodes: osm.WayNodes{
			{ID: 1}, {ID: 2}, {ID: 3}, {ID: 1},
		},
		Tags: osm.Tags{{Key: "junction", Value: "roundabout"}},
	}
	require.True(t, p.addWay(way))
	assert.Equal(t, JUNCTION_NODE, p.wayNodeMap[1])
	assert.Equal(t, BETWEEN_NODE, p.wayNodeMap[2])

	for i, c := range [][2]float64{{0, 0}, {0, 0.001}, {0.001, 0.001}} {
		p.addNode(&osm.Node{ID: osm.NodeID(i + 1), Lat: c[0], Lon: c[1]})
	}
	network, err := p.buildNetwork()
	require.NoError(t, err)

	require.Len(t, network.Edges, 2)
	assert.Equal(t, Edge{From: 1, To: 3, Dist: network.Edges[0].Dist}, network.Edges[0])
	assert.Equal(t, uint64(3), network.Edges[1].From)
	assert.Equal(t, uint64(1), network.Edges[1].To)
}

func TestAcceptOsmWay(t *testing.T) {
	assert.True(t, acceptOsmWay(&osm.Way{Tags: osm.Tags{{Key: "highway", Value: "primary"}}}))
	assert.False(t, acceptOsmWay(&osm.Way{Tags: osm.Tags{{Key: "highway", Value: "footway"}}}))
	assert.True(t, acceptOsmWay(&osm.Way{Tags: osm.Tags{{Key: "route", Value: "road"}}}))
	assert.False(t, acceptOsmWay(&osm.Way{Tags: osm.Tags{{Key: "building", Value: "yes"}}}))
}
