package osmparser

import (
	"context"
	"io"
	"log"
	"os"
	"strings"

	"github.com/lintang-b-s/nodedist/pkg/errs"
	"github.com/lintang-b-s/nodedist/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

type NodeType uint8

const (
	BETWEEN_NODE NodeType = iota + 1
	END_NODE
	JUNCTION_NODE
)

// Edge. segment way antara dua node junction/ujung way. Dist dalam meter.
type Edge struct {
	From uint64
	To   uint64
	Dist float64
}

type Network struct {
	Edges  []Edge
	Coords map[uint64]geo.Coordinate
}

type OsmParser struct {
	wayNodeMap      map[osm.NodeID]NodeType
	acceptedNodeMap map[osm.NodeID]geo.Coordinate
	ways            []osm.WayNodes
}

func NewOSMParser() *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[osm.NodeID]NodeType),
		acceptedNodeMap: make(map[osm.NodeID]geo.Coordinate),
		ways:            make([]osm.WayNodes, 0),
	}
}

var (
	skipHighway = map[string]struct{}{
		"footway":      {},
		"construction": {},
		"cycleway":     {},
		"path":         {},
		"pedestrian":   {},
		"busway":       {},
		"steps":        {},
		"bridleway":    {},
		"corridor":     {},
		"street_lamp":  {},
		"bus_stop":     {},
		"crossing":     {},
		"elevator":     {},
		"platform":     {},
		"proposed":     {},
		"abandoned":    {},
		"stop":         {},
		"track":        {},
		"bus_guideway": {},
		"raceway":      {},
	}
)

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	junction := way.Tags.Find("junction")
	if highway != "" {
		if _, ok := skipHighway[highway]; !ok {
			return true
		}
	} else if way.Tags.Find("route") == "road" {
		return true
	} else if junction != "" {
		return true
	}
	return false
}

func newScanner(ctx context.Context, path string, r io.Reader, pass int) osm.Scanner {
	if strings.HasSuffix(path, ".osm") {
		return osmxml.New(ctx, r)
	}
	scanner := osmpbf.New(ctx, r, 0)
	scanner.SkipRelations = true
	if pass == 1 {
		scanner.SkipNodes = true
	} else {
		scanner.SkipWays = true
	}
	return scanner
}

/*
Parse. baca file .osm.pbf (atau .osm xml) dua kali.

pass 1: way yang diterima disimpan, node way diklasifikasi (ujung / di tengah / junction = dipakai >1 way atau >1 kali).
pass 2: koordinat node way.
lalu setiap way dipotong di node junction/ujung jadi edge undirected, panjangnya panjang polyline s2 dalam meter.
*/
func (p *OsmParser) Parse(ctx context.Context, mapFile string) (*Network, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrIO, "opening %s", mapFile)
	}
	defer f.Close()

	// must not be parallel
	scanner := newScanner(ctx, mapFile, f, 1)
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if p.addWay(way) {
			countWays++
			if countWays%50000 == 0 {
				log.Printf("reading openstreetmap ways: %d...", countWays)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, errs.WrapErrorf(err, errs.ErrInputFormat, "reading ways from %s", mapFile)
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrIO, "seeking %s", mapFile)
	}

	scanner = newScanner(ctx, mapFile, f, 2)
	defer scanner.Close()
	for scanner.Scan() {
		if node, ok := scanner.Object().(*osm.Node); ok {
			p.addNode(node)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrInputFormat, "reading nodes from %s", mapFile)
	}

	network, err := p.buildNetwork()
	if err != nil {
		return nil, err
	}
	log.Printf("%d openstreetmap ways, %d edges, %d nodes", countWays, len(network.Edges), len(network.Coords))
	return network, nil
}

// addWay. false kalau way tidak dipakai.
func (p *OsmParser) addWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 || !acceptOsmWay(way) {
		return false
	}

	for i, node := range way.Nodes {
		if _, ok := p.wayNodeMap[node.ID]; !ok {
			if i == 0 || i == len(way.Nodes)-1 {
				p.wayNodeMap[node.ID] = END_NODE
			} else {
				p.wayNodeMap[node.ID] = BETWEEN_NODE
			}
		} else {
			p.wayNodeMap[node.ID] = JUNCTION_NODE
		}
	}
	p.ways = append(p.ways, way.Nodes)
	return true
}

func (p *OsmParser) addNode(node *osm.Node) {
	if _, ok := p.wayNodeMap[node.ID]; ok {
		p.acceptedNodeMap[node.ID] = geo.NewCoordinate(node.Lat, node.Lon)
	}
}

func (p *OsmParser) isSplitNode(id osm.NodeID) bool {
	t := p.wayNodeMap[id]
	return t == JUNCTION_NODE || t == END_NODE
}

func (p *OsmParser) buildNetwork() (*Network, error) {
	network := &Network{
		Edges:  make([]Edge, 0, len(p.ways)),
		Coords: make(map[uint64]geo.Coordinate),
	}

	for _, nodes := range p.ways {
		segment := make([]osm.NodeID, 0, len(nodes))
		for i, wn := range nodes {
			if wn.ID < 0 {
				// id negatif (file hasil edit josm) tidak bisa jadi node id graph
				return nil, errs.NewErrorf(errs.ErrInputFormat, "way node %d has negative id", wn.ID)
			}
			if _, ok := p.acceptedNodeMap[wn.ID]; !ok {
				return nil, errs.NewErrorf(errs.ErrGraphConsistency, "way node %d has no coordinate", wn.ID)
			}
			segment = append(segment, wn.ID)
			if i > 0 && p.isSplitNode(wn.ID) {
				p.processSegment(segment, network)
				segment = []osm.NodeID{wn.ID}
			}
		}
		if len(segment) > 1 {
			p.processSegment(segment, network)
		}
	}
	return network, nil
}

func (p *OsmParser) processSegment(segment []osm.NodeID, network *Network) {
	if len(segment) == 2 && segment[0] == segment[1] {
		// skip
		return
	}
	if segment[0] == segment[len(segment)-1] {
		// loop: dipotong dua supaya tidak jadi self loop
		if len(segment) > 2 {
			p.addEdge(segment[0:len(segment)-1], network)
			p.addEdge(segment[len(segment)-2:], network)
		}
		return
	}
	p.addEdge(segment, network)
}

func (p *OsmParser) addEdge(segment []osm.NodeID, network *Network) {
	coords := make([]geo.Coordinate, len(segment))
	for i, id := range segment {
		coords[i] = p.acceptedNodeMap[id]
	}

	from := uint64(segment[0])
	to := uint64(segment[len(segment)-1])
	network.Coords[from] = coords[0]
	network.Coords[to] = coords[len(coords)-1]
	network.Edges = append(network.Edges, Edge{
		From: from,
		To:   to,
		Dist: geo.PolylineLength(coords),
	})
}
