package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"

	"github.com/lintang-b-s/nodedist/pkg/config"
	"github.com/lintang-b-s/nodedist/pkg/datastructure"
	"github.com/lintang-b-s/nodedist/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nodedist/pkg/errs"
	"github.com/lintang-b-s/nodedist/pkg/kv"
	"github.com/lintang-b-s/nodedist/pkg/loader"
	"github.com/lintang-b-s/nodedist/pkg/matrix"
	"github.com/lintang-b-s/nodedist/pkg/metrics"
	"github.com/lintang-b-s/nodedist/pkg/tablereader"
)

var (
	_          = flag.String("config", "", "toml config file (flags override it)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

/*
nodedist. jarak shortest path antar semua pasangan point di road network.

	nodedist -n edges.txt -p points.txt [-i improved.txt -w 1.5] > distances.txt
	nodedist -n map.osm.pbf -N -matrix dist.bin -ids ids.txt
*/
func main() {
	cfg, err := config.Load(config.ConfigPath(os.Args[1:]))
	if err != nil {
		log.Fatal(err)
	}
	nd := &cfg.NodeDist

	flag.StringVar(&nd.Network, "n", nd.Network, "network edge list (n1 n2 d), .osm or .osm.pbf file")
	flag.StringVar(&nd.Points, "p", nd.Points, "points (pointID nodeID offset)")
	flag.BoolVar(&nd.NetworkMode, "N", nd.NetworkMode, "network distances: every node is a point")
	flag.StringVar(&nd.ImprovedEdges, "i", nd.ImprovedEdges, "improved edges (n1 n2)")
	flag.Float64Var(&nd.ImprovedFactor, "w", nd.ImprovedFactor, "improved edge weight factor")
	flag.StringVar(&nd.Output, "o", nd.Output, "output file (default stdout, .zst / .gz compressed)")
	flag.StringVar(&nd.MatrixOut, "matrix", nd.MatrixOut, "write binary distance matrix instead of the distance list")
	flag.StringVar(&nd.IDsOut, "ids", nd.IDsOut, "id list of the matrix (.bin = binary)")
	flag.StringVar(&nd.Metric, "metric", nd.Metric, "matrix distance: weighted | real | total")
	flag.IntVar(&nd.Workers, "workers", nd.Workers, "parallel searches")
	flag.BoolVar(&nd.NoEarlyExit, "no-early-exit", nd.NoEarlyExit, "drain the frontier even after every point is found")
	flag.StringVar(&nd.StoreBackend, "store", nd.StoreBackend, "collect matrix pairs in an on-disk store: badger | pebble | bolt")
	flag.StringVar(&nd.StoreDir, "store-dir", nd.StoreDir, "pair store directory")
	flag.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "no progress bar")
	flag.StringVar(&cfg.MetricsTextfile, "metrics-textfile", cfg.MetricsTextfile, "write prometheus metrics to this file")
	flag.Parse()

	if err := config.Validate(nd); err != nil {
		log.Fatal(err)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewBatchMetrics("nodedist")
	runErr := run(ctx, cfg, m)
	if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
		log.Printf("%v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal(err)
		}
	}
}

func run(ctx context.Context, cfg *config.Config, m *metrics.BatchMetrics) error {
	nd := cfg.NodeDist
	metric, err := routingalgorithm.ParseMetric(nd.Metric)
	if err != nil {
		return err
	}

	g, err := loader.LoadNetwork(ctx, nd.Network)
	if err != nil {
		return err
	}
	if nd.ImprovedEdges != "" {
		if err := loader.LoadImprovedEdges(g, nd.ImprovedEdges, nd.ImprovedFactor); err != nil {
			return err
		}
	}

	points, err := loadPoints(g, nd)
	if err != nil {
		return err
	}

	rt := routingalgorithm.NewRouteAlgorithm(g, points, routingalgorithm.Options{
		EarlyExit: !nd.NoEarlyExit,
		Workers:   nd.Workers,
		Progress:  !cfg.Quiet,
	})
	rt.SetObserver(m)

	switch {
	case nd.MatrixOut != "" && nd.StoreBackend != "":
		return runStoreMatrix(ctx, rt, nd, metric, m)
	case nd.MatrixOut != "":
		return runMemoryMatrix(rt, nd, metric, m)
	default:
		return runList(rt, nd.Output)
	}
}

func loadPoints(g *datastructure.Graph, nd config.NodeDistConfig) (*routingalgorithm.PointIndex, error) {
	if nd.NetworkMode {
		return loader.NetworkPoints(g), nil
	}
	points, err := loader.LoadPoints(g, nd.Points)
	if err != nil {
		return nil, err
	}
	if points.Total() == 0 {
		return nil, errs.NewErrorf(errs.ErrInputFormat, "no points read from %s", nd.Points)
	}
	return points, nil
}

// runList. output 6 kolom: point1 point2 weighted real offset1 offset2.
func runList(rt *routingalgorithm.RouteAlgorithm, output string) error {
	w, err := tablereader.Create(output)
	if err != nil {
		return err
	}

	_, err = rt.Run(routingalgorithm.SinkFunc(func(rec routingalgorithm.Record) error {
		return w.Printf("%d\t%d\t%f\t%f\t%f\t%f\n", rec.FromPoint, rec.ToPoint, rec.Weighted, rec.Real,
			rec.FromOffset, rec.ToOffset)
	}))
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

func runMemoryMatrix(rt *routingalgorithm.RouteAlgorithm, nd config.NodeDistConfig, metric routingalgorithm.Metric,
	m *metrics.BatchMetrics) error {
	pd := matrix.NewPairDistances()
	_, err := rt.Run(routingalgorithm.SinkFunc(func(rec routingalgorithm.Record) error {
		pd.Add(rec.FromPoint, rec.ToPoint, metric.Of(rec))
		return nil
	}))
	if err != nil {
		return err
	}

	m.SetMatrixIDs(pd.Len())
	return matrix.WriteFiles(nd.MatrixOut, nd.IDsOut, pd)
}

func runStoreMatrix(ctx context.Context, rt *routingalgorithm.RouteAlgorithm, nd config.NodeDistConfig,
	metric routingalgorithm.Metric, m *metrics.BatchMetrics) error {
	if err := kv.RequireEmptyDir(nd.StoreDir); err != nil {
		return err
	}
	store, err := kv.Open(nd.StoreBackend, nd.StoreDir)
	if err != nil {
		return err
	}
	defer store.Close()

	sink := kv.NewStoreSink(ctx, store)
	if _, err := rt.Run(sink); err != nil {
		return err
	}
	if err := sink.Flush(); err != nil {
		return err
	}
	log.Printf("%d pairs saved to %s", sink.Written(), nd.StoreDir)

	m.SetMatrixIDs(len(sink.IDs()))
	src := kv.NewPairSource(store, metric)
	return matrix.WriteFilesFrom(nd.MatrixOut, nd.IDsOut, sink.IDs(), src.Lookup)
}
