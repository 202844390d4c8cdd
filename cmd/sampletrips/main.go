package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/lintang-b-s/nodedist/pkg/config"
	"github.com/lintang-b-s/nodedist/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nodedist/pkg/geo"
	"github.com/lintang-b-s/nodedist/pkg/loader"
	"github.com/lintang-b-s/nodedist/pkg/matrix"
	"github.com/lintang-b-s/nodedist/pkg/metrics"
	"github.com/lintang-b-s/nodedist/pkg/tablereader"
	"github.com/lintang-b-s/nodedist/pkg/trips"
)

var (
	_ = flag.String("config", "", "toml config file (flags override it)")
)

/*
sampletrips. sampling trip antar gedung dari demand per jam antar halte.

	sampletrips -i demand.txt -d distances.txt -b stops.csv -n nodes.csv -N 1000 > trips.tsv
	sampletrips -i demand.txt -d dist.bin -I ids.txt -b stops.csv -n nodes.csv -B coords.csv -c trips_coords.csv
*/
func main() {
	cfg, err := config.Load(config.ConfigPath(os.Args[1:]))
	if err != nil {
		log.Fatal(err)
	}
	st := &cfg.SampleTrips

	flag.StringVar(&st.Trips, "i", st.Trips, "demand (hour stop1 stop2 count), default stdin")
	flag.StringVar(&st.Distances, "d", st.Distances, "distance list, or binary matrix together with -I")
	flag.StringVar(&st.DistanceIDs, "I", st.DistanceIDs, "id list of the binary matrix")
	flag.StringVar(&st.BuildingStops, "b", st.BuildingStops, "building -> stop csv")
	flag.StringVar(&st.BuildingNodes, "n", st.BuildingNodes, "building -> node csv")
	flag.StringVar(&st.StopPairs, "p", st.StopPairs, "stop replacement pairs")
	flag.StringVar(&st.Coords, "B", st.Coords, "building coordinates (lat,lon,id)")
	flag.StringVar(&st.CoordsOut, "c", st.CoordsOut, "trip coordinates csv output")
	flag.StringVar(&st.Output, "o", st.Output, "trip output (default stdout)")
	flag.IntVar(&st.Count, "N", st.Count, "number of trips")
	flag.Float64Var(&st.MaxDist, "D", st.MaxDist, "maximum trip distance (0 = unlimited)")
	flag.Float64Var(&st.SpeedKmh, "v", st.SpeedKmh, "travel speed in km/h")
	flag.Uint64Var(&st.Seed, "s", st.Seed, "random seed (0 = time based)")
	flag.StringVar(&cfg.MetricsTextfile, "metrics-textfile", cfg.MetricsTextfile, "write prometheus metrics to this file")
	flag.Parse()

	if err := config.Validate(st); err != nil {
		log.Fatal(err)
	}
	if st.Seed == 0 {
		st.Seed = uint64(time.Now().UnixNano())
	}

	m := metrics.NewBatchMetrics("sampletrips")
	runErr := run(st, m)
	if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
		log.Printf("%v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}

func run(st *config.SampleTripsConfig, m *metrics.BatchMetrics) error {
	var replace map[uint64]uint64
	if st.StopPairs != "" {
		var err error
		if replace, err = trips.LoadStopPairs(st.StopPairs); err != nil {
			return err
		}
	}

	stops, err := trips.LoadStops(st.BuildingNodes, st.BuildingStops, replace)
	if err != nil {
		return err
	}
	demand, err := trips.LoadDemand(st.Trips, stops)
	if err != nil {
		return err
	}

	var coords map[uint64]geo.Coordinate
	if st.Coords != "" {
		if coords, err = trips.LoadCoords(st.Coords); err != nil {
			return err
		}
	}

	dist, err := openDistances(st)
	if err != nil {
		return err
	}
	defer dist.Close()
	m.SetMatrixIDs(dist.Len())

	sampler, err := trips.NewSampler(dist, stops, demand, trips.Options{
		Trips:    st.Count,
		MaxDist:  st.MaxDist,
		SpeedKmh: st.SpeedKmh,
		Seed:     st.Seed,
	})
	if err != nil {
		return err
	}

	out, err := tablereader.Create(st.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	var coordsOut *tablereader.Writer
	if st.CoordsOut != "" {
		if coordsOut, err = tablereader.Create(st.CoordsOut); err != nil {
			return err
		}
		defer coordsOut.Close()
	}

	tw := trips.NewTripWriter(out, coordsOut, coords)
	err = sampler.Run(tw.Write)
	accepted := st.Count
	if err != nil {
		accepted = 0
	}
	m.ObserveTrips(accepted, sampler.Rejected(), sampler.Missing())
	if err != nil {
		return err
	}

	if coordsOut != nil {
		if err := coordsOut.Close(); err != nil {
			return err
		}
	}
	return out.Close()
}

// openDistances. -I di-set = matrix binary di-mmap, selain itu distance list dibaca ke memory.
func openDistances(st *config.SampleTripsConfig) (matrix.Distances, error) {
	if st.DistanceIDs != "" {
		return matrix.OpenMapped(st.Distances, st.DistanceIDs)
	}

	pd, err := loader.LoadPairDistances(st.Distances, routingalgorithm.MetricReal)
	if err != nil {
		return nil, err
	}
	return matrix.NewDenseMatrix(pd)
}
