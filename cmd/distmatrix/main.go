package main

import (
	"flag"
	"log"
	"os"

	"github.com/lintang-b-s/nodedist/pkg/config"
	"github.com/lintang-b-s/nodedist/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/nodedist/pkg/loader"
	"github.com/lintang-b-s/nodedist/pkg/matrix"
	"github.com/lintang-b-s/nodedist/pkg/metrics"
)

var (
	_ = flag.String("config", "", "toml config file (flags override it)")
)

/*
distmatrix. distance list (output nodedist) -> matrix binary NxN yang bisa di-mmap.
id list ditulis ke -ids, atau ke stdout kalau -ids kosong.

	distmatrix -i distances.txt -o dist.bin > ids.txt
*/
func main() {
	cfg, err := config.Load(config.ConfigPath(os.Args[1:]))
	if err != nil {
		log.Fatal(err)
	}
	dm := &cfg.DistMatrix

	flag.StringVar(&dm.Input, "i", dm.Input, "distance list (default stdin, .zst / .gz compressed)")
	flag.StringVar(&dm.Output, "o", dm.Output, "matrix output file")
	flag.StringVar(&dm.IDsOut, "ids", dm.IDsOut, "id list output (.bin = binary, default stdout)")
	flag.StringVar(&dm.Metric, "metric", dm.Metric, "column used for 6 column input: weighted | real | total")
	flag.StringVar(&cfg.MetricsTextfile, "metrics-textfile", cfg.MetricsTextfile, "write prometheus metrics to this file")
	flag.Parse()

	if err := config.Validate(dm); err != nil {
		log.Fatal(err)
	}

	m := metrics.NewBatchMetrics("distmatrix")
	if err := run(dm, m); err != nil {
		log.Fatal(err)
	}
	if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
		log.Fatal(err)
	}
}

func run(dm *config.DistMatrixConfig, m *metrics.BatchMetrics) error {
	metric, err := routingalgorithm.ParseMetric(dm.Metric)
	if err != nil {
		return err
	}

	pd, err := loader.LoadPairDistances(dm.Input, metric)
	if err != nil {
		return err
	}
	m.SetMatrixIDs(pd.Len())

	if err := matrix.WriteFiles(dm.Output, dm.IDsOut, pd); err != nil {
		return err
	}
	if dm.IDsOut == "" {
		return matrix.WriteIDs(os.Stdout, pd.IDs())
	}
	return nil
}
