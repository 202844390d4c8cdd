package routingalgorithm

import (
	"context"
	"log"
	"time"

	"github.com/k0kubun/go-ansi"
	"github.com/lintang-b-s/nodedist/pkg/concurrent"
	"github.com/lintang-b-s/nodedist/pkg/errs"
	"github.com/schollz/progressbar/v3"
)

// BatchStats. ringkasan satu batch run.
type BatchStats struct {
	Searches int
	Records  int
	Settled  int
	Duration time.Duration
}

type sliceSink struct {
	records []Record
}

func (s *sliceSink) Emit(rec Record) error {
	s.records = append(s.records, rec)
	return nil
}

type searchResult struct {
	seq     int
	records []Record
	stats   SearchStats
	err     error
}

/*
Run. satu search per source node (node yang punya point), urut node id ascending.
error pertama menghentikan seluruh batch, karena consumer downstream butuh hasil pairwise yang lengkap.

dengan Workers > 1 search jalan paralel (graph cuma dibaca, setiap search punya frontier & cost map sendiri),
record ditampung per source lalu dikirim ke sink sesuai urutan source, jadi output sama persis dengan Workers = 1.
*/
func (rt *RouteAlgorithm) Run(sink Sink) (BatchStats, error) {
	st := time.Now()
	sources := rt.points.Sources()
	log.Printf("running %d searches, %d points...", len(sources), rt.points.Total())

	bar := rt.newProgressBar(len(sources))

	var (
		batch BatchStats
		err   error
	)
	if rt.opts.Workers == 1 {
		batch, err = rt.runSequential(sources, sink, bar)
	} else {
		batch, err = rt.runParallel(sources, sink, bar)
	}
	if bar != nil {
		bar.Finish()
	}
	batch.Duration = time.Since(st)
	if err != nil {
		return batch, err
	}

	log.Printf("%d start nodes processed, %d records in %v", batch.Searches, batch.Records, batch.Duration)
	return batch, nil
}

func (rt *RouteAlgorithm) runSequential(sources []uint64, sink Sink, bar *progressbar.ProgressBar) (BatchStats, error) {
	batch := BatchStats{}
	for _, source := range sources {
		stats, err := rt.SearchFrom(source, sink)
		batch.Records += stats.Records
		batch.Settled += stats.Settled
		if err != nil {
			return batch, err
		}
		batch.Searches++
		if bar != nil {
			bar.Add(1)
		}
	}
	return batch, nil
}

func (rt *RouteAlgorithm) runParallel(sources []uint64, sink Sink, bar *progressbar.ProgressBar) (BatchStats, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workers := concurrent.NewWorkerPool[concurrent.SourceJob, searchResult](rt.opts.Workers, rt.opts.Workers*2)
	workers.Start(func(job concurrent.SourceJob) searchResult {
		if ctx.Err() != nil {
			return searchResult{seq: job.Seq, err: ctx.Err()}
		}
		buf := &sliceSink{}
		stats, err := rt.SearchFrom(job.Node, buf)
		return searchResult{seq: job.Seq, records: buf.records, stats: stats, err: err}
	})

	go func() {
		defer workers.Close()
		for i, source := range sources {
			select {
			case <-ctx.Done():
				return
			default:
			}
			workers.AddJob(i, concurrent.SourceJob{Seq: i, Node: source})
		}
	}()

	batch := BatchStats{}
	pending := make(map[int]searchResult)
	next := 0
	var firstErr error
	for res := range workers.CollectResults() {
		if firstErr != nil {
			// drain sisa hasil worker
			continue
		}
		pending[res.seq] = res
		for {
			curr, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			batch.Settled += curr.stats.Settled
			if curr.err != nil {
				firstErr = curr.err
				cancel()
				break
			}
			for _, rec := range curr.records {
				if err := sink.Emit(rec); err != nil {
					firstErr = errs.WrapErrorf(err, errs.ErrIO, "emitting record %d -- %d", rec.FromPoint, rec.ToPoint)
					cancel()
					break
				}
				batch.Records++
			}
			if firstErr != nil {
				break
			}
			batch.Searches++
			if bar != nil {
				bar.Add(1)
			}
		}
	}

	return batch, firstErr
}

func (rt *RouteAlgorithm) newProgressBar(n int) *progressbar.ProgressBar {
	if !rt.opts.Progress {
		return nil
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(ansi.NewAnsiStderr()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]searching start nodes...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
