package concurrent

import "sync"

// WorkerPool. numWorkers goroutine yang ambil job dari jobQueue dan kirim hasil ke results.
type WorkerPool[T JobI, G any] struct {
	numWorkers int
	jobQueue   chan Job[T]
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T JobI, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job[T], jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(job.JobItem)
	}
}

// Start. jalankan worker. results di-close setelah semua worker selesai (setelah Close dipanggil).
func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}

	go func() {
		wp.wg.Wait()
		close(wp.results)
	}()
}

func (wp *WorkerPool[T, G]) AddJob(id int, jobItem T) {
	wp.jobQueue <- Job[T]{ID: id, JobItem: jobItem}
}

// Close. tidak ada job baru lagi.
func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan G {
	return wp.results
}

func (wp *WorkerPool[T, G]) NumWorkers() int {
	return wp.numWorkers
}
