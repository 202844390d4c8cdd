package concurrent

// SourceJob. satu search dari satu source node. Seq = posisi source di urutan batch.
type SourceJob struct {
	Seq  int
	Node uint64
}

type JobI interface {
	SourceJob
}

type Job[T JobI] struct {
	ID      int
	JobItem T
}
type JobFunc[T JobI, G any] func(job T) G
