package trips

import (
	"log"
	"math"

	"github.com/lintang-b-s/nodedist/pkg/errs"
	"github.com/lintang-b-s/nodedist/pkg/matrix"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	secondsPerHour = 3600
	// maxAttemptsPerTrip. batas sampling ulang (jarak > MaxDist / node tidak ada di matrix) per trip.
	maxAttemptsPerTrip = 1000
)

type Options struct {
	Trips int
	// MaxDist. trip dengan total jarak > MaxDist di-reject. 0 = tanpa batas.
	MaxDist float64
	// SpeedKmh. kecepatan kendaraan buat hitung waktu tiba.
	SpeedKmh float64
	Seed     uint64
}

func DefaultOptions() Options {
	return Options{
		Trips:    1000,
		SpeedKmh: 5.0,
	}
}

// Trip. satu trip hasil sampling. Start/End dalam detik sejak tengah malam.
type Trip struct {
	Seq          int
	Start        uint32
	End          uint32
	FromNode     uint64
	FromDist     float64
	ToNode       uint64
	ToDist       float64
	NetworkDist  float64
	FromBuilding uint64
	ToBuilding   uint64
}

func (t Trip) Dist() float64 {
	return t.FromDist + t.ToDist + t.NetworkDist
}

type Sampler struct {
	dist      matrix.Distances
	stops     *Stops
	demand    *Demand
	pairHours distuv.Categorical
	speed     float64 // m/s
	opts      Options
	rng       *rand.Rand

	rejected int
	missing  int
}

func NewSampler(dist matrix.Distances, stops *Stops, demand *Demand, opts Options) (*Sampler, error) {
	if opts.SpeedKmh <= 0 {
		return nil, errs.NewErrorf(errs.ErrInvalidArgument, "speed must be positive (got %f)", opts.SpeedKmh)
	}

	total := 0.0
	for _, w := range demand.weights {
		total += w
	}
	if total <= 0 {
		return nil, errs.NewErrorf(errs.ErrInvalidArgument, "no trips between stops with buildings")
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	return &Sampler{
		dist:      dist,
		stops:     stops,
		demand:    demand,
		pairHours: distuv.NewCategorical(demand.weights, rng),
		speed:     opts.SpeedKmh / 3.6,
		opts:      opts,
		rng:       rng,
	}, nil
}

// pick. index (pair*24 + jam) dengan peluang sebanding weight.
func (s *Sampler) pick() int {
	return int(s.pairHours.Rand())
}

/*
draw. satu kandidat trip: pasangan halte & jam dari distribusi demand, detik uniform dalam jam tsb,
gedung uniform di setiap sisi. ok false kalau trip di-reject (terlalu jauh / node tidak ada di matrix).
*/
func (s *Sampler) draw(seq int) (Trip, bool, error) {
	x := s.pick()
	h := x % hours
	pair := s.demand.pairs[x/hours]
	ts := uint32(h*secondsPerHour + s.rng.Intn(secondsPerHour))

	b1 := s.stops.Buildings(pair.from)
	b2 := s.stops.Buildings(pair.to)
	from := b1[s.rng.Intn(len(b1))]
	to := b2[s.rng.Intn(len(b2))]

	d3, err := s.dist.Get(from.Node, to.Node)
	if errs.Is(err, errs.ErrNotFound) {
		s.missing++
		return Trip{}, false, nil
	}
	if err != nil {
		return Trip{}, false, err
	}

	trip := Trip{
		Seq:          seq,
		Start:        ts,
		FromNode:     from.Node,
		FromDist:     from.Dist,
		ToNode:       to.Node,
		ToDist:       to.Dist,
		NetworkDist:  d3,
		FromBuilding: from.ID,
		ToBuilding:   to.ID,
	}
	dist := trip.Dist()
	if s.opts.MaxDist > 0 && dist > s.opts.MaxDist {
		s.rejected++
		return Trip{}, false, nil
	}
	trip.End = ts + uint32(math.Round(dist/s.speed))
	return trip, true, nil
}

// Sample. trip ke-seq, sampling ulang sampai diterima.
func (s *Sampler) Sample(seq int) (Trip, error) {
	for attempt := 0; attempt < maxAttemptsPerTrip; attempt++ {
		trip, ok, err := s.draw(seq)
		if err != nil {
			return Trip{}, err
		}
		if ok {
			return trip, nil
		}
	}
	return Trip{}, errs.NewErrorf(errs.ErrInvalidArgument,
		"no acceptable trip after %d attempts (max distance %f, %d rejected, %d without distance)",
		maxAttemptsPerTrip, s.opts.MaxDist, s.rejected, s.missing)
}

// Run. sampling opts.Trips trip, setiap trip dikirim ke emit sesuai urutan.
func (s *Sampler) Run(emit func(Trip) error) error {
	for i := 0; i < s.opts.Trips; i++ {
		trip, err := s.Sample(i)
		if err != nil {
			return err
		}
		if err := emit(trip); err != nil {
			return err
		}
	}
	log.Printf("%d trips sampled, %d rejected (too long), %d skipped (node without distance)",
		s.opts.Trips, s.rejected, s.missing)
	return nil
}

func (s *Sampler) Rejected() int {
	return s.rejected
}

// Missing. jumlah sampling yang di-skip karena node tidak ada di matrix.
func (s *Sampler) Missing() int {
	return s.missing
}
