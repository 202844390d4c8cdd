package matrix

// Pair. key (origin, destination) di distance map.
type Pair struct {
	Origin uint64
	Dest   uint64
}

// PairDistances. full pairwise distance map + id yang ditemukan, urut first-seen.
type PairDistances struct {
	dist map[Pair]float64
	ids  []uint64
	seen map[uint64]struct{}
}

func NewPairDistances() *PairDistances {
	return &PairDistances{
		dist: make(map[Pair]float64),
		ids:  make([]uint64, 0),
		seen: make(map[uint64]struct{}),
	}
}

// Add. simpan (a,b) dan (b,a). kalau pasangan sudah ada, nilai pertama yang dipakai.
func (pd *PairDistances) Add(a, b uint64, d float64) {
	pd.see(a)
	pd.see(b)
	if _, ok := pd.dist[Pair{a, b}]; !ok {
		pd.dist[Pair{a, b}] = d
	}
	if _, ok := pd.dist[Pair{b, a}]; !ok {
		pd.dist[Pair{b, a}] = d
	}
}

func (pd *PairDistances) see(id uint64) {
	if _, ok := pd.seen[id]; ok {
		return
	}
	pd.seen[id] = struct{}{}
	pd.ids = append(pd.ids, id)
}

func (pd *PairDistances) Distance(a, b uint64) (float64, bool) {
	d, ok := pd.dist[Pair{a, b}]
	return d, ok
}

// IDs. urutan baris/kolom matrix.
func (pd *PairDistances) IDs() []uint64 {
	return pd.ids
}

func (pd *PairDistances) Len() int {
	return len(pd.ids)
}

func (pd *PairDistances) NumPairs() int {
	return len(pd.dist)
}

// Lookup. pd sebagai LookupFunc buat WriteMatrixFrom.
func (pd *PairDistances) Lookup(a, b uint64) (float64, bool, error) {
	d, ok := pd.Distance(a, b)
	return d, ok, nil
}
