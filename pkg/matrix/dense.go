package matrix

import (
	"github.com/lintang-b-s/nodedist/pkg/errs"
)

// Distances. akses jarak antar id dalam O(1).
type Distances interface {
	Get(a, b uint64) (float64, error)
	Len() int
	IDs() []uint64
	Close() error
}

// DenseMatrix. matrix N*N di memori, dibangun langsung dari distance list.
type DenseMatrix struct {
	ids   []uint64
	index map[uint64]int
	data  []float64
}

func NewDenseMatrix(pd *PairDistances) (*DenseMatrix, error) {
	ids := pd.IDs()
	index, err := indexIDs(ids)
	if err != nil {
		return nil, err
	}

	n := len(ids)
	data := make([]float64, n*n)
	for i, a := range ids {
		for j, b := range ids {
			if i == j {
				continue
			}
			d, ok := pd.Distance(a, b)
			if !ok {
				return nil, errs.NewErrorf(errs.ErrInputFormat, "missing distance: %d -- %d", a, b)
			}
			data[i*n+j] = d
		}
	}

	return &DenseMatrix{
		ids:   ids,
		index: index,
		data:  data,
	}, nil
}

func (m *DenseMatrix) Get(a, b uint64) (float64, error) {
	return lookup(m.index, m.data, a, b)
}

func (m *DenseMatrix) Len() int {
	return len(m.ids)
}

func (m *DenseMatrix) IDs() []uint64 {
	return m.ids
}

func (m *DenseMatrix) Close() error {
	return nil
}

func lookup(index map[uint64]int, data []float64, a, b uint64) (float64, error) {
	ia, ok := index[a]
	if !ok {
		return 0, errs.NewErrorf(errs.ErrNotFound, "id %d not in distance matrix", a)
	}
	ib, ok := index[b]
	if !ok {
		return 0, errs.NewErrorf(errs.ErrNotFound, "id %d not in distance matrix", b)
	}
	return data[ia*len(index)+ib], nil
}
