package matrix

import (
	"log"
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"
	"github.com/lintang-b-s/nodedist/pkg/errs"
)

// MappedMatrix. file matrix yang di-mmap read-only. valid sampai Close.
type MappedMatrix struct {
	f      *os.File
	data   mmap.MMap
	values []float64
	ids    []uint64
	index  map[uint64]int
	closed bool
}

/*
OpenMapped. buka id list lalu mmap file matrix.

validasi: magic, N di header == panjang id list, ukuran file == 16 + 8*N*N. semua mismatch = ErrFormat.
kalau gagal di tengah jalan mapping & file handle sudah di-release sebelum return.
*/
func OpenMapped(matrixPath, idsPath string) (_ *MappedMatrix, err error) {
	ids, err := ReadIDs(idsPath)
	if err != nil {
		return nil, err
	}
	index, err := indexIDs(ids)
	if err != nil {
		return nil, err
	}

	f, err := openReadOnly(matrixPath)
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrIO, "opening matrix %s", matrixPath)
	}
	m := &MappedMatrix{f: f, ids: ids, index: index}
	defer func() {
		if err != nil {
			m.Close()
		}
	}()

	fi, err := f.Stat()
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrIO, "stat matrix %s", matrixPath)
	}
	size := fi.Size()
	if size < HeaderSize {
		return nil, errs.NewErrorf(errs.ErrFormat, "matrix %s too short (%d bytes)", matrixPath, size)
	}

	m.data, err = mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrIO, "mapping matrix %s", matrixPath)
	}

	if magic := byteOrder.Uint64(m.data[0:8]); magic != Magic {
		return nil, errs.NewErrorf(errs.ErrFormat, "matrix %s: bad magic %#x", matrixPath, magic)
	}
	n := byteOrder.Uint64(m.data[8:16])
	if n != uint64(len(ids)) {
		return nil, errs.NewErrorf(errs.ErrFormat, "matrix %s has %d ids, id list %s has %d",
			matrixPath, n, idsPath, len(ids))
	}
	if size != FileSize(n) {
		return nil, errs.NewErrorf(errs.ErrFormat, "matrix %s: size %d, expected %d for N = %d",
			matrixPath, size, FileSize(n), n)
	}

	if n > 0 {
		// mapping page-aligned, offset 16 jadi aman buat float64
		m.values = unsafe.Slice((*float64)(unsafe.Pointer(&m.data[HeaderSize])), n*n)
	}
	if err := adviseRandom(m.data); err != nil {
		log.Printf("madvise %s: %v", matrixPath, err)
	}

	return m, nil
}

// Get. setelah Close selalu ErrIO.
func (m *MappedMatrix) Get(a, b uint64) (float64, error) {
	if m.closed {
		return 0, errs.NewErrorf(errs.ErrIO, "distance matrix already closed")
	}
	return lookup(m.index, m.values, a, b)
}

func (m *MappedMatrix) Len() int {
	return len(m.ids)
}

func (m *MappedMatrix) IDs() []uint64 {
	return m.ids
}

// Close. unmap lalu tutup file. aman dipanggil lebih dari sekali.
func (m *MappedMatrix) Close() error {
	m.closed = true
	m.values = nil
	var firstErr error
	if m.data != nil {
		if err := m.data.Unmap(); err != nil {
			firstErr = errs.WrapErrorf(err, errs.ErrIO, "unmapping matrix")
		}
		m.data = nil
	}
	if m.f != nil {
		if err := m.f.Close(); err != nil && firstErr == nil {
			firstErr = errs.WrapErrorf(err, errs.ErrIO, "closing matrix")
		}
		m.f = nil
	}
	return firstErr
}
