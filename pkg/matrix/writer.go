package matrix

import (
	"bufio"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/lintang-b-s/nodedist/pkg/errs"
)

// LookupFunc. jarak a -> b. ok false kalau pasangan tidak ada.
type LookupFunc func(a, b uint64) (d float64, ok bool, err error)

// WriteMatrix. tulis pd dengan urutan id first-seen.
func WriteMatrix(w io.Writer, pd *PairDistances) error {
	return WriteMatrixFrom(w, pd.IDs(), pd.Lookup)
}

/*
WriteMatrixFrom. tulis header lalu N*N jarak row-major. diagonal selalu 0.
pasangan yang tidak ada = ErrInputFormat (input distance list tidak lengkap), write gagal = ErrIO.
file yang gagal ditulis jangan dipakai, lihat WriteFiles buat versi atomic.
*/
func WriteMatrixFrom(w io.Writer, ids []uint64, lookup LookupFunc) error {
	n := uint64(len(ids))
	bw := bufio.NewWriterSize(w, 1<<20)

	header := make([]byte, HeaderSize)
	putHeader(header, n)
	if _, err := bw.Write(header); err != nil {
		return errs.WrapErrorf(err, errs.ErrIO, "writing matrix header")
	}

	row := make([]byte, valueSize*len(ids))
	for i, a := range ids {
		for j, b := range ids {
			d := 0.0
			if i != j {
				v, ok, err := lookup(a, b)
				if err != nil {
					return err
				}
				if !ok {
					return errs.NewErrorf(errs.ErrInputFormat, "missing distance: %d -- %d", a, b)
				}
				d = v
			}
			putValue(row[j*valueSize:], d)
		}
		if _, err := bw.Write(row); err != nil {
			return errs.WrapErrorf(err, errs.ErrIO, "writing matrix row %d", i)
		}
	}

	if err := bw.Flush(); err != nil {
		return errs.WrapErrorf(err, errs.ErrIO, "writing matrix")
	}
	return nil
}

// WriteFiles. tulis matrix + id list. idsPath kosong = id list tidak ditulis.
func WriteFiles(matrixPath, idsPath string, pd *PairDistances) error {
	return WriteFilesFrom(matrixPath, idsPath, pd.IDs(), pd.Lookup)
}

func WriteFilesFrom(matrixPath, idsPath string, ids []uint64, lookup LookupFunc) error {
	log.Printf("writing %d x %d distance matrix to %s", len(ids), len(ids), matrixPath)
	err := writeAtomic(matrixPath, func(w io.Writer) error {
		return WriteMatrixFrom(w, ids, lookup)
	})
	if err != nil {
		return err
	}
	if idsPath == "" {
		return nil
	}
	err = writeAtomic(idsPath, func(w io.Writer) error {
		return WriteIDsFor(w, idsPath, ids)
	})
	if err != nil {
		// matrix tanpa id list tidak bisa dibuka, jangan ditinggal
		os.Remove(matrixPath)
		return err
	}
	return nil
}

// writeAtomic. tulis ke pending file di direktori yang sama lalu rename, jadi path tidak pernah berisi file setengah jadi.
func writeAtomic(path string, write func(w io.Writer) error) error {
	pf, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(0o644))
	if err != nil {
		return errs.WrapErrorf(err, errs.ErrIO, "creating temp file for %s", path)
	}
	defer pf.Cleanup()

	if err := write(pf); err != nil {
		return err
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return errs.WrapErrorf(err, errs.ErrIO, "replacing %s", path)
	}
	return nil
}
