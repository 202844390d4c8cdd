package matrix

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kelindar/binary"
	"github.com/lintang-b-s/nodedist/pkg/errs"
	"github.com/lintang-b-s/nodedist/pkg/tablereader"
)

// BinaryIDsSuffix. id list dengan suffix ini disimpan binary (kelindar), selain itu text satu id per baris.
const BinaryIDsSuffix = ".bin"

func WriteIDs(w io.Writer, ids []uint64) error {
	bw := bufio.NewWriter(w)
	for _, id := range ids {
		if _, err := fmt.Fprintf(bw, "%d\n", id); err != nil {
			return errs.WrapErrorf(err, errs.ErrIO, "writing id list")
		}
	}
	if err := bw.Flush(); err != nil {
		return errs.WrapErrorf(err, errs.ErrIO, "writing id list")
	}
	return nil
}

func WriteIDsBinary(w io.Writer, ids []uint64) error {
	bb, err := binary.Marshal(ids)
	if err != nil {
		return errs.WrapErrorf(err, errs.ErrIO, "encoding id list")
	}
	if _, err := w.Write(bb); err != nil {
		return errs.WrapErrorf(err, errs.ErrIO, "writing id list")
	}
	return nil
}

// WriteIDsFor. format id list dipilih dari suffix path.
func WriteIDsFor(w io.Writer, path string, ids []uint64) error {
	if strings.HasSuffix(path, BinaryIDsSuffix) {
		return WriteIDsBinary(w, ids)
	}
	return WriteIDs(w, ids)
}

func ReadIDs(path string) ([]uint64, error) {
	if strings.HasSuffix(path, BinaryIDsSuffix) {
		return readIDsBinary(path)
	}

	r, err := tablereader.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	ids := make([]uint64, 0)
	for r.Next() {
		id, err := r.Uint64(0)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func readIDsBinary(path string) ([]uint64, error) {
	bb, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrIO, "reading id list %s", path)
	}
	var ids []uint64
	if err := binary.Unmarshal(bb, &ids); err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrFormat, "decoding id list %s", path)
	}
	return ids, nil
}

// indexIDs. id -> index baris/kolom. id duplikat = ErrFormat.
func indexIDs(ids []uint64) (map[uint64]int, error) {
	index := make(map[uint64]int, len(ids))
	for i, id := range ids {
		if _, ok := index[id]; ok {
			return nil, errs.NewErrorf(errs.ErrFormat, "duplicate id %d in id list", id)
		}
		index[id] = i
	}
	return index, nil
}
