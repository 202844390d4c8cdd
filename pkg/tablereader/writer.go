package tablereader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/klauspost/compress/gzip"
	"github.com/lintang-b-s/nodedist/pkg/errs"
)

// Writer. pasangan Reader buat output tabel. path "" atau "-" = stdout.
type Writer struct {
	name    string
	w       *bufio.Writer
	closers []io.Closer
}

func Create(path string) (*Writer, error) {
	if path == "" || path == "-" {
		return NewWriter(os.Stdout, "stdout"), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrIO, "creating %s", path)
	}

	var (
		dst     io.Writer = f
		closers           = []io.Closer{}
	)
	switch {
	case strings.HasSuffix(path, ".zst"):
		zw := zstd.NewWriter(f)
		dst = zw
		closers = append(closers, zw)
	case strings.HasSuffix(path, ".gz"):
		gw := gzip.NewWriter(f)
		dst = gw
		closers = append(closers, gw)
	}
	closers = append(closers, f)

	w := NewWriter(dst, path)
	w.closers = closers
	return w, nil
}

func NewWriter(dst io.Writer, name string) *Writer {
	return &Writer{
		name: name,
		w:    bufio.NewWriterSize(dst, 256*1024),
	}
}

func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if err != nil {
		return n, errs.WrapErrorf(err, errs.ErrIO, "writing %s", w.name)
	}
	return n, nil
}

func (w *Writer) Printf(format string, a ...interface{}) error {
	if _, err := fmt.Fprintf(w.w, format, a...); err != nil {
		return errs.WrapErrorf(err, errs.ErrIO, "writing %s", w.name)
	}
	return nil
}

func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return errs.WrapErrorf(err, errs.ErrIO, "flushing %s", w.name)
	}
	return nil
}

// Close. flush buffer, tutup compressor lalu file. stdout tidak di-close.
func (w *Writer) Close() error {
	err := w.Flush()
	for _, c := range w.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = errs.WrapErrorf(cerr, errs.ErrIO, "closing %s", w.name)
		}
	}
	w.closers = nil
	return err
}
