package tablereader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/DataDog/zstd"
	"github.com/klauspost/compress/gzip"
	"github.com/lintang-b-s/nodedist/pkg/errs"
)

const maxLineSize = 1 << 20

type Option func(*Reader)

// WithDelimiter. field dipisah satu rune (mis. ',') bukan whitespace.
func WithDelimiter(delim rune) Option {
	return func(r *Reader) {
		r.delim = delim
	}
}

// WithHeader. baris pertama (header) di-skip.
func WithHeader() Option {
	return func(r *Reader) {
		r.skipHeader = true
	}
}

/*
Reader. baca file tabel baris per baris.

	for r.Next() {
		a, err := r.Uint64(0)
		...
	}
	if err := r.Err(); err != nil { ... }

baris kosong & baris yang diawali '#' di-skip. Next false di akhir file (Err nil) ataupun
saat read error (Err != nil).
*/
type Reader struct {
	name       string
	sc         *bufio.Scanner
	closers    []io.Closer
	delim      rune
	skipHeader bool

	fields []string
	line   int
	err    error
}

// Open. path "" atau "-" = stdin. suffix .zst / .gz di-decompress otomatis.
func Open(path string, opts ...Option) (*Reader, error) {
	if path == "" || path == "-" {
		return NewReader(os.Stdin, "stdin", opts...), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrIO, "opening %s", path)
	}

	var (
		src     io.Reader = f
		closers           = []io.Closer{}
	)
	switch {
	case strings.HasSuffix(path, ".zst"):
		zr := zstd.NewReader(f)
		src = zr
		closers = append(closers, zr)
	case strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errs.WrapErrorf(err, errs.ErrIO, "opening gzip stream %s", path)
		}
		src = gr
		closers = append(closers, gr)
	}
	closers = append(closers, f)

	r := NewReader(src, path, opts...)
	r.closers = closers
	return r, nil
}

func NewReader(src io.Reader, name string, opts ...Option) *Reader {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	r := &Reader{
		name: name,
		sc:   sc,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	for r.sc.Scan() {
		r.line++
		if r.skipHeader && r.line == 1 {
			continue
		}
		text := strings.TrimSpace(r.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		r.fields = r.split(text)
		return true
	}
	if err := r.sc.Err(); err != nil {
		r.err = errs.WrapErrorf(err, errs.ErrIO, "reading %s (line %d)", r.name, r.line+1)
	}
	r.fields = nil
	return false
}

func (r *Reader) split(text string) []string {
	if r.delim == 0 {
		return strings.FieldsFunc(text, unicode.IsSpace)
	}
	fields := strings.Split(text, string(r.delim))
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// Err. nil kalau Next berhenti karena EOF.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Line() int {
	return r.line
}

func (r *Reader) Name() string {
	return r.name
}

func (r *Reader) NumFields() int {
	return len(r.fields)
}

// Fail. error InputFormat dengan posisi baris sekarang. Next berikutnya return false.
func (r *Reader) Fail(format string, a ...interface{}) error {
	r.err = errs.NewErrorf(errs.ErrInputFormat, "%s:%d: %s", r.name, r.line, fmt.Sprintf(format, a...))
	return r.err
}

func (r *Reader) field(i int) (string, error) {
	if i < 0 || i >= len(r.fields) {
		return "", r.Fail("missing column %d (got %d columns)", i+1, len(r.fields))
	}
	return r.fields[i], nil
}

func (r *Reader) String(i int) (string, error) {
	return r.field(i)
}

func (r *Reader) Uint64(i int) (uint64, error) {
	s, err := r.field(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, r.Fail("column %d: invalid unsigned integer %q", i+1, s)
	}
	return v, nil
}

func (r *Reader) Int64(i int) (int64, error) {
	s, err := r.field(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, r.Fail("column %d: invalid integer %q", i+1, s)
	}
	return v, nil
}

func (r *Reader) Float64(i int) (float64, error) {
	s, err := r.field(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, r.Fail("column %d: invalid number %q", i+1, s)
	}
	return v, nil
}

// UintBounded. unsigned integer dalam [lo, hi].
func (r *Reader) UintBounded(i int, lo, hi uint64) (uint64, error) {
	v, err := r.Uint64(i)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, r.Fail("column %d: value %d out of range [%d, %d]", i+1, v, lo, hi)
	}
	return v, nil
}

func (r *Reader) Close() error {
	var firstErr error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.closers = nil
	return firstErr
}
