//go:build linux

package matrix

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// openReadOnly. O_NOATIME cuma boleh buat owner file, fallback ke open biasa.
func openReadOnly(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|unix.O_NOATIME, 0)
	if errors.Is(err, unix.EPERM) {
		return os.Open(path)
	}
	return f, err
}

// adviseRandom. akses Get random, readahead kernel tidak berguna.
func adviseRandom(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return unix.Madvise(b, unix.MADV_RANDOM)
}
