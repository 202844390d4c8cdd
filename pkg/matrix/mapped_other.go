//go:build !linux

package matrix

import "os"

func openReadOnly(path string) (*os.File, error) {
	return os.Open(path)
}

func adviseRandom(b []byte) error {
	return nil
}
