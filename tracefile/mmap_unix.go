//go:build unix

package tracefile

import (
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// mapFile maps size bytes of path read-only. The returned slice is only valid
// until release is called.
func mapFile(path string, size int) ([]byte, func() error, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := unix.Mmap(int(file.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, errors.Wrap(err, "mmap failed")
	}

	release := func() error {
		return unix.Munmap(data)
	}
	return data, release, nil
}
