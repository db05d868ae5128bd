//go:build !unix

package tracefile

import "os"

// mapFile reads path into memory on platforms without mmap support
func mapFile(path string, size int) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data[:min(size, len(data))], func() error { return nil }, nil
}
