//go:build unix

package binary

import (
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile maps the first length bytes of f with MAP_SHARED so writes reach
// the file through the page cache.
func mmapFile(f *os.File, length int64, writable bool) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(length), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, &MapError{Op: "mmap", Err: err}
	}
	return data, nil
}

func munmap(data []byte) error {
	if data == nil {
		return nil
	}
	if err := unix.Munmap(data); err != nil {
		return &MapError{Op: "munmap", Err: err}
	}
	return nil
}

func msync(data []byte) error {
	if data == nil {
		return nil
	}
	if err := unix.Msync(data, unix.MS_SYNC); err != nil {
		return &MapError{Op: "msync", Err: err}
	}
	return nil
}
