//go:build !unix

package binary

import (
	"os"

	"github.com/simonhull/spikeglx/internal/types"
)

func mmapFile(_ *os.File, length int64, _ bool) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	return nil, &MapError{Op: "mmap", Err: types.ErrUnsupportedPlatform}
}

func munmap([]byte) error { return nil }

func msync([]byte) error { return nil }
