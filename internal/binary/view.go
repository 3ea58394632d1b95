package binary

import (
	"errors"
	"fmt"
	"os"
)

// View is a live, zero-copy two-dimensional view over a mapped binary file.
//
// A plain view is shaped (samples, channels); a transposed view is shaped
// (channels, samples). Indices passed to At and Set follow the view's shape.
// Writes through a writable view land in the file.
//
// A View is not safe for concurrent writers. Concurrent readers are fine.
type View[T Sample] struct {
	path       string
	file       *os.File
	raw        []byte
	data       []T
	samples    int
	channels   int
	transposed bool
	writable   bool
}

// Path returns the mapped file path.
func (v *View[T]) Path() string {
	return v.path
}

// Samples returns the number of samples per channel.
func (v *View[T]) Samples() int {
	return v.samples
}

// Channels returns the number of interleaved channels.
func (v *View[T]) Channels() int {
	return v.channels
}

// Transposed reports whether the view is shaped (channels, samples).
func (v *View[T]) Transposed() bool {
	return v.transposed
}

// Writable reports whether Set is allowed.
func (v *View[T]) Writable() bool {
	return v.writable
}

// Shape returns the logical dimensions of the view.
func (v *View[T]) Shape() (rows, cols int) {
	if v.transposed {
		return v.channels, v.samples
	}
	return v.samples, v.channels
}

// At returns the element at row i, column j of the view's shape.
func (v *View[T]) At(i, j int) T {
	return v.data[v.offset(i, j)]
}

// Set stores x at row i, column j of the view's shape.
// It panics if the view was opened read-only.
func (v *View[T]) Set(i, j int, x T) {
	if !v.writable {
		panic(fmt.Sprintf("binary: Set on read-only view of %s", v.path))
	}
	v.data[v.offset(i, j)] = x
}

// Frame returns every channel at sample s. The slice aliases the mapping,
// so it is only valid until Close.
func (v *View[T]) Frame(s int) []T {
	if s < 0 || s >= v.samples {
		panic(fmt.Sprintf("binary: sample %d out of range [0, %d)", s, v.samples))
	}
	return v.data[s*v.channels : (s+1)*v.channels : (s+1)*v.channels]
}

// Channel copies every sample of channel c into a new slice.
// Negative c counts from the last channel, so Channel(-1) is the sync channel
// of a SpikeGLX probe file.
func (v *View[T]) Channel(c int) []T {
	if c < 0 {
		c += v.channels
	}
	if c < 0 || c >= v.channels {
		panic(fmt.Sprintf("binary: channel %d out of range [0, %d)", c, v.channels))
	}
	out := make([]T, v.samples)
	for s := range out {
		out[s] = v.data[s*v.channels+c]
	}
	return out
}

// Data returns the interleaved samples in file order, aliasing the mapping.
func (v *View[T]) Data() []T {
	return v.data
}

// Flush asks the operating system to write dirty pages back to the file.
func (v *View[T]) Flush() error {
	if !v.writable {
		return nil
	}
	return msync(v.raw)
}

// Close unmaps the file and closes it. Slices obtained from the view must
// not be used afterwards. Close is idempotent.
func (v *View[T]) Close() error {
	if v.file == nil {
		return nil
	}
	unmapErr := munmap(v.raw)
	closeErr := v.file.Close()
	v.raw, v.data, v.file = nil, nil, nil
	return errors.Join(unmapErr, closeErr)
}

func (v *View[T]) offset(i, j int) int {
	s, c := i, j
	if v.transposed {
		s, c = j, i
	}
	if s < 0 || s >= v.samples || c < 0 || c >= v.channels {
		rows, cols := v.Shape()
		panic(fmt.Sprintf("binary: index [%d, %d] out of range for shape [%d, %d]", i, j, rows, cols))
	}
	return s*v.channels + c
}
