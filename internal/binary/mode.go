// Package binary provides zero-copy, memory-mapped access to interleaved
// fixed-width sample files.
//
// A file holding S samples of C channels is laid out sample-major:
// sample 0 of every channel, then sample 1 of every channel, and so on.
// Samples are read in host byte order, which is little-endian on every
// platform SpikeGLX writes from.
package binary

import (
	"fmt"
	"unsafe"
)

// Mode selects how a binary file is opened.
type Mode int

const (
	// ModeRead maps an existing file read-only.
	ModeRead Mode = iota
	// ModeCreateWrite creates (or truncates) the file at the requested size
	// and maps it read-write. The parent directory is created if missing.
	ModeCreateWrite
	// ModeAppendWrite maps an existing file read-write so samples can be
	// overwritten in place.
	ModeAppendWrite
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeCreateWrite:
		return "create-write"
	case ModeAppendWrite:
		return "append-write"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Writable reports whether views opened in this mode accept writes.
func (m Mode) Writable() bool {
	return m == ModeCreateWrite || m == ModeAppendWrite
}

// Sample is the set of fixed-width element types a binary file can hold.
type Sample interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// SizeOf returns the size in bytes of one element of type T.
//
// Example:
//
//	binary.SizeOf[int16]() // 2
func SizeOf[T Sample]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// castSlice reinterprets b as a slice of T without copying.
// len(b) must be a multiple of SizeOf[T]() and b suitably aligned;
// mmap regions are page aligned.
func castSlice[T Sample](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	n := len(b) / SizeOf[T]()
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}
