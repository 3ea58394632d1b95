package spikeglx

import (
	"github.com/simonhull/spikeglx/internal/binary"
)

// Mode is an alias to binary.Mode.
type Mode = binary.Mode

// Access modes for MapBinary.
const (
	ModeRead        = binary.ModeRead
	ModeCreateWrite = binary.ModeCreateWrite
	ModeAppendWrite = binary.ModeAppendWrite
)

// Sample is the set of element types a binary file can be mapped as.
type Sample = binary.Sample

// View is a memory-mapped two-dimensional array of samples.
type View[T Sample] = binary.View[T]

// MapBinary maps a raw SpikeGLX binary file as a (samples, channels) array
// of T without reading it into memory.
//
// The number of samples is the file size divided by channels*sizeof(T),
// rounded down, unless WithSampleCount fixes it. ModeCreateWrite creates or
// truncates the file to the requested size and needs WithSampleCount.
// WithTranspose maps the file as (channels, samples) instead.
//
// Example:
//
//	v, err := spikeglx.MapBinary[int16]("run.imec0.ap.bin", 385, spikeglx.ModeRead)
//	if err != nil {
//		return err
//	}
//	defer v.Close()
//	sync := v.Channel(-1)
func MapBinary[T Sample](path string, channels int, mode Mode, opts ...Option) (*View[T], error) {
	options := applyOptions(opts)

	v, err := binary.Map[T](path, binary.Config{
		Channels:  channels,
		Mode:      mode,
		Samples:   options.sampleCount,
		Transpose: options.transpose,
	})
	if err != nil {
		return nil, err
	}

	rows, cols := v.Shape()
	options.logger.Debug("binary file mapped",
		"path", path,
		"mode", mode.String(),
		"rows", rows,
		"cols", cols,
	)
	return v, nil
}
