package binary

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/simonhull/spikeglx/internal/types"
)

// MapError is returned when the operating system refuses a mapping call.
type MapError struct {
	Op  string
	Err error
}

func (e *MapError) Error() string {
	if e.Err != nil {
		return "mmap: " + e.Op + ": " + e.Err.Error()
	}
	return "mmap: " + e.Op
}

func (e *MapError) Unwrap() error {
	return e.Err
}

// Config describes the layout of a binary file.
type Config struct {
	// Channels is the number of interleaved channels. Must be positive.
	Channels int

	// Mode selects read-only, create or in-place write access.
	Mode Mode

	// Samples is the number of samples per channel. Zero or negative means
	// derive it from the file size, which is only possible for an existing
	// file (ModeRead or ModeAppendWrite).
	Samples int

	// Transpose returns a (channels, samples) view instead of
	// (samples, channels). Both share the same mapping.
	Transpose bool
}

// Map memory-maps the file at path as a two-dimensional array of T.
//
// The returned View must be closed by the caller:
//
//	v, err := binary.Map[int16]("run_g0_t0.imec0.ap.bin", binary.Config{Channels: 385})
//	if err != nil {
//		return err
//	}
//	defer v.Close()
//
// Errors match types.ErrFileNotFound when the file is missing in ModeRead or
// ModeAppendWrite, and types.ErrConfig when the size parameters cannot
// describe the file.
func Map[T Sample](path string, cfg Config) (*View[T], error) {
	if cfg.Channels <= 0 {
		return nil, &types.ConfigError{Path: path, Reason: fmt.Sprintf("channel count must be positive, got %d", cfg.Channels)}
	}

	f, samples, err := openFile(path, cfg, int64(SizeOf[T]()))
	if err != nil {
		return nil, err
	}

	length := int64(samples) * int64(cfg.Channels) * int64(SizeOf[T]())
	raw, err := mmapFile(f, length, cfg.Mode.Writable())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &View[T]{
		path:       path,
		file:       f,
		raw:        raw,
		data:       castSlice[T](raw),
		samples:    samples,
		channels:   cfg.Channels,
		transposed: cfg.Transpose,
		writable:   cfg.Mode.Writable(),
	}, nil
}

// openFile opens path according to cfg.Mode and settles the sample count.
func openFile(path string, cfg Config, elemSize int64) (*os.File, int, error) {
	frame := int64(cfg.Channels) * elemSize

	switch cfg.Mode {
	case ModeCreateWrite:
		if cfg.Samples <= 0 {
			return nil, 0, &types.ConfigError{Path: path, Reason: "sample count is required to create a file"}
		}
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, 0, fmt.Errorf("create parent directory: %w", err)
			}
		}
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, 0, fmt.Errorf("create file: %w", err)
		}
		if err := f.Truncate(int64(cfg.Samples) * frame); err != nil {
			f.Close()
			return nil, 0, fmt.Errorf("size file: %w", err)
		}
		return f, cfg.Samples, nil

	case ModeRead, ModeAppendWrite:
		flag := os.O_RDONLY
		if cfg.Mode == ModeAppendWrite {
			flag = os.O_RDWR
		}
		f, err := os.OpenFile(path, flag, 0)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, 0, &types.FileNotFoundError{Path: path, What: "binary file"}
			}
			return nil, 0, fmt.Errorf("open file: %w", err)
		}
		stat, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, 0, fmt.Errorf("stat file: %w", err)
		}
		size := stat.Size()

		if cfg.Samples <= 0 {
			return f, int(size / frame), nil
		}
		if need := int64(cfg.Samples) * frame; need > size {
			f.Close()
			return nil, 0, &types.ConfigError{
				Path:   path,
				Reason: fmt.Sprintf("%d samples of %d channels need %d bytes, file has %d", cfg.Samples, cfg.Channels, need, size),
			}
		}
		return f, cfg.Samples, nil

	default:
		return nil, 0, &types.ConfigError{Path: path, Reason: fmt.Sprintf("unknown mode %s", cfg.Mode)}
	}
}
