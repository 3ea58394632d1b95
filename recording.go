package spikeglx

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/spikeglx/internal/binary"
)

// Recording is an opened SpikeGLX stream: its parsed metadata and the
// memory-mapped int16 samples.
//
// Always call Close() when done to release the mapping:
//
//	rec, err := spikeglx.OpenRecording("run_g0_t0.imec0.ap.bin")
//	if err != nil {
//		return err
//	}
//	defer rec.Close()
type Recording struct {
	// Path to the binary file
	Path string

	// Path to the sidecar .meta file
	MetaPath string

	// Parsed metadata, including geometry when it could be decoded
	Meta *Metadata

	// Samples shaped (samples, nSavedChans), or transposed with WithTranspose
	Data *View[int16]
}

// MetaPathFor returns the .meta path that belongs to a binary file.
func MetaPathFor(binPath string) string {
	return strings.TrimSuffix(binPath, filepath.Ext(binPath)) + ".meta"
}

// OpenRecording parses the .meta file next to binPath and maps binPath as
// int16 samples with nSavedChans channels.
//
// Options are applied to both steps.
//
// Example:
//
//	rec, err := spikeglx.OpenRecording("run_g0_t0.nidq.bin")
//	if err != nil {
//		return err
//	}
//	defer rec.Close()
//	fmt.Printf("%v of data\n", rec.Duration())
func OpenRecording(binPath string, opts ...Option) (*Recording, error) {
	metaPath := MetaPathFor(binPath)

	md, err := ParseMeta(metaPath, opts...)
	if err != nil {
		return nil, err
	}

	channels, err := md.SavedChannels()
	if err != nil {
		return nil, err
	}

	data, err := MapBinary[int16](binPath, channels, binary.ModeRead, opts...)
	if err != nil {
		return nil, err
	}

	return &Recording{
		Path:     binPath,
		MetaPath: metaPath,
		Meta:     md,
		Data:     data,
	}, nil
}

// Close releases the mapping. After Close is called, the Recording should
// not be used.
func (r *Recording) Close() error {
	if r.Data == nil {
		return nil
	}
	return r.Data.Close()
}

// SyncChannel returns a copy of the last saved channel, which SpikeGLX
// reserves for the packed sync word.
func (r *Recording) SyncChannel() []int16 {
	return r.Data.Channel(-1)
}

// SyncEvents detects edges on the sync channel, in seconds.
func (r *Recording) SyncEvents() Events {
	return DetectEvents(r.SyncChannel(), r.Meta.SampleRateHz)
}

// Samples returns the number of samples per channel.
func (r *Recording) Samples() int {
	return r.Data.Samples()
}

// Duration returns the recorded time span.
func (r *Recording) Duration() time.Duration {
	if r.Meta.SampleRateHz <= 0 {
		return 0
	}
	secs := float64(r.Data.Samples()) / r.Meta.SampleRateHz
	return time.Duration(secs * float64(time.Second))
}

// OpenMany opens multiple recordings concurrently.
//
// Recordings are opened in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths.
//
// If any recording fails to open, all successfully opened recordings are
// closed and an error is returned.
//
// Example:
//
//	run, err := spikeglx.Discover(folder)
//	if err != nil {
//		return err
//	}
//	recs, err := spikeglx.OpenMany(ctx, run.Probes)
//	if err != nil {
//		return err
//	}
//	defer func() {
//		for _, r := range recs {
//			r.Close()
//		}
//	}()
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*Recording, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Recording, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rec, err := OpenRecording(path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, rec := range results {
			if rec != nil {
				rec.Close()
			}
		}
		return nil, err
	}

	return results, nil
}
