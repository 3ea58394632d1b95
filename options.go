package spikeglx

import (
	"log/slog"

	"github.com/simonhull/spikeglx/internal/geometry"
)

// Option configures parsing and file mapping.
//
// Options use the functional options pattern:
//
//	rec, err := spikeglx.OpenRecording("run.imec0.ap.bin",
//	    spikeglx.WithShankSeparation(300),
//	    spikeglx.WithLogger(slog.Default()),
//	)
type Option func(*options)

// options holds configuration shared by ParseMeta, MapBinary and OpenRecording.
type options struct {
	shankSeparation float64      // Distance between shanks in µm
	strictGeometry  bool         // Fail parsing when geometry cannot be decoded
	logger          *slog.Logger // Debug output; discarded by default
	sampleCount     int          // 0 = derive from file size
	transpose       bool         // Map as (channels, samples)
}

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		shankSeparation: geometry.DefaultShankSeparation,
		logger:          slog.New(slog.DiscardHandler),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithShankSeparation sets the horizontal distance between probe shanks in
// micrometres. The default is 250.
func WithShankSeparation(microns float64) Option {
	return func(o *options) {
		o.shankSeparation = microns
	}
}

// WithStrictGeometry makes ParseMeta fail when probe geometry cannot be
// reconstructed, instead of recording the failure in Metadata.GeometryErr.
//
// Example:
//
//	md, err := spikeglx.ParseMeta("run.imec0.ap.meta", spikeglx.WithStrictGeometry())
//	// errors.Is(err, spikeglx.ErrUnsupportedProbeType) for an unknown probe
func WithStrictGeometry() Option {
	return func(o *options) {
		o.strictGeometry = true
	}
}

// WithLogger sets the logger used for debug output. Nothing is logged by
// default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSampleCount fixes the number of samples per channel instead of
// deriving it from the file size. It is required by ModeCreateWrite.
func WithSampleCount(n int) Option {
	return func(o *options) {
		o.sampleCount = n
	}
}

// WithTranspose maps the binary file as (channels, samples) instead of
// (samples, channels).
func WithTranspose() Option {
	return func(o *options) {
		o.transpose = true
	}
}
