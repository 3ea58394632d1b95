package spikeglx

import (
	"fmt"
	"io"

	"github.com/simonhull/spikeglx/internal/geometry"
	"github.com/simonhull/spikeglx/internal/meta"
	"github.com/simonhull/spikeglx/internal/types"
)

// Metadata is an alias to types.Metadata.
type Metadata = types.Metadata

// Value is an alias to types.Value.
type Value = types.Value

// Kind is an alias to types.Kind.
type Kind = types.Kind

// Value kinds.
const (
	KindInvalid = types.KindInvalid
	KindNumber  = types.KindNumber
	KindText    = types.KindText
	KindList    = types.KindList
)

// StreamType is an alias to types.StreamType.
type StreamType = types.StreamType

// Stream types named by the typeThis key.
const (
	StreamUnknown = types.StreamUnknown
	StreamIMEC    = types.StreamIMEC
	StreamNIDQ    = types.StreamNIDQ
	StreamOneBox  = types.StreamOneBox
)

// Point is an alias to types.Point.
type Point = types.Point

// ParseMeta reads and decodes a SpikeGLX .meta file.
//
// Every key=value line becomes an entry; keys starting with '~' hold lists.
// The sample rate of the stream named by typeThis is stored in
// Metadata.SampleRateHz. Probe geometry is decoded when possible; see
// WithStrictGeometry for the failure policy.
//
// Example:
//
//	md, err := spikeglx.ParseMeta("run_g0_t0.imec0.ap.meta")
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%s stream at %.0f Hz\n", md.Stream, md.SampleRateHz)
//	if md.HasGeometry() {
//		fmt.Printf("%d connected channels\n", len(md.Coords))
//	}
func ParseMeta(path string, opts ...Option) (*Metadata, error) {
	options := applyOptions(opts)

	md, err := meta.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if err := attachGeometry(md, options); err != nil {
		return nil, err
	}
	return md, nil
}

// ParseMetaReader decodes metadata from r. path is only used in errors.
func ParseMetaReader(r io.Reader, path string, opts ...Option) (*Metadata, error) {
	options := applyOptions(opts)

	md, err := meta.Parse(r, path)
	if err != nil {
		return nil, err
	}
	if err := attachGeometry(md, options); err != nil {
		return nil, err
	}
	return md, nil
}

// attachGeometry decodes probe geometry into md. A failure is recorded on md
// unless strict geometry was requested.
func attachGeometry(md *Metadata, options *options) error {
	g, err := geometry.Decode(md, options.shankSeparation)
	if err != nil {
		if options.strictGeometry {
			return fmt.Errorf("decode geometry: %w", err)
		}
		md.GeometryErr = err
		md.Warnings = append(md.Warnings, Warning{
			Stage:   "geometry",
			Message: err.Error(),
		})
		options.logger.Debug("probe geometry unavailable",
			"path", md.Path,
			"error", err,
		)
		return nil
	}

	geometry.Apply(md, g)
	options.logger.Debug("probe geometry decoded",
		"path", md.Path,
		"probe", g.ProbeType.String(),
		"connected", len(g.ChannelIndex),
	)
	return nil
}
