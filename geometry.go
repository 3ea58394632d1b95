package spikeglx

import (
	"github.com/simonhull/spikeglx/internal/geometry"
)

// ProbeType is an alias to geometry.ProbeType.
type ProbeType = geometry.ProbeType

// Probe families with a known site layout.
const (
	ProbeNP10       = geometry.ProbeNP10
	ProbeNP10Type1  = geometry.ProbeNP10Type1
	ProbeNP20Single = geometry.ProbeNP20Single
	ProbeNP20Multi  = geometry.ProbeNP20Multi
	ProbeUHD        = geometry.ProbeUHD
	ProbeOpto       = geometry.ProbeOpto
)

// DefaultShankSeparation is the horizontal distance between shanks, in µm.
const DefaultShankSeparation = geometry.DefaultShankSeparation

// Geometry is an alias to geometry.Geometry.
type Geometry = geometry.Geometry

// DecodeGeometry reconstructs electrode positions from parsed metadata.
//
// Unlike ParseMeta, DecodeGeometry always reports failure: an unknown
// imDatPrb_type matches ErrUnsupportedProbeType and missing or inconsistent
// imroTbl / snsShankMap tables match ErrMalformedMetadata. md is not
// modified.
//
// Example:
//
//	g, err := spikeglx.DecodeGeometry(md, spikeglx.WithShankSeparation(300))
//	if err != nil {
//		return err
//	}
//	for i, row := range g.ChannelIndex {
//		fmt.Printf("channel %d at (%.0f, %.0f)\n", row, g.Coords[i].X, g.Coords[i].Y)
//	}
func DecodeGeometry(md *Metadata, opts ...Option) (*Geometry, error) {
	options := applyOptions(opts)
	return geometry.Decode(md, options.shankSeparation)
}
