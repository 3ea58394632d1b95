// Package geometry reconstructs electrode positions of Neuropixels probes
// from SpikeGLX metadata.
//
// The imroTbl list says which electrode each recorded channel observes and
// the snsShankMap list says which channels are connected. Each probe family
// maps electrodes onto a fixed per-shank site table; shanks are laid side by
// side a fixed distance apart.
package geometry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/simonhull/spikeglx/internal/types"
)

// DefaultShankSeparation is the horizontal distance between shanks, in µm.
const DefaultShankSeparation = 250.0

// Geometry is the decoded layout of a probe recording.
type Geometry struct {
	// Probe family identifier
	ProbeType ProbeType

	// Original row of each connected channel, ascending
	ChannelIndex []int

	// Position of each connected channel, parallel to ChannelIndex
	Coords []types.Point

	// Connected flag of every channel row, including disconnected ones
	Connected []bool
}

// Decode reconstructs channel positions from md.
//
// It requires the imroTbl and snsShankMap lists; imDatPrb_type defaults to
// ProbeNP10. An unknown probe type yields an error matching
// types.ErrUnsupportedProbeType; missing or inconsistent tables yield
// types.ErrMalformedMetadata.
func Decode(md *types.Metadata, shankSeparation float64) (*Geometry, error) {
	n, err := md.ProbeType()
	if err != nil {
		return nil, err
	}
	probe := ProbeType(n)

	lay, err := layoutFor(probe)
	if err != nil {
		return nil, &types.UnsupportedProbeTypeError{Path: md.Path, ProbeType: int(probe)}
	}

	imro, err := md.List("imroTbl")
	if err != nil {
		return nil, err
	}
	shankMap, err := md.List("snsShankMap")
	if err != nil {
		return nil, err
	}

	rows, err := parseTable(md.Path, "imroTbl", imro, strings.Fields)
	if err != nil {
		return nil, err
	}
	connected, err := parseConnected(md.Path, shankMap)
	if err != nil {
		return nil, err
	}
	if len(rows) != len(connected) {
		return nil, &types.MalformedMetadataError{
			Path:   md.Path,
			Key:    "snsShankMap",
			Reason: fmt.Sprintf("%d entries for %d imroTbl rows", len(connected), len(rows)),
		}
	}

	sites := lay.sites()
	g := &Geometry{
		ProbeType:    probe,
		ChannelIndex: make([]int, 0, len(rows)),
		Coords:       make([]types.Point, 0, len(rows)),
		Connected:    connected,
	}
	for i, row := range rows {
		shank, electrode, err := lay.locate(row)
		if err != nil {
			return nil, &types.MalformedMetadataError{Path: md.Path, Key: "imroTbl", Reason: fmt.Sprintf("row %d: %v", i, err)}
		}
		if electrode < 0 || electrode >= len(sites) {
			return nil, &types.MalformedMetadataError{
				Path:   md.Path,
				Key:    "imroTbl",
				Reason: fmt.Sprintf("row %d: electrode %d outside %s site table of %d", i, electrode, probe, len(sites)),
			}
		}
		if shank < 0 || shank >= lay.shanks() {
			return nil, &types.MalformedMetadataError{
				Path:   md.Path,
				Key:    "imroTbl",
				Reason: fmt.Sprintf("row %d: shank %d outside %s", i, shank, probe),
			}
		}
		if !connected[i] {
			continue
		}
		site := sites[electrode]
		g.ChannelIndex = append(g.ChannelIndex, i)
		g.Coords = append(g.Coords, types.Point{
			X: float64(shank)*shankSeparation + site.X,
			Y: site.Y,
		})
	}
	return g, nil
}

// Apply stores the connected-channel layout of g on md.
func Apply(md *types.Metadata, g *Geometry) {
	md.Coords = g.Coords
	md.ChannelIndex = g.ChannelIndex
	md.GeometryErr = nil
}

// parseTable parses every list item after the header into integers.
func parseTable(path, key string, items []string, split func(string) []string) ([][]int, error) {
	if len(items) == 0 {
		return nil, nil
	}
	rows := make([][]int, 0, len(items)-1)
	for i, item := range items[1:] {
		fields := split(item)
		row := make([]int, len(fields))
		for j, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, &types.MalformedMetadataError{Path: path, Key: key, Reason: fmt.Sprintf("row %d: %q is not an integer", i, f)}
			}
			row[j] = n
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseConnected reads field 3 of each snsShankMap entry: 1 means connected.
func parseConnected(path string, items []string) ([]bool, error) {
	rows, err := parseTable(path, "snsShankMap", items, func(s string) []string { return strings.Split(s, ":") })
	if err != nil {
		return nil, err
	}
	connected := make([]bool, len(rows))
	for i, row := range rows {
		if len(row) < 4 {
			return nil, &types.MalformedMetadataError{Path: path, Key: "snsShankMap", Reason: fmt.Sprintf("row %d has %d fields, need 4", i, len(row))}
		}
		connected[i] = row[3] == 1
	}
	return connected, nil
}
