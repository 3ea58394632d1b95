package geometry

import (
	"fmt"
	"sync"

	"github.com/simonhull/spikeglx/internal/types"
)

// ProbeType is the imDatPrb_type identifier written by SpikeGLX.
type ProbeType int

// Known probe types. Metadata without imDatPrb_type describes a ProbeNP10.
const (
	ProbeNP10       ProbeType = 0    // Neuropixels 1.0 (3A/3B)
	ProbeNP10Type1  ProbeType = 1    // Neuropixels 1.0, alternate identifier
	ProbeNP20Single ProbeType = 21   // Neuropixels 2.0, single shank
	ProbeNP20Multi  ProbeType = 24   // Neuropixels 2.0, four shanks
	ProbeUHD        ProbeType = 1100 // Ultra high density, one bank
	ProbeOpto       ProbeType = 1300 // Neuropixels opto
)

// String returns a short description of the probe.
func (p ProbeType) String() string {
	switch p {
	case ProbeNP10, ProbeNP10Type1:
		return fmt.Sprintf("NP1.0 (type %d)", int(p))
	case ProbeNP20Single:
		return "NP2.0 single-shank (type 21)"
	case ProbeNP20Multi:
		return "NP2.0 four-shank (type 24)"
	case ProbeUHD:
		return "UHD (type 1100)"
	case ProbeOpto:
		return "NP1.0 opto (type 1300)"
	default:
		return fmt.Sprintf("unknown probe (type %d)", int(p))
	}
}

// Supported reports whether p belongs to a known probe family.
func (p ProbeType) Supported() bool {
	_, err := layoutFor(p)
	return err == nil
}

// Shanks returns the number of shanks of the probe, or 0 if unsupported.
func (p ProbeType) Shanks() int {
	l, err := layoutFor(p)
	if err != nil {
		return 0
	}
	return l.shanks()
}

// ElectrodesPerShank returns the size of the probe's site table, or 0 if unsupported.
func (p ProbeType) ElectrodesPerShank() int {
	l, err := layoutFor(p)
	if err != nil {
		return 0
	}
	return len(l.sites())
}

// layout is the per-family recipe turning an imro row into a site position.
// The set of implementations is closed: familyA and familyB.
type layout interface {
	// locate returns the shank and electrode index observed by an imro row.
	locate(row []int) (shank, electrode int, err error)
	// sites is the static (localX, localY) table of one shank.
	sites() []types.Point
	shanks() int
	sealed()
}

// familyA covers the single-shank 1.0-style probes whose imro rows give
// channel and bank; the electrode is bank*384 + channel.
type familyA struct {
	table func() []types.Point
}

func (f familyA) locate(row []int) (int, int, error) {
	if len(row) < 2 {
		return 0, 0, fmt.Errorf("imro row has %d fields, need 2", len(row))
	}
	channel, bank := row[0], row[1]
	return 0, bank*channelsPerBank + channel, nil
}

func (f familyA) sites() []types.Point { return f.table() }
func (f familyA) shanks() int          { return 1 }
func (familyA) sealed()                {}

// familyB covers the 2.0 probes. The single-shank variant reads the
// electrode from column 2; the four-shank variant reads shank from column 1
// and electrode from column 4.
type familyB struct {
	multiShank bool
}

func (f familyB) locate(row []int) (int, int, error) {
	if f.multiShank {
		if len(row) < 5 {
			return 0, 0, fmt.Errorf("imro row has %d fields, need 5", len(row))
		}
		return row[1], row[4], nil
	}
	if len(row) < 3 {
		return 0, 0, fmt.Errorf("imro row has %d fields, need 3", len(row))
	}
	return 0, row[2], nil
}

func (f familyB) sites() []types.Point { return np20Sites() }

func (f familyB) shanks() int {
	if f.multiShank {
		return 4
	}
	return 1
}

func (familyB) sealed() {}

// layoutFor is the single dispatch point over probe types. Adding a probe
// means adding a case here.
func layoutFor(p ProbeType) (layout, error) {
	switch p {
	case ProbeNP10, ProbeNP10Type1:
		return familyA{table: np10Sites}, nil
	case ProbeUHD:
		return familyA{table: uhdSites}, nil
	case ProbeOpto:
		return familyA{table: optoSites}, nil
	case ProbeNP20Single:
		return familyB{}, nil
	case ProbeNP20Multi:
		return familyB{multiShank: true}, nil
	default:
		return nil, &types.UnsupportedProbeTypeError{ProbeType: int(p)}
	}
}

const channelsPerBank = 384

// Site tables, built on first use and never mutated.
var (
	// 960 sites, four staggered columns 32 µm apart, 20 µm rows, 11 µm edge offset.
	np10Sites = sync.OnceValue(func() []types.Point {
		const (
			n       = 960
			vert    = 20.0
			horz    = 32.0
			xOffset = 11.0
		)
		cols := [4]float64{0, 3 * horz / 2, horz / 2, horz}
		pts := make([]types.Point, n)
		for e := range pts {
			pts[e] = types.Point{X: cols[e%4] + xOffset, Y: float64(e/2) * vert}
		}
		return pts
	})

	// 384 sites, seven columns, 6 µm pitch both ways.
	uhdSites = sync.OnceValue(func() []types.Point {
		const (
			n    = 384
			vert = 6.0
			horz = 6.0
		)
		pts := make([]types.Point, n)
		for e := range pts {
			pts[e] = types.Point{X: float64(e%7) * horz, Y: float64(e/8) * vert}
		}
		return pts
	})

	// 960 sites, two staggered columns 48 µm apart, 20 µm rows.
	optoSites = sync.OnceValue(func() []types.Point {
		const (
			n    = 960
			vert = 20.0
			horz = 48.0
		)
		pts := make([]types.Point, n)
		for e := range pts {
			pts[e] = types.Point{X: float64(e%2) * horz, Y: float64(e/2) * vert}
		}
		return pts
	})

	// 1280 sites per shank, two columns 32 µm apart, 15 µm rows.
	np20Sites = sync.OnceValue(func() []types.Point {
		const (
			n    = 1280
			vert = 15.0
			horz = 32.0
		)
		pts := make([]types.Point, n)
		for e := range pts {
			pts[e] = types.Point{X: float64(e%2) * horz, Y: float64(e/2) * vert}
		}
		return pts
	})
)
