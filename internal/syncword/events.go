// Package syncword decodes the digital sync channel of a SpikeGLX recording.
//
// Each sample of the sync channel is a packed word whose bits are
// independent digital input lines ("lanes"). Edge detection reports, per
// lane, the samples at which the line went high (onsets) and low (offsets).
package syncword

import (
	"maps"
	"slices"
)

// LaneCount is the number of lanes in a sync word.
const LaneCount = 16

// Word is the set of integer types a sync channel can be stored as.
type Word interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// UnpackBits expands each value into width booleans; bit i of the result
// row is set iff (value >> i) & 1 == 1. Signed values contribute their two's
// complement bit pattern.
func UnpackBits[T Word](values []T, width int) [][]bool {
	out := make([][]bool, len(values))
	if len(values) == 0 || width <= 0 {
		for i := range out {
			out[i] = []bool{}
		}
		return out
	}
	backing := make([]bool, len(values)*width)
	for i, v := range values {
		row := backing[i*width : (i+1)*width : (i+1)*width]
		u := uint64(v)
		for b := range row {
			row[b] = b < 64 && (u>>uint(b))&1 == 1
		}
		out[i] = row
	}
	return out
}

// Lanes returns the raw lane matrix of samples, shaped (len(samples), 16).
func Lanes[T Word](samples []T) [][]bool {
	return UnpackBits(samples, LaneCount)
}

// Events holds edge times per lane. A lane without edges of a kind has no
// key in that map.
type Events struct {
	Onsets  map[int][]float64
	Offsets map[int][]float64
}

// ActiveLanes returns the lanes with at least one edge, ascending.
func (e Events) ActiveLanes() []int {
	set := make(map[int]struct{}, len(e.Onsets)+len(e.Offsets))
	for l := range e.Onsets {
		set[l] = struct{}{}
	}
	for l := range e.Offsets {
		set[l] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// Count returns the total number of onsets and offsets.
func (e Events) Count() int {
	n := 0
	for _, ts := range e.Onsets {
		n += len(ts)
	}
	for _, ts := range e.Offsets {
		n += len(ts)
	}
	return n
}

// DetectEvents finds lane transitions in samples.
//
// Sample i (i >= 1) is an onset of a lane whose bit is 0 at i-1 and 1 at i,
// and an offset when it is 1 at i-1 and 0 at i. The reported time is
// i / sampleRate, the index of the sample after the transition; pass 1 to
// keep sample indices. A non-positive sampleRate is treated as 1.
//
// Example:
//
//	ev := syncword.DetectEvents([]int16{0, 8, 0}, 1)
//	// ev.Onsets  == map[int][]float64{3: {1}}
//	// ev.Offsets == map[int][]float64{3: {2}}
func DetectEvents[T Word](samples []T, sampleRate float64) Events {
	if sampleRate <= 0 {
		sampleRate = 1
	}
	ev := Events{
		Onsets:  make(map[int][]float64),
		Offsets: make(map[int][]float64),
	}
	const mask = 1<<LaneCount - 1

	for i := 1; i < len(samples); i++ {
		prev := uint64(samples[i-1]) & mask
		cur := uint64(samples[i]) & mask
		changed := prev ^ cur
		if changed == 0 {
			continue
		}
		t := float64(i) / sampleRate
		for lane := 0; changed != 0; lane++ {
			if changed&1 == 1 {
				if cur>>uint(lane)&1 == 1 {
					ev.Onsets[lane] = append(ev.Onsets[lane], t)
				} else {
					ev.Offsets[lane] = append(ev.Offsets[lane], t)
				}
			}
			changed >>= 1
		}
	}
	return ev
}
