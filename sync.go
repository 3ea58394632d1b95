package spikeglx

import (
	"github.com/simonhull/spikeglx/internal/syncword"
)

// SyncLanes is the number of digital lanes packed in a sync word.
const SyncLanes = syncword.LaneCount

// Word is the set of integer types a sync channel can be stored as.
type Word = syncword.Word

// Events is an alias to syncword.Events.
type Events = syncword.Events

// UnpackBits expands each value into width booleans, least significant bit
// first.
func UnpackBits[T Word](values []T, width int) [][]bool {
	return syncword.UnpackBits(values, width)
}

// Lanes returns the (len(samples), 16) lane matrix of a sync channel.
func Lanes[T Word](samples []T) [][]bool {
	return syncword.Lanes(samples)
}

// DetectEvents returns the onset and offset times of every lane of a sync
// channel. Times are sample indices divided by sampleRate; the index is that
// of the first sample after the transition.
//
// Example:
//
//	ev := spikeglx.DetectEvents([]int16{0, 8, 0}, 1)
//	// ev.Onsets[3] == []float64{1}, ev.Offsets[3] == []float64{2}
func DetectEvents[T Word](samples []T, sampleRate float64) Events {
	return syncword.DetectEvents(samples, sampleRate)
}
