// Package types provides core data structures for SpikeGLX recordings.
//
// This package defines the Metadata, Value, StreamType and Point types and the
// error kinds shared by the binary, metadata, geometry and sync packages.
package types

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

// StreamType identifies the acquisition stream a metadata file describes.
// The set is closed; each stream names the field holding its sample rate.
type StreamType int

const (
	// StreamUnknown is the zero StreamType.
	StreamUnknown StreamType = iota
	// StreamIMEC is a Neuropixels probe stream (typeThis=imec).
	StreamIMEC
	// StreamNIDQ is a National Instruments auxiliary stream (typeThis=nidq).
	StreamNIDQ
	// StreamOneBox is a OneBox auxiliary stream (typeThis=obx).
	StreamOneBox
)

// String returns the typeThis tag of the stream.
func (s StreamType) String() string {
	switch s {
	case StreamIMEC:
		return "imec"
	case StreamNIDQ:
		return "nidq"
	case StreamOneBox:
		return "obx"
	case StreamUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("stream(%d)", int(s))
	}
}

// SampleRateKey returns the metadata key holding the stream's sample rate.
func (s StreamType) SampleRateKey() string {
	switch s {
	case StreamIMEC:
		return "imSampRate"
	case StreamNIDQ:
		return "niSampRate"
	case StreamOneBox:
		return "obSampRate"
	case StreamUnknown:
		return ""
	default:
		return ""
	}
}

// StreamFromTag maps a typeThis value to its stream. Only the first two
// characters are significant, so "imec" and "imec0" both select StreamIMEC.
func StreamFromTag(tag string) (StreamType, bool) {
	if len(tag) < 2 {
		return StreamUnknown, false
	}
	switch tag[:2] {
	case "im":
		return StreamIMEC, true
	case "ni":
		return StreamNIDQ, true
	case "ob":
		return StreamOneBox, true
	}
	return StreamUnknown, false
}

// Point is an electrode position in micrometres.
type Point struct {
	X float64
	Y float64
}

// Entry is one key/value pair in file order.
type Entry struct {
	Key   string
	Value Value
}

// Metadata is the decoded content of a .meta file.
//
// Keys keep their first-seen order. Tilde-prefixed keys are stored without
// the tilde as list values. The derived fields are filled in by the parser;
// Coords and ChannelIndex are nil unless probe geometry was reconstructed,
// in which case GeometryErr is nil.
type Metadata struct {
	// Path of the metadata file
	Path string

	// Stream selected by typeThis
	Stream StreamType

	// Sample rate in Hz, copied from the stream's rate field
	SampleRateHz float64

	// Positions of the connected channels, in micrometres
	Coords []Point

	// Original row of each connected channel
	ChannelIndex []int

	// Why geometry decoding failed, if it did
	GeometryErr error

	// Non-fatal issues encountered during parsing
	Warnings []Warning

	keys   []string
	values map[string]Value
}

// NewMetadata builds Metadata from entries in file order. A repeated key
// keeps its first position and its last value.
func NewMetadata(path string, entries []Entry) *Metadata {
	md := &Metadata{
		Path:   path,
		keys:   make([]string, 0, len(entries)),
		values: make(map[string]Value, len(entries)),
	}
	for _, e := range entries {
		if _, ok := md.values[e.Key]; !ok {
			md.keys = append(md.keys, e.Key)
		}
		md.values[e.Key] = e.Value
	}
	return md
}

// Len returns the number of distinct keys.
func (m *Metadata) Len() int {
	return len(m.keys)
}

// Keys returns the keys in file order.
func (m *Metadata) Keys() []string {
	return slices.Clone(m.keys)
}

// All iterates over keys and values in file order.
//
//	for key, v := range md.All() {
//		fmt.Printf("%s=%s\n", key, v)
//	}
func (m *Metadata) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Get returns the value stored under key.
func (m *Metadata) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Metadata) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Number returns the numeric value of key.
func (m *Metadata) Number(key string) (float64, error) {
	v, ok := m.values[key]
	if !ok {
		return 0, m.missing(key)
	}
	f, ok := v.Number()
	if !ok {
		return 0, m.wrongKind(key, v, KindNumber)
	}
	return f, nil
}

// Int returns the numeric value of key, which must be integral.
func (m *Metadata) Int(key string) (int, error) {
	f, err := m.Number(key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, &MalformedMetadataError{Path: m.Path, Key: key, Reason: fmt.Sprintf("%g is not an integer", f)}
	}
	return int(f), nil
}

// Text returns the text value of key.
func (m *Metadata) Text(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", m.missing(key)
	}
	s, ok := v.Text()
	if !ok {
		return "", m.wrongKind(key, v, KindText)
	}
	return s, nil
}

// List returns the items of the tilde-prefixed key, given without its tilde.
func (m *Metadata) List(key string) ([]string, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, m.missing(key)
	}
	items, ok := v.List()
	if !ok {
		return nil, m.wrongKind(key, v, KindList)
	}
	return items, nil
}

// SavedChannels returns nSavedChans, the channel count of the binary file.
func (m *Metadata) SavedChannels() (int, error) {
	return m.Int("nSavedChans")
}

// ProbeType returns imDatPrb_type, or 0 when the key is absent as in
// files written before the field existed.
func (m *Metadata) ProbeType() (int, error) {
	if !m.Has("imDatPrb_type") {
		return 0, nil
	}
	return m.Int("imDatPrb_type")
}

// HasGeometry reports whether electrode positions were reconstructed.
func (m *Metadata) HasGeometry() bool {
	return m.Coords != nil && m.GeometryErr == nil
}

func (m *Metadata) missing(key string) error {
	return &MalformedMetadataError{Path: m.Path, Key: key, Reason: "missing required field"}
}

func (m *Metadata) wrongKind(key string, v Value, want Kind) error {
	return &MalformedMetadataError{Path: m.Path, Key: key, Reason: fmt.Sprintf("expected %s, got %s", want, v.Kind())}
}
