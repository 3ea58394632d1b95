// Package parsing decodes the naming convention of SpikeGLX output files.
package parsing

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

// FileName is a decoded SpikeGLX file name such as
// "mouse1_g0_t0.imec0.ap.bin".
type FileName struct {
	Run     string // Run name chosen by the operator
	Gate    int    // g index
	Trigger int    // t index; -1 for concatenated ("tcat") files
	Stream  string // "imec", "nidq" or "obx"
	Probe   int    // imec/obx device index; -1 for nidq
	Band    string // "ap", "lf" or "" for streams without bands
	Ext     string // "bin" or "meta"
}

// fileNamePattern matches <run>_g<N>_t<N|cat>.<stream>[.<band>].<ext>.
// Patterns are compiled once; the run name may itself contain underscores.
var fileNamePattern = regexp.MustCompile(
	`^(.+)_g(\d+)_t(\d+|cat)\.(imec|nidq|obx)(\d*)(?:\.(ap|lf))?\.(bin|meta)$`,
)

// ParseFileName decodes the base name of path. It reports false when the
// name does not follow the SpikeGLX convention.
func ParseFileName(path string) (FileName, bool) {
	m := fileNamePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return FileName{}, false
	}

	fn := FileName{
		Run:    m[1],
		Stream: m[4],
		Probe:  -1,
		Band:   m[6],
		Ext:    m[7],
	}
	fn.Gate, _ = strconv.Atoi(m[2])
	if m[3] == "cat" {
		fn.Trigger = -1
	} else {
		fn.Trigger, _ = strconv.Atoi(m[3])
	}

	switch {
	case fn.Stream == "nidq":
		if m[5] != "" {
			return FileName{}, false
		}
	case m[5] == "":
		// SpikeGLX 3.0 and earlier omitted the index of a single probe.
		fn.Probe = 0
	default:
		fn.Probe, _ = strconv.Atoi(m[5])
	}
	if fn.Stream == "imec" && fn.Band == "" {
		return FileName{}, false
	}
	if fn.Stream != "imec" && fn.Band != "" {
		return FileName{}, false
	}

	return fn, true
}

// Device returns the stream name with its index, e.g. "imec1" or "nidq".
func (f FileName) Device() string {
	if f.Probe < 0 {
		return f.Stream
	}
	return fmt.Sprintf("%s%d", f.Stream, f.Probe)
}

// Sibling returns the file name of the same recording with another
// extension, e.g. the .meta that belongs to a .bin.
func (f FileName) Sibling(ext string) string {
	trigger := "cat"
	if f.Trigger >= 0 {
		trigger = strconv.Itoa(f.Trigger)
	}
	name := fmt.Sprintf("%s_g%d_t%s.%s", f.Run, f.Gate, trigger, f.Device())
	if f.Band != "" {
		name += "." + f.Band
	}
	return name + "." + ext
}
