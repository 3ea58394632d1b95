package spikeglx

import "github.com/simonhull/spikeglx/internal/parsing"

// FileName is a decoded SpikeGLX file name: run, gate, trigger, stream,
// device index and band.
type FileName = parsing.FileName

// ParseFileName decodes names such as "mouse1_g0_t0.imec0.ap.bin". It
// reports false for names that do not follow the SpikeGLX convention.
// Concatenated ("tcat") files have Trigger -1; nidq files have Probe -1.
func ParseFileName(path string) (FileName, bool) {
	return parsing.ParseFileName(path)
}
