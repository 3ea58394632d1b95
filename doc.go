// Package spikeglx provides structured access to SpikeGLX extracellular
// electrophysiology recordings.
//
// A SpikeGLX recording is a raw binary file of interleaved int16 samples and
// a sidecar text file with the same base name and a .meta extension. spikeglx
// maps the binary file without copying it, decodes the metadata into typed
// values, reconstructs the physical electrode layout of Neuropixels probes
// and extracts digital edges from the packed sync channel.
//
// # Quick Start
//
// Opening a probe recording and reading its sync edges:
//
//	rec, err := spikeglx.OpenRecording("run_g0_t0.imec0.ap.bin")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rec.Close()
//
//	fmt.Printf("%d channels at %.0f Hz\n", rec.Data.Channels(), rec.Meta.SampleRateHz)
//	ev := rec.SyncEvents()
//	for lane, times := range ev.Onsets {
//		fmt.Printf("lane %d: %d onsets\n", lane, len(times))
//	}
//
// # Metadata
//
// ParseMeta decodes a .meta file. Values are numbers, text, or lists (for
// keys written with a leading tilde) and are read through typed accessors:
//
//	md, err := spikeglx.ParseMeta("run_g0_t0.imec0.ap.meta")
//	if err != nil {
//		log.Fatal(err)
//	}
//	n, _ := md.SavedChannels()
//	imro, _ := md.List("imroTbl")
//
// The sample rate of the stream named by typeThis is always available as
// Metadata.SampleRateHz.
//
// # Geometry
//
// ParseMeta also tries to reconstruct electrode positions. This step is best
// effort: when the probe type is unknown or the tables are missing, parsing
// still succeeds, Metadata.Coords stays nil and Metadata.GeometryErr says why.
// Use WithStrictGeometry to make that failure fatal, or call DecodeGeometry
// directly.
//
// # Run Folders
//
// Discover lists the probe and NI-DAQ binaries of a run folder, and
// ParseFileName decodes the run, gate, trigger and device from a file name.
//
// # Error Handling
//
// Errors match one of the sentinel values through errors.Is:
//
//   - ErrFileNotFound: a binary or metadata file is missing
//   - ErrConfig: channel or sample counts cannot describe the binary file
//   - ErrMalformedMetadata: a line lacks '=' or a required field is absent
//   - ErrUnsupportedProbeType: imDatPrb_type names no known probe family
//   - ErrNoProbeFiles: Discover found no probe files
//
// # Concurrency
//
// All operations are synchronous. Parsing, geometry decoding and edge
// detection are pure functions and may run in parallel across files;
// OpenMany does exactly that. A mapped View may be read concurrently, but
// concurrent writers must be serialized by the caller.
package spikeglx
