package spikeglx

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Run lists the binary files of one SpikeGLX run folder.
type Run struct {
	// Folder that was searched
	Folder string

	// Probe AP binaries (*/*.ap.bin), sorted
	Probes []string

	// Auxiliary NI-DAQ binary (*.nidq.bin), or "" when absent
	NIDQ string
}

// Discover finds the binary files of a run folder.
//
// Probe files are the *.ap.bin files one directory below folder, which is
// where SpikeGLX writes per-probe subfolders. The NI-DAQ file, when present,
// sits directly in folder. A folder without probe files yields an error
// matching ErrNoProbeFiles.
//
// A folder that does not exist yields ErrFileNotFound rather than
// ErrNoProbeFiles, and a path naming a regular file yields ErrConfig.
//
// Example:
//
//	run, err := spikeglx.Discover("/data/mouse1_g0")
//	if errors.Is(err, spikeglx.ErrNoProbeFiles) {
//		return fmt.Errorf("not a probe run: %w", err)
//	}
func Discover(folder string) (*Run, error) {
	info, err := os.Stat(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &FileNotFoundError{Path: folder, What: "run folder"}
		}
		return nil, fmt.Errorf("stat folder: %w", err)
	}
	if !info.IsDir() {
		return nil, &ConfigError{Path: folder, Reason: "not a directory"}
	}

	pattern := filepath.Join(globEscape(folder), "*", "*.ap.bin")
	probes, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob probes: %w", err)
	}
	if len(probes) == 0 {
		return nil, &NoProbeFilesError{Folder: folder}
	}
	slices.Sort(probes)

	nidq, err := filepath.Glob(filepath.Join(globEscape(folder), "*.nidq.bin"))
	if err != nil {
		return nil, fmt.Errorf("glob nidq: %w", err)
	}

	run := &Run{Folder: folder, Probes: probes}
	if len(nidq) > 0 {
		slices.Sort(nidq)
		run.NIDQ = nidq[0]
	}
	return run, nil
}

// globEscape quotes glob metacharacters so folder names match literally.
// Windows paths are returned unchanged since '\\' is their separator.
func globEscape(path string) string {
	if filepath.Separator == '\\' {
		return path
	}
	var b strings.Builder
	for _, r := range path {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
