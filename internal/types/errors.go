package types

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every structured error below matches exactly one of these
// through errors.Is, so callers can branch on the kind without a type switch.
var (
	// ErrFileNotFound is returned when a required file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrConfig is returned when size parameters are insufficient to open a file.
	ErrConfig = errors.New("invalid configuration")

	// ErrMalformedMetadata is returned for unparsable metadata text or a missing
	// required field.
	ErrMalformedMetadata = errors.New("malformed metadata")

	// ErrUnsupportedProbeType is returned for a probe type outside the known families.
	ErrUnsupportedProbeType = errors.New("unsupported probe type")

	// ErrNoProbeFiles is returned when a recording folder holds no probe files.
	ErrNoProbeFiles = errors.New("no probe files")

	// ErrUnsupportedPlatform is returned where memory mapping is unavailable.
	ErrUnsupportedPlatform = errors.New("memory mapping not supported on this platform")
)

// FileNotFoundError is returned when a required path is missing.
type FileNotFoundError struct {
	Path string
	What string // "binary file", "metadata file", ...
}

func (e *FileNotFoundError) Error() string {
	if e.What != "" {
		return fmt.Sprintf("%s: %s not found", e.Path, e.What)
	}
	return fmt.Sprintf("%s: file not found", e.Path)
}

// Is reports whether target is ErrFileNotFound.
func (e *FileNotFoundError) Is(target error) bool { return target == ErrFileNotFound }

// ConfigError is returned when the parameters given to open a binary file
// cannot describe it.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: invalid configuration: %s", e.Path, e.Reason)
}

// Is reports whether target is ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// MalformedMetadataError is returned when metadata text cannot be decoded.
type MalformedMetadataError struct {
	Path   string
	Line   int // 1-based; 0 when the problem is not tied to a line
	Key    string
	Reason string
}

func (e *MalformedMetadataError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: malformed metadata: %s", e.Path, e.Line, e.Reason)
	case e.Key != "":
		return fmt.Sprintf("%s: malformed metadata: %s: %s", e.Path, e.Key, e.Reason)
	default:
		return fmt.Sprintf("%s: malformed metadata: %s", e.Path, e.Reason)
	}
}

// Is reports whether target is ErrMalformedMetadata.
func (e *MalformedMetadataError) Is(target error) bool { return target == ErrMalformedMetadata }

// UnsupportedProbeTypeError is returned when imDatPrb_type names no known probe family.
type UnsupportedProbeTypeError struct {
	Path      string
	ProbeType int
}

func (e *UnsupportedProbeTypeError) Error() string {
	return fmt.Sprintf("%s: unsupported probe type %d", e.Path, e.ProbeType)
}

// Is reports whether target is ErrUnsupportedProbeType.
func (e *UnsupportedProbeTypeError) Is(target error) bool { return target == ErrUnsupportedProbeType }

// NoProbeFilesError is returned when discovery finds no probe files in a folder.
type NoProbeFilesError struct {
	Folder string
}

func (e *NoProbeFilesError) Error() string {
	return fmt.Sprintf("%s: no probe files (*/*.ap.bin) in folder", e.Folder)
}

// Is reports whether target is ErrNoProbeFiles.
func (e *NoProbeFilesError) Is(target error) bool { return target == ErrNoProbeFiles }

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings indicate problems that don't prevent metadata extraction, such as
// a probe geometry that could not be reconstructed.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "metadata", "geometry"

	// Warning message
	Message string

	// Line of the metadata file where the issue occurred (0 if not applicable)
	Line int
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", w.Stage, w.Line, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
