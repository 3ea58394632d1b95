package spikeglx

import (
	"github.com/simonhull/spikeglx/internal/types"
)

// Sentinel errors, re-exported from internal/types.
var (
	ErrFileNotFound         = types.ErrFileNotFound
	ErrConfig               = types.ErrConfig
	ErrMalformedMetadata    = types.ErrMalformedMetadata
	ErrUnsupportedProbeType = types.ErrUnsupportedProbeType
	ErrNoProbeFiles         = types.ErrNoProbeFiles
	ErrUnsupportedPlatform  = types.ErrUnsupportedPlatform
)

// FileNotFoundError is an alias to types.FileNotFoundError.
type FileNotFoundError = types.FileNotFoundError

// ConfigError is an alias to types.ConfigError.
type ConfigError = types.ConfigError

// MalformedMetadataError is an alias to types.MalformedMetadataError.
type MalformedMetadataError = types.MalformedMetadataError

// UnsupportedProbeTypeError is an alias to types.UnsupportedProbeTypeError.
type UnsupportedProbeTypeError = types.UnsupportedProbeTypeError

// NoProbeFilesError is an alias to types.NoProbeFilesError.
type NoProbeFilesError = types.NoProbeFilesError

// Warning is an alias to types.Warning.
type Warning = types.Warning
