package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_MatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains []string
	}{
		{
			name:     "file not found",
			err:      &FileNotFoundError{Path: "rec.meta", What: "metadata file"},
			sentinel: ErrFileNotFound,
			contains: []string{"rec.meta", "metadata file not found"},
		},
		{
			name:     "config",
			err:      &ConfigError{Path: "rec.bin", Reason: "sample count required"},
			sentinel: ErrConfig,
			contains: []string{"rec.bin", "sample count required"},
		},
		{
			name:     "malformed line",
			err:      &MalformedMetadataError{Path: "rec.meta", Line: 7, Reason: "missing '='"},
			sentinel: ErrMalformedMetadata,
			contains: []string{"rec.meta:7", "missing '='"},
		},
		{
			name:     "malformed key",
			err:      &MalformedMetadataError{Path: "rec.meta", Key: "imSampRate", Reason: "missing required field"},
			sentinel: ErrMalformedMetadata,
			contains: []string{"imSampRate", "missing required field"},
		},
		{
			name:     "probe type",
			err:      &UnsupportedProbeTypeError{Path: "rec.meta", ProbeType: 999},
			sentinel: ErrUnsupportedProbeType,
			contains: []string{"unsupported probe type 999"},
		},
		{
			name:     "no probes",
			err:      &NoProbeFilesError{Folder: "/data/run1"},
			sentinel: ErrNoProbeFiles,
			contains: []string{"/data/run1", "no probe files"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			for _, s := range tt.contains {
				assert.Contains(t, tt.err.Error(), s)
			}
			for _, other := range []error{ErrFileNotFound, ErrConfig, ErrMalformedMetadata, ErrUnsupportedProbeType, ErrNoProbeFiles} {
				if other != tt.sentinel {
					assert.False(t, errors.Is(tt.err, other), "should not match %v", other)
				}
			}
		})
	}
}

func TestWarning_String(t *testing.T) {
	assert.Equal(t, "geometry: unsupported probe type 999", Warning{Stage: "geometry", Message: "unsupported probe type 999"}.String())
	assert.Equal(t, "metadata (line 3): odd", Warning{Stage: "metadata", Message: "odd", Line: 3}.String())
}
