package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/simonhull/spikeglx"
)

// MetaEntry is one key=value line of a metadata file.
type MetaEntry struct {
	Key   string `json:"key" yaml:"key"`
	Kind  string `json:"kind" yaml:"kind"`
	Value string `json:"value" yaml:"value"`
}

// MetaResult summarizes a parsed metadata file.
type MetaResult struct {
	Path          string      `json:"path" yaml:"path"`
	Stream        string      `json:"stream" yaml:"stream"`
	SampleRateHz  float64     `json:"sample_rate_hz" yaml:"sample_rate_hz"`
	SavedChannels int         `json:"saved_channels" yaml:"saved_channels"`
	EntryCount    int         `json:"entry_count" yaml:"entry_count"`
	Connected     int         `json:"connected_channels" yaml:"connected_channels"`
	GeometryError string      `json:"geometry_error,omitempty" yaml:"geometry_error,omitempty"`
	Entries       []MetaEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// RenderText implements TextRenderer.
func (r *MetaResult) RenderText(w io.Writer) error {
	fmt.Fprintf(w, "stream:         %s\n", r.Stream)
	fmt.Fprintf(w, "sample rate:    %g Hz\n", r.SampleRateHz)
	fmt.Fprintf(w, "saved channels: %d\n", r.SavedChannels)
	fmt.Fprintf(w, "entries:        %d\n", r.EntryCount)
	if r.GeometryError != "" {
		fmt.Fprintf(w, "geometry:       unavailable (%s)\n", r.GeometryError)
	} else {
		fmt.Fprintf(w, "geometry:       %d connected channels\n", r.Connected)
	}
	for _, e := range r.Entries {
		key := e.Key
		if e.Kind == spikeglx.KindList.String() {
			key = "~" + key
		}
		if _, err := fmt.Fprintf(w, "  %s=%s\n", key, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// NewMetaCommand creates the meta command.
func NewMetaCommand(rootOpts *RootOptions) *cobra.Command {
	var showEntries bool

	cmd := &cobra.Command{
		Use:   "meta <file.meta>",
		Short: "Summarize a metadata file",
		Long: `Parse a SpikeGLX .meta file and print its stream type, sample rate,
saved channel count and whether probe geometry could be reconstructed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeta(rootOpts, args[0], showEntries, cmd)
		},
	}

	cmd.Flags().BoolVarP(&showEntries, "entries", "e", false, "list every key=value entry")

	return cmd
}

func runMeta(opts *RootOptions, path string, showEntries bool, cmd *cobra.Command) error {
	md, err := spikeglx.ParseMeta(path, opts.libraryOptions()...)
	if err != nil {
		return wrapError("parse metadata", err)
	}

	result := &MetaResult{
		Path:         md.Path,
		Stream:       md.Stream.String(),
		SampleRateHz: md.SampleRateHz,
		Connected:    len(md.Coords),
		EntryCount:   md.Len(),
	}
	if n, err := md.SavedChannels(); err == nil {
		result.SavedChannels = n
	}
	if md.GeometryErr != nil {
		result.GeometryError = md.GeometryErr.Error()
	}
	if showEntries {
		for key, v := range md.All() {
			result.Entries = append(result.Entries, MetaEntry{
				Key:   key,
				Kind:  v.Kind().String(),
				Value: v.String(),
			})
		}
	}

	return opts.formatter(cmd).Success(result)
}
