package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/simonhull/spikeglx"
	"github.com/simonhull/spikeglx/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	Database string
	Channel  int
}

// ExportResult reports what was written to the database.
type ExportResult struct {
	RecordingID string `json:"recording_id" yaml:"recording_id"`
	Database    string `json:"database" yaml:"database"`
	Channels    int    `json:"channels" yaml:"channels"`
	Events      int    `json:"events" yaml:"events"`
}

// RenderText implements TextRenderer.
func (r *ExportResult) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "exported %s: %d channels, %d sync events -> %s\n",
		r.RecordingID, r.Channels, r.Events, r.Database)
	return err
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <file.bin>",
		Short: "Export geometry and sync events to SQLite",
		Long: `Open a recording, decode its probe geometry and sync edges, and store
them in a SQLite database. The database is created when missing; every
export adds a new recording row.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("channel") {
				opts.Channel = rootOpts.Config.SyncChannel
			}
			return runExport(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().IntVarP(&opts.Channel, "channel", "c", -1, "sync channel index (negative counts from the last channel)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runExport(rootOpts *RootOptions, opts *ExportOptions, path string, cmd *cobra.Command) error {
	ctx := cmd.Context()

	rec, err := spikeglx.OpenRecording(path, rootOpts.libraryOptions()...)
	if err != nil {
		return wrapError("open recording", err)
	}
	defer rec.Close()

	samples, _, err := channelSamples(rec, opts.Channel)
	if err != nil {
		return err
	}
	ev := spikeglx.DetectEvents(samples, rec.Meta.SampleRateHz)

	rootOpts.Logger.Info("opening database", "path", opts.Database)
	db, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			rootOpts.Logger.Error("error closing database", "error", closeErr)
		}
	}()

	row := store.Recording{
		Path:         path,
		Stream:       rec.Meta.Stream.String(),
		SampleRateHz: rec.Meta.SampleRateHz,
		Channels:     rec.Data.Channels(),
		Samples:      rec.Samples(),
	}
	if rec.Meta.Stream == spikeglx.StreamIMEC {
		if probe, err := rec.Meta.ProbeType(); err == nil {
			row.ProbeType = &probe
		}
	}

	var rows []int
	var coords []spikeglx.Point
	if rec.Meta.HasGeometry() {
		rows, coords = rec.Meta.ChannelIndex, rec.Meta.Coords
	} else {
		rootOpts.Logger.Warn("exporting without geometry", "path", path, "error", rec.Meta.GeometryErr)
	}

	out := rootOpts.formatter(cmd)
	out.VerboseLog("writing %d channels and %d sync events to %s", len(rows), ev.Count(), opts.Database)

	id, n, err := db.WriteExport(ctx, row, rows, coords, ev)
	if err != nil {
		return WrapExitError(ExitFailure, "export", err)
	}
	result := &ExportResult{RecordingID: id, Database: opts.Database, Channels: len(rows), Events: n}

	rootOpts.Logger.Info("recording exported", "id", id, "channels", result.Channels, "events", n)
	return out.Success(result)
}
