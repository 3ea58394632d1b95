package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/simonhull/spikeglx"
	"github.com/simonhull/spikeglx/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	Database string
	Lane     int
}

// StoredChannel is one exported channel position.
type StoredChannel struct {
	Row int     `json:"row" yaml:"row"`
	X   float64 `json:"x_um" yaml:"x_um"`
	Y   float64 `json:"y_um" yaml:"y_um"`
}

// ShowResult describes one exported recording.
type ShowResult struct {
	ID           string          `json:"id" yaml:"id"`
	Path         string          `json:"path" yaml:"path"`
	Stream       string          `json:"stream" yaml:"stream"`
	SampleRateHz float64         `json:"sample_rate_hz" yaml:"sample_rate_hz"`
	ProbeType    *int            `json:"probe_type,omitempty" yaml:"probe_type,omitempty"`
	Channels     int             `json:"channels" yaml:"channels"`
	Samples      int             `json:"samples" yaml:"samples"`
	CreatedAt    time.Time       `json:"created_at" yaml:"created_at"`
	Positions    []StoredChannel `json:"positions,omitempty" yaml:"positions,omitempty"`
	Onsets       int             `json:"onsets" yaml:"onsets"`
	Offsets      int             `json:"offsets" yaml:"offsets"`
	Lanes        []LaneEvents    `json:"lanes,omitempty" yaml:"lanes,omitempty"`
}

// RenderText implements TextRenderer.
func (r *ShowResult) RenderText(w io.Writer) error {
	fmt.Fprintf(w, "recording: %s\n", r.ID)
	fmt.Fprintf(w, "path:      %s\n", r.Path)
	fmt.Fprintf(w, "stream:    %s at %g Hz\n", r.Stream, r.SampleRateHz)
	fmt.Fprintf(w, "samples:   %d x %d channels\n", r.Samples, r.Channels)
	fmt.Fprintf(w, "geometry:  %d positions\n", len(r.Positions))
	_, err := fmt.Fprintf(w, "events:    %d onsets, %d offsets\n", r.Onsets, r.Offsets)
	if err != nil {
		return err
	}
	for _, l := range r.Lanes {
		_, err := fmt.Fprintf(w, "lane %d: onsets [%s] offsets [%s]\n", l.Lane, formatTimes(l.Onsets), formatTimes(l.Offsets))
		if err != nil {
			return err
		}
	}
	return nil
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <recording-id>",
		Short: "Show a recording stored by export",
		Long: `Read back one exported recording: its stream, channel positions and
sync event counts. With --lane the stored edge times of that lane are
listed; with --lane -1 every lane is listed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().IntVar(&opts.Lane, "lane", -2, "list edge times of one lane, or -1 for all lanes")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runShow(rootOpts *RootOptions, opts *ShowOptions, id string, cmd *cobra.Command) error {
	ctx := cmd.Context()

	if _, err := os.Stat(opts.Database); errors.Is(err, fs.ErrNotExist) {
		return wrapError("open database", &spikeglx.FileNotFoundError{Path: opts.Database, What: "database"})
	}
	db, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			rootOpts.Logger.Error("error closing database", "error", closeErr)
		}
	}()

	rec, err := db.Recording(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return WrapExitError(ExitCommandError, "show", err)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "show", err)
	}

	result := &ShowResult{
		ID:           rec.ID,
		Path:         rec.Path,
		Stream:       rec.Stream,
		SampleRateHz: rec.SampleRateHz,
		ProbeType:    rec.ProbeType,
		Channels:     rec.Channels,
		Samples:      rec.Samples,
		CreatedAt:    rec.CreatedAt,
	}

	chans, err := db.Channels(ctx, id)
	if err != nil {
		return WrapExitError(ExitFailure, "show", err)
	}
	for _, c := range chans {
		result.Positions = append(result.Positions, StoredChannel{Row: c.Row, X: c.X, Y: c.Y})
	}

	result.Onsets, result.Offsets, err = db.CountEvents(ctx, id)
	if err != nil {
		return WrapExitError(ExitFailure, "show", err)
	}

	var lanes []int
	switch {
	case opts.Lane == -1:
		if lanes, err = db.Lanes(ctx, id); err != nil {
			return WrapExitError(ExitFailure, "show", err)
		}
	case opts.Lane >= 0:
		lanes = []int{opts.Lane}
	}
	for _, lane := range lanes {
		le := LaneEvents{Lane: lane}
		if le.Onsets, err = db.EventTimes(ctx, id, lane, store.KindOnset); err != nil {
			return WrapExitError(ExitFailure, "show", err)
		}
		if le.Offsets, err = db.EventTimes(ctx, id, lane, store.KindOffset); err != nil {
			return WrapExitError(ExitFailure, "show", err)
		}
		result.Lanes = append(result.Lanes, le)
	}

	rootOpts.Logger.Debug("recording loaded", "id", id, "positions", len(result.Positions))
	return rootOpts.formatter(cmd).Success(result)
}
