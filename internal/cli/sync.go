package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/spikeglx"
)

// LaneEvents holds the edge times of one sync lane, in seconds.
type LaneEvents struct {
	Lane    int       `json:"lane" yaml:"lane"`
	Onsets  []float64 `json:"onsets" yaml:"onsets"`
	Offsets []float64 `json:"offsets" yaml:"offsets"`
}

// SyncResult lists the sync edges of a recording.
type SyncResult struct {
	Path         string       `json:"path" yaml:"path"`
	Channel      int          `json:"channel" yaml:"channel"`
	SampleRateHz float64      `json:"sample_rate_hz" yaml:"sample_rate_hz"`
	Samples      int          `json:"samples" yaml:"samples"`
	Lanes        []LaneEvents `json:"lanes" yaml:"lanes"`
}

// RenderText implements TextRenderer.
func (r *SyncResult) RenderText(w io.Writer) error {
	fmt.Fprintf(w, "channel %d, %d samples at %g Hz\n", r.Channel, r.Samples, r.SampleRateHz)
	if len(r.Lanes) == 0 {
		_, err := fmt.Fprintln(w, "no edges")
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

func formatTimes(ts []float64) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = strconv.FormatFloat(t, 'f', -1, 64)
	}
	return strings.Join(parts, " ")
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	var channel int

	cmd := &cobra.Command{
		Use:   "sync <file.bin>",
		Short: "Extract digital sync edges from a recording",
		Long: `Map a SpikeGLX .bin file using its .meta sidecar, unpack the 16 lanes of
the sync channel and print the onset and offset times of every lane that
changes. The sync channel defaults to the last saved channel.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("channel") {
				channel = rootOpts.Config.SyncChannel
			}
			return runSync(rootOpts, args[0], channel, cmd)
		},
	}

	cmd.Flags().IntVarP(&channel, "channel", "c", -1, "sync channel index (negative counts from the last channel)")

	return cmd
}

func runSync(opts *RootOptions, path string, channel int, cmd *cobra.Command) error {
	rec, err := spikeglx.OpenRecording(path, opts.libraryOptions()...)
	if err != nil {
		return wrapError("open recording", err)
	}
	defer rec.Close()

	samples, resolved, err := channelSamples(rec, channel)
	if err != nil {
		return err
	}

	ev := spikeglx.DetectEvents(samples, rec.Meta.SampleRateHz)
	opts.Logger.Debug("sync edges detected", "path", path, "channel", resolved, "edges", ev.Count())

	return opts.formatter(cmd).Success(&SyncResult{
		Path:         path,
		Channel:      resolved,
		SampleRateHz: rec.Meta.SampleRateHz,
		Samples:      rec.Samples(),
		Lanes:        laneEvents(ev),
	})
}

// channelSamples returns the samples of channel, resolving negative indices
// from the last channel.
func channelSamples(rec *spikeglx.Recording, channel int) ([]int16, int, error) {
	n := rec.Data.Channels()
	resolved := channel
	if resolved < 0 {
		resolved += n
	}
	if resolved < 0 || resolved >= n {
		return nil, 0, NewExitError(ExitCommandError, fmt.Sprintf("channel %d out of range for %d saved channels", channel, n))
	}
	return rec.Data.Channel(resolved), resolved, nil
}

func laneEvents(ev spikeglx.Events) []LaneEvents {
	lanes := make([]LaneEvents, 0, len(ev.ActiveLanes()))
	for _, lane := range ev.ActiveLanes() {
		lanes = append(lanes, LaneEvents{
			Lane:    lane,
			Onsets:  nonNil(ev.Onsets[lane]),
			Offsets: nonNil(ev.Offsets[lane]),
		})
	}
	return lanes
}

func nonNil(ts []float64) []float64 {
	if ts == nil {
		return []float64{}
	}
	return ts
}
