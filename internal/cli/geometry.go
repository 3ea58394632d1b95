package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/simonhull/spikeglx"
)

// ChannelPosition is the location of one connected channel, in µm.
type ChannelPosition struct {
	Row int     `json:"row" yaml:"row"`
	X   float64 `json:"x_um" yaml:"x_um"`
	Y   float64 `json:"y_um" yaml:"y_um"`
}

// GeometryResult lists the connected channels of a probe.
type GeometryResult struct {
	ProbeType string            `json:"probe_type" yaml:"probe_type"`
	Channels  []ChannelPosition `json:"channels" yaml:"channels"`
}

// RenderText implements TextRenderer: one "row x y" line per channel.
func (r *GeometryResult) RenderText(w io.Writer) error {
	for _, c := range r.Channels {
		_, err := fmt.Fprintf(w, "%d %s %s\n", c.Row,
			strconv.FormatFloat(c.X, 'f', -1, 64),
			strconv.FormatFloat(c.Y, 'f', -1, 64))
		if err != nil {
			return err
		}
	}
	return nil
}

// NewGeometryCommand creates the geometry command.
func NewGeometryCommand(rootOpts *RootOptions) *cobra.Command {
	var shankSeparation float64

	cmd := &cobra.Command{
		Use:   "geometry <file.meta>",
		Short: "Print electrode positions of a probe recording",
		Long: `Reconstruct the position of every connected channel from the imroTbl
and snsShankMap entries of a probe .meta file. Each output line is
"row x y" in micrometres.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("shank-separation") {
				shankSeparation = rootOpts.Config.ShankSeparationUM
			}
			return runGeometry(rootOpts, args[0], shankSeparation, cmd)
		},
	}

	cmd.Flags().Float64Var(&shankSeparation, "shank-separation", spikeglx.DefaultShankSeparation, "distance between shanks in µm")

	return cmd
}

func runGeometry(opts *RootOptions, path string, shankSeparation float64, cmd *cobra.Command) error {
	if shankSeparation < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid shank separation %g", shankSeparation))
	}

	md, err := spikeglx.ParseMeta(path, spikeglx.WithLogger(opts.Logger))
	if err != nil {
		return wrapError("parse metadata", err)
	}

	g, err := spikeglx.DecodeGeometry(md, spikeglx.WithShankSeparation(shankSeparation))
	if err != nil {
		return wrapError("decode geometry", err)
	}

	result := &GeometryResult{
		ProbeType: g.ProbeType.String(),
		Channels:  make([]ChannelPosition, len(g.ChannelIndex)),
	}
	for i, row := range g.ChannelIndex {
		result.Channels[i] = ChannelPosition{Row: row, X: g.Coords[i].X, Y: g.Coords[i].Y}
	}

	opts.Logger.Debug("geometry decoded", "path", path, "probe", result.ProbeType, "channels", len(result.Channels))
	return opts.formatter(cmd).Success(result)
}
