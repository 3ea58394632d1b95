package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/simonhull/spikeglx"
)

// DiscoverResult lists the binary files of a run folder.
type DiscoverResult struct {
	Folder string   `json:"folder" yaml:"folder"`
	Probes []string `json:"probes" yaml:"probes"`
	NIDQ   string   `json:"nidq,omitempty" yaml:"nidq,omitempty"`

	// Devices decodes each file name; files off the naming convention are omitted.
	Devices []DeviceFile `json:"devices,omitempty" yaml:"devices,omitempty"`
}

// DeviceFile is the decoded name of one discovered binary.
type DeviceFile struct {
	Path    string `json:"path" yaml:"path"`
	Run     string `json:"run" yaml:"run"`
	Gate    int    `json:"gate" yaml:"gate"`
	Trigger int    `json:"trigger" yaml:"trigger"`
	Device  string `json:"device" yaml:"device"`
	Band    string `json:"band,omitempty" yaml:"band,omitempty"`
}

func describeFiles(paths ...string) []DeviceFile {
	var out []DeviceFile
	for _, p := range paths {
		if p == "" {
			continue
		}
		fn, ok := spikeglx.ParseFileName(p)
		if !ok {
			continue
		}
		out = append(out, DeviceFile{
			Path:    p,
			Run:     fn.Run,
			Gate:    fn.Gate,
			Trigger: fn.Trigger,
			Device:  fn.Device(),
			Band:    fn.Band,
		})
	}
	return out
}

// RenderText implements TextRenderer.
func (r *DiscoverResult) RenderText(w io.Writer) error {
	for _, p := range r.Probes {
		fmt.Fprintf(w, "probe: %s\n", p)
	}
	nidq := r.NIDQ
	if nidq == "" {
		nidq = "(none)"
	}
	_, err := fmt.Fprintf(w, "nidq:  %s\n", nidq)
	return err
}

// NewDiscoverCommand creates the discover command.
func NewDiscoverCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "discover <folder>",
		Short: "List the probe and NI-DAQ files of a run folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := spikeglx.Discover(args[0])
			if err != nil {
				return wrapError("discover", err)
			}
			rootOpts.Logger.Debug("run discovered", "folder", run.Folder, "probes", len(run.Probes))
			return rootOpts.formatter(cmd).Success(&DiscoverResult{
				Folder:  run.Folder,
				Probes:  run.Probes,
				NIDQ:    run.NIDQ,
				Devices: describeFiles(slices.Concat(run.Probes, []string{run.NIDQ})...),
			})
		},
	}
}
