package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/simonhull/spikeglx"
)

type versionResult struct {
	spikeglx.VersionInfo `yaml:",inline"`
}

func (r *versionResult) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "spikeglx %s (commit %s, built %s, %s)\n",
		r.Version, r.GitCommit, r.BuildTime, r.GoVersion)
	return err
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.formatter(cmd).Success(&versionResult{spikeglx.GetVersionInfo()})
		},
	}
}
