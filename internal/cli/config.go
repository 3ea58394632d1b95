package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/simonhull/spikeglx/internal/config"
)

// skipConfigLoad marks commands that must run even when the config file on
// disk does not load.
const skipConfigLoad = "spikeglx/skip-config-load"

// ConfigInitResult reports where the config file was written.
type ConfigInitResult struct {
	Path string `json:"path" yaml:"path"`
}

// RenderText implements TextRenderer.
func (r *ConfigInitResult) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "wrote default config to %s\n", r.Path)
	return err
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the spikeglx config file",
	}
	cmd.AddCommand(newConfigInitCommand(rootOpts))
	return cmd
}

func newConfigInitCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Long: `Write the default configuration to the path given by --config, or to the
platform config directory when --config is not set. An existing file is
kept unless --force is given.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.ConfigPath
			if path == "" {
				path = config.DefaultPath()
			}
			if config.Exists(path) && !force {
				return NewExitError(ExitCommandError, fmt.Sprintf("config file %s already exists (use --force to overwrite)", path))
			}

			if err := config.Save(config.Default(), path); err != nil {
				return WrapExitError(ExitFailure, "write config", err)
			}
			rootOpts.Logger.Debug("config written", "path", path)
			return rootOpts.formatter(cmd).Success(&ConfigInitResult{Path: path})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
