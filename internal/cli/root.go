// Package cli implements the spikeglx command.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/simonhull/spikeglx"
	"github.com/simonhull/spikeglx/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	Format     string // "text" | "json" | "yaml"

	// Resolved in PersistentPreRunE.
	Config *config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = config.Formats

// NewRootCommand creates the root command for the spikeglx CLI.
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCommand()
	return cmd
}

func newRootCommand() (*cobra.Command, *RootOptions) {
	opts := &RootOptions{Config: config.Default()}

	cmd := &cobra.Command{
		Use:   "spikeglx",
		Short: "Inspect SpikeGLX recordings",
		Long: `Inspect SpikeGLX electrophysiology recordings.

Reads .meta sidecar files, reconstructs Neuropixels probe geometry,
extracts digital sync edges from .bin files and exports them to SQLite.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	cmd.AddCommand(NewMetaCommand(opts))
	cmd.AddCommand(NewGeometryCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))
	cmd.AddCommand(NewDiscoverCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd, opts
}

// resolve loads the config file and builds the logger. Without --config
// the file at config.DefaultPath is used when present. Flags given on the
// command line win over config values.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	path := o.ConfigPath
	if path == "" && config.Exists(config.DefaultPath()) {
		path = config.DefaultPath()
	}
	if path != "" && cmd.Annotations[skipConfigLoad] == "" {
		cfg, err := config.Load(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "load config", err)
		}
		o.Config = cfg
	}

	if !cmd.Flags().Changed("format") {
		o.Format = o.Config.Output.Format
	}
	if !slices.Contains(ValidFormats, o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	o.Logger = newLogger(cmd.ErrOrStderr(), o.Config.Logging.Level, o.Verbose)
	return nil
}

func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	if verbose {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// libraryOptions translates the resolved configuration into spikeglx options.
func (o *RootOptions) libraryOptions() []spikeglx.Option {
	opts := []spikeglx.Option{
		spikeglx.WithShankSeparation(o.Config.ShankSeparationUM),
		spikeglx.WithLogger(o.Logger),
	}
	if o.Config.StrictGeometry {
		opts = append(opts, spikeglx.WithStrictGeometry())
	}
	return opts
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// Execute runs the command line and returns the process exit code. Errors
// are reported on stderr in the selected format.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd, opts := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	format := opts.Format
	if !slices.Contains(ValidFormats, format) {
		format = "text"
	}
	f := &OutputFormatter{Format: format, Writer: stderr, Verbose: opts.Verbose}
	code, errCode := classify(err)
	f.Error(errCode, err.Error(), nil)
	return code
}
