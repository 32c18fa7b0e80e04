package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	config "github.com/hanpama/gqlcore/internal/config"
	logging "github.com/hanpama/gqlcore/internal/logging"
)

// RootOptions holds global flags and the configuration loaded before any
// subcommand runs.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string

	Config *config.Config
	Logger *slog.Logger
}

// NewRootCommand creates the gqlcore command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gqlcore",
		Short: "GraphQL engine tools",
		Long: `Parse, format, validate and execute GraphQL documents.

Settings are read from gqlcore.yaml in the working directory (or --config)
and GQLCORE_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ./gqlcore.yaml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (text|json)")

	cmd.AddCommand(NewFormatCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewRenderSchemaCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))

	return cmd
}

func (o *RootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = o.LogLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = o.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.Config = cfg
	o.Logger = logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	return nil
}
