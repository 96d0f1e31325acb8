package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries the state shared by subcommands.
type app struct {
	configPath string
	logLevel   string

	cfg    *Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "rosctl",
		Short: "Run RouterOS API commands against one or more devices",
		Long: `rosctl speaks the RouterOS API protocol (port 8728, or 8729 with TLS).
It logs in to every configured device over an independent connection,
runs the given command sentence and prints the replies as tables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.Logging.Level = a.logLevel
			}

			a.cfg = cfg
			a.logger = newLogger(cfg.Logging, os.Stderr)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newRunCmd(a))
	return root
}
