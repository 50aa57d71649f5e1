// SPDX-License-Identifier: MIT

// Command subspaces computes the four fundamental subspaces of a matrix from the
// command line, or serves them over HTTP.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/troy-haydens-bot/Strang-4-subspace/internal/config"
	"github.com/troy-haydens-bot/Strang-4-subspace/internal/logging"
)

const (
	appName = "subspaces"
	version = "v0.1.0"
)

// app carries state resolved by the root command before any subcommand runs.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	cfg        *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Four fundamental subspaces of a real matrix",
		Version: version,
		Long: `subspaces computes rank and orthonormal bases for the column space C(A),
null space N(A), row space C(A^T) and left null space N(A^T) of a matrix.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug|info|warn|error); overrides config")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format (console|json); overrides config")

	rootCmd.AddCommand(newComputeCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", appName, version)
		},
	})

	return rootCmd
}

// init loads configuration, applies flag overrides and installs the logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	if _, err = logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	a.cfg = cfg
	log.Debug().Str("command", cmd.Name()).Str("config", a.configPath).Msg("configuration loaded")

	return nil
}
