// Package cmd provides the CLI commands for mnemo.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mnemo-systems/mnemo/internal/config"
	"github.com/mnemo-systems/mnemo/internal/logging"
	"github.com/mnemo-systems/mnemo/pkg/version"
)

var (
	configPath string
	debugMode  bool

	loggingCleanup func()
)

// NewRootCmd creates the root command for the mnemo CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemo",
		Short: "Persistent memory service for AI agents",
		Long: `mnemo stores, retrieves, and forgets memories for AI agents over
MCP (stdio, HTTP, or WebSocket). It combines lexical and vector search with
a five-signal relevance ranker, a spaced-repetition review scheduler, and a
forgetting policy that ages memories out on recency, usage, and importance.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetVersionTemplate("mnemo version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a mnemo config YAML file")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.mnemo/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRememberCmd())
	cmd.AddCommand(newRecallCmd())
	cmd.AddCommand(newPinCmd())
	cmd.AddCommand(newForgetCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}
	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return err
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("debug logging enabled", slog.String("log_file", logging.DefaultLogPath()))
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// loadConfig loads the config file named by --config, or the baseline
// defaults overlaid with environment variables if no file was given.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}
