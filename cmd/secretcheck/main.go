package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sdhector/secretcheck/cmd/secretcheck/commands"
	"github.com/sdhector/secretcheck/internal/config"
	"github.com/sdhector/secretcheck/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		project    string
		noColor    bool
		debug      bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "secretcheck",
		Short: "Verify deployment secrets before shipping a backend",
		Long: `secretcheck fetches each secret a deployment needs from its secret
store, validates the value's format, and reports whether the
configuration is complete enough to deploy.

Running secretcheck with no subcommand performs the full verification.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger with parsed flags
			logger := logging.New(debug, noColor)
			if noColor {
				color.NoColor = true
			}

			// Update config with parsed values
			cfg.Path = configFile
			cfg.ProjectFlag = project
			cfg.Logger = logger
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunCheck(cmd.Context(), cfg, commands.CheckOptions{
				Out: cmd.OutOrStdout(),
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Manifest file path")
	rootCmd.PersistentFlags().StringVar(&project, "project", "", "Override the manifest's project ID")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	// Add commands
	rootCmd.AddCommand(
		commands.NewCheckCommand(cfg),
		commands.NewSecretsCommand(cfg),
		commands.NewDoctorCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	return rootCmd.Execute()
}
