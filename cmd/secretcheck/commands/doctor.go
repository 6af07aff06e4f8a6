package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sdhector/secretcheck/internal/config"
	"github.com/sdhector/secretcheck/internal/stores"
	pkgexec "github.com/sdhector/secretcheck/pkg/exec"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	return newDoctorCommand(cfg, nil)
}

func newDoctorCommand(cfg *config.Config, executor pkgexec.CommandExecutor) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check manifest validity and store connectivity",
		Long: `Verify that the manifest parses, the secret store is reachable, and
its prerequisite tooling is installed. No secret values are fetched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Logger.Info("Checking configuration...")
			if err := cfg.Load(); err != nil {
				cfg.Logger.Error("Configuration error: %v", err)
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg.Logger.Info("✓ Configuration loaded (%d secrets)", len(cfg.Definition.Secrets))

			exec := executor
			if exec == nil {
				exec = pkgexec.DefaultExecutor()
			}

			store, err := stores.New(cmd.Context(), cfg, exec)
			if err != nil {
				return err
			}

			status := "✓ healthy"
			message := "Store is ready"
			validateErr := store.Validate(cmd.Context())
			if validateErr != nil {
				status = "✗ error"
				message = validateErr.Error()
			} else if version := toolVersion(store); version != "" {
				message = version
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "STORE\tPROJECT\tSTATUS\tMESSAGE\n")
			fmt.Fprintf(w, "-----\t-------\t------\t-------\n")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", store.Name(), cfg.Definition.Project, status, message)
			if err := w.Flush(); err != nil {
				return err
			}

			if validateErr != nil {
				return fmt.Errorf("store is not healthy: %w", validateErr)
			}

			cfg.Logger.Info("✓ All systems operational!")
			return nil
		},
	}

	return cmd
}
