package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sdhector/secretcheck/internal/config"
)

// NewSecretsCommand creates the secrets command, which lists the
// manifest's secret names and their validation rules without touching
// the store.
func NewSecretsCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "secrets",
		Short: "List the secrets the manifest will verify",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "NAME\tRULE\n")
			fmt.Fprintf(w, "----\t----\n")
			for _, spec := range cfg.Definition.Secrets {
				fmt.Fprintf(w, "%s\t%s\n", spec.Name, spec.Resolve().Describe())
			}
			return w.Flush()
		},
	}
}
