package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sdhector/secretcheck/internal/checker"
	"github.com/sdhector/secretcheck/internal/config"
	"github.com/sdhector/secretcheck/internal/report"
	"github.com/sdhector/secretcheck/internal/stores"
	pkgexec "github.com/sdhector/secretcheck/pkg/exec"
)

// CheckOptions tweaks a verification run. Zero value gives the default
// behavior: real command executor, stdout, informational exit status.
type CheckOptions struct {
	// Strict turns a failed verdict into a command error.
	Strict bool
	// Executor overrides the command executor (for testing).
	Executor pkgexec.CommandExecutor
	// Out overrides the report destination.
	Out io.Writer
}

// RunCheck loads the manifest, fetches every secret, and renders the
// report. It returns an error only for prerequisite or configuration
// failures; a failed verdict is informational unless opts.Strict is set.
func RunCheck(ctx context.Context, cfg *config.Config, opts CheckOptions) error {
	if err := cfg.Load(); err != nil {
		return err
	}

	executor := opts.Executor
	if executor == nil {
		executor = pkgexec.DefaultExecutor()
	}

	store, err := stores.New(ctx, cfg, executor)
	if err != nil {
		return err
	}
	if err := store.Validate(ctx); err != nil {
		return err
	}

	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	renderer := report.NewRenderer(out)

	def := cfg.Definition
	version := toolVersion(store)
	renderer.Banner(def.Project, store.Name(), version)

	rep, err := checker.New(store, def.Project, def.Secrets, cfg.Logger).Run(ctx)
	if err != nil {
		return err
	}
	renderer.Render(rep)

	if opts.Strict && !rep.Pass {
		return fmt.Errorf("verification failed: %d secrets missing", len(rep.Missing))
	}
	return nil
}

// NewCheckCommand creates the check command.
func NewCheckCommand(cfg *config.Config) *cobra.Command {
	return newCheckCommand(cfg, nil)
}

func newCheckCommand(cfg *config.Config, executor pkgexec.CommandExecutor) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify deployment secrets exist and match their expected formats",
		Long: `Fetch every secret in the manifest from the configured store, validate
each value against its format rule, and report the missing set, the
critical deployment checks, and a final verdict.

The exit status reflects prerequisite failures only (store unreachable,
invalid manifest). A failed verdict still exits 0 unless --strict is
given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunCheck(cmd.Context(), cfg, CheckOptions{
				Strict:   strict,
				Executor: executor,
				Out:      cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when the verdict fails")

	return cmd
}
