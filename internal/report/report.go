// Package report renders checker output as a colorized console report.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/sdhector/secretcheck/internal/checker"
	"github.com/sdhector/secretcheck/internal/rules"
)

const rule = "========================================"

// Renderer writes a human-readable report to out. Color is controlled
// globally via color.NoColor.
type Renderer struct {
	out io.Writer
}

// NewRenderer returns a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Banner prints the header shown before secrets are fetched.
func (r *Renderer) Banner(project, storeName, toolVersion string) {
	cyan := color.New(color.FgCyan)
	cyan.Fprintln(r.out, rule)
	cyan.Fprintln(r.out, "Deployment Secret Verification")
	cyan.Fprintf(r.out, "Project: %s\n", project)
	cyan.Fprintf(r.out, "Store: %s\n", storeName)
	cyan.Fprintln(r.out, rule)
	fmt.Fprintln(r.out)
	if toolVersion != "" {
		color.New(color.FgGreen).Fprintf(r.out, "✓ gcloud installed: %s\n", toolVersion)
		fmt.Fprintln(r.out)
	}
	color.New(color.FgYellow).Fprintln(r.out, "Checking secrets...")
	fmt.Fprintln(r.out)
}

// Render prints the per-secret lines, the summary, the critical
// checks, and the final verdict.
func (r *Renderer) Render(rep *checker.Report) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	for _, result := range rep.Results {
		fmt.Fprintf(r.out, "Checking: %s", result.Name)
		if result.Status == checker.StatusFound {
			green.Fprintln(r.out, " OK")
			fmt.Fprintf(r.out, "  Value: %s\n", result.Display)
			if result.HasWhitespace {
				yellow.Fprintln(r.out, "  WARNING: Has leading/trailing whitespace!")
			}
		} else {
			red.Fprintln(r.out, " NOT FOUND")
		}
		fmt.Fprintln(r.out)
	}

	fmt.Fprintln(r.out)
	cyan.Fprintln(r.out, rule)
	cyan.Fprintln(r.out, "SUMMARY")
	cyan.Fprintln(r.out, rule)
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Total secrets checked: %d\n", len(rep.Results))
	green.Fprintf(r.out, "Found: %d\n", len(rep.Found))
	red.Fprintf(r.out, "Missing: %d\n", len(rep.Missing))
	fmt.Fprintln(r.out)

	if len(rep.Missing) > 0 {
		red.Fprintln(r.out, "Missing Secrets:")
		for _, name := range rep.Missing {
			fmt.Fprintf(r.out, "  - %s\n", name)
		}
		fmt.Fprintln(r.out)
	}

	if warned := invalidResults(rep); len(warned) > 0 {
		yellow.Fprintln(r.out, "Format Problems:")
		for _, result := range warned {
			fmt.Fprintf(r.out, "  - %s: %s\n", result.Name, result.Display)
		}
		fmt.Fprintln(r.out)
	}

	cyan.Fprintln(r.out, "CRITICAL CHECKS:")
	fmt.Fprintln(r.out)
	for _, check := range rep.Checks {
		if check.Satisfied {
			green.Fprintf(r.out, "OK %s: Present\n", check.Name)
		} else {
			red.Fprintf(r.out, "MISSING %s: MISSING (%s)\n", check.Name, check.FailureHint)
		}
	}

	fmt.Fprintln(r.out)
	cyan.Fprintln(r.out, rule)
	fmt.Fprintln(r.out)

	if rep.Pass {
		green.Fprintln(r.out, "OK ALL CRITICAL SECRETS PRESENT!")
		green.Fprintln(r.out, "Your backend should be able to start successfully.")
	} else {
		yellow.Fprintln(r.out, "WARNING CONFIGURATION INCOMPLETE!")
		yellow.Fprintln(r.out, "Please add the missing secrets before deploying.")
	}
	fmt.Fprintln(r.out)
}

func invalidResults(rep *checker.Report) []checker.Result {
	var out []checker.Result
	for _, result := range rep.Results {
		if result.Status == checker.StatusFound && result.Level != rules.Valid {
			out = append(out, result)
		}
	}
	return out
}
