// Package checker fetches every secret in a manifest, applies its
// validation rule, and aggregates the critical deployment checks into
// a verdict.
package checker

import (
	"context"
	"strings"

	"github.com/sdhector/secretcheck/internal/config"
	"github.com/sdhector/secretcheck/internal/logging"
	"github.com/sdhector/secretcheck/internal/rules"
	"github.com/sdhector/secretcheck/pkg/secretstore"
)

// SecretStatus says whether a secret could be fetched at all.
type SecretStatus string

const (
	StatusFound   SecretStatus = "Found"
	StatusMissing SecretStatus = "Missing"
)

// Result is the outcome for a single secret. Length and HasWhitespace
// describe the fetched value; Display is the redacted validation
// message shown to the user.
type Result struct {
	Name          string
	Status        SecretStatus
	Length        int
	HasWhitespace bool
	Display       string
	Level         rules.Status
}

// CriticalCheck is one of the deployment preconditions derived from
// the per-secret results.
type CriticalCheck struct {
	Name        string
	Satisfied   bool
	FailureHint string
}

// Report is the full outcome of a run.
type Report struct {
	Project   string
	StoreName string
	Results   []Result
	Found     []string
	Missing   []string
	Checks    []CriticalCheck
	Pass      bool
}

// Checker runs the verification pass against a store.
type Checker struct {
	store   secretstore.Store
	project string
	specs   []config.SecretSpec
	logger  *logging.Logger
}

// New builds a Checker over the given store and secret specs.
func New(store secretstore.Store, project string, specs []config.SecretSpec, logger *logging.Logger) *Checker {
	return &Checker{store: store, project: project, specs: specs, logger: logger}
}

// Run fetches each secret in manifest order and builds the report. A
// secret that cannot be fetched counts as missing rather than aborting
// the run; a present value that fails its rule still counts as found.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	rep := &Report{
		Project:   c.project,
		StoreName: c.store.Name(),
	}

	found := make(map[string]bool, len(c.specs))
	for _, spec := range c.specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := c.checkOne(ctx, spec)
		if err != nil {
			if !secretstore.IsNotFound(err) {
				c.logger.Debug("Fetch of %s failed: %v", logging.Secret(spec.Name), err)
			}
			result = Result{Name: spec.Name, Status: StatusMissing, Display: "Not found"}
		}

		rep.Results = append(rep.Results, result)
		if result.Status == StatusFound {
			found[spec.Name] = true
			rep.Found = append(rep.Found, spec.Name)
		} else {
			rep.Missing = append(rep.Missing, spec.Name)
		}
	}

	rep.Checks = criticalChecks(found)

	rep.Pass = len(rep.Missing) == 0
	for _, check := range rep.Checks {
		if !check.Satisfied {
			rep.Pass = false
		}
	}
	return rep, nil
}

func (c *Checker) checkOne(ctx context.Context, spec config.SecretSpec) (Result, error) {
	value, err := c.store.Fetch(ctx, spec.Name)
	if err != nil {
		return Result{}, err
	}
	defer value.Destroy()

	raw, err := value.Reveal()
	if err != nil {
		return Result{}, err
	}

	trimmed := strings.TrimSpace(raw)
	outcome := spec.Resolve().Apply(trimmed)

	return Result{
		Name:          spec.Name,
		Status:        StatusFound,
		Length:        len(trimmed),
		HasWhitespace: raw != trimmed,
		Display:       outcome.Message,
		Level:         outcome.Status,
	}, nil
}

func criticalChecks(found map[string]bool) []CriticalCheck {
	return []CriticalCheck{
		{
			Name:        "Anthropic/Claude API Key",
			Satisfied:   found["anthropic-api-key"] || found["claude-api-key"],
			FailureHint: "CRITICAL!",
		},
		{
			Name:        "JWT Secret",
			Satisfied:   found["jwt-secret"],
			FailureHint: "CRITICAL!",
		},
		{
			Name:        "Database credentials",
			Satisfied:   found["database-url"] || found["db-password"],
			FailureHint: "CRITICAL!",
		},
		{
			Name:        "Google OAuth",
			Satisfied:   found["google-client-id"] && found["google-client-secret"],
			FailureHint: "Authentication won't work!",
		},
		{
			Name:        "Backend/Frontend URLs",
			Satisfied:   found["backend-url"] && found["frontend-url"],
			FailureHint: "CORS/OAuth will fail!",
		},
	}
}
