package stores

import (
	"context"
	"fmt"
	"strings"

	scerrors "github.com/sdhector/secretcheck/internal/errors"
	"github.com/sdhector/secretcheck/internal/logging"
	pkgexec "github.com/sdhector/secretcheck/pkg/exec"
	"github.com/sdhector/secretcheck/pkg/secretstore"
)

// GcloudStore reads secrets through the gcloud CLI, the same path an
// operator uses by hand. It is the default store: no SDK credentials
// needed beyond an authenticated gcloud installation.
type GcloudStore struct {
	project  string
	executor pkgexec.CommandExecutor
	logger   *logging.Logger
	version  string
}

// NewGcloudStore creates a gcloud-CLI backed store for the given project.
func NewGcloudStore(project string, executor pkgexec.CommandExecutor, logger *logging.Logger) *GcloudStore {
	return &GcloudStore{
		project:  project,
		executor: executor,
		logger:   logger,
	}
}

// Name returns the store identifier.
func (s *GcloudStore) Name() string {
	return "gcloud"
}

// Validate checks that the gcloud CLI is installed and runnable. This is
// the run's single fatal prerequisite; nothing is fetched if it fails.
func (s *GcloudStore) Validate(ctx context.Context) error {
	stdout, stderr, err := s.executor.Execute(ctx, "gcloud", "--version")
	if err != nil {
		if pkgexec.IsNotInstalled(err) {
			return scerrors.WrapCommandNotFound("gcloud", err)
		}
		return scerrors.CommandError{
			Command:    "gcloud --version",
			ExitCode:   pkgexec.ExitCode(err),
			Message:    strings.TrimSpace(string(stderr)),
			Suggestion: "Install the Google Cloud SDK: https://cloud.google.com/sdk/docs/install",
		}
	}

	if lines := strings.SplitN(string(stdout), "\n", 2); len(lines) > 0 {
		s.version = strings.TrimSpace(lines[0])
	}
	s.logger.Debug("gcloud installed: %s", s.version)
	return nil
}

// Version returns the gcloud version line captured by Validate.
func (s *GcloudStore) Version() string {
	return s.version
}

// Fetch reads the latest version of a secret via
// `gcloud secrets versions access`. The payload is returned exactly as
// gcloud emits it, whitespace included.
func (s *GcloudStore) Fetch(ctx context.Context, name string) (secretstore.Value, error) {
	s.logger.Debug("Fetching secret %s from project %s", logging.Secret(name), s.project)

	stdout, stderr, err := s.executor.Execute(ctx, "gcloud",
		"secrets", "versions", "access", "latest",
		"--secret", name,
		"--project", s.project,
	)
	if err != nil {
		combined := string(stderr) + err.Error()
		switch {
		case strings.Contains(combined, "NOT_FOUND"):
			return secretstore.Value{}, secretstore.NotFoundError{Store: s.Name(), Name: name}
		case strings.Contains(combined, "PERMISSION_DENIED"),
			strings.Contains(combined, "UNAUTHENTICATED"):
			return secretstore.Value{}, secretstore.AuthError{
				Store:   s.Name(),
				Message: strings.TrimSpace(string(stderr)),
			}
		}
		return secretstore.Value{}, scerrors.UserError{
			Message:    fmt.Sprintf("Failed to fetch secret '%s'", name),
			Details:    strings.TrimSpace(string(stderr)),
			Suggestion: scerrors.GcloudSuggestion(combined),
			Err:        err,
		}
	}

	return secretstore.NewValue(stdout, "latest"), nil
}
