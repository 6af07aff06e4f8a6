package stores

import (
	"context"
	"fmt"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	scerrors "github.com/sdhector/secretcheck/internal/errors"
	"github.com/sdhector/secretcheck/internal/logging"
	"github.com/sdhector/secretcheck/pkg/secretstore"
)

// SecretManagerAPI is the slice of the GCP Secret Manager client the
// store needs. Narrowed to an interface so tests can fake it.
type SecretManagerAPI interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// GCPSecretManagerStore reads secrets with the Secret Manager SDK
// directly, without shelling out to gcloud. Useful in CI where the SDK
// credentials chain (service account key, workload identity) is set up
// but the CLI is not.
type GCPSecretManagerStore struct {
	project string
	client  SecretManagerAPI
	logger  *logging.Logger
}

// GCPOption configures a GCPSecretManagerStore.
type GCPOption func(*GCPSecretManagerStore)

// WithSecretManagerClient injects a custom client (for testing).
func WithSecretManagerClient(client SecretManagerAPI) GCPOption {
	return func(s *GCPSecretManagerStore) {
		s.client = client
	}
}

// NewGCPSecretManagerStore creates an SDK-backed store. Config keys:
// credentials_file (optional service account key path).
func NewGCPSecretManagerStore(ctx context.Context, project string, cfg map[string]interface{}, logger *logging.Logger, opts ...GCPOption) (*GCPSecretManagerStore, error) {
	if project == "" {
		if env := os.Getenv("GOOGLE_CLOUD_PROJECT"); env != "" {
			project = env
		} else {
			return nil, scerrors.ConfigError{
				Field:      "project",
				Message:    "project is required for the GCP Secret Manager store",
				Suggestion: "Set project in secretcheck.yaml, pass --project, or set GOOGLE_CLOUD_PROJECT",
			}
		}
	}

	s := &GCPSecretManagerStore{project: project, logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		var clientOpts []option.ClientOption
		if keyPath, ok := cfg["credentials_file"].(string); ok && keyPath != "" {
			clientOpts = append(clientOpts, option.WithCredentialsFile(keyPath))
		}
		client, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
		}
		s.client = client
	}

	return s, nil
}

// Name returns the store identifier.
func (s *GCPSecretManagerStore) Name() string {
	return "gcp.secretmanager"
}

// Validate confirms the client was constructed; credential problems
// surface on first fetch with an AuthError.
func (s *GCPSecretManagerStore) Validate(ctx context.Context) error {
	if s.client == nil {
		return scerrors.UserError{
			Message:    "GCP Secret Manager client is not configured",
			Suggestion: "Check SDK credentials (GOOGLE_APPLICATION_CREDENTIALS or workload identity)",
		}
	}
	return nil
}

// Fetch accesses the latest version of the named secret.
func (s *GCPSecretManagerStore) Fetch(ctx context.Context, name string) (secretstore.Value, error) {
	resource := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.project, name)
	s.logger.Debug("Accessing %s", logging.Secret(resource))

	resp, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: resource,
	})
	if err != nil {
		switch status.Code(err) {
		case codes.NotFound:
			return secretstore.Value{}, secretstore.NotFoundError{Store: s.Name(), Name: name}
		case codes.PermissionDenied, codes.Unauthenticated:
			return secretstore.Value{}, secretstore.AuthError{Store: s.Name(), Message: err.Error()}
		}
		return secretstore.Value{}, fmt.Errorf("failed to access secret %s: %w", name, err)
	}

	if resp.GetPayload() == nil {
		return secretstore.Value{}, fmt.Errorf("secret %s has no payload", name)
	}

	return secretstore.NewValue(resp.GetPayload().GetData(), resp.GetName()), nil
}
