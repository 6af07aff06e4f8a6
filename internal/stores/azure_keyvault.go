package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"

	scerrors "github.com/sdhector/secretcheck/internal/errors"
	"github.com/sdhector/secretcheck/internal/logging"
	"github.com/sdhector/secretcheck/pkg/secretstore"
)

// KeyVaultAPI is the slice of the Azure Key Vault secrets client the
// store needs, narrowed for test fakes.
type KeyVaultAPI interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// AzureKeyVaultStore reads secrets from an Azure Key Vault. Config keys:
// vault_url (required). Authentication goes through the default Azure
// credential chain (env vars, managed identity, az CLI).
type AzureKeyVaultStore struct {
	client   KeyVaultAPI
	vaultURL string
	logger   *logging.Logger
}

// AzureOption configures an AzureKeyVaultStore.
type AzureOption func(*AzureKeyVaultStore)

// WithKeyVaultClient injects a custom client (for testing).
func WithKeyVaultClient(client KeyVaultAPI) AzureOption {
	return func(s *AzureKeyVaultStore) {
		s.client = client
	}
}

// NewAzureKeyVaultStore creates a Key Vault backed store.
func NewAzureKeyVaultStore(cfg map[string]interface{}, logger *logging.Logger, opts ...AzureOption) (*AzureKeyVaultStore, error) {
	vaultURL, _ := cfg["vault_url"].(string)

	s := &AzureKeyVaultStore{vaultURL: vaultURL, logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		if vaultURL == "" {
			return nil, scerrors.ConfigError{
				Field:      "store.vault_url",
				Message:    "vault_url is required for the Azure Key Vault store",
				Suggestion: "Set vault_url to https://<vault-name>.vault.azure.net",
			}
		}
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build Azure credential: %w", err)
		}
		client, err := azsecrets.NewClient(vaultURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
		}
		s.client = client
	}

	return s, nil
}

// Name returns the store identifier.
func (s *AzureKeyVaultStore) Name() string {
	return "azure.keyvault"
}

// Validate confirms the client was constructed.
func (s *AzureKeyVaultStore) Validate(ctx context.Context) error {
	if s.client == nil {
		return errors.New("Azure Key Vault client is not configured")
	}
	return nil
}

// Fetch reads the current version of the named secret. An empty version
// string asks Key Vault for the latest one.
func (s *AzureKeyVaultStore) Fetch(ctx context.Context, name string) (secretstore.Value, error) {
	s.logger.Debug("Fetching secret %s from %s", logging.Secret(name), s.vaultURL)

	resp, err := s.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) {
			switch respErr.StatusCode {
			case 404:
				return secretstore.Value{}, secretstore.NotFoundError{Store: s.Name(), Name: name}
			case 401, 403:
				return secretstore.Value{}, secretstore.AuthError{Store: s.Name(), Message: respErr.ErrorCode}
			}
		}
		return secretstore.Value{}, fmt.Errorf("failed to get secret %s: %w", name, err)
	}

	if resp.Value == nil {
		return secretstore.Value{}, fmt.Errorf("secret %s has no value", name)
	}

	version := ""
	if resp.ID != nil {
		version = resp.ID.Version()
	}
	return secretstore.NewValue([]byte(*resp.Value), version), nil
}
