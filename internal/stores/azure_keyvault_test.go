package stores

import (
	"context"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdhector/secretcheck/internal/logging"
	"github.com/sdhector/secretcheck/pkg/secretstore"
)

type fakeKeyVaultClient struct {
	secrets map[string]string
	errs    map[string]error
}

func (f *fakeKeyVaultClient) GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	if err, ok := f.errs[name]; ok {
		return azsecrets.GetSecretResponse{}, err
	}
	value, ok := f.secrets[name]
	if !ok {
		return azsecrets.GetSecretResponse{}, &azcore.ResponseError{StatusCode: 404, ErrorCode: "SecretNotFound"}
	}
	return azsecrets.GetSecretResponse{Secret: azsecrets.Secret{Value: &value}}, nil
}

func newAzureForTest(t *testing.T, fake *fakeKeyVaultClient) *AzureKeyVaultStore {
	t.Helper()
	store, err := NewAzureKeyVaultStore(
		map[string]interface{}{"vault_url": "https://test.vault.azure.net"},
		logging.New(false, true), WithKeyVaultClient(fake))
	require.NoError(t, err)
	return store
}

func TestAzureStoreFetch(t *testing.T) {
	store := newAzureForTest(t, &fakeKeyVaultClient{
		secrets: map[string]string{"jwt-secret": "0123456789abcdef0123456789abcdef"},
	})

	value, err := store.Fetch(context.Background(), "jwt-secret")
	require.NoError(t, err)
	defer value.Destroy()

	raw, err := value.Reveal()
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", raw)
}

func TestAzureStoreFetchNotFound(t *testing.T) {
	store := newAzureForTest(t, &fakeKeyVaultClient{})

	_, err := store.Fetch(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, secretstore.IsNotFound(err))
}

func TestAzureStoreFetchForbidden(t *testing.T) {
	store := newAzureForTest(t, &fakeKeyVaultClient{
		errs: map[string]error{
			"jwt-secret": &azcore.ResponseError{StatusCode: 403, ErrorCode: "Forbidden"},
		},
	})

	_, err := store.Fetch(context.Background(), "jwt-secret")
	require.Error(t, err)

	var authErr secretstore.AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestAzureStoreRequiresVaultURL(t *testing.T) {
	_, err := NewAzureKeyVaultStore(nil, logging.New(false, true))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vault_url")
}

func TestAzureStoreValidate(t *testing.T) {
	store := newAzureForTest(t, &fakeKeyVaultClient{})
	assert.NoError(t, store.Validate(context.Background()))
	assert.Equal(t, "azure.keyvault", store.Name())
}
