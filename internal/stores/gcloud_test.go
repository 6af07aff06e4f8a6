package stores

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scerrors "github.com/sdhector/secretcheck/internal/errors"
	"github.com/sdhector/secretcheck/internal/logging"
	pkgexec "github.com/sdhector/secretcheck/pkg/exec"
	"github.com/sdhector/secretcheck/pkg/secretstore"
)

func newGcloudForTest(mock *pkgexec.MockCommandExecutor) *GcloudStore {
	return NewGcloudStore("test-project", mock, logging.New(false, true))
}

func TestGcloudValidate(t *testing.T) {
	mock := pkgexec.NewMockCommandExecutor()
	mock.AddResponse("gcloud --version", pkgexec.MockResponse{
		Stdout: []byte("Google Cloud SDK 502.0.0\nbq 2.1.8\ncore 2024.11.15\n"),
	})

	store := newGcloudForTest(mock)
	require.NoError(t, store.Validate(context.Background()))
	assert.Equal(t, "Google Cloud SDK 502.0.0", store.Version())
}

func TestGcloudValidateMissingBinary(t *testing.T) {
	mock := pkgexec.NewMockCommandExecutor()
	mock.AddResponse("gcloud --version", pkgexec.MockResponse{
		Err: &exec.Error{Name: "gcloud", Err: exec.ErrNotFound},
	})

	store := newGcloudForTest(mock)
	err := store.Validate(context.Background())
	require.Error(t, err)

	var cmdErr scerrors.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Contains(t, cmdErr.Suggestion, "cloud.google.com/sdk")
}

func TestGcloudFetch(t *testing.T) {
	mock := pkgexec.NewMockCommandExecutor()
	mock.AddResponse("gcloud secrets versions access latest --secret anthropic-api-key --project test-project",
		pkgexec.MockResponse{Stdout: []byte("sk-ant-abc123")})

	store := newGcloudForTest(mock)
	value, err := store.Fetch(context.Background(), "anthropic-api-key")
	require.NoError(t, err)
	defer value.Destroy()

	raw, err := value.Reveal()
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-abc123", raw)
	assert.Equal(t, "latest", value.Version)

	calls := mock.Calls("gcloud")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{
		"secrets", "versions", "access", "latest",
		"--secret", "anthropic-api-key", "--project", "test-project",
	}, calls[0].Args)
}

func TestGcloudFetchPreservesWhitespace(t *testing.T) {
	mock := pkgexec.NewMockCommandExecutor()
	mock.AddResponse("gcloud secrets versions access", pkgexec.MockResponse{
		Stdout: []byte("  padded-value\n"),
	})

	store := newGcloudForTest(mock)
	value, err := store.Fetch(context.Background(), "jwt-secret")
	require.NoError(t, err)
	defer value.Destroy()

	raw, err := value.Reveal()
	require.NoError(t, err)
	assert.Equal(t, "  padded-value\n", raw)
}

func TestGcloudFetchNotFound(t *testing.T) {
	mock := pkgexec.NewMockCommandExecutor()
	mock.AddResponse("gcloud secrets versions access", pkgexec.MockResponse{
		Stderr: []byte("ERROR: (gcloud.secrets.versions.access) NOT_FOUND: Secret [jwt-secret] not found"),
		Err:    errors.New("exit status 1"),
	})

	store := newGcloudForTest(mock)
	_, err := store.Fetch(context.Background(), "jwt-secret")
	require.Error(t, err)
	assert.True(t, secretstore.IsNotFound(err))
}

func TestGcloudFetchPermissionDenied(t *testing.T) {
	mock := pkgexec.NewMockCommandExecutor()
	mock.AddResponse("gcloud secrets versions access", pkgexec.MockResponse{
		Stderr: []byte("ERROR: PERMISSION_DENIED: caller lacks secretmanager.versions.access"),
		Err:    errors.New("exit status 1"),
	})

	store := newGcloudForTest(mock)
	_, err := store.Fetch(context.Background(), "jwt-secret")
	require.Error(t, err)

	var authErr secretstore.AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestGcloudFetchOtherFailure(t *testing.T) {
	mock := pkgexec.NewMockCommandExecutor()
	mock.AddResponse("gcloud secrets versions access", pkgexec.MockResponse{
		Stderr: []byte("ERROR: network unreachable"),
		Err:    errors.New("exit status 1"),
	})

	store := newGcloudForTest(mock)
	_, err := store.Fetch(context.Background(), "jwt-secret")
	require.Error(t, err)
	assert.False(t, secretstore.IsNotFound(err))

	var userErr scerrors.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.Details, "network unreachable")
}
