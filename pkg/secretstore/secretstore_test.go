package secretstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRevealReturnsRawPayload(t *testing.T) {
	v := NewValue([]byte("  sk-ant-abc123\n"), "latest")

	raw, err := v.Reveal()
	require.NoError(t, err)
	assert.Equal(t, "  sk-ant-abc123\n", raw, "payload must not be trimmed by the store layer")
	assert.Equal(t, "latest", v.Version)
}

func TestValueEmptyPayload(t *testing.T) {
	v := NewValue(nil, "latest")
	defer v.Destroy()

	raw, err := v.Reveal()
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestValueDestroy(t *testing.T) {
	v := NewValue([]byte("payload"), "1")
	v.Destroy()
	v.Destroy() // idempotent

	_, err := v.Reveal()
	assert.Error(t, err)
}

func TestIsNotFound(t *testing.T) {
	nf := NotFoundError{Store: "gcloud", Name: "jwt-secret"}

	assert.True(t, IsNotFound(nf))
	assert.True(t, IsNotFound(fmt.Errorf("fetch failed: %w", nf)))
	assert.False(t, IsNotFound(errors.New("other")))
	assert.False(t, IsNotFound(AuthError{Store: "gcloud", Message: "no active account"}))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "secret not found: jwt-secret in gcloud",
		NotFoundError{Store: "gcloud", Name: "jwt-secret"}.Error())
	assert.Equal(t, "authentication failed for gcloud: no active account",
		AuthError{Store: "gcloud", Message: "no active account"}.Error())
}
