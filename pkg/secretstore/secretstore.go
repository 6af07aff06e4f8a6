// Package secretstore defines the interface secretcheck uses to read
// secrets from a remote store.
//
// A Store only needs to fetch the current value of a named secret and to
// verify its own prerequisites. The verification logic never writes to
// the store, and it treats every fetch failure (missing secret, auth
// problem, broken tooling) as a single non-fatal outcome: the secret is
// reported Missing and the run continues.
//
// Fetched payloads are returned sealed in an encrypted in-memory buffer
// (internal/secure) so plaintext secrets do not linger between fetch and
// validation.
package secretstore

import (
	"context"
	"errors"

	"github.com/sdhector/secretcheck/internal/secure"
)

// Store reads secrets from a backing secret-management system.
type Store interface {
	// Name returns the store's stable identifier, e.g. "gcloud" or
	// "aws.secretsmanager". Used in logs and in the report banner.
	Name() string

	// Fetch retrieves the current value of the named secret.
	// Returns NotFoundError when the secret does not exist and
	// AuthError when the store rejects the caller's credentials.
	Fetch(ctx context.Context, name string) (Value, error)

	// Validate checks the store's prerequisites: required CLI tooling
	// on PATH, reachable endpoint, usable credentials. Called once
	// before any secret is fetched; a failure aborts the whole run.
	Validate(ctx context.Context) error
}

// Value is a fetched secret payload, sealed in protected memory.
type Value struct {
	// Secret holds the raw payload exactly as the store returned it,
	// including any surrounding whitespace.
	Secret *secure.Buffer

	// Version identifies the store-side version that was read, when
	// the store exposes one.
	Version string
}

// NewValue seals a raw payload into a Value. Empty payloads carry no
// buffer; Reveal returns the empty string for them.
func NewValue(data []byte, version string) Value {
	v := Value{Version: version}
	if len(data) > 0 {
		v.Secret = secure.NewBuffer(data)
	}
	return v
}

// Reveal decrypts the payload and returns it as a string. The sealed
// copy stays usable; callers that are done with the value should also
// call Destroy.
func (v Value) Reveal() (string, error) {
	if v.Secret == nil {
		return "", nil
	}
	locked, err := v.Secret.Open()
	if err != nil {
		return "", err
	}
	defer locked.Destroy()
	return string(locked.Bytes()), nil
}

// Destroy discards the sealed payload.
func (v Value) Destroy() {
	if v.Secret != nil {
		v.Secret.Destroy()
	}
}

// NotFoundError reports that a secret does not exist in the store.
type NotFoundError struct {
	Store string
	Name  string
}

func (e NotFoundError) Error() string {
	return "secret not found: " + e.Name + " in " + e.Store
}

// AuthError reports that the store rejected the caller's credentials.
type AuthError struct {
	Store   string
	Message string
}

func (e AuthError) Error() string {
	return "authentication failed for " + e.Store + ": " + e.Message
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
