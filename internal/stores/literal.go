package stores

import (
	"context"
	"fmt"

	"github.com/sdhector/secretcheck/internal/logging"
	"github.com/sdhector/secretcheck/pkg/secretstore"
)

// LiteralStore serves secrets from an in-memory map. It backs the
// "literal" store type, which exists so manifests can be exercised
// without any cloud access (CI smoke runs, command tests).
type LiteralStore struct {
	values   map[string]string
	failures map[string]error
	logger   *logging.Logger
}

// NewLiteralStore builds a store from the manifest's values mapping.
func NewLiteralStore(cfg map[string]interface{}, logger *logging.Logger) (*LiteralStore, error) {
	s := &LiteralStore{
		values:   make(map[string]string),
		failures: make(map[string]error),
		logger:   logger,
	}

	raw, ok := cfg["values"]
	if !ok {
		return s, nil
	}
	entries, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("literal store values must be a mapping, got %T", raw)
	}
	for name, v := range entries {
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("literal store value for %q must be a string, got %T", name, v)
		}
		s.values[name] = str
	}
	return s, nil
}

// SetValue adds or replaces a secret.
func (s *LiteralStore) SetValue(name, value string) {
	s.values[name] = value
}

// SetFailure makes subsequent fetches of name return err.
func (s *LiteralStore) SetFailure(name string, err error) {
	s.failures[name] = err
}

// Name returns the store identifier.
func (s *LiteralStore) Name() string {
	return "literal"
}

// Validate always succeeds.
func (s *LiteralStore) Validate(ctx context.Context) error {
	return nil
}

// Fetch returns the stored value for name.
func (s *LiteralStore) Fetch(ctx context.Context, name string) (secretstore.Value, error) {
	if err, ok := s.failures[name]; ok {
		return secretstore.Value{}, err
	}
	value, ok := s.values[name]
	if !ok {
		return secretstore.Value{}, secretstore.NotFoundError{Store: s.Name(), Name: name}
	}
	s.logger.Debug("Serving literal secret %s", logging.Secret(name))
	return secretstore.NewValue([]byte(value), "literal"), nil
}
