package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	scerrors "github.com/sdhector/secretcheck/internal/errors"
	"github.com/sdhector/secretcheck/internal/logging"
	"github.com/sdhector/secretcheck/internal/rules"
)

// DefaultPath is where Load looks for a manifest when --config is not given.
const DefaultPath = "secretcheck.yaml"

// DefaultProject is the GCP project the backend deploys into.
const DefaultProject = "professional-website-462321"

// Config holds the runtime configuration assembled from flags and the
// manifest file.
type Config struct {
	Path           string
	ProjectFlag    string // --project override, applied after Load
	Logger         *logging.Logger
	NonInteractive bool
	Definition     *Definition
}

// Definition is the secretcheck.yaml structure.
type Definition struct {
	Version int          `yaml:"version"`
	Project string       `yaml:"project,omitempty"`
	Store   StoreConfig  `yaml:"store,omitempty"`
	Secrets []SecretSpec `yaml:"secrets,omitempty"`
}

// StoreConfig selects and configures the secret store backend.
type StoreConfig struct {
	Type   string                 `yaml:"type"`
	Config map[string]interface{} `yaml:",inline"`
}

// SecretSpec names one expected secret, with an optional rule override.
// A nil Rule means the built-in rule table decides.
type SecretSpec struct {
	Name string      `yaml:"name"`
	Rule *rules.Rule `yaml:"rule,omitempty"`
}

// Rule resolves the validation rule for this spec.
func (s SecretSpec) Resolve() rules.Rule {
	if s.Rule != nil {
		return *s.Rule
	}
	return rules.For(s.Name)
}

// manifestNames is the fixed, ordered list of secrets the backend needs.
var manifestNames = []string{
	"anthropic-api-key",
	"claude-api-key",
	"jwt-secret",
	"encryption-key",
	"token-encryption-key",
	"database-url",
	"db-password",
	"google-client-id",
	"google-client-secret",
	"backend-url",
	"frontend-url",
	"app-oauth-redirect-uri",
	"oauth-redirect-uri",
	"mcp-oauth-redirect-uri",
}

// Default returns the built-in manifest: the backend's fixed secret list
// against the gcloud CLI store.
func Default() *Definition {
	secrets := make([]SecretSpec, 0, len(manifestNames))
	for _, name := range manifestNames {
		secrets = append(secrets, SecretSpec{Name: name})
	}
	return &Definition{
		Version: 1,
		Project: DefaultProject,
		Store:   StoreConfig{Type: "gcloud"},
		Secrets: secrets,
	}
}

// Load reads the manifest. A missing file at the default path falls back
// to the built-in manifest; a missing file at an explicit --config path
// is an error.
func (c *Config) Load() error {
	path := c.Path
	explicit := path != "" && path != DefaultPath
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if !explicit {
				c.Definition = Default()
				c.applyOverrides()
				return nil
			}
			return scerrors.ConfigError{
				Field:      "config",
				Value:      path,
				Message:    "configuration file not found",
				Suggestion: "Omit --config to use the built-in manifest, or point it at an existing secretcheck.yaml",
			}
		}
		return scerrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	if err := validateSchema(data); err != nil {
		return err
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return scerrors.ConfigError{
			Field:      "config",
			Value:      path,
			Message:    "invalid YAML: " + err.Error(),
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	applyDefaults(&def)
	if err := checkManifest(&def); err != nil {
		return err
	}

	c.Definition = &def
	c.applyOverrides()
	return nil
}

func (c *Config) applyOverrides() {
	if c.ProjectFlag != "" {
		c.Definition.Project = c.ProjectFlag
	}
}

func applyDefaults(def *Definition) {
	if def.Project == "" {
		def.Project = DefaultProject
	}
	if def.Store.Type == "" {
		def.Store.Type = "gcloud"
	}
	if len(def.Secrets) == 0 {
		def.Secrets = Default().Secrets
	}
}

// checkManifest enforces the manifest invariants: every entry named, no
// duplicate names.
func checkManifest(def *Definition) error {
	seen := make(map[string]bool, len(def.Secrets))
	for i, spec := range def.Secrets {
		if spec.Name == "" {
			return scerrors.ConfigError{
				Field:   fmt.Sprintf("secrets[%d].name", i),
				Message: "secret name must not be empty",
			}
		}
		if seen[spec.Name] {
			return scerrors.ConfigError{
				Field:      "secrets",
				Value:      spec.Name,
				Message:    "duplicate secret name",
				Suggestion: "Each secret may appear only once in the manifest",
			}
		}
		seen[spec.Name] = true
	}
	return nil
}

// manifestSchema validates the rough shape of secretcheck.yaml before
// decoding. Store configuration is store-specific and left open.
const manifestSchema = `{
  "type": "object",
  "properties": {
    "version": {"type": "integer", "minimum": 0},
    "project": {"type": "string"},
    "store": {
      "type": "object",
      "properties": {
        "type": {"type": "string"}
      }
    },
    "secrets": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "rule": {"type": "object"}
        },
        "required": ["name"]
      }
    }
  }
}`

func validateSchema(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return scerrors.ConfigError{
			Field:      "config",
			Message:    "invalid YAML: " + err.Error(),
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert manifest for validation: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(manifestSchema),
		gojsonschema.NewBytesLoader(jsonDoc),
	)
	if err != nil {
		return fmt.Errorf("manifest schema validation error: %w", err)
	}

	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return scerrors.ConfigError{
			Field:   "config",
			Message: "manifest does not match the expected schema:\n  - " + strings.Join(msgs, "\n  - "),
		}
	}
	return nil
}
