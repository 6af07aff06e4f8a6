// Package rules holds the per-secret format validation table.
//
// Each secret name maps to a Rule describing the shape its value must
// have. Applying a rule is a pure function from the trimmed value to an
// Outcome; rules never mutate state and never touch the store, which
// keeps them independently testable.
package rules

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// Status classifies the result of applying a rule.
type Status int

const (
	// Valid means the value matches the expected format.
	Valid Status = iota
	// Invalid means the value is present but malformed. The secret
	// still counts as found; only the display message changes.
	Invalid
	// Warn flags a non-fatal concern, e.g. a plain-http URL.
	Warn
)

// Kind selects the validation behavior of a Rule.
type Kind string

const (
	KindPrefix      Kind = "prefix"
	KindSuffix      Kind = "suffix"
	KindMinLength   Kind = "min-length"
	KindBase64Key   Kind = "base64-key"
	KindHexToken    Kind = "hex-token"
	KindHTTPSURL    Kind = "https-url"
	KindDatabaseURL Kind = "database-url"
	KindOpaque      Kind = "opaque"
)

// Rule is a validation descriptor: a kind plus its parameters. Rules are
// immutable once built; the zero value behaves like KindOpaque.
type Rule struct {
	Kind      Kind   `yaml:"kind"`
	Prefix    string `yaml:"prefix,omitempty"`
	Suffix    string `yaml:"suffix,omitempty"`
	MinLength int    `yaml:"min_length,omitempty"`
	KeyBytes  int    `yaml:"key_bytes,omitempty"`
	HexLength int    `yaml:"hex_length,omitempty"`
}

// Outcome is the judgment a rule renders over a value.
type Outcome struct {
	Status  Status
	Message string
}

var hexChars = regexp.MustCompile(`^[0-9a-fA-F]+$`)

// Apply validates value against the rule. value is expected to be
// trimmed of surrounding whitespace; whitespace detection is handled
// separately and does not belong to any rule.
func (r Rule) Apply(value string) Outcome {
	length := len(value)

	switch r.Kind {
	case KindPrefix:
		if strings.HasPrefix(value, r.Prefix) {
			return Outcome{Valid, fmt.Sprintf("%s****... %d chars OK", r.Prefix, length)}
		}
		return Outcome{Invalid, fmt.Sprintf("INVALID FORMAT! Should start with '%s'", r.Prefix)}

	case KindSuffix:
		if strings.HasSuffix(value, r.Suffix) {
			head := value
			if len(head) > 20 {
				head = head[:20]
			}
			return Outcome{Valid, fmt.Sprintf("%s... OK", head)}
		}
		return Outcome{Invalid, fmt.Sprintf("INVALID FORMAT! Should end with %s", r.Suffix)}

	case KindMinLength:
		if length >= r.MinLength {
			return Outcome{Valid, fmt.Sprintf("****... %d chars OK", length)}
		}
		return Outcome{Invalid, fmt.Sprintf("TOO SHORT! Only %d chars (need %d+)", length, r.MinLength)}

	case KindBase64Key:
		decoded, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return Outcome{Invalid, "INVALID BASE64!"}
		}
		if len(decoded) != r.KeyBytes {
			return Outcome{Invalid, fmt.Sprintf("WRONG SIZE! %d bytes (need %d)", len(decoded), r.KeyBytes)}
		}
		return Outcome{Valid, fmt.Sprintf("****... (base64, %d bytes) OK", r.KeyBytes)}

	case KindHexToken:
		if length == r.HexLength && hexChars.MatchString(value) {
			return Outcome{Valid, fmt.Sprintf("****... (%d hex chars) OK", r.HexLength)}
		}
		return Outcome{Invalid, fmt.Sprintf("INVALID! Need %d hex chars, got %d", r.HexLength, length)}

	case KindHTTPSURL:
		if strings.HasPrefix(value, "https://") {
			return Outcome{Valid, fmt.Sprintf("%s OK", value)}
		}
		return Outcome{Warn, fmt.Sprintf("%s WARNING (Should use HTTPS)", value)}

	case KindDatabaseURL:
		if err := parseDatabaseDSN(value); err != nil {
			return Outcome{Warn, fmt.Sprintf("****... %d chars WARNING (unrecognized database DSN)", length)}
		}
		return Outcome{Valid, fmt.Sprintf("****... %d chars OK", length)}

	default:
		return Outcome{Valid, fmt.Sprintf("****... %d chars OK", length)}
	}
}

// parseDatabaseDSN accepts Postgres URLs and MySQL DSNs, the two engines
// the backend deploys against.
func parseDatabaseDSN(value string) error {
	if strings.HasPrefix(value, "postgres://") || strings.HasPrefix(value, "postgresql://") {
		_, err := pq.ParseURL(value)
		return err
	}
	_, err := mysql.ParseDSN(value)
	return err
}

// Describe returns a one-line human description of the rule, used by the
// secrets listing.
func (r Rule) Describe() string {
	switch r.Kind {
	case KindPrefix:
		return fmt.Sprintf("starts with '%s'", r.Prefix)
	case KindSuffix:
		return fmt.Sprintf("ends with '%s'", r.Suffix)
	case KindMinLength:
		return fmt.Sprintf("at least %d chars", r.MinLength)
	case KindBase64Key:
		return fmt.Sprintf("base64, %d bytes decoded", r.KeyBytes)
	case KindHexToken:
		return fmt.Sprintf("%d hex chars", r.HexLength)
	case KindHTTPSURL:
		return "https:// URL"
	case KindDatabaseURL:
		return "database DSN (postgres or mysql)"
	default:
		return "opaque (any value)"
	}
}

// Defaults returns the rule table for the backend's secret manifest.
func Defaults() map[string]Rule {
	anthropicKey := Rule{Kind: KindPrefix, Prefix: "sk-ant-"}
	httpsURL := Rule{Kind: KindHTTPSURL}

	return map[string]Rule{
		"anthropic-api-key":      anthropicKey,
		"claude-api-key":         anthropicKey,
		"jwt-secret":             {Kind: KindMinLength, MinLength: 32},
		"encryption-key":         {Kind: KindBase64Key, KeyBytes: 32},
		"token-encryption-key":   {Kind: KindHexToken, HexLength: 64},
		"database-url":           {Kind: KindDatabaseURL},
		"google-client-id":       {Kind: KindSuffix, Suffix: ".apps.googleusercontent.com"},
		"google-client-secret":   {Kind: KindPrefix, Prefix: "GOCSPX-"},
		"backend-url":            httpsURL,
		"frontend-url":           httpsURL,
		"app-oauth-redirect-uri": httpsURL,
		"oauth-redirect-uri":     httpsURL,
		"mcp-oauth-redirect-uri": httpsURL,
	}
}

// For returns the rule for a secret name, falling back to the opaque
// catch-all for names without a specific format contract.
func For(name string) Rule {
	if rule, ok := Defaults()[name]; ok {
		return rule
	}
	return Rule{Kind: KindOpaque}
}
