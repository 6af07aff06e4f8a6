package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestUserErrorFormatting(t *testing.T) {
	err := UserError{
		Message:    "Failed to fetch secret",
		Details:    "exit status 1",
		Suggestion: "Run 'gcloud auth login'",
	}

	msg := err.Error()
	for _, want := range []string{"Failed to fetch secret", "Details: exit status 1", "Try: Run 'gcloud auth login'"} {
		if !strings.Contains(msg, want) {
			t.Errorf("UserError.Error() missing %q: %q", want, msg)
		}
	}
}

func TestUserErrorFallsBackToWrapped(t *testing.T) {
	inner := errors.New("boom")
	err := UserError{Err: inner}

	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected wrapped error text, got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("UserError should unwrap to the inner error")
	}
}

func TestConfigErrorFormatting(t *testing.T) {
	err := ConfigError{
		Field:      "store.type",
		Value:      "vault",
		Message:    "unknown store type",
		Suggestion: "Use one of: gcloud, gcp.secretmanager, aws.secretsmanager, azure.keyvault, literal",
	}

	msg := err.Error()
	if !strings.Contains(msg, "field 'store.type'") || !strings.Contains(msg, "unknown store type") {
		t.Errorf("unexpected ConfigError text: %q", msg)
	}
}

func TestCommandErrorFormatting(t *testing.T) {
	err := CommandError{Command: "gcloud", ExitCode: 1, Message: "NOT_FOUND"}

	msg := err.Error()
	if !strings.Contains(msg, "'gcloud'") || !strings.Contains(msg, "exit code: 1") {
		t.Errorf("unexpected CommandError text: %q", msg)
	}
}

func TestGcloudSuggestion(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"missing secret", "ERROR: NOT_FOUND: Secret not found", "gcloud secrets create"},
		{"permission denied", "PERMISSION_DENIED: caller lacks permission", "secretAccessor"},
		{"unauthenticated", "UNAUTHENTICATED", "gcloud auth login"},
		{"binary missing", "exec: \"gcloud\": executable file not found in $PATH", "cloud.google.com/sdk"},
		{"unknown", "something else entirely", "gcloud secrets list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GcloudSuggestion(tt.output)
			if !strings.Contains(got, tt.want) {
				t.Errorf("GcloudSuggestion(%q) = %q, want substring %q", tt.output, got, tt.want)
			}
		})
	}
}

func TestWrapCommandNotFound(t *testing.T) {
	err := WrapCommandNotFound("gcloud", errors.New("exec: not found"))

	var cmdErr CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %T", err)
	}
	if !strings.Contains(cmdErr.Suggestion, "cloud.google.com/sdk") {
		t.Errorf("unexpected suggestion: %q", cmdErr.Suggestion)
	}
}
