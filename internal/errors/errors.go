// Package errors defines the user-facing error types for secretcheck.
// Errors carry a suggestion so the operator can fix the problem without
// digging through cloud console docs.
package errors

import (
	"fmt"
	"strings"
)

// UserError is an error meant to be shown to the operator with context.
type UserError struct {
	Message    string
	Details    string
	Suggestion string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError reports a problem in the secretcheck.yaml manifest.
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// CommandError reports a failed external command invocation.
type CommandError struct {
	Command    string
	ExitCode   int
	Message    string
	Suggestion string
}

func (e CommandError) Error() string {
	msg := fmt.Sprintf("Command '%s' failed", e.Command)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit code: %d)", e.ExitCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// GcloudSuggestion maps common gcloud failure text to a fix the operator
// can apply directly.
func GcloudSuggestion(output string) string {
	switch {
	case strings.Contains(output, "NOT_FOUND"):
		return "Create the secret with 'gcloud secrets create <name>' and add a version"
	case strings.Contains(output, "PERMISSION_DENIED"):
		return "Grant roles/secretmanager.secretAccessor to your account, or run 'gcloud auth login'"
	case strings.Contains(output, "UNAUTHENTICATED"), strings.Contains(output, "does not currently have an active account"):
		return "Run 'gcloud auth login' to authenticate"
	case strings.Contains(output, "executable file not found"), strings.Contains(output, "not found"):
		return "Install the Google Cloud SDK: https://cloud.google.com/sdk/docs/install"
	}
	return "Check 'gcloud secrets list' to see which secrets exist in the project"
}

// WrapCommandNotFound wraps a missing-binary error with install guidance.
func WrapCommandNotFound(command string, err error) error {
	suggestions := map[string]string{
		"gcloud": "Install the Google Cloud SDK: https://cloud.google.com/sdk/docs/install",
		"aws":    "Install the AWS CLI: https://aws.amazon.com/cli/",
		"az":     "Install the Azure CLI: https://learn.microsoft.com/cli/azure/install-azure-cli",
	}

	suggestion := suggestions[command]
	if suggestion == "" {
		suggestion = fmt.Sprintf("Make sure '%s' is installed and in your PATH", command)
	}

	return CommandError{
		Command:    command,
		Message:    "command not found",
		Suggestion: suggestion,
	}
}
