package report

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/sdhector/secretcheck/internal/checker"
	"github.com/sdhector/secretcheck/internal/rules"
)

func init() {
	color.NoColor = true
}

func passingReport() *checker.Report {
	return &checker.Report{
		Project:   "test-project",
		StoreName: "literal",
		Results: []checker.Result{
			{Name: "anthropic-api-key", Status: checker.StatusFound, Length: 19, Display: "sk-ant-****... 19 chars OK", Level: rules.Valid},
			{Name: "jwt-secret", Status: checker.StatusFound, Length: 48, Display: "****... 48 chars OK", Level: rules.Valid},
		},
		Found: []string{"anthropic-api-key", "jwt-secret"},
		Checks: []checker.CriticalCheck{
			{Name: "Anthropic/Claude API Key", Satisfied: true, FailureHint: "CRITICAL!"},
			{Name: "JWT Secret", Satisfied: true, FailureHint: "CRITICAL!"},
		},
		Pass: true,
	}
}

func TestRenderPass(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Render(passingReport())
	out := buf.String()

	assert.Contains(t, out, "Checking: anthropic-api-key OK")
	assert.Contains(t, out, "  Value: sk-ant-****... 19 chars OK")
	assert.Contains(t, out, "Total secrets checked: 2")
	assert.Contains(t, out, "Found: 2")
	assert.Contains(t, out, "Missing: 0")
	assert.Contains(t, out, "OK Anthropic/Claude API Key: Present")
	assert.Contains(t, out, "OK ALL CRITICAL SECRETS PRESENT!")
	assert.NotContains(t, out, "Missing Secrets:")
	assert.NotContains(t, out, "Format Problems:")
}

func TestRenderMissing(t *testing.T) {
	rep := passingReport()
	rep.Results = append(rep.Results, checker.Result{
		Name: "google-client-id", Status: checker.StatusMissing, Display: "Not found",
	})
	rep.Missing = []string{"google-client-id"}
	rep.Checks = append(rep.Checks, checker.CriticalCheck{
		Name: "Google OAuth", Satisfied: false, FailureHint: "Authentication won't work!",
	})
	rep.Pass = false

	var buf bytes.Buffer
	NewRenderer(&buf).Render(rep)
	out := buf.String()

	assert.Contains(t, out, "Checking: google-client-id NOT FOUND")
	assert.Contains(t, out, "Missing Secrets:")
	assert.Contains(t, out, "  - google-client-id")
	assert.Contains(t, out, "MISSING Google OAuth: MISSING (Authentication won't work!)")
	assert.Contains(t, out, "WARNING CONFIGURATION INCOMPLETE!")
	assert.Contains(t, out, "Please add the missing secrets before deploying.")
}

func TestRenderWhitespaceWarning(t *testing.T) {
	rep := passingReport()
	rep.Results[1].HasWhitespace = true

	var buf bytes.Buffer
	NewRenderer(&buf).Render(rep)

	assert.Contains(t, buf.String(), "  WARNING: Has leading/trailing whitespace!")
}

func TestRenderFormatProblems(t *testing.T) {
	rep := passingReport()
	rep.Results[0].Level = rules.Invalid
	rep.Results[0].Display = "INVALID FORMAT! Should start with 'sk-ant-'"

	var buf bytes.Buffer
	NewRenderer(&buf).Render(rep)
	out := buf.String()

	assert.Contains(t, out, "Format Problems:")
	assert.Contains(t, out, "  - anthropic-api-key: INVALID FORMAT! Should start with 'sk-ant-'")
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Banner("test-project", "gcloud", "Google Cloud SDK 460.0.0")
	out := buf.String()

	assert.Contains(t, out, "Deployment Secret Verification")
	assert.Contains(t, out, "Project: test-project")
	assert.Contains(t, out, "Store: gcloud")
	assert.Contains(t, out, "✓ gcloud installed: Google Cloud SDK 460.0.0")
	assert.Contains(t, out, "Checking secrets...")
}

func TestBannerWithoutToolVersion(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Banner("test-project", "literal", "")

	assert.NotContains(t, buf.String(), "gcloud installed")
}
