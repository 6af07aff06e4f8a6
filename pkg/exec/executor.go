// Package exec abstracts external command execution so stores that shell
// out to cloud CLIs can be tested without the real binaries installed.
package exec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// CommandExecutor runs an external command and returns its output streams.
type CommandExecutor interface {
	// Execute runs name with args under ctx.
	// Returns stdout, stderr, and any error that occurred.
	Execute(ctx context.Context, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

// RealCommandExecutor runs actual commands via os/exec. This is the
// production implementation.
type RealCommandExecutor struct{}

// Execute runs the command and captures both output streams.
func (r *RealCommandExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// DefaultExecutor returns the production executor.
func DefaultExecutor() CommandExecutor {
	return &RealCommandExecutor{}
}

// IsNotInstalled reports whether err means the binary was not found on PATH.
func IsNotInstalled(err error) bool {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return errors.Is(execErr.Err, exec.ErrNotFound)
	}
	return false
}

// ExitCode extracts the process exit code from err, or -1 if the command
// did not run to completion.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
