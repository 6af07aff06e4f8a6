package exec

import (
	"context"
	"strings"
	"sync"
)

// MockCommandExecutor is a configurable CommandExecutor for tests.
// Responses are keyed by "command arg1 arg2 ..."; a pattern matches when
// the invoked command line starts with it.
type MockCommandExecutor struct {
	mu sync.Mutex

	responses map[string]MockResponse

	// DefaultResponse is used when no pattern matches. When nil, an
	// unmatched command returns empty success.
	DefaultResponse *MockResponse

	// RecordedCalls stores every Execute invocation for verification.
	RecordedCalls []RecordedCall
}

// MockResponse is the canned result for a mocked command.
type MockResponse struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// RecordedCall captures one Execute invocation.
type RecordedCall struct {
	Command string
	Args    []string
}

// NewMockCommandExecutor creates an empty mock executor.
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{responses: make(map[string]MockResponse)}
}

// AddResponse registers a canned response for a command-line prefix.
func (m *MockCommandExecutor) AddResponse(pattern string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[pattern] = resp
}

// Execute returns the canned response whose pattern matches the call.
func (m *MockCommandExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RecordedCalls = append(m.RecordedCalls, RecordedCall{Command: name, Args: args})

	key := name
	if len(args) > 0 {
		key += " " + strings.Join(args, " ")
	}

	if resp, ok := m.responses[key]; ok {
		return resp.Stdout, resp.Stderr, resp.Err
	}
	for pattern, resp := range m.responses {
		if strings.HasPrefix(key, pattern) {
			return resp.Stdout, resp.Stderr, resp.Err
		}
	}

	if m.DefaultResponse != nil {
		return m.DefaultResponse.Stdout, m.DefaultResponse.Stderr, m.DefaultResponse.Err
	}
	return []byte{}, []byte{}, nil
}

// Calls returns the recorded invocations of command name.
func (m *MockCommandExecutor) Calls(name string) []RecordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []RecordedCall
	for _, call := range m.RecordedCalls {
		if call.Command == name {
			matches = append(matches, call)
		}
	}
	return matches
}
