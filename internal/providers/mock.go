package providers

import (
	"context"
	"fmt"
)

// Mock is a deterministic provider used for tests and for non-billed runs
// selected by the mock credential.
type Mock struct {
	// Response overrides the default reply when non-empty.
	Response string
	// Err, when set, is returned from every call.
	Err error

	calls int
}

// NewMock returns a new mock provider
func NewMock() *Mock {
	return &Mock{}
}

// Generate returns a canned reply describing the request it received.
func (m *Mock) Generate(ctx context.Context, config Config) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.calls++
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return fmt.Sprintf("[MOCK OUTPUT] Received a %d character prompt and %d images. No model was called.",
		len(config.Prompt), len(config.Images)), nil
}

// Calls reports how many times Generate ran.
func (m *Mock) Calls() int { return m.calls }
