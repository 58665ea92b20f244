// Package gen is the generative backend: prompt construction, the Gemini
// client, and parsing of batched responses.
package gen

import (
	"context"
	"fmt"
)

// Generator produces long-form answer text for a prompt. Implementations
// classify failures as RetryableError or FatalError so the pipeline can
// decide between backoff and aborting.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RetryableError is a transient backend failure (rate limit, server side).
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable backend error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// FatalError is a non-retryable failure: authentication or configuration.
// It aborts the remaining generation run.
type FatalError struct {
	StatusCode int
	Message    string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal backend error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
