package pipeline

import (
	"errors"
	"math/rand"
	"time"

	"answerforge/internal/gen"
)

// IsRetryable checks if a generation error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *gen.RetryableError
	return errors.As(err, &retryErr)
}

// IsFatal checks for auth/config errors; these are never retried and abort
// the remaining generation run.
func IsFatal(err error) bool {
	var fatalErr *gen.FatalError
	return errors.As(err, &fatalErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}

// MaxRetries bounds attempts per generation call.
const MaxRetries = 3
