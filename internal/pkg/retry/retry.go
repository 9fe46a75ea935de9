package retry

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/aurumdent/goldbuy/internal/domain/errors"
)

// Options bound retrying of transient storage read failures.
type Options struct {
	Attempts int
	Backoff  time.Duration
}

const (
	defaultAttempts = 3
	defaultBackoff  = 200 * time.Millisecond
)

// Do invokes fn up to Attempts times with a fixed backoff between tries.
// Credential and not-found errors are never retried: repeating them cannot
// change the outcome.
func Do(ctx context.Context, opts Options, fn func(ctx context.Context) error) error {
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return err
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound),
		errors.Is(err, domainErrors.ErrInvalidCredentials),
		errors.Is(err, domainErrors.ErrForbidden),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}
