package store

import (
	"context"
	"errors"
	"time"

	errs "github.com/matzehuels/units/pkg/errors"
)

// Transient marks err as a temporary backend failure, such as a refused
// connection while a redis or mongo server is still starting. It returns
// nil for nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// IsTransient reports whether err was marked with [Transient].
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// Backoff controls how a backend operation is retried.
type Backoff struct {
	// Attempts is the total number of calls, including the first.
	Attempts int
	// Delay is the wait before the second call. It doubles after each retry.
	Delay time.Duration
}

// DefaultBackoff is the policy [Ping] uses.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 500 * time.Millisecond}

// Retry calls fn until it succeeds, returns an error not marked
// [Transient], or the attempts run out. The last error is returned
// unchanged. A cancelled ctx stops the wait between calls.
func (b Backoff) Retry(ctx context.Context, fn func(context.Context) error) error {
	delay := b.Delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(ctx); err == nil || !IsTransient(err) || attempt >= b.Attempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

// Ping checks that a freshly configured backend answers, retrying every
// failure with [DefaultBackoff]. A backend that never answers yields an
// INTERNAL error naming it.
func Ping(ctx context.Context, backend string, ping func(context.Context) error) error {
	err := DefaultBackoff.Retry(ctx, func(ctx context.Context) error {
		return Transient(ping(ctx))
	})
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "connect to %s", backend)
	}
	return nil
}
