package invocation

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retrier runs an operation under an exponential backoff policy. Only errors
// returned by the operation trigger retries; wrap an error in
// backoff.Permanent to stop early.
type Retrier struct {
	initial    time.Duration
	max        time.Duration
	maxRetries uint64
	logger     *slog.Logger
}

// NewRetrier creates a retrier with the given backoff bounds and retry limit.
// maxRetries counts retries, not attempts: a limit of 3 allows 4 attempts.
func NewRetrier(initial, max time.Duration, maxRetries uint64, logger *slog.Logger) *Retrier {
	if logger == nil {
		logger = slog.Default()
	}

	return &Retrier{
		initial:    initial,
		max:        max,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// Do runs op until it succeeds, the retry limit is exhausted, or the context
// is cancelled. Returns the last error on exhaustion.
func (r *Retrier) Do(ctx context.Context, op func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = r.initial
	eb.MaxInterval = r.max
	eb.MaxElapsedTime = 0 // bounded by maxRetries, not wall clock

	policy := backoff.WithContext(backoff.WithMaxRetries(eb, r.maxRetries), ctx)

	return backoff.RetryNotify(op, policy, func(err error, delay time.Duration) {
		r.logger.WarnContext(ctx, "webhook dispatch failed, retrying",
			"error", err, "delay", delay)
	})
}
