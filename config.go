package hookwire

import "time"

// Config holds the configuration for an Invoker instance.
type Config struct {
	// RequestTimeout is the HTTP timeout per dispatch attempt.
	RequestTimeout time.Duration

	// RetryInitialInterval is the backoff delay before the first retry.
	RetryInitialInterval time.Duration

	// RetryMaxInterval caps the backoff delay between retries.
	RetryMaxInterval time.Duration

	// MaxRetries bounds retries of transport failures. It counts retries,
	// not attempts: 3 retries means 4 attempts total.
	MaxRetries uint64

	// RateLimit is the maximum dispatches per second per target host.
	// 0 disables rate limiting.
	RateLimit int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RequestTimeout:       30 * time.Second,
		RetryInitialInterval: 1 * time.Second,
		RetryMaxInterval:     5 * time.Second,
		MaxRetries:           3,
		RateLimit:            0,
	}
}
