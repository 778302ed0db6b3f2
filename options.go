package hookwire

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hookwire/hookwire/flags"
	"github.com/hookwire/hookwire/invocation"
	"github.com/hookwire/hookwire/observability"
	"github.com/hookwire/hookwire/secrets"
)

// WithLogger sets the structured logger for the Invoker instance.
func WithLogger(logger *slog.Logger) Option {
	return func(inv *Invoker) error {
		inv.logger = logger
		return nil
	}
}

// WithHydrator sets the secret hydrator. Overrides WithDefaultStore.
func WithHydrator(hydrator invocation.SecretsHydrator) Option {
	return func(inv *Invoker) error {
		inv.hydrator = hydrator
		return nil
	}
}

// WithDefaultStore sets the default secret persistence backend.
func WithDefaultStore(store secrets.Store) Option {
	return func(inv *Invoker) error {
		inv.store = store
		return nil
	}
}

// WithFlags sets the feature-flag evaluator. Defaults to an evaluator that
// answers false for every flag.
func WithFlags(evaluator flags.Evaluator) Option {
	return func(inv *Invoker) error {
		inv.evaluator = evaluator
		return nil
	}
}

// WithConfigAPI sets the configuration API client used to resolve runtime
// secret persistence descriptors.
func WithConfigAPI(api invocation.PersistenceConfigAPI) Option {
	return func(inv *Invoker) error {
		inv.configAPI = api
		return nil
	}
}

// WithMetrics sets the metrics sink for invocation instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(inv *Invoker) error {
		inv.metrics = m
		return nil
	}
}

// WithTracer sets the tracer used to annotate invocations.
func WithTracer(t *observability.Tracer) Option {
	return func(inv *Invoker) error {
		inv.tracer = t
		return nil
	}
}

// WithRequestTimeout sets the HTTP timeout per dispatch attempt.
func WithRequestTimeout(d time.Duration) Option {
	return func(inv *Invoker) error {
		inv.config.RequestTimeout = d
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for dispatches. Overrides
// WithRequestTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(inv *Invoker) error {
		inv.httpClient = client
		return nil
	}
}

// WithMaxRetries bounds retries of transport failures. It counts retries,
// not attempts: 3 retries means 4 attempts total.
func WithMaxRetries(n uint64) Option {
	return func(inv *Invoker) error {
		inv.config.MaxRetries = n
		return nil
	}
}

// WithRetryInterval sets the backoff bounds between retry attempts.
func WithRetryInterval(initial, max time.Duration) Option {
	return func(inv *Invoker) error {
		inv.config.RetryInitialInterval = initial
		inv.config.RetryMaxInterval = max
		return nil
	}
}

// WithRateLimit sets the maximum dispatches per second per target host.
// 0 disables rate limiting.
func WithRateLimit(n int) Option {
	return func(inv *Invoker) error {
		inv.config.RateLimit = n
		return nil
	}
}
