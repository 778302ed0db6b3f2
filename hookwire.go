package hookwire

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hookwire/hookwire/flags"
	"github.com/hookwire/hookwire/invocation"
	"github.com/hookwire/hookwire/observability"
	"github.com/hookwire/hookwire/ratelimit"
	"github.com/hookwire/hookwire/secrets"
)

// Invoker is the root webhook invocation activity.
type Invoker struct {
	config     Config
	logger     *slog.Logger
	hydrator   invocation.SecretsHydrator
	store      secrets.Store
	evaluator  flags.Evaluator
	configAPI  invocation.PersistenceConfigAPI
	metrics    *observability.Metrics
	tracer     *observability.Tracer
	httpClient *http.Client

	inner *invocation.Invoker
}

// Option configures an Invoker instance.
type Option func(*Invoker) error

// New creates a new Invoker with the given options. Without an explicit
// hydrator or default store, secrets resolve against an empty in-memory
// store, so documents without secret references still work out of the box.
func New(opts ...Option) (*Invoker, error) {
	inv := &Invoker{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(inv); err != nil {
			return nil, err
		}
	}
	inv.wire()

	return inv, nil
}

// wire initializes the internal invoker after options have been applied.
func (inv *Invoker) wire() {
	if inv.hydrator == nil {
		store := inv.store
		if store == nil {
			store = secrets.NewMemoryStore(nil)
		}
		inv.hydrator = secrets.NewReader(store, inv.logger)
	}

	sender := invocation.NewSender(inv.config.RequestTimeout)
	if inv.httpClient != nil {
		sender = invocation.NewSenderWithClient(inv.httpClient)
	}

	var limiter *ratelimit.Limiter
	if inv.config.RateLimit > 0 {
		limiter = ratelimit.New()
	}

	inv.inner = invocation.NewInvoker(inv.hydrator, inv.evaluator, inv.configAPI, invocation.Config{
		Sender: sender,
		Retrier: invocation.NewRetrier(
			inv.config.RetryInitialInterval,
			inv.config.RetryMaxInterval,
			inv.config.MaxRetries,
			inv.logger,
		),
		Metrics:   inv.metrics,
		Tracer:    inv.tracer,
		Limiter:   limiter,
		RateLimit: inv.config.RateLimit,
	}, inv.logger)
}

// Invoke performs a single webhook invocation and reports whether the
// endpoint accepted it. See invocation.Invoker.Invoke for the error contract.
func (inv *Invoker) Invoke(ctx context.Context, in invocation.Input) (bool, error) {
	return inv.inner.Invoke(ctx, in)
}
