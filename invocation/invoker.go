// Package invocation implements the one-shot webhook invocation activity:
// hydrate the workspace configuration secrets, select the target
// configuration, build the HTTP request and dispatch it under a bounded retry
// policy. Durability, scheduling and cancellation belong to the orchestrator
// that calls this package.
package invocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hookwire/hookwire/configapi"
	"github.com/hookwire/hookwire/flags"
	"github.com/hookwire/hookwire/observability"
	"github.com/hookwire/hookwire/ratelimit"
	"github.com/hookwire/hookwire/secrets"
	"github.com/hookwire/hookwire/webhook"
)

// Sentinel errors for terminal invocation failures. Neither is retried.
var (
	// ErrConfigNotFound is returned when the requested webhook
	// configuration id is absent from the workspace set.
	ErrConfigNotFound = errors.New("invocation: webhook config not found")

	// ErrHydrationFailed is returned when secret hydration cannot
	// complete, including persistence-config lookup failures.
	ErrHydrationFailed = errors.New("invocation: secret hydration failed")
)

// TransportError is returned when no HTTP response was ever received and the
// retry policy is exhausted. Err holds the final attempt's failure.
type TransportError struct {
	Name string
	URL  string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("invocation: dispatch %q: %v", e.Name, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SecretsHydrator resolves secret references in configuration documents.
// Satisfied by *secrets.Reader.
type SecretsHydrator interface {
	HydrateFromDefault(ctx context.Context, doc json.RawMessage) (json.RawMessage, error)
	HydrateFromRuntime(ctx context.Context, doc json.RawMessage, cfg secrets.PersistenceConfig) (json.RawMessage, error)
}

// PersistenceConfigAPI fetches runtime secret persistence descriptors.
// Satisfied by *configapi.Client.
type PersistenceConfigAPI interface {
	GetSecretPersistenceConfig(ctx context.Context, scope configapi.Scope, scopeID string) (*secrets.PersistenceConfig, error)
}

// Config holds the invoker's dispatch settings.
type Config struct {
	// Sender performs the HTTP exchange.
	Sender *Sender

	// Retrier bounds retries of failed exchanges.
	Retrier *Retrier

	// Metrics and Tracer are optional observability sinks.
	Metrics *observability.Metrics
	Tracer  *observability.Tracer

	// Limiter and RateLimit optionally throttle dispatches per target
	// host. RateLimit 0 disables throttling.
	Limiter   *ratelimit.Limiter
	RateLimit int
}

// Invoker performs webhook invocations.
type Invoker struct {
	secrets   SecretsHydrator
	flags     flags.Evaluator
	configAPI PersistenceConfigAPI
	sender    *Sender
	retrier   *Retrier
	metrics   *observability.Metrics
	tracer    *observability.Tracer
	limiter   *ratelimit.Limiter
	rateLimit int
	logger    *slog.Logger
}

// NewInvoker creates an invoker. hydrator is required; evaluator defaults to
// an all-off static evaluator and api may be nil when runtime secret
// persistence is never enabled.
func NewInvoker(hydrator SecretsHydrator, evaluator flags.Evaluator, api PersistenceConfigAPI, cfg Config, logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = slog.Default()
	}
	if evaluator == nil {
		evaluator = flags.NewStatic(nil)
	}

	return &Invoker{
		secrets:   hydrator,
		flags:     evaluator,
		configAPI: api,
		sender:    cfg.Sender,
		retrier:   cfg.Retrier,
		metrics:   cfg.Metrics,
		tracer:    cfg.Tracer,
		limiter:   cfg.Limiter,
		rateLimit: cfg.RateLimit,
		logger:    logger,
	}
}

// Invoke performs a single webhook invocation and reports whether the
// endpoint accepted it. Terminal failures (hydration, unknown config id)
// return an error immediately; transport failures are retried and the final
// error is returned once retries are exhausted. A delivered response with a
// status outside the accepted range returns (false, nil).
func (inv *Invoker) Invoke(ctx context.Context, in Input) (bool, error) {
	if inv.metrics != nil {
		inv.metrics.InvocationsTotal.Inc()
	}
	start := time.Now()

	inv.logger.DebugContext(ctx, "webhook invocation requested",
		"config_id", in.WebhookConfigID,
		"organization_id", in.OrganizationID,
		"url", in.ExecutionURL,
		"workspace_webhook_configs", string(in.WorkspaceWebhookConfigs),
	)

	doc, err := inv.hydrate(ctx, in)
	if err != nil {
		inv.recordResult(ctx, "error", start)

		return false, err
	}

	set, err := webhook.DecodeConfigSet(doc)
	if err != nil {
		inv.recordResult(ctx, "error", start)

		return false, err
	}
	inv.logger.DebugContext(ctx, "workspace webhook configs resolved", "count", len(set.Configs))

	cfg, ok := set.Find(in.WebhookConfigID)
	if !ok {
		inv.recordResult(ctx, "error", start)

		return false, fmt.Errorf("%w: %s", ErrConfigNotFound, in.WebhookConfigID)
	}

	success, result, err := inv.dispatch(ctx, in, cfg)
	latency := time.Since(start).Seconds()

	switch {
	case err != nil:
		if inv.metrics != nil {
			inv.metrics.RecordResult("error", latency)
		}

		return false, err
	case success:
		if inv.metrics != nil {
			inv.metrics.RecordResult("success", latency)
		}
		inv.logger.InfoContext(ctx, "webhook execution successful",
			"name", cfg.Name, "status_code", result.StatusCode)
	default:
		if inv.metrics != nil {
			inv.metrics.RecordResult("failure", latency)
		}
		inv.logger.InfoContext(ctx, "webhook execution failed",
			"name", cfg.Name, "status_code", result.StatusCode)
		inv.logger.ErrorContext(ctx, "webhook endpoint rejected request",
			"name", cfg.Name,
			"status_code", result.StatusCode,
			"response", result.Response,
		)
	}

	return success, nil
}

// hydrate resolves the workspace document's secret references. Organizations
// enrolled in runtime secret persistence hydrate through their own
// persistence descriptor; everyone else uses the default persistence. All
// failures here are terminal.
func (inv *Invoker) hydrate(ctx context.Context, in Input) (json.RawMessage, error) {
	orgID := in.OrganizationID
	useRuntime := !orgID.IsNil() &&
		inv.flags.BoolVariation(ctx, flags.UseRuntimeSecretPersistence, flags.Organization(orgID.String()))

	if !useRuntime {
		doc, err := inv.secrets.HydrateFromDefault(ctx, in.WorkspaceWebhookConfigs)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrHydrationFailed, err)
		}

		return doc, nil
	}

	if inv.configAPI == nil {
		return nil, fmt.Errorf("%w: runtime secret persistence enabled but no config API wired", ErrHydrationFailed)
	}

	persistence, err := inv.configAPI.GetSecretPersistenceConfig(ctx, configapi.ScopeOrganization, orgID.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHydrationFailed, err)
	}

	doc, err := inv.secrets.HydrateFromRuntime(ctx, in.WorkspaceWebhookConfigs, *persistence)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHydrationFailed, err)
	}

	return doc, nil
}

// dispatch sends the request under the retry policy. Transport errors are
// retried; a delivered response ends the loop and is classified by status.
func (inv *Invoker) dispatch(ctx context.Context, in Input, cfg *webhook.Config) (bool, Result, error) {
	span := startSpan(ctx, inv.tracer, in)
	ctx = span.ctx

	inv.logger.InfoContext(ctx, "invoking webhook", "name", cfg.Name, "config_id", cfg.ID)

	target := NewTarget(in, cfg)

	if inv.limiter != nil && inv.rateLimit > 0 {
		if err := inv.limiter.Wait(ctx, target.Host(), inv.rateLimit); err != nil {
			span.end(0, false, err.Error())

			return false, Result{}, fmt.Errorf("invocation: rate limit wait: %w", err)
		}
	}

	var last Result
	err := inv.retrier.Do(ctx, func() error {
		if inv.metrics != nil {
			inv.metrics.AttemptsTotal.Inc()
		}

		result, sendErr := inv.sender.Send(ctx, target)
		if sendErr != nil {
			return sendErr
		}
		last = result

		return nil
	})
	if err != nil {
		span.end(0, false, err.Error())

		return false, Result{}, &TransportError{Name: cfg.Name, URL: target.URL, Err: err}
	}

	success := last.Success()
	span.end(last.StatusCode, success, "")

	return success, last, nil
}

// invocationSpan wraps an optional tracer span so call sites stay free of nil
// checks.
type invocationSpan struct {
	ctx context.Context
	end func(statusCode int, success bool, errMsg string)
}

func startSpan(ctx context.Context, tracer *observability.Tracer, in Input) invocationSpan {
	if tracer == nil {
		return invocationSpan{ctx: ctx, end: func(int, bool, string) {}}
	}

	spanCtx, span := tracer.StartInvocationSpan(ctx, in.WebhookConfigID.String())

	return invocationSpan{
		ctx: spanCtx,
		end: func(statusCode int, success bool, errMsg string) {
			tracer.EndInvocationSpan(span, statusCode, success, errMsg)
		},
	}
}

func (inv *Invoker) recordResult(_ context.Context, status string, start time.Time) {
	if inv.metrics == nil {
		return
	}
	inv.metrics.RecordResult(status, time.Since(start).Seconds())
}
