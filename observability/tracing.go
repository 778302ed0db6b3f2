package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/hookwire/hookwire"

// Tracer provides OpenTelemetry tracing for webhook invocations.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a new invocation tracer.
func NewTracer() *Tracer {
	return &Tracer{
		tracer: otel.Tracer(tracerName),
	}
}

// StartInvocationSpan starts a new span for a webhook invocation, tagged with
// the webhook configuration id.
func (t *Tracer) StartInvocationSpan(ctx context.Context, configID string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "hookwire.invoke",
		trace.WithAttributes(
			attribute.String("webhook.config_id", configID),
		),
	)
}

// EndInvocationSpan ends an invocation span with result attributes.
func (t *Tracer) EndInvocationSpan(span trace.Span, statusCode int, success bool, errMsg string) {
	span.SetAttributes(
		attribute.Int("http.status_code", statusCode),
		attribute.Bool("webhook.success", success),
	)
	if errMsg != "" {
		span.SetAttributes(attribute.String("webhook.error", errMsg))
	}
	span.End()
}
