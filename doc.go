// Package hookwire provides a one-shot webhook invocation activity for Go.
//
// Hookwire is a library — not a service. Import it into a workflow worker to
// invoke workspace-configured webhooks: it hydrates secret references in the
// webhook configuration set, selects the target configuration by id, builds
// the HTTP request (optional JSON body, optional bearer auth) and dispatches
// it under a bounded retry policy. Durability, scheduling and failure
// recovery for the surrounding pipeline belong to the orchestrator that calls
// it.
//
// Key features:
//   - Secret hydration from a default or organization-scoped runtime
//     persistence (Redis or static), gated by a feature flag
//   - Exact-id configuration lookup with schema-validated documents
//   - Exponential backoff retries on transport failures only; delivered
//     responses are classified, never retried
//   - Prometheus metrics and OpenTelemetry tracing
//   - Optional per-host outbound rate limiting
//
// Quick start:
//
//	inv, err := hookwire.New(
//	    hookwire.WithDefaultStore(secrets.NewMemoryStore(values)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ok, err := inv.Invoke(ctx, invocation.Input{
//	    ExecutionURL:            "https://hooks.example.com/build-finished",
//	    Body:                    payload,
//	    WebhookConfigID:         configID,
//	    WorkspaceWebhookConfigs: workspaceDoc,
//	})
package hookwire
