package invocation

import (
	"encoding/json"

	"github.com/hookwire/hookwire/id"
)

// Input is the per-invocation request handed over by the orchestrator. It is
// immutable for the duration of the invocation.
type Input struct {
	// ExecutionURL is the webhook endpoint to call.
	ExecutionURL string `json:"executionUrl"`

	// Body is the optional request payload. When nil the request is sent
	// as a GET without a body; otherwise as a POST.
	Body []byte `json:"executionBody,omitempty"`

	// WebhookConfigID selects the configuration from the workspace set.
	WebhookConfigID id.ID `json:"webhookConfigId"`

	// OrganizationID identifies the owning organization. The Nil ID means
	// no organization context, which forces the default secret
	// persistence path.
	OrganizationID id.ID `json:"organizationId,omitempty"`

	// WorkspaceWebhookConfigs is the raw workspace configuration document.
	// Secret references inside it are hydrated before use.
	WorkspaceWebhookConfigs json.RawMessage `json:"workspaceWebhookConfigs"`
}
