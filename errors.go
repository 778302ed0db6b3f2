package hookwire

import (
	"github.com/hookwire/hookwire/invocation"
	"github.com/hookwire/hookwire/secrets"
)

// Sentinel errors re-exported from subpackages for convenient matching with
// errors.Is at the call site.
var (
	// ErrConfigNotFound is returned when the requested webhook
	// configuration id is absent from the workspace set.
	ErrConfigNotFound = invocation.ErrConfigNotFound

	// ErrHydrationFailed is returned when secret hydration cannot
	// complete.
	ErrHydrationFailed = invocation.ErrHydrationFailed

	// ErrSecretNotFound is returned when a secret coordinate has no value
	// in its persistence backend.
	ErrSecretNotFound = secrets.ErrSecretNotFound
)

// TransportError is returned when the webhook endpoint never produced an
// HTTP response and the retry policy is exhausted. Match it with errors.As.
type TransportError = invocation.TransportError
