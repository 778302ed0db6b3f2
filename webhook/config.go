// Package webhook defines the webhook configuration data model: the
// per-workspace configuration set carried on each invocation request and the
// individual configurations it contains.
package webhook

import (
	"encoding/json"
	"fmt"

	"github.com/hookwire/hookwire/id"
)

// Config describes how to call a single external webhook endpoint.
type Config struct {
	// ID uniquely identifies this configuration within its set.
	ID id.ID `json:"id"`

	// Name is the human-readable configuration name, used in logs.
	Name string `json:"name"`

	// AuthToken is the bearer token attached to outgoing requests.
	// Empty means the endpoint is called unauthenticated. In the raw
	// workspace document this field may be a secret reference that needs
	// hydration before use.
	AuthToken string `json:"authToken,omitempty"`

	// Properties holds additional execution target settings.
	Properties map[string]string `json:"properties,omitempty"`
}

// ConfigSet is the ordered collection of webhook configurations scoped to a
// workspace.
type ConfigSet struct {
	Configs []Config `json:"webhookConfigs"`
}

// Find returns the configuration whose ID matches exactly, or false when the
// set contains no such configuration.
func (s *ConfigSet) Find(configID id.ID) (*Config, bool) {
	for i := range s.Configs {
		if s.Configs[i].ID.Equal(configID) {
			return &s.Configs[i], true
		}
	}

	return nil, false
}

// DecodeConfigSet validates and decodes a hydrated workspace configuration
// document into a ConfigSet.
func DecodeConfigSet(doc json.RawMessage) (*ConfigSet, error) {
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var set ConfigSet
	if err := json.Unmarshal(doc, &set); err != nil {
		return nil, fmt.Errorf("webhook: decode config set: %w", err)
	}

	return &set, nil
}
