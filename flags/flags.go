// Package flags abstracts the feature-flag service behind a narrow evaluator
// interface. Evaluations are keyed by a flag name and an evaluation context
// (typically the organization that owns the invocation).
package flags

import (
	"context"
	"os"
	"strings"
	"sync"
)

// Flag names a boolean feature flag.
type Flag string

// UseRuntimeSecretPersistence gates whether secret hydration goes through the
// organization-scoped runtime persistence instead of the default one.
const UseRuntimeSecretPersistence Flag = "use-runtime-secret-persistence"

// Context is the evaluation context for a flag lookup.
type Context struct {
	// Kind identifies the context type, e.g. "organization".
	Kind string

	// Value is the context key, e.g. the organization ID.
	Value string
}

// Organization builds an organization-scoped evaluation context.
func Organization(orgID string) Context {
	return Context{Kind: "organization", Value: orgID}
}

// Evaluator evaluates boolean feature flags.
type Evaluator interface {
	// BoolVariation returns the flag value for the given context,
	// falling back to false when the flag is unknown.
	BoolVariation(ctx context.Context, flag Flag, fctx Context) bool
}

// Static is a fixed-map evaluator. The zero value evaluates every flag to
// false, which is the correct default for a library embedded in a larger
// system that has not wired a real flag service.
type Static struct {
	values map[Flag]bool
}

// NewStatic creates an evaluator that returns the given values and false for
// everything else.
func NewStatic(values map[Flag]bool) *Static {
	return &Static{values: values}
}

// BoolVariation implements Evaluator.
func (s *Static) BoolVariation(_ context.Context, flag Flag, _ Context) bool {
	if s == nil || s.values == nil {
		return false
	}

	return s.values[flag]
}

// Env evaluates flags from HOOKWIRE_FLAG_* environment variables.
// A flag named "use-runtime-secret-persistence" maps to
// HOOKWIRE_FLAG_USE_RUNTIME_SECRET_PERSISTENCE; values "true", "1" and "yes"
// (case-insensitive) enable it. The environment is read once.
type Env struct {
	once   sync.Once
	values map[Flag]bool
}

// NewEnv creates an environment-backed evaluator.
func NewEnv() *Env {
	return &Env{}
}

const envPrefix = "HOOKWIRE_FLAG_"

// BoolVariation implements Evaluator.
func (e *Env) BoolVariation(_ context.Context, flag Flag, _ Context) bool {
	e.once.Do(e.load)

	return e.values[flag]
}

func (e *Env) load() {
	e.values = make(map[Flag]bool)
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, value, ok := strings.Cut(strings.TrimPrefix(kv, envPrefix), "=")
		if !ok {
			continue
		}
		flag := Flag(strings.ReplaceAll(strings.ToLower(name), "_", "-"))
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			e.values[flag] = true
		}
	}
}
