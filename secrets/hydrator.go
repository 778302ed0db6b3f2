// Package secrets resolves secret references embedded in webhook
// configuration documents. A secret reference is a JSON object of the form
// {"_secret": "<coordinate>"}; hydration replaces each reference with the
// value read from a secret persistence backend.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// referenceKey marks a JSON object as a secret reference.
const referenceKey = "_secret"

// Reader hydrates configuration documents from secret persistence backends.
type Reader struct {
	defaultStore Store
	logger       *slog.Logger
}

// NewReader creates a Reader backed by the given default persistence.
func NewReader(defaultStore Store, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}

	return &Reader{
		defaultStore: defaultStore,
		logger:       logger,
	}
}

// HydrateFromDefault resolves all secret references in doc using the default
// secret persistence.
func (r *Reader) HydrateFromDefault(ctx context.Context, doc json.RawMessage) (json.RawMessage, error) {
	return r.hydrate(ctx, doc, r.defaultStore)
}

// HydrateFromRuntime resolves all secret references in doc using the runtime
// persistence described by cfg.
func (r *Reader) HydrateFromRuntime(ctx context.Context, doc json.RawMessage, cfg PersistenceConfig) (json.RawMessage, error) {
	store, err := OpenPersistence(cfg)
	if err != nil {
		return nil, err
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	return r.hydrate(ctx, doc, store)
}

func (r *Reader) hydrate(ctx context.Context, doc json.RawMessage, store Store) (json.RawMessage, error) {
	if len(doc) == 0 {
		return doc, nil
	}

	var decoded any
	if err := json.Unmarshal(doc, &decoded); err != nil {
		return nil, fmt.Errorf("secrets: decode document: %w", err)
	}

	resolved, n, err := r.resolve(ctx, decoded, store)
	if err != nil {
		return nil, err
	}

	if n > 0 {
		r.logger.DebugContext(ctx, "hydrated secret references", "count", n)
	}

	out, err := json.Marshal(resolved)
	if err != nil {
		return nil, fmt.Errorf("secrets: encode document: %w", err)
	}

	return out, nil
}

// resolve walks the decoded document and replaces secret references with
// their values. Returns the rewritten node and the number of references
// resolved.
func (r *Reader) resolve(ctx context.Context, node any, store Store) (any, int, error) {
	switch v := node.(type) {
	case map[string]any:
		if coordinate, ok := secretReference(v); ok {
			value, err := store.Read(ctx, coordinate)
			if err != nil {
				return nil, 0, fmt.Errorf("secrets: resolve %q: %w", coordinate, err)
			}

			return value, 1, nil
		}

		total := 0
		for key, child := range v {
			resolved, n, err := r.resolve(ctx, child, store)
			if err != nil {
				return nil, 0, err
			}
			v[key] = resolved
			total += n
		}

		return v, total, nil

	case []any:
		total := 0
		for i, child := range v {
			resolved, n, err := r.resolve(ctx, child, store)
			if err != nil {
				return nil, 0, err
			}
			v[i] = resolved
			total += n
		}

		return v, total, nil

	default:
		return node, 0, nil
	}
}

// secretReference reports whether obj is a secret reference and returns its
// coordinate. Only single-key {"_secret": "<string>"} objects qualify; objects
// that merely contain a "_secret" key among others are left untouched.
func secretReference(obj map[string]any) (string, bool) {
	if len(obj) != 1 {
		return "", false
	}

	raw, ok := obj[referenceKey]
	if !ok {
		return "", false
	}

	coordinate, ok := raw.(string)

	return coordinate, ok
}
