package secrets

import (
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"
)

// Persistence type identifiers understood by OpenPersistence.
const (
	PersistenceTypeRedis  = "redis"
	PersistenceTypeStatic = "static"
)

// PersistenceConfig describes an organization-scoped runtime secret
// persistence backend, as returned by the configuration API. Configuration
// keys depend on the persistence type:
//
//   - redis: "addr" (required), "password", "db", "prefix"
//   - static: every key/value pair is a secret coordinate and its value
type PersistenceConfig struct {
	// PersistenceType selects the backend implementation.
	PersistenceType string `json:"secretPersistenceType"`

	// Configuration holds backend-specific connection settings.
	Configuration map[string]string `json:"configuration"`
}

// OpenPersistence builds a Store from a runtime persistence descriptor.
// Unknown persistence types are an error.
func OpenPersistence(cfg PersistenceConfig) (Store, error) {
	switch cfg.PersistenceType {
	case PersistenceTypeRedis:
		return openRedis(cfg.Configuration)
	case PersistenceTypeStatic:
		return NewMemoryStore(cfg.Configuration), nil
	default:
		return nil, fmt.Errorf("secrets: unsupported persistence type %q", cfg.PersistenceType)
	}
}

func openRedis(conf map[string]string) (Store, error) {
	addr := conf["addr"]
	if addr == "" {
		return nil, fmt.Errorf("secrets: redis persistence requires %q", "addr")
	}

	db := 0
	if raw := conf["db"]; raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("secrets: redis persistence db %q: %w", raw, err)
		}
		db = parsed
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: conf["password"],
		DB:       db,
	})

	return NewRedisStore(rdb, conf["prefix"]), nil
}
