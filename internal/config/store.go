package config

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/intake/pkg/adapters/file"
	"github.com/aretw0/intake/pkg/adapters/memory"
	"github.com/aretw0/intake/pkg/adapters/redis"
	"github.com/aretw0/intake/pkg/adapters/sqlite"
	"github.com/aretw0/intake/pkg/persistence"
	"github.com/aretw0/intake/pkg/persistence/middleware"
	"github.com/aretw0/intake/pkg/ports"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// OpenStore builds the configured snapshot store, wrapped in encryption when a key is set.
// The returned closer releases the backend connection; it is never nil.
func (c *Config) OpenStore(ctx context.Context) (ports.SnapshotStore, io.Closer, error) {
	var (
		store  ports.SnapshotStore
		closer io.Closer = nopCloser{}
	)

	switch c.Store.Backend {
	case BackendMemory:
		store = memory.NewStore()
	case BackendFile:
		store = file.New(c.Store.Dir)
	case BackendSQLite:
		s, err := sqlite.New(c.Store.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		store, closer = s, s
	case BackendRedis:
		r := c.Store.Redis
		s := redis.New(r.Addr, r.Password, r.DB, redis.WithPrefix(r.Prefix), redis.WithTTL(r.TTL))
		store, closer = s, s
	default:
		return nil, nil, fmt.Errorf("%w: unknown store.backend %q", ErrInvalid, c.Store.Backend)
	}

	if p, ok := store.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			_ = closer.Close()
			return nil, nil, fmt.Errorf("%s store unreachable: %w", c.Store.Backend, err)
		}
	}

	key, err := c.EncryptionKey()
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	if key != nil {
		store = middleware.Chain(store, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey: key,
		}))
	}
	return store, closer, nil
}

// PersistenceOptions maps the persistence section to adapter options.
func (c *Config) PersistenceOptions() []persistence.Option {
	return []persistence.Option{
		persistence.WithDebounce(c.Persistence.Debounce),
		persistence.WithMaxAge(c.Persistence.MaxAge),
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
