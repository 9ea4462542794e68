package backend

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/dlrkawo/aitutor-lms/backend/httpbackend"
	"github.com/dlrkawo/aitutor-lms/backend/inmem"
	"github.com/dlrkawo/aitutor-lms/client"
	"github.com/dlrkawo/aitutor-lms/client/tokenstore"
	"github.com/dlrkawo/aitutor-lms/internal/config"
)

// OpenTokenStore opens the token store selected by cfg.TokenStore. The
// closer is nil for stores that hold no resources.
func OpenTokenStore(cfg *config.Config) (tokenstore.Store, io.Closer, error) {
	switch cfg.TokenStore {
	case config.TokenStoreMemory:
		return tokenstore.NewMemory(), nil, nil
	case config.TokenStoreSQLite:
		s, err := tokenstore.OpenSQLite(cfg.SessionDBPath())
		if err != nil {
			return nil, nil, fmt.Errorf("open token store: %w", err)
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unsupported token store: %s", cfg.TokenStore)
	}
}

// New builds the backend selected by cfg.Backend over tokens. Client
// options apply to the http backend only.
func New(cfg *config.Config, tokens tokenstore.Store, log zerolog.Logger, opts ...client.Option) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		log.Debug().Msg("using in-memory backend")
		return FromService(config.BackendMemory, inmem.New(tokens), tokens), nil
	case config.BackendHTTP:
		svc, err := httpbackend.New(cfg, tokens, log, opts...)
		if err != nil {
			return nil, err
		}
		return FromService(config.BackendHTTP, svc, tokens, svc), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", cfg.Backend)
	}
}

// Open opens the configured token store and backend together. Closing the
// backend closes the store too.
func Open(cfg *config.Config, log zerolog.Logger, opts ...client.Option) (*Backend, error) {
	tokens, closer, err := OpenTokenStore(cfg)
	if err != nil {
		return nil, err
	}
	b, err := New(cfg, tokens, log, opts...)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	if closer != nil {
		b.closers = append([]io.Closer{closer}, b.closers...)
	}
	return b, nil
}

var (
	_ Service = (*inmem.DB)(nil)
	_ Service = (*httpbackend.Service)(nil)
)
