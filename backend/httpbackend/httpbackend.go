// Package httpbackend serves the resource interfaces from the real LMS
// backend through client.Client.
package httpbackend

import (
	"github.com/rs/zerolog"

	"github.com/dlrkawo/aitutor-lms/client"
	"github.com/dlrkawo/aitutor-lms/client/tokenstore"
	"github.com/dlrkawo/aitutor-lms/internal/config"
)

// Service is a client.Client wired from configuration. It satisfies
// backend.Service.
type Service struct {
	*client.Client
}

// New opens a client for cfg.BaseURL that reads and writes tokens through
// tokens. Extra options are applied after the configured ones.
func New(cfg *config.Config, tokens tokenstore.Store, log zerolog.Logger, extra ...client.Option) (*Service, error) {
	opts := []client.Option{
		client.WithTokenStore(tokens),
		client.WithMode(client.Mode(cfg.Mode)),
	}
	if cfg.HTTPTimeout > 0 {
		opts = append(opts, client.WithHTTPTimeout(cfg.HTTPTimeout))
	}
	if cfg.Debug {
		opts = append(opts, client.WithDebugLogging(true))
	}
	opts = append(opts, extra...)

	c, err := client.New(cfg.BaseURL, opts...)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("base_url", c.BaseURL()).Str("mode", string(c.Mode())).Msg("http backend ready")
	return &Service{Client: c}, nil
}
