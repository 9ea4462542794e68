package client

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dlrkawo/aitutor-lms/client/internal/shardqueue"
	"github.com/dlrkawo/aitutor-lms/client/tokenstore"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithTokenStore sets where the bearer token is read from and written to.
// The default is an in-memory store.
func WithTokenStore(s tokenstore.Store) Option {
	return func(c *Client) error {
		if s == nil {
			return fmt.Errorf("token store cannot be nil")
		}
		c.tokens = s
		return nil
	}
}

// WithHTTPTimeout bounds each HTTP request. By default requests are bounded
// only by their context.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client. The client is copied,
// so later options do not mutate the caller's value.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithMode records how the base address was resolved. It selects the
// troubleshooting checklist attached to network errors.
func WithMode(m Mode) Option {
	return func(c *Client) error {
		switch m {
		case ModeProxy, ModeDirect:
			c.mode = m
			return nil
		default:
			return fmt.Errorf("unknown mode %q", m)
		}
	}
}

// WithUploadQueue overrides the async upload queue settings that are
// otherwise read from LMS_UPLOAD_* variables.
func WithUploadQueue(cfg UploadQueueConfig) Option {
	return func(c *Client) error {
		c.uploadCfg = &cfg
		return nil
	}
}

// LoadUploadQueueConfig reads the upload queue settings from LMS_UPLOAD_*
// variables, for callers that adjust them before WithUploadQueue.
func LoadUploadQueueConfig() (UploadQueueConfig, error) {
	return shardqueue.LoadConfig()
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. Dumps include headers and bodies, the bearer
// token among them.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}
