package types

import (
	"context"
	"net/http"

	"github.com/dlrkawo/aitutor-lms/client/internal/shardqueue"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// Executor runs jobs for the async upload queue.
type Executor interface {
	Submit(context.Context, string, shardqueue.Job) error
}

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource supplies the bearer token at call time.
type TokenSource interface {
	Token() (string, error)
}
