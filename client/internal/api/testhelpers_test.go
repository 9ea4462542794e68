package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/dlrkawo/aitutor-lms/client/internal/shardqueue"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// inlineExec runs each upload job on the caller's goroutine and records
// the shard keys it saw.
type inlineExec struct {
	mu    sync.Mutex
	calls []string
}

func (m *inlineExec) Submit(ctx context.Context, shard string, job shardqueue.Job) error {
	m.mu.Lock()
	m.calls = append(m.calls, shard)
	m.mu.Unlock()
	return job.Run(ctx)
}

// failingExec implements types.Executor and always fails Submit.
type failingExec struct{}

func (f *failingExec) Submit(ctx context.Context, shard string, job shardqueue.Job) error {
	return fmt.Errorf("submit failed")
}

// staticTokens is a fixed TokenSource.
type staticTokens string

func (s staticTokens) Token() (string, error) { return string(s), nil }

func endpointFor(srv *httptest.Server, token string) Endpoint {
	return Endpoint{HTTP: srv.Client(), BaseURL: srv.URL, Mode: ModeDirect, Tokens: staticTokens(token)}
}
