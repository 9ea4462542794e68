package client

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dlrkawo/aitutor-lms/client/tokenstore"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestWithHTTPTimeout(t *testing.T) {
	c := &Client{http: &http.Client{}}
	if err := WithHTTPTimeout(5 * time.Second)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.http.Timeout != 5*time.Second {
		t.Fatalf("http timeout not set")
	}
	if err := WithHTTPTimeout(0)(c); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}

func TestWithHTTPClientAndDebugLogging(t *testing.T) {
	var called bool
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header), Request: r}, nil
	})
	callerClient := &http.Client{Transport: rt}

	c, err := New("http://example.com", WithHTTPClient(callerClient), WithDebugLogging(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	if callerClient.Transport == c.http.Transport {
		t.Fatalf("caller's http.Client must not be mutated")
	}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", strings.NewReader(""))
	if _, err := c.http.Do(req); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if !called {
		t.Fatalf("base transport not invoked")
	}
}

func TestWithMode(t *testing.T) {
	c, err := New("http://localhost:5173", WithMode(ModeProxy))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()
	if c.Mode() != ModeProxy {
		t.Fatalf("mode = %q", c.Mode())
	}

	if _, err := New("http://example.com", WithMode("tunnel")); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestWithTokenStore(t *testing.T) {
	if _, err := New("http://example.com", WithTokenStore(nil)); err == nil {
		t.Fatalf("expected error for nil store")
	}

	store := tokenstore.NewMemory()
	_ = store.SetToken("existing")
	c, err := New("http://example.com", WithTokenStore(store))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()
	if !c.IsAuthenticated() || c.Tokens() != store {
		t.Fatalf("client must read the supplied store")
	}
}

func TestNew_AutoEnableDebugViaEnv(t *testing.T) {
	t.Setenv("LMS_DEBUG", "true")
	c, err := New("http://example.com")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()
	mt, ok := c.http.Transport.(*metricsTransport)
	if !ok {
		t.Fatalf("expected metricsTransport outermost, got %T", c.http.Transport)
	}
	if _, ok := mt.base.(*debugTransport); !ok {
		t.Fatalf("expected debugTransport to be installed when LMS_DEBUG=true")
	}
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	c, err := New("http://example.com", WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	if _, err := c.http.Do(req); err == nil {
		t.Fatalf("expected error from underlying transport")
	}
}
