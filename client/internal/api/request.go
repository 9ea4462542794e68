// Package api implements the request/response contract and one function per
// LMS backend endpoint. Every call is independent: no retries, no caching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	lmserrors "github.com/dlrkawo/aitutor-lms/client/internal/errors"
	"github.com/dlrkawo/aitutor-lms/client/internal/types"
)

// TunnelWarningHeader suppresses the tunneling proxy's browser interstitial.
const TunnelWarningHeader = "ngrok-skip-browser-warning"

// Mode records how the base address was resolved. It is fixed per client.
type Mode string

const (
	// ModeProxy routes requests through a same-origin reverse proxy.
	ModeProxy Mode = "proxy"
	// ModeDirect sends requests to an absolute external address.
	ModeDirect Mode = "direct"
)

// Endpoint is everything Do needs to reach the backend.
type Endpoint struct {
	HTTP    types.HTTPClient
	BaseURL string
	Mode    Mode
	Tokens  types.TokenSource // may be nil: no request is authenticated
}

// Request describes one call. Body is nil, a *Multipart form, or any
// JSON-serializable value.
type Request struct {
	Method      string
	Path        string
	Body        any
	IncludeAuth bool
}

// Do performs one HTTP call and returns the parsed payload or an *errors.Error.
// Context cancellation is returned as ctx.Err(), not as a network failure.
func Do(ctx context.Context, ep Endpoint, r Request) (*Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := ep.BaseURL + r.Path

	var (
		body        io.Reader
		contentType = "application/json"
	)
	switch b := r.Body.(type) {
	case nil:
	case *Multipart:
		buf, ct, err := b.encode()
		if err != nil {
			return nil, lmserrors.WrapValidation("encode multipart body", err)
		}
		body, contentType = buf, ct
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, lmserrors.WrapValidation("encode request body", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.Method, url, body)
	if err != nil {
		return nil, lmserrors.WrapValidation("build request", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set(TunnelWarningHeader, "true")
	if r.IncludeAuth && ep.Tokens != nil {
		token, err := ep.Tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("read bearer token: %w", err)
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := ep.HTTP.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, lmserrors.NewNetworkError(url, networkDiagnostic(url, ep), err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, lmserrors.NewNetworkError(url, networkDiagnostic(url, ep), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseError(resp, data, url)
	}
	if resp.StatusCode == http.StatusNoContent {
		return &Payload{status: resp.StatusCode}, nil
	}
	return &Payload{
		status: resp.StatusCode,
		json:   isJSON(resp.Header.Get("Content-Type")),
		raw:    data,
	}, nil
}

// responseError builds the error for a non-2xx response.
func responseError(resp *http.Response, data []byte, url string) error {
	text := string(data)
	status := statusText(resp)

	message := strings.TrimSpace(text)
	if isJSON(resp.Header.Get("Content-Type")) {
		var eb struct {
			Message string `json:"message"`
			Title   string `json:"title"`
		}
		if json.Unmarshal(data, &eb) == nil {
			switch {
			case eb.Message != "":
				message = eb.Message
			case eb.Title != "":
				message = eb.Title
			}
		}
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "ngrok") || strings.Contains(lower, "<!doctype html>") {
		offline := strings.Contains(lower, "err_ngrok_3200") || strings.Contains(lower, "is offline")
		return lmserrors.NewProxyError(resp.StatusCode, status, offline, text, url)
	}
	return lmserrors.NewHTTPError(resp.StatusCode, status, message, text, url)
}

func statusText(resp *http.Response) string {
	s := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	s = strings.TrimSpace(s)
	if s == "" {
		s = http.StatusText(resp.StatusCode)
	}
	return s
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}
