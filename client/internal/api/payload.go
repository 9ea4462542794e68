package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Payload is a successful response body. JSON bodies are kept raw so callers
// decode into their own types; other bodies are exposed as text.
type Payload struct {
	status int
	json   bool
	raw    []byte
}

// Empty reports a 204 No Content response.
func (p *Payload) Empty() bool { return p.status == http.StatusNoContent }

// IsJSON reports whether the response declared a JSON content type.
func (p *Payload) IsJSON() bool { return p.json }

// StatusCode of the response.
func (p *Payload) StatusCode() int { return p.status }

// Text returns the raw body.
func (p *Payload) Text() string { return string(p.raw) }

// Decode unmarshals the body into v. An empty payload leaves v untouched.
// Decoding into *string accepts both a JSON string and plain text.
func (p *Payload) Decode(v any) error {
	if p.Empty() || len(p.raw) == 0 {
		return nil
	}
	if s, ok := v.(*string); ok {
		if p.json && json.Unmarshal(p.raw, s) == nil {
			return nil
		}
		*s = string(p.raw)
		return nil
	}
	if err := json.Unmarshal(p.raw, v); err != nil {
		if !p.json {
			return fmt.Errorf("expected JSON response, got %q: %w", truncate(p.Text(), 120), err)
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
