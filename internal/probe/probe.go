// Package probe checks whether the LMS backend answers at a base address,
// telling a dead tunnel apart from a dead network path.
package probe

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds a probe when the caller gives none.
const DefaultTimeout = 5 * time.Second

const (
	probePath           = "/api/auth/me"
	tunnelWarningHeader = "ngrok-skip-browser-warning"
)

// Status is the probe outcome.
type Status string

const (
	// Reachable means the backend itself answered, with any status code.
	Reachable Status = "reachable"
	// TunnelOffline means the tunnel answered but its agent is gone.
	TunnelOffline Status = "tunnel-offline"
	// TunnelError means a tunnel or proxy error page came back instead of the API.
	TunnelError Status = "tunnel-error"
	// Unreachable means the request never got an HTTP answer.
	Unreachable Status = "unreachable"
)

// Report describes one probe.
type Report struct {
	BaseURL    string `json:"baseUrl"`
	Status     Status `json:"status"`
	StatusCode int    `json:"statusCode,omitempty"`
	LatencyMS  int64  `json:"latencyMs"`
	Detail     string `json:"detail,omitempty"`
}

// OK reports whether the backend answered.
func (r *Report) OK() bool { return r.Status == Reachable }

// Prober probes one base address.
type Prober struct {
	client  *resty.Client
	baseURL string
}

// New creates a Prober for baseURL. A non-positive timeout uses DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL = strings.TrimRight(baseURL, "/")
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader(tunnelWarningHeader, "true").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			log.Debug().
				Str("url", resp.Request.URL).
				Int("status", resp.StatusCode()).
				Dur("latency", resp.Time()).
				Msg("probe response")
			return nil
		})
	return &Prober{client: c, baseURL: baseURL}
}

// Probe sends one unauthenticated request. The error is non-nil only when
// ctx ends first; every other outcome is described by the report.
func (p *Prober) Probe(ctx context.Context) (*Report, error) {
	start := time.Now()
	resp, err := p.client.R().SetContext(ctx).Get(probePath)
	report := &Report{BaseURL: p.baseURL, LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, context.DeadlineExceeded) {
			report.Detail = "timed out after " + p.client.GetClient().Timeout.String()
		} else {
			report.Detail = err.Error()
		}
		report.Status = Unreachable
		return report, nil
	}

	report.StatusCode = resp.StatusCode()
	report.Status, report.Detail = classify(resp.String())
	return report, nil
}

// classify inspects a response body for tunnel error pages.
func classify(body string) (Status, string) {
	lower := strings.ToLower(body)
	if !strings.Contains(lower, "ngrok") && !strings.Contains(lower, "<!doctype html>") {
		return Reachable, ""
	}
	if strings.Contains(lower, "err_ngrok_3200") || strings.Contains(lower, "is offline") {
		return TunnelOffline, "the tunnel is up but no backend agent is connected; restart the tunnel on the backend host"
	}
	return TunnelError, "an HTML page came back instead of the API; check the tunnel or proxy forwarding for /api"
}
