package client

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	lmserrors "github.com/dlrkawo/aitutor-lms/client/internal/errors"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aitutor_client",
			Name:      "requests_total",
			Help:      "HTTP requests sent to the LMS backend by method and status code.",
		},
		[]string{"method", "code"},
	)

	requestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aitutor_client",
			Name:      "request_failures_total",
			Help:      "Failed client operations by error kind.",
		},
		[]string{"kind"},
	)

	uploadsEnqueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aitutor_client",
			Name:      "uploads_enqueued_total",
			Help:      "Material uploads accepted into the upload queue.",
		},
		[]string{"shard"},
	)
)

// metricsTransport counts every round trip. Transport errors are counted
// with code "error".
type metricsTransport struct{ base http.RoundTripper }

func (mt *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := mt.base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil {
		requestsTotal.WithLabelValues(req.Method, "error").Inc()
		return nil, err
	}
	requestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

// recordFailure counts err under its kind. Errors without a kind, such as
// context cancellation, are counted as "other".
func recordFailure(err error) {
	if err == nil {
		return
	}
	kind := "other"
	if k := lmserrors.KindOf(err); k != 0 {
		kind = k.String()
	}
	requestFailuresTotal.WithLabelValues(kind).Inc()
}

func observe[T any](v T, err error) (T, error) {
	recordFailure(err)
	return v, err
}

func observeErr(err error) error {
	recordFailure(err)
	return err
}
