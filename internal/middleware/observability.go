package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexfrei/go-asa/observability"
)

// Observability returns a middleware that logs and records metrics for HTTP requests.
func Observability(logger observability.Logger, metrics observability.MetricsRecorder) func(http.RoundTripper) http.RoundTripper {
	if logger == nil {
		logger = observability.NoopLogger()
	}
	if metrics == nil {
		metrics = observability.NoopMetricsRecorder()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &observabilityTransport{
			next:    next,
			logger:  logger,
			metrics: metrics,
		}
	}
}

type observabilityTransport struct {
	next    http.RoundTripper
	logger  observability.Logger
	metrics observability.MetricsRecorder
}

func (t *observabilityTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	log := t.logger.With(
		observability.Field{Key: "request_id", Value: uuid.NewString()},
		observability.Field{Key: "method", Value: req.Method},
		observability.Field{Key: "url", Value: req.URL.String()},
	)

	log.Debug("http request started")

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		log.Error("http request failed",
			observability.Field{Key: "duration", Value: duration},
			observability.Field{Key: "error", Value: err.Error()},
		)

		t.metrics.RecordError("http_request", "NetworkError")

		//nolint:wrapcheck // Observability middleware logs error but passes it through unchanged
		return nil, err
	}

	fields := []observability.Field{
		{Key: "status", Value: resp.StatusCode},
		{Key: "duration", Value: duration},
	}

	if resp.StatusCode >= http.StatusBadRequest {
		log.Warn("http request completed with error", fields...)
	} else {
		log.Debug("http request completed", fields...)
	}

	t.metrics.RecordHTTPRequest(req.Method, normalizePath(req.URL.Path), resp.StatusCode, duration)

	return resp, nil
}

// namedCollections are the ASA REST collections whose next path segment is a
// user-chosen object name.
var namedCollections = map[string]bool{
	"networkobjects":       true,
	"networkobjectgroups":  true,
	"networkservices":      true,
	"networkservicegroups": true,
	"extendedacls":         true,
	"localusers":           true,
	"aces":                 true,
	"ikev1policy":          true,
}

// normalizedPathCache caches normalized paths; a device exposes a small,
// stable set of objects so the hit rate is high.
var normalizedPathCache sync.Map

// normalizePath replaces object names with placeholders to prevent unbounded
// cardinality in metrics.
//
// Examples:
//   - /api/objects/networkobjects/web-01 → /api/objects/networkobjects/:name
//   - /api/objects/extendedacls/outside_in/aces/1234 → /api/objects/extendedacls/:name/aces/:name
//   - /api/commands/writemem → /api/commands/writemem
func normalizePath(path string) string {
	if cached, ok := normalizedPathCache.Load(path); ok {
		//nolint:forcetypeassert // Cache only stores strings, type assertion is safe
		return cached.(string)
	}

	segments := strings.Split(path, "/")
	for i := 1; i < len(segments); i++ {
		if segments[i] != "" && namedCollections[segments[i-1]] {
			segments[i] = ":name"
		}
	}

	normalized := strings.Join(segments, "/")
	normalizedPathCache.Store(path, normalized)

	return normalized
}
