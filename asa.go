// Package asa is a convenience layer over the ASA REST client.
//
// It filters network objects by address kind and reserves names for
// operations the device client does not expose yet.
//
//	device, err := asa.NewWithConfig(&rest.ClientConfig{
//	    Host:     "10.0.0.1",
//	    Username: "admin",
//	    Password: "secret",
//	    Logger:   observability.NewTextLogger(os.Stderr, slog.LevelInfo),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	hosts, err := device.GetHostObjects(ctx)
package asa

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-asa/api/rest"
	"github.com/lexfrei/go-asa/internal/response"
	"github.com/lexfrei/go-asa/observability"
)

// ASA wraps a device client with object filtering.
type ASA struct {
	api     rest.DeviceAPIClient
	logger  observability.Logger
	metrics observability.MetricsRecorder
}

// New creates a façade over api. Nil logger and metrics fall back to no-op
// implementations.
func New(api rest.DeviceAPIClient, logger observability.Logger, metrics observability.MetricsRecorder) *ASA {
	if logger == nil {
		logger = observability.NoopLogger()
	}
	if metrics == nil {
		metrics = observability.NoopMetricsRecorder()
	}

	return &ASA{
		api:     api,
		logger:  logger.With(observability.Field{Key: "component", Value: "asa"}),
		metrics: metrics,
	}
}

// NewWithConfig creates the device client and the façade from one endpoint
// description. The façade logs and records metrics through the same
// Logger and Metrics as the client.
func NewWithConfig(cfg *rest.ClientConfig) (*ASA, error) {
	api, err := rest.NewWithConfig(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create device client")
	}

	return New(api, cfg.Logger, cfg.Metrics), nil
}

// API returns the underlying device client for endpoints the façade does not wrap.
//
//nolint:ireturn // Callers may have injected their own implementation
func (a *ASA) API() rest.DeviceAPIClient {
	return a.api
}

// GetNetworkObjects returns network objects whose host is an IPv4 network.
func (a *ASA) GetNetworkObjects(ctx context.Context) ([]rest.NetworkObject, error) {
	return a.networkObjectsOfKind(ctx, rest.HostKindNetwork)
}

// GetHostObjects returns network objects whose host is a single IPv4 address.
func (a *ASA) GetHostObjects(ctx context.Context) ([]rest.NetworkObject, error) {
	return a.networkObjectsOfKind(ctx, rest.HostKindAddress)
}

// GetRangeObjects returns network objects whose host is an IPv4 range.
func (a *ASA) GetRangeObjects(ctx context.Context) ([]rest.NetworkObject, error) {
	return a.networkObjectsOfKind(ctx, rest.HostKindRange)
}

// networkObjectsOfKind fetches every page of network objects and keeps the
// items of the given kind. A page that cannot be parsed is logged and
// contributes nothing; transport errors are returned.
func (a *ASA) networkObjectsOfKind(ctx context.Context, kind rest.HostKind) ([]rest.NetworkObject, error) {
	responses, err := a.api.GetNetworkObjects(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get network objects")
	}

	result := []rest.NetworkObject{}

	for i, resp := range responses {
		objects, err := parseNetworkObjects(resp)
		if err != nil {
			fields := []observability.Field{
				{Key: "page", Value: i + 1},
				{Key: "error", Value: err.Error()},
			}
			if resp != nil {
				fields = append(fields, observability.Field{Key: "status", Value: resp.StatusCode})
			}

			a.logger.Critical("failed to parse network objects page", fields...)
			a.metrics.RecordError("parse_items", parseErrorType(err))

			continue
		}

		for _, obj := range objects {
			if obj.Host.Kind == kind {
				result = append(result, obj)
			}
		}
	}

	return result, nil
}

func parseNetworkObjects(resp *rest.Response) ([]rest.NetworkObject, error) {
	if resp == nil {
		return nil, response.ErrNotObject
	}

	page, err := resp.Page()
	if err != nil {
		return nil, errors.Wrap(err, "invalid page")
	}

	objects, err := rest.DecodeNetworkObjects(page)
	if err != nil {
		return nil, errors.Wrap(err, "invalid items")
	}

	return objects, nil
}

func parseErrorType(err error) string {
	switch {
	case errors.Is(err, response.ErrNotObject):
		return "NotJSONObject"
	case errors.Is(err, response.ErrNoItems):
		return "MissingItems"
	case errors.Is(err, rest.ErrMissingHostKind):
		return "MissingHostKind"
	default:
		return "InvalidItem"
	}
}
