// Package observability provides interfaces for logging and metrics collection
// in the go-asa library.
//
// This package defines standard interfaces that allow users to integrate their
// own logging and metrics implementations with the ASA REST client and façade.
//
// # Logger Interface
//
// The Logger interface supports structured logging with key-value pairs:
//
//	logger := observability.NewTextLogger(os.Stderr, slog.LevelDebug)
//	client, err := rest.NewWithConfig(&rest.ClientConfig{
//		Host:     "10.0.0.1",
//		Username: "admin",
//		Password: "secret",
//		Logger:   logger,
//	})
//
// Supported log levels:
//   - Debug: every HTTP exchange with the device
//   - Info: general informational messages
//   - Warn: responses with a 4xx or 5xx status
//   - Error: transport failures
//   - Critical: device responses that could not be parsed (LevelCritical)
//
// NewSlogLogger adapts any *slog.Logger; NewTextLogger is a shortcut for a
// text handler with a chosen verbosity.
//
// # MetricsRecorder Interface
//
// The MetricsRecorder interface tracks HTTP request count, status and duration,
// plus error occurrences by type. Request paths are normalised before they are
// recorded (object names become ":name") so label cardinality stays bounded.
//
// # Default Behavior
//
// If no logger or metrics recorder is provided, the client uses no-op
// implementations that discard all events.
package observability
