package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-asa/internal/httpclient"
	"github.com/lexfrei/go-asa/internal/middleware"
	"github.com/lexfrei/go-asa/observability"
)

const (
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPageLimit is the page size the ASA REST agent uses for list endpoints.
	DefaultPageLimit = 100

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "asaREST"
)

// ErrHostRequired is returned when a device endpoint has no host.
var ErrHostRequired = errors.New("device host is required")

// APIClient talks to the REST API of a single ASA device.
// It is read-only after construction and can be reused for any number of calls.
type APIClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	pageLimit  int
}

// Compile-time check to ensure APIClient implements DeviceAPIClient interface.
var _ DeviceAPIClient = (*APIClient)(nil)

// ClientConfig describes a device endpoint.
type ClientConfig struct {
	// Host is the device address, "host" or "host:port", without scheme
	Host string

	// Username for HTTP Basic authentication
	Username string

	// Password for HTTP Basic authentication
	Password string

	// VerifyCert enables TLS certificate verification (ASA devices usually use self-signed certs)
	VerifyCert bool

	// Timeout sets the HTTP client timeout (defaults to 30 seconds)
	Timeout time.Duration

	// PageLimit is the page size used to compute offsets (defaults to 100)
	PageLimit int

	// UserAgent overrides the User-Agent header (defaults to "asaREST")
	UserAgent string

	// HTTPClient is the HTTP client to use (optional). Its transport is wrapped
	// with the device middleware; TLS settings are then left to the caller.
	HTTPClient *http.Client

	// Logger for observability (optional, uses noop logger if nil)
	Logger observability.Logger

	// Metrics recorder for observability (optional, uses noop recorder if nil)
	Metrics observability.MetricsRecorder
}

// String returns a representation of the endpoint safe for logging.
func (c ClientConfig) String() string {
	return fmt.Sprintf("ClientConfig{host: %s, username: %s, password: %s, verifyCert: %t, timeout: %s}",
		c.Host, c.Username, maskSecret(c.Password), c.VerifyCert, c.Timeout)
}

// maskSecret hides a secret entirely, including its length.
func maskSecret(string) string {
	return "****"
}

// New creates a client for the device at host with default settings:
// 30 second timeout, page limit 100, no certificate verification.
//
// Example:
//
//	client, err := rest.New("10.0.0.1", "admin", "secret")
func New(host, username, password string) (*APIClient, error) {
	return NewWithConfig(&ClientConfig{
		Host:     host,
		Username: username,
		Password: password,
	})
}

// NewWithConfig creates a client from a full device endpoint description.
//
// Example:
//
//	client, err := rest.NewWithConfig(&rest.ClientConfig{
//	    Host:       "fw01.example.com",
//	    Username:   "admin",
//	    Password:   "secret",
//	    VerifyCert: true,
//	    Timeout:    10 * time.Second,
//	    Logger:     myLogger,
//	})
func NewWithConfig(cfg *ClientConfig) (*APIClient, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	host := strings.TrimSuffix(strings.TrimSpace(cfg.Host), "/")
	if host == "" {
		return nil, ErrHostRequired
	}
	if strings.Contains(host, "://") {
		return nil, errors.Newf("device host %q must not include a scheme", host)
	}

	baseURL, err := url.Parse("https://" + host + "/api/")
	if err != nil {
		return nil, errors.Wrapf(err, "invalid device host %q", host)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	pageLimit := cfg.PageLimit
	if pageLimit <= 0 {
		pageLimit = DefaultPageLimit
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")
	headers.Set("User-Agent", userAgent)

	// Order from outside to inside: Observability -> Headers -> BasicAuth -> TLS
	chain := []httpclient.Middleware{
		middleware.Observability(cfg.Logger, cfg.Metrics),
		middleware.StaticHeaders(headers),
		middleware.BasicAuth(cfg.Username, cfg.Password),
	}

	var opts []httpclient.Option
	if cfg.HTTPClient != nil {
		custom := *cfg.HTTPClient
		if cfg.Timeout > 0 || custom.Timeout == 0 {
			custom.Timeout = timeout
		}
		opts = append(opts, httpclient.WithHTTPClient(&custom))
	} else {
		opts = append(opts, httpclient.WithTimeout(timeout))
		chain = append(chain, middleware.TLSConfig(middleware.VerifyCert(cfg.VerifyCert)))
	}

	opts = append(opts, httpclient.WithMiddleware(chain...))

	return &APIClient{
		baseURL:    baseURL,
		httpClient: httpclient.New(opts...).HTTPClient(),
		pageLimit:  pageLimit,
	}, nil
}

// Host returns the device address the client talks to.
func (c *APIClient) Host() string {
	return c.baseURL.Host
}

// PageLimit returns the page size used by Get.
func (c *APIClient) PageLimit() int {
	return c.pageLimit
}
