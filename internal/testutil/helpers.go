// Package testutil provides a fake ASA device and fixtures for tests.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// RecordedRequest is a request observed by FakeASA.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
	Username string
	Password string
	HasAuth  bool
}

// FakeASA is an HTTPS test server that routes /api/... requests like an ASA
// REST agent and records every request it receives.
type FakeASA struct {
	Server *httptest.Server
	Router chi.Router

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewFakeASA starts a TLS test server with a self-signed certificate.
// The server is closed when the test finishes.
func NewFakeASA(t *testing.T) *FakeASA {
	t.Helper()

	fake := &FakeASA{Router: chi.NewRouter()}
	fake.Router.Use(fake.record(t))

	fake.Server = httptest.NewTLSServer(fake.Router)
	t.Cleanup(fake.Server.Close)

	return fake
}

// Host returns the host:port of the server, suitable for a device endpoint.
func (f *FakeASA) Host() string {
	return strings.TrimPrefix(f.Server.URL, "https://")
}

// Requests returns a copy of the requests received so far.
func (f *FakeASA) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)

	return out
}

// Respond registers a fixed response for method and path.
// path is relative to /api/, e.g. "objects/networkobjects".
func (f *FakeASA) Respond(method, path string, statusCode int, body string) {
	f.Router.MethodFunc(method, "/api/"+path, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, statusCode, body)
	})
}

// RespondDefault answers every /api/ request that has no more specific route.
func (f *FakeASA) RespondDefault(statusCode int, body string) {
	f.Router.HandleFunc("/api/*", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, statusCode, body)
	})
}

// RespondPages serves GET path as a paginated collection: the request offset
// selects pages[offset/limit]. Offsets past the last page get a 404.
func (f *FakeASA) RespondPages(t *testing.T, path string, limit int, pages ...string) {
	t.Helper()

	f.Router.Get("/api/"+path, func(w http.ResponseWriter, r *http.Request) {
		offset := 0
		if raw := r.URL.Query().Get("offset"); raw != "" {
			var err error
			offset, err = strconv.Atoi(raw)
			if err != nil {
				t.Errorf("invalid offset %q", raw)
				writeJSON(w, http.StatusBadRequest, `{}`)
				return
			}
		}

		index := offset / limit
		if offset%limit != 0 || index >= len(pages) {
			writeJSON(w, http.StatusNotFound, `{"messages":[]}`)
			return
		}

		writeJSON(w, http.StatusOK, pages[index])
	})
}

func (f *FakeASA) record(t *testing.T) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				t.Errorf("failed to read request body: %v", err)
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			username, password, hasAuth := r.BasicAuth()

			f.mu.Lock()
			f.requests = append(f.requests, RecordedRequest{
				Method:   r.Method,
				Path:     r.URL.Path,
				RawQuery: r.URL.RawQuery,
				Header:   r.Header.Clone(),
				Body:     body,
				Username: username,
				Password: password,
				HasAuth:  hasAuth,
			})
			f.mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

// PageBody builds a list body with the given raw items and declared page count.
// A zero page count omits the paging block.
func PageBody(pages int, items ...string) string {
	var b strings.Builder

	b.WriteString(`{"items":[`)
	b.WriteString(strings.Join(items, ","))
	b.WriteString(`]`)

	if pages > 0 {
		b.WriteString(`,"paging":{"pages":`)
		b.WriteString(strconv.Itoa(pages))
		b.WriteString(`}`)
	}

	b.WriteString(`}`)

	return b.String()
}

// AssertDeviceHeaders checks the fixed headers and Basic credentials every
// request to a device must carry.
func AssertDeviceHeaders(t *testing.T, req RecordedRequest, username, password string) {
	t.Helper()

	assert.True(t, req.HasAuth, "%s %s should carry Basic auth", req.Method, req.Path)
	assert.Equal(t, username, req.Username)
	assert.Equal(t, password, req.Password)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "asaREST", req.Header.Get("User-Agent"))
}
