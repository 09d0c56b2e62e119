// Package middleware provides the RoundTripper middleware that decorates
// requests sent to an ASA device.
package middleware

import (
	"maps"
	"net/http"
)

// BasicAuth returns a middleware that attaches HTTP Basic credentials to every
// request passing through it, including follow-up page requests.
func BasicAuth(username, password string) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return &basicAuthTransport{
			next:     next,
			username: username,
			password: password,
		}
	}
}

type basicAuthTransport struct {
	next     http.RoundTripper
	username string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = cloneRequest(req)
	req.SetBasicAuth(t.username, t.password)

	//nolint:wrapcheck // Middleware passes through errors from next handler in chain
	return t.next.RoundTrip(req)
}

// StaticHeaders returns a middleware that sets a fixed set of headers on every
// request. Headers already present on the request are overwritten.
func StaticHeaders(headers http.Header) func(http.RoundTripper) http.RoundTripper {
	fixed := headers.Clone()

	return func(next http.RoundTripper) http.RoundTripper {
		return &headersTransport{
			next:    next,
			headers: fixed,
		}
	}
}

type headersTransport struct {
	next    http.RoundTripper
	headers http.Header
}

func (t *headersTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = cloneRequest(req)

	for name, values := range t.headers {
		req.Header.Del(name)
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	//nolint:wrapcheck // Middleware passes through errors from next handler in chain
	return t.next.RoundTrip(req)
}

// cloneRequest creates a shallow copy of the request with a cloned header map.
func cloneRequest(req *http.Request) *http.Request {
	r := new(http.Request)
	*r = *req
	r.Header = make(http.Header, len(req.Header))
	maps.Copy(r.Header, req.Header)
	return r
}
