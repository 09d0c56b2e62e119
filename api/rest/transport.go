package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-asa/internal/response"
)

// Response is a completed HTTP exchange with a device.
// The body is read in full; status codes are not interpreted.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Page parses the body as a list page.
// Errors are marked with response.ErrNotObject or response.ErrNoItems.
func (r *Response) Page() (*response.Page, error) {
	//nolint:wrapcheck // Sentinel marks must stay visible to errors.Is
	return response.DecodePage(r.Body)
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrap(err, "failed to decode response body")
	}

	return nil
}

// Delete issues a DELETE for path.
func (c *APIClient) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Get issues a GET for path and follows pagination with the client page limit.
func (c *APIClient) Get(ctx context.Context, path string) ([]*Response, error) {
	return c.GetWithLimit(ctx, path, c.pageLimit)
}

// GetWithLimit issues a GET for path. When the first response is a 200 whose
// body declares paging.pages = P, it fetches pages 1..P-1 with
// offset = i*limit. Responses are returned in ascending offset order.
func (c *APIClient) GetWithLimit(ctx context.Context, path string, limit int) ([]*Response, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	first, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	responses := []*Response{first}

	if first.StatusCode != http.StatusOK {
		return responses, nil
	}

	pages, ok := response.PageCount(first.Body)
	if !ok {
		return responses, nil
	}

	for i := 1; i < pages; i++ {
		query := url.Values{}
		query.Set("offset", strconv.Itoa(i*limit))

		resp, err := c.do(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "page %d of %d", i+1, pages)
		}

		responses = append(responses, resp)
	}

	return responses, nil
}

// getOne issues a single GET for an object path; object bodies are not paginated.
func (c *APIClient) getOne(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, nil)
}

// Post issues a POST for path. A nil body sends no request body.
func (c *APIClient) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT for path with body encoded as JSON.
func (c *APIClient) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Patch issues a PATCH for path with body encoded as JSON.
func (c *APIClient) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body)
}

// resolve builds https://{host}/api/{path}, merging extra into any query
// already present in path.
func (c *APIClient) resolve(path string, extra url.Values) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid path %q", path)
	}
	if ref.IsAbs() || ref.Host != "" {
		return nil, errors.Newf("path %q must be relative to /api/", path)
	}

	u := c.baseURL.ResolveReference(ref)

	if len(extra) > 0 {
		query := u.Query()
		for key, values := range extra {
			query[key] = values
		}
		u.RawQuery = query.Encode()
	}

	return u, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	target, err := c.resolve(path, query)
	if err != nil {
		return nil, err
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode %s %s body", method, path)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s request", method)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, target.Redacted())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s %s response", method, target.Redacted())
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
