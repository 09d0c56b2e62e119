// Package response decodes the list bodies returned by the ASA REST API.
package response

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNotObject is returned when a body is not a JSON object.
	ErrNotObject = errors.New("response body is not a JSON object")

	// ErrNoItems is returned when a list body has no "items" member.
	ErrNoItems = errors.New("response body has no items")
)

// Paging is the pagination block of a list body.
type Paging struct {
	Pages  int `json:"pages"`
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
	Count  int `json:"count,omitempty"`
}

// Page is a decoded list body: an ordered sequence of raw items and the
// optional paging block.
type Page struct {
	Items  []json.RawMessage `json:"items"`
	Paging *Paging           `json:"paging,omitempty"`
}

// DecodePage parses a list body. It fails if the body is not a JSON object or
// has no items member; an empty items array is a valid page.
func DecodePage(body []byte) (*Page, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "failed to decode response body"), ErrNotObject)
	}

	if raw == nil {
		return nil, ErrNotObject
	}

	itemsRaw, ok := raw["items"]
	if !ok || bytes.Equal(bytes.TrimSpace(itemsRaw), []byte("null")) {
		return nil, ErrNoItems
	}

	page := &Page{}
	if err := json.Unmarshal(itemsRaw, &page.Items); err != nil {
		return nil, errors.Wrap(err, "failed to decode items")
	}

	if pagingRaw, ok := raw["paging"]; ok {
		paging, err := decodePaging(pagingRaw)
		if err != nil {
			return nil, err
		}
		page.Paging = paging
	}

	return page, nil
}

// PageCount reports the number of pages a body declares. It returns false
// when the body is not a JSON object or carries no paging block, in which
// case the body is a single page.
func PageCount(body []byte) (int, bool) {
	var head struct {
		Paging json.RawMessage `json:"paging"`
	}

	if err := json.Unmarshal(body, &head); err != nil || len(head.Paging) == 0 {
		return 0, false
	}

	paging, err := decodePaging(head.Paging)
	if err != nil || paging == nil {
		return 0, false
	}

	return paging.Pages, true
}

// decodePaging accepts pages as a number or a numeric string.
func decodePaging(data json.RawMessage) (*Paging, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil //nolint:nilnil // Absent paging is not an error
	}

	var paging struct {
		Pages  json.Number `json:"pages"`
		Limit  int         `json:"limit"`
		Offset int         `json:"offset"`
		Count  int         `json:"count"`
	}

	if err := json.Unmarshal(data, &paging); err != nil {
		return nil, errors.Wrap(err, "failed to decode paging")
	}

	result := &Paging{Limit: paging.Limit, Offset: paging.Offset, Count: paging.Count}

	if paging.Pages != "" {
		pages, err := paging.Pages.Int64()
		if err != nil {
			return nil, errors.Wrapf(err, "invalid page count %q", paging.Pages)
		}
		result.Pages = int(pages)
	}

	return result, nil
}
