package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Page is the uniform list shape handed to views. List endpoints on the
// backend answer either with a bare JSON array or with a pagination envelope
// {results, count, next, previous}; downstream code never branches on which.
type Page[T any] struct {
	Items       []T
	Total       int
	HasNext     bool
	HasPrevious bool
}

// listEnvelope mirrors the backend's paginated list body.
type listEnvelope struct {
	Results  json.RawMessage `json:"results"`
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
}

// NormalizeList reshapes a raw list body into a Page. When the body carries a
// "results" key it is treated as a pagination envelope; otherwise the body
// itself is the item array. A body that is neither yields an empty page.
//
// Normalization is applied per call site, not globally: detail endpoints
// return non-list bodies that must pass through the client untouched.
func NormalizeList[T any](raw json.RawMessage) (Page[T], error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env listEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return Page[T]{}, fmt.Errorf("decode list envelope: %w", err)
		}
		if env.Results != nil {
			var items []T
			if err := json.Unmarshal(env.Results, &items); err != nil {
				return Page[T]{}, fmt.Errorf("decode list results: %w", err)
			}
			return Page[T]{
				Items:       items,
				Total:       env.Count,
				HasNext:     env.Next != nil,
				HasPrevious: env.Previous != nil,
			}, nil
		}
		// An object without "results" is not a list; treat as empty.
		return Page[T]{Items: []T{}}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		// Not an array either.
		return Page[T]{Items: []T{}}, nil
	}
	return Page[T]{
		Items: items,
		Total: len(items),
	}, nil
}

// fetchPage retrieves a list endpoint and normalizes its body.
func fetchPage[T any](ctx context.Context, c *Client, path string, query url.Values) (Page[T], error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, query, &raw); err != nil {
		return Page[T]{}, err
	}
	return NormalizeList[T](raw)
}
