/*
Package client is the typed Go client for the retirement planner API.

PURPOSE:
  One method per (resource, operation) pair over the /api/v1 surface.
  Serializes/deserializes JSON and maps non-2xx responses to *APIError so
  failure paths are visible in signatures instead of thrown dynamically.

LAYERING:
  No retries, no timeouts, no caching here - those belong to the caller.
  Pair with QueryCache (cache.go) and the key factory (keys.go) for
  dedupe and targeted invalidation.

USAGE:
  c := client.New("http://localhost:8080")
  person, err := c.GetPerson(ctx, "per-123")
  var apiErr *client.APIError
  if errors.As(err, &apiErr) && apiErr.StatusCode == 404 { ... }
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

const basePath = "/api/v1"

// Client talks to the retirement planner API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a client for the given origin (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: http.DefaultClient,
	}
}

// APIError is the structured failure carried back from a non-2xx response.
type APIError struct {
	// Message is taken from the JSON error body when present, otherwise
	// "Request failed: {status}".
	Message    string
	StatusCode int
	StatusText string
	// Body is the raw decoded error body for caller inspection. Empty map
	// when the body was not valid JSON.
	Body map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Page holds pagination parameters: zero-based page index, page size, and
// an optional sort expression ("column" or "column,desc").
type Page struct {
	Number int
	Size   int
	Sort   string
}

func (p Page) query() url.Values {
	v := url.Values{}
	if p.Number > 0 {
		v.Set("page", strconv.Itoa(p.Number))
	}
	if p.Size > 0 {
		v.Set("size", strconv.Itoa(p.Size))
	}
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	return v
}

// do issues a request and decodes the response into out. A nil out or a
// 204 response leaves out untouched. Non-2xx responses return *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.BaseURL + basePath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFrom(resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorFrom builds an *APIError from a failed response. A non-JSON error
// body falls back to an empty body and a generic message.
func (c *Client) errorFrom(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	body := map[string]any{}
	if err := json.Unmarshal(raw, &body); err != nil {
		body = map[string]any{}
	}

	message := fmt.Sprintf("Request failed: %d", resp.StatusCode)
	if m, ok := body["message"].(string); ok && m != "" {
		message = m
	}

	return &APIError{
		Message:    message,
		StatusCode: resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Body:       body,
	}
}
