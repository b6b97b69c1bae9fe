// Package apiclient is the JSON client for the Lumina API. It attaches the
// stored bearer token and turns every non-2xx answer into a *StatusError.
// There is no retry and no caching.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/luminacoach/lumina/internal/kvstore"
)

const DefaultBaseURL = "http://localhost:5000"

// StatusError is a non-2xx response. Callers usually only log it and fall
// back to an empty value.
type StatusError struct {
	Status     int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: %d %s", e.Status, e.StatusText)
}

// IsStatus reports whether err is a *StatusError with the given code.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      kvstore.Store
}

// New builds a client. store may be nil, in which case no token is sent.
func New(baseURL string, store kvstore.Store) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		store:      store,
	}
}

// BaseURLFromEnv reads LUMINA_API_BASE_URL.
func BaseURLFromEnv() string {
	if v := os.Getenv("LUMINA_API_BASE_URL"); v != "" {
		return v
	}
	return DefaultBaseURL
}

// WithHTTPClient swaps the transport, mostly for tests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.httpClient = h
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Request sends body as JSON and decodes the response into T. headers are
// merged over the defaults. Empty responses (204) yield the zero T.
func Request[T any](ctx context.Context, c *Client, method, path string, body any, headers ...http.Header) (T, error) {
	var zero T

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return zero, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.store != nil {
		if token, ok := c.store.Get(kvstore.TokenKey); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for _, h := range headers {
		for k, vs := range h {
			req.Header.Del(k)
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return zero, &StatusError{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return zero, nil
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("unmarshal response: %w", err)
	}
	return out, nil
}
