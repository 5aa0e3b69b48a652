// Package api wraps the BilimPath HTTP endpoints the client consumes:
// login, registration, progress, and the two exam flows. Calls are
// stateless request/response pairs with no retries, no caching, no request
// deduplication. Each method converts its wire shape into the internal
// exam/progress types so screens never see raw payloads.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bilimpath/bilim/internal/session"
)

const defaultTimeout = 60 * time.Second

// Client talks to one BilimPath API server.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// New creates a Client for the given base URL. A zero timeout uses the
// default; a nil logger discards.
func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// detailBody is the structured error shape FastAPI-style backends return.
type detailBody struct {
	Detail string `json:"detail"`
}

// do issues a request and returns the response body on 2xx. On any other
// status it extracts "detail" from the body when present and wraps it with
// the call site's fallback message.
func (c *Client) do(ctx context.Context, method, path string, sess *session.Session, contentType string, body io.Reader, fallback string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, callErr(fallback, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if sess != nil {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api request failed", "method", method, "path", path, "err", err)
		return nil, callErr(fallback, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, callErr(fallback, err)
	}

	c.log.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode, Fallback: fallback}
		var d detailBody
		if json.Unmarshal(raw, &d) == nil {
			apiErr.Detail = d.Detail
		}
		return nil, apiErr
	}

	return raw, nil
}

// postJSON marshals body and issues an authenticated JSON POST.
func (c *Client) postJSON(ctx context.Context, path string, sess *session.Session, body any, fallback string) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, callErr(fallback, err)
	}
	return c.do(ctx, http.MethodPost, path, sess, "application/json", bytes.NewReader(payload), fallback)
}

// decode unmarshals a response body, converting malformed payloads into the
// call site's fallback error.
func decode(raw []byte, out any, fallback string) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return callErr(fallback, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
