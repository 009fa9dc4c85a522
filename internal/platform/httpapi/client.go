// Package httpapi is the JSON transport to the climbing backend.
package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	apperrors "crux/internal/platform/errors"
	"crux/internal/platform/id"
)

const maxResponseBytes = 32 << 20

// TokenSource yields the bearer token for the signed-in user, or "".
type TokenSource interface {
	Token() string
}

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Tokens     TokenSource
	IDs        id.Generator
}

type Client struct {
	base   *url.URL
	http   *http.Client
	tokens TokenSource
	ids    id.Generator
}

func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: base url must be absolute http(s), got %q", apperrors.ErrInvalidInput, opts.BaseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	ids := opts.IDs
	if ids == nil {
		ids = id.UUID{}
	}
	return &Client{base: base, http: httpClient, tokens: opts.Tokens, ids: ids}, nil
}

// BaseURL returns the normalized backend root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Do sends one JSON request and decodes a 2xx body into T. A nil body sends
// no payload. There are no retries.
func Do[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("%w: encode request body: %v", apperrors.ErrInvalidInput, err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}
	raw, err := c.send(ctx, method, path, contentType, "application/json", reader)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, &DecodingError{Err: err}
	}
	return out, nil
}

func (c *Client) endpoint(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("%w: path must start with /, got %q", apperrors.ErrInvalidInput, path)
	}
	return c.base.String() + path, nil
}

func (c *Client) send(ctx context.Context, method, path, contentType, accept string, body io.Reader) ([]byte, error) {
	method = strings.ToUpper(method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: unsupported method %q", apperrors.ErrInvalidInput, method)
	}
	target, err := c.endpoint(path)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", apperrors.ErrInvalidInput, err)
	}
	requestID := c.ids.New()
	req.Header.Set("Accept", accept)
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Str("method", method).Str("path", path).Str("request_id", requestID).Err(err).Msg("request failed")
		return nil, &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Op: "read " + path, Err: err}
	}
	log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(started)).
		Msg("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw)}
	}
	return raw, nil
}

// errorMessage prefers the structured detail, message or error field of the
// body and falls back to the status text.
func errorMessage(status int, raw []byte) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, key := range []string{"detail", "message", "error"} {
			if s, ok := body[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}
