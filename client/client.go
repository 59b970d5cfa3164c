package client

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

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/petalert/petalert"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultListTTL   = 30 * time.Second
	defaultUserAgent = "petalert-bff/1.0"
	maxErrorBody     = 4 << 10

	RequestIDHeader = "X-Request-Id"
)

// ListCache stores raw list responses. Implementations must be safe for
// concurrent use.
type ListCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s %s: unexpected status code %d", e.Method, e.Path, e.Code)
}

// IsStatus reports whether err carries an upstream status code of code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	cache     ListCache
	listTTL   time.Duration
}

type Option func(*Client)

func WithCache(cache ListCache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		if ttl > 0 {
			c.listTTL = ttl
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		client:    &http.Client{Timeout: defaultTimeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: defaultUserAgent,
		listTTL:   defaultListTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	slog.Info(
		"upstream client initialized",
		slog.String("baseURL", c.baseURL),
		slog.Bool("cache", c.cache != nil),
		slog.String("module", "client"),
	)
	return c
}

func listCacheKey(token, path string) string {
	return "list:" + petalert.HashKey(token, path)
}

// List fetches a collection. Responses are served from the list cache while
// fresh.
func (c *Client) List(ctx context.Context, token, path string, result any) error {
	key := listCacheKey(token, path)

	if c.cache != nil {
		if body, found := c.cache.Get(ctx, key); found {
			slog.DebugContext(ctx, "list cache hit", slog.String("path", path), slog.String("module", "client"))
			return errors.Wrap(json.Unmarshal(body, result), "failed to decode cached list")
		}
	}

	body, err := c.do(ctx, http.MethodGet, token, path, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return errors.Wrapf(err, "failed to decode list %s", path)
	}

	if c.cache != nil {
		c.cache.Set(ctx, key, body, c.listTTL)
	}
	return nil
}

func (c *Client) Create(ctx context.Context, token, path string, payload, result any) error {
	body, err := c.do(ctx, http.MethodPost, token, path, payload)
	if err != nil {
		return err
	}
	c.invalidate(ctx, token, path)
	return decodeInto(body, result)
}

func (c *Client) Update(ctx context.Context, token, path, id string, payload, result any) error {
	body, err := c.do(ctx, http.MethodPut, token, petalert.JoinPath(path, id), payload)
	if err != nil {
		return err
	}
	c.invalidate(ctx, token, path)
	return decodeInto(body, result)
}

// Delete removes a record. The acknowledgement body is ignored.
func (c *Client) Delete(ctx context.Context, token, path, id string) error {
	_, err := c.do(ctx, http.MethodDelete, token, petalert.JoinPath(path, id), nil)
	if err != nil {
		if IsStatus(err, http.StatusNotFound) {
			c.invalidate(ctx, token, path)
		}
		return err
	}
	c.invalidate(ctx, token, path)
	return nil
}

func (c *Client) invalidate(ctx context.Context, token, path string) {
	if c.cache != nil {
		c.cache.Delete(ctx, listCacheKey(token, path))
	}
}

func decodeInto(body []byte, result any) error {
	if result == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(body, result), "failed to decode response")
}

func (c *Client) do(ctx context.Context, method, token, path string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request")
		}
		reader = bytes.NewReader(buf)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	slog.DebugContext(
		ctx, "upstream request",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("requestID", requestID),
		slog.String("module", "client"),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to perform %s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   string(snippet),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return body, nil
}
