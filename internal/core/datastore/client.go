// Package datastore builds clients for the hosted data store that forward the caller's identity
// session token on every request.
package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/internal/core/config"
	"storefront/internal/core/httpclient"
	"storefront/internal/core/logger"

	"go.uber.org/zap"
)

var (
	// ErrMissingConfig is returned when the data store URL or key is not configured.
	ErrMissingConfig = errors.New("data store url and anon key are required")
	// ErrInvalidTable is returned for empty or malformed table names.
	ErrInvalidTable = errors.New("invalid table name")
)

// TokenSource returns the current session token, or "" when there is none.
type TokenSource func(ctx context.Context) (string, error)

// StatusError is returned when the data store answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("data store returned status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the data store REST interface on behalf of one caller.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a Client. The anon key is sent as apikey on every request. tokens is called
// exactly once per request and its token is sent as the bearer credential; without a token the
// anon key is used instead.
func NewClient(cfg config.DataStoreConfig, tokens TokenSource) (*Client, error) {
	log := logger.Get().Named("datastore")
	log.Debug("Creating data store client",
		logger.Masked("url", cfg.URL),
		logger.Masked("anon_key", cfg.AnonKey),
	)

	if cfg.URL == "" || cfg.AnonKey == "" {
		return nil, ErrMissingConfig
	}

	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid data store url: %w", ErrMissingConfig)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL: base,
		logger:  log,
	}

	hc := httpclient.NewClient(timeout)
	hc.Transport = &httpclient.AuthRoundTripper{
		Proxied: hc.Transport,
		Headers: map[string]string{"apikey": cfg.AnonKey},
		Token: func(req *http.Request) string {
			token := c.token(req.Context(), tokens)
			if token == "" {
				return cfg.AnonKey
			}
			return token
		},
	}
	c.http = hc

	return c, nil
}

func (c *Client) token(ctx context.Context, tokens TokenSource) string {
	if tokens == nil {
		c.logger.Debug("Access token", logger.Masked("token", ""))
		return ""
	}

	token, err := tokens(ctx)
	if err != nil {
		c.logger.Warn("Token source failed, continuing without session token", zap.Error(err))
		return ""
	}

	c.logger.Debug("Access token", logger.Masked("token", token))
	return token
}

// Select runs a read against table. query carries the REST filters (e.g. select=*&id=eq.1) and
// the JSON answer is decoded into out.
func (c *Client) Select(ctx context.Context, table string, query url.Values, out any) error {
	if !validTable(table) {
		return fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	u := c.baseURL.JoinPath("rest", "v1", table)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("data store request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode data store response: %w", err)
	}
	return nil
}

func validTable(table string) bool {
	if table == "" {
		return false
	}
	for _, r := range table {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
