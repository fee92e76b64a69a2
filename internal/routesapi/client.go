// Package routesapi is the HTTP client for the remote routes backend.
package routesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"routeadmin/internal/domain"
	"routeadmin/internal/domain/models"
)

// SuccessMarker is the exact body the backend answers a completed delete with.
const SuccessMarker = "success"

const (
	maxListBody   = 16 << 20
	maxDeleteBody = 64 << 10
)

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

type Client struct {
	baseURL string
	hc      *http.Client
	timeout time.Duration
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		hc:      http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

// ListURL builds GET {base}/routes?from=..&to=.. with both parameters always present.
func (c *Client) ListURL(f models.Filter) string {
	q := url.Values{}
	q.Set("from", f.From)
	q.Set("to", f.To)
	return c.baseURL + "/routes?" + q.Encode()
}

// List reads the routes matching the filter. Every failure is a domain.FetchError.
func (c *Client) List(ctx context.Context, f models.Filter) ([]models.Route, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ListURL(f), nil)
	if err != nil {
		return nil, domain.FetchError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, domain.FetchError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListBody))
	if err != nil {
		return nil, domain.FetchError{Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.FetchError{Status: resp.StatusCode}
	}

	routes := make([]models.Route, 0)
	if err := json.Unmarshal(body, &routes); err != nil {
		return nil, domain.FetchError{Status: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	if routes == nil {
		routes = make([]models.Route, 0)
	}
	return routes, nil
}

type deletePayload struct {
	Pass string `json:"pass"`
}

// Delete asks the backend to remove a route. Only a body equal to
// SuccessMarker counts as success; anything else is a domain.DeleteError.
func (c *Client) Delete(ctx context.Context, id models.RouteID, pass string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	payload, err := json.Marshal(deletePayload{Pass: pass})
	if err != nil {
		return domain.DeleteError{RouteID: id.String(), Err: err}
	}

	endpoint := c.baseURL + "/routes/" + url.PathEscape(id.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.DeleteError{RouteID: id.String(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return domain.DeleteError{RouteID: id.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDeleteBody))
	if err != nil && !errors.Is(err, io.EOF) {
		return domain.DeleteError{RouteID: id.String(), Err: err}
	}
	if string(body) != SuccessMarker {
		return domain.DeleteError{RouteID: id.String(), Body: string(body)}
	}
	return nil
}
