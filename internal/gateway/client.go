// Package gateway is the client of the remote admin REST API (Laravel).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"backoffice/internal/models"

	"github.com/pkg/errors"
)

const defaultTimeout = 10 * time.Second

var ErrUnauthorized = errors.New("gateway: unauthorized")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway: %s %s: unexpected status code %d", e.Method, e.URL, e.Code)
}

func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// URLResolver turns an API path into an absolute URL (mode.Resolver).
type URLResolver interface {
	APIURL(path string) string
}

// Observer is told about every finished request.
type Observer func(method, resource string, err error)

type Client struct {
	client   *http.Client
	urls     URLResolver
	tokens   TokenSource
	observer Observer
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

func New(urls URLResolver, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		client: &http.Client{Timeout: defaultTimeout},
		urls:   urls,
		tokens: tokens,
	}
	c.client.Transport = c
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		token, err := c.tokens.Token(req.Context())
		if err != nil {
			return nil, errors.Wrap(err, "gateway: read token")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return http.DefaultTransport.RoundTrip(req)
}

// List fetches GET /api/admin/{resource}; the elements are still raw.
func (c *Client) List(ctx context.Context, resource string) ([]json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, resource, resourcePath(resource, "", ""), nil)
	if err != nil {
		return nil, err
	}
	return DecodeList(body)
}

// Create posts body and returns the created record echoed by the server.
func (c *Client) Create(ctx context.Context, resource string, payload any) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodPost, resource, resourcePath(resource, "", ""), payload)
	if err != nil {
		return nil, err
	}
	return DecodeOne(body)
}

func (c *Client) Update(ctx context.Context, resource string, id models.ID, payload any) error {
	_, err := c.do(ctx, http.MethodPut, resource, resourcePath(resource, id, ""), payload)
	return err
}

func (c *Client) Delete(ctx context.Context, resource string, id models.ID) error {
	_, err := c.do(ctx, http.MethodDelete, resource, resourcePath(resource, id, ""), nil)
	return err
}

// Patch calls PATCH /api/admin/{resource}/{id}/{action}, e.g. toggle-publish.
func (c *Client) Patch(ctx context.Context, resource string, id models.ID, action string, payload any) error {
	_, err := c.do(ctx, http.MethodPatch, resource, resourcePath(resource, id, action), payload)
	return err
}

func (c *Client) do(ctx context.Context, method, resource, path string, payload any) (body []byte, err error) {
	defer func() {
		if c.observer != nil {
			c.observer(method, resource, err)
		}
	}()

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "gateway: encode payload")
		}
		reader = bytes.NewReader(raw)
	}

	target := c.urls.APIURL(path)
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.Wrap(err, "gateway: create request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "gateway: perform request")
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "gateway: read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{Method: method, URL: target, Code: resp.StatusCode, Body: string(body)}
		if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil {
			// сессия на стороне API истекла: токен больше не годится
			_ = c.tokens.Clear(ctx)
		}
		return nil, serr
	}
	return body, nil
}

func resourcePath(resource string, id models.ID, action string) string {
	p := "/api/admin/" + resource
	if id != "" {
		p += "/" + url.PathEscape(id.String())
	}
	if action != "" {
		p += "/" + action
	}
	return p
}
