package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/handlermap/pkg/buildinfo"
	"github.com/matzehuels/handlermap/pkg/errors"
	"github.com/matzehuels/handlermap/pkg/observability"
)

// Client provides shared HTTP functionality for remote API clients.
// It applies basic-auth credentials and default headers to every request and
// maps failures to coded errors. Requests are never retried.
type Client struct {
	http     *http.Client
	username string
	password string
	headers  map[string]string
}

// NewClient creates a Client from opts.
// JSON is requested by default; opts.Headers override or extend the defaults.
func NewClient(opts Options) *Client {
	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": buildinfo.UserAgent(),
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}
	return &Client{
		http:     NewHTTPClient(opts),
		username: opts.Username,
		password: opts.Password,
		headers:  headers,
	}
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode response from %s", url)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", url)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url)
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, url); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int, url string) error {
	if code >= 200 && code < 300 {
		return nil
	}
	return errors.FromStatus(code, fmt.Sprintf("GET %s", url))
}
