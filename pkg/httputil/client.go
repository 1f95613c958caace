package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/jarscope/pkg/buildinfo"
	"github.com/matzehuels/jarscope/pkg/observability"
)

// DefaultTimeout bounds a single request, including reading the body.
const DefaultTimeout = 10 * time.Second

// DefaultMaxBodySize caps response bodies. POMs and search responses are far
// smaller; jar downloads of this size are already unusual.
const DefaultMaxBodySize = 256 << 20

// ErrBodyTooLarge reports a response body over the client's size limit. The
// body is discarded rather than returned truncated.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError reports a response whose status is neither 2xx nor 404.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// StatusCode returns the HTTP status carried by err, or 0 if err did not come
// from a response.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// Client performs GET requests against Maven infrastructure.
type Client struct {
	http    *http.Client
	headers map[string]string
	retries int
	delay   time.Duration
	maxBody int64
}

// Option configures a [Client].
type Option func(*Client)

// WithRetries allows n additional attempts for retryable failures.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = max(n, 0) }
}

// WithRetryDelay sets the initial backoff between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.delay = d }
}

// WithMaxBodySize sets the largest accepted response body in bytes.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// WithHeaders adds headers sent with every request.
func WithHeaders(h map[string]string) Option {
	return func(c *Client) {
		for k, v := range h {
			c.headers[k] = v
		}
	}
}

// WithHTTPClient replaces the underlying transport client. The timeout
// passed to [NewClient] is ignored in that case.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a Client whose requests each time out after timeout.
// A non-positive timeout selects [DefaultTimeout].
func NewClient(timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		http:    &http.Client{Timeout: timeout},
		headers: map[string]string{"User-Agent": buildinfo.UserAgent()},
		delay:   time.Second,
		maxBody: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch GETs url and returns the response body. A 404 response yields
// ok=false and a nil error. Transport failures are returned as-is; other
// statuses as [*StatusError].
func (c *Client) Fetch(ctx context.Context, url string) (body []byte, ok bool, err error) {
	err = Retry(ctx, c.retries+1, c.delay, func() error {
		body, ok, err = c.do(ctx, url)
		return err
	})
	if err != nil {
		return nil, false, unwrapRetryable(err)
	}
	return body, ok, nil
}

func (c *Client) do(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, false, &RetryableError{Err: err}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, false, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, false, &RetryableError{Err: err}
	}
	if int64(len(data)) > c.maxBody {
		err := fmt.Errorf("GET %s: %w (limit %d bytes)", url, ErrBodyTooLarge, c.maxBody)
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, false, err
	}
	return data, true, nil
}

func checkStatus(url string, code int) error {
	switch {
	case code >= 200 && code < 300, code == http.StatusNotFound:
		return nil
	case code >= 500, code == http.StatusTooManyRequests:
		return &RetryableError{Err: &StatusError{URL: url, StatusCode: code}}
	default:
		return &StatusError{URL: url, StatusCode: code}
	}
}

func unwrapRetryable(err error) error {
	var re *RetryableError
	if errors.As(err, &re) {
		return re.Err
	}
	return err
}
