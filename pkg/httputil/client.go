package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/maplabel/pkg/buildinfo"
	"github.com/matzehuels/maplabel/pkg/errors"
)

const (
	// DefaultTimeout bounds a single request attempt.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBytes caps the size of a downloaded body.
	DefaultMaxBytes = 256 << 20
)

// Client downloads whole response bodies with retries.
type Client struct {
	http     *http.Client
	attempts int
	delay    time.Duration
	maxBytes int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithRetry sets the number of attempts and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) ClientOption {
	return func(c *Client) { c.attempts, c.delay = attempts, delay }
}

// WithMaxBytes caps the accepted body size.
func WithMaxBytes(n int64) ClientOption {
	return func(c *Client) { c.maxBytes = n }
}

// NewClient returns a client with 3 attempts, a 1 second initial delay and
// a [DefaultTimeout] per attempt.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:     &http.Client{Timeout: DefaultTimeout},
		attempts: 3,
		delay:    time.Second,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the body of url. A 404 maps to ErrCodeFileNotFound; other
// failures map to ErrCodeInvalidSource, or ErrCodeCanceled when ctx ends.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := Retry(ctx, c.attempts, c.delay, func() error {
		var err error
		body, err = c.get(ctx, url)
		return err
	})
	if err == nil {
		return body, nil
	}
	if ctx.Err() != nil {
		return nil, errors.Wrap(errors.ErrCodeCanceled, ctx.Err(), "fetch %s", url)
	}
	if errors.GetCode(err) != "" {
		return nil, err
	}
	return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "fetch %s", url)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "bad url %s", url)
	}
	req.Header.Set("User-Agent", buildinfo.Name+"/"+buildinfo.Version)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: err}
	}
	if int64(len(data)) > c.maxBytes {
		return nil, errors.New(errors.ErrCodeInvalidSource, "%s: body exceeds %d bytes", url, c.maxBytes)
	}
	return data, nil
}

func checkStatus(url string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeFileNotFound, "%s: not found", url)
	case code == http.StatusTooManyRequests || code >= 500:
		return &RetryableError{Err: fmt.Errorf("status %d", code)}
	default:
		return errors.New(errors.ErrCodeInvalidSource, "%s: status %d", url, code)
	}
}
