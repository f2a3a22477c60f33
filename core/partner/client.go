package partner

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"loyalty-sync/core/apperr"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// maxErrorBody caps how much of an error response ends up in the error message.
const maxErrorBody = 512

// Client talks JSON to the loyalty partner API.
// It is safe for sequential use by one run; calls are paced by the optional rate limiter.
type Client struct {
	baseURL    string
	username   string
	password   string
	requestKey string
	http       *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a partner API client from the configuration.
func NewClient(cfg Config) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // partner uses a private CA
	}

	var limiter *rate.Limiter
	if cfg.RateLimitPerMin > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimitPerMin)), 1)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		requestKey: cfg.RequestKey,
		http:       &http.Client{Timeout: cfg.Timeout(), Transport: transport},
		limiter:    limiter,
	}
}

// Get issues a GET and decodes the JSON response into out (when out is non-nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the JSON response into out (when out is non-nil).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return apperr.Upstream(op, 0, err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperr.Upstream(op, 0, err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("RequestKey", c.requestKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.Upstream(op, 0, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Upstream(op, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(respBody))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return apperr.Upstream(op, resp.StatusCode, fmt.Errorf("partner api error: %s", msg))
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return apperr.Upstream(op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
