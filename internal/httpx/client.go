package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 13_5) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123 Safari/537.36",
}

// Client wraps a retrying HTTP client with a randomized browser user agent
// and per-host pacing. Retries cover connection errors, 429 and 5xx.
type Client struct {
	hc  *http.Client
	lim *HostLimiter
	ua  string
}

func New(reqPerSec float64, timeout time.Duration) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 4
	rc.RetryWaitMin = 700 * time.Millisecond
	rc.RetryWaitMax = 8 * time.Second
	rc.Logger = nil
	rc.HTTPClient.Timeout = timeout

	return &Client{
		hc:  rc.StandardClient(),
		lim: NewHostLimiter(reqPerSec, 1),
		ua:  userAgents[rand.Intn(len(userAgents))],
	}
}

func (c *Client) UserAgent() string { return c.ua }

// Get fetches url after waiting on the host's limiter. Non-2xx is returned
// as an error so callers can treat it uniformly with transport failures.
func (c *Client) Get(ctx context.Context, url string, hdr http.Header) ([]byte, error) {
	if err := c.lim.WaitURL(ctx, url); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, hdr)

	return c.do(req)
}

// PostJSON posts body as JSON and returns the response bytes.
func (c *Client) PostJSON(ctx context.Context, url string, hdr http.Header, body any) ([]byte, error) {
	if err := c.lim.WaitURL(ctx, url); err != nil {
		return nil, err
	}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req, hdr)

	return c.do(req)
}

func (c *Client) setHeaders(req *http.Request, hdr http.Header) {
	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d from %s", resp.StatusCode, req.URL.Host)
	}

	return readBody(resp)
}
