// Package fetch wraps HTTP retrieval of the upstream list documents.
package fetch

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

// Response carries the pieces of an upstream document the importers need:
// the body plus the headers that drive checkpointing.
type Response struct {
	Body         []byte
	LastModified string // raw Last-Modified header value
	Disposition  string // raw Content-Disposition header value, if any
}

// Client fetches one document. Implementations must be safe for reuse
// across sources within a run.
type Client interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// HTTPClient is the production Client, built on retryablehttp.
type HTTPClient struct {
	userAgent string
	rc        *retryablehttp.Client
}

func New(userAgent string) *HTTPClient {
	rc := retryablehttp.NewClient()
	rc.Logger = stdlog.New(io.Discard, "", 0)
	rc.RetryMax = 5
	return &HTTPClient{userAgent: userAgent, rc: rc}
}

func (c *HTTPClient) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.rc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", url, err)
	}

	return &Response{
		Body:         body,
		LastModified: resp.Header.Get("Last-Modified"),
		Disposition:  resp.Header.Get("Content-Disposition"),
	}, nil
}
