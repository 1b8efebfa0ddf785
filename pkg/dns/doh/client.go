// Package doh provides a dns.Resolver backed by a JSON DNS-over-HTTPS API
// such as https://dns.google/resolve.
package doh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"emailfinder/pkg/dns"
	"emailfinder/pkg/metrics"
	"emailfinder/pkg/serrors"

	"golang.org/x/sync/singleflight"
)

// DefaultURL is Google's public JSON resolver.
const DefaultURL = "https://dns.google/resolve"

// rcodeNoError is the DNS NOERROR response code.
const rcodeNoError = 0

// lookupTimeout bounds a shared lookup, which does not follow any single
// caller's cancellation.
const lookupTimeout = 10 * time.Second

// Client queries a JSON DoH endpoint. Concurrent lookups of the same name
// share one request. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	endpoint   string
	group      singleflight.Group
}

type resolveResponse struct {
	Status int `json:"Status"`
	Answer []struct {
		Name string `json:"name"`
		Type int    `json:"type"`
		Data string `json:"data"`
	} `json:"Answer"`
}

// Exists resolves the A records of domain. A name exists only when the
// resolver answers NOERROR with at least one record. Transport and decoding
// failures are returned as errors so callers can decide how to treat them.
func (c *Client) Exists(ctx context.Context, domain string) (bool, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(domain), "www."))
	if name == "" {
		return false, serrors.With(serrors.ErrBadRequest, "empty domain")
	}

	ch := c.group.DoChan(name, func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()

		return c.resolve(lctx, name)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		metrics.DNSLookups.WithLabelValues("error").Inc()

		return false, serrors.Wrap(serrors.ErrTimeout, ctx.Err(), "lookup of %s cancelled", name)
	}
	if res.Err != nil {
		metrics.DNSLookups.WithLabelValues("error").Inc()

		return false, res.Err
	}

	exists, _ := res.Val.(bool)
	if exists {
		metrics.DNSLookups.WithLabelValues("found").Inc()
	} else {
		metrics.DNSLookups.WithLabelValues("missing").Inc()
	}

	return exists, nil
}

func (c *Client) resolve(ctx context.Context, name string) (bool, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("type", "A")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, serrors.Wrap(serrors.ErrUnavailable, err, "could not reach resolver")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, serrors.With(serrors.ErrUnavailable, "resolver returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var rr resolveResponse
	if err := json.Unmarshal(b, &rr); err != nil {
		return false, fmt.Errorf("could not decode response: %w", err)
	}

	return rr.Status == rcodeNoError && len(rr.Answer) > 0, nil
}

var _ dns.Resolver = (*Client)(nil)

// New constructs a Client for endpoint, falling back to DefaultURL when empty.
func New(httpClient *http.Client, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultURL
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
	}
}
