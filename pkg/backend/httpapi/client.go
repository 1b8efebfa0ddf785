// Package httpapi provides a backend.Client implementation that talks to the
// email discovery backend over its JSON/HTTP API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"emailfinder/pkg/backend"
	"emailfinder/pkg/metrics"
	"emailfinder/pkg/serrors"
)

// Client is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs every backend request
	baseURL    string       // baseURL is the backend origin, without a trailing slash
}

// envelope is the response wrapper shared by most backend endpoints.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) failure() string {
	if e.Message != "" {
		return e.Message
	}

	return e.Error
}

// call describes one backend request.
type call struct {
	endpoint    string // endpoint labels metrics and errors, e.g. "auth.login"
	method      string
	path        string
	token       string
	body        any
	contentType string // set when body is a pre-encoded io.Reader
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	var body io.Reader
	contentType := cl.contentType
	switch b := cl.body.(type) {
	case nil:
	case io.Reader:
		body = b
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	return req, nil
}

// send performs cl and returns the raw body of a 2xx response. Non-2xx
// responses become semantic errors carrying the backend's message.
func (c *Client) send(ctx context.Context, cl call) (_ []byte, _ http.Header, err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = strings.ToLower(serrors.KindOf(err).Error())
		}
		metrics.BackendRequestDuration.WithLabelValues(cl.endpoint, outcome).Observe(time.Since(start).Seconds())
	}()

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, serrors.Wrap(serrors.ErrTimeout, err, "%s: request cancelled", cl.endpoint)
		}

		return nil, nil, serrors.Wrap(serrors.ErrUnavailable, err, "%s: could not send request", cl.endpoint)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read response body: %w", err)
	}

	if kind := serrors.FromStatus(resp.StatusCode); kind != nil {
		var env envelope
		msg := strings.TrimSpace(string(b))
		if json.Unmarshal(b, &env) == nil && env.failure() != "" {
			msg = env.failure()
		}
		if msg == "" {
			msg = fmt.Sprintf("%s failed with status %d", cl.endpoint, resp.StatusCode)
		}

		return nil, nil, serrors.With(kind, "%s", msg)
	}

	return b, resp.Header, nil
}

// do performs cl and decodes the response into out (which may be nil). When
// the response is an envelope with a data member, data is decoded; otherwise
// the whole body is. An envelope with success=false is a bad request.
func (c *Client) do(ctx context.Context, cl call, out any) error {
	b, _, err := c.send(ctx, cl)
	if err != nil {
		return err
	}

	payload, err := unwrap(b)
	if err != nil {
		return fmt.Errorf("%s: %w", cl.endpoint, err)
	}
	if out == nil || len(payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%s: could not decode response: %w", cl.endpoint, err)
	}

	return nil
}

func unwrap(b []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	if env.Success != nil && !*env.Success {
		msg := env.failure()
		if msg == "" {
			msg = "request was not successful"
		}

		return nil, serrors.With(serrors.ErrBadRequest, "%s", msg)
	}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		return env.Data, nil
	}

	return trimmed, nil
}

// Health calls the backend health endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, _, err := c.send(ctx, call{endpoint: "health", method: http.MethodGet, path: "/api/health"})

	return err
}

var _ backend.Client = (*Client)(nil)

// New constructs a Client for the backend at baseURL, e.g. http://localhost:3001.
func New(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}
