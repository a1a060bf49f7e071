package ethproofs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// ProductionURL is the base URL of the public service
	ProductionURL = "https://ethproofs.org/api/v0"
	// StagingURL is the base URL of the staging deployment
	StagingURL = "https://staging--ethproofs.netlify.app/api/v0"
)

// Client dispatches requests to the ethproofs API. Its state is fixed at
// construction, so one Client may be shared by any number of goroutines.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
	userAgent  string
	timeout    *time.Duration
}

// NewClient creates a client for the production service
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	return NewClientWithBaseURL(ProductionURL, apiKey, opts...)
}

// NewStagingClient creates a client for the staging service
func NewStagingClient(apiKey string, opts ...Option) (*Client, error) {
	return NewClientWithBaseURL(StagingURL, apiKey, opts...)
}

// NewClientWithBaseURL creates a client for an arbitrary deployment. It fails
// only if baseURL is not an absolute URL.
func NewClientWithBaseURL(baseURL, apiKey string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, &InvalidURLError{URL: baseURL, Err: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, &InvalidURLError{URL: baseURL, Err: errors.New("scheme and host are required")}
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
		userAgent:  DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.timeout != nil {
		hc := *client.httpClient
		hc.Timeout = *client.timeout
		client.httpClient = &hc
	}

	return client, nil
}

// BaseURL returns the base URL requests are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one HTTP exchange for req and returns the body of a 2xx
// response.
func (c *Client) do(ctx context.Context, req Request) ([]byte, error) {
	method, endpoint := req.Method(), req.Endpoint()

	body, err := req.Body()
	if err != nil {
		return nil, &RequestError{Op: "encode", Method: method, Endpoint: endpoint, Err: err}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, &RequestError{Op: "build", Method: method, Endpoint: endpoint, Err: err}
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &RequestError{Op: "send", Method: method, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("ethproofs API request")

	data, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := string(data)
		if readErr != nil {
			message = "Unknown error"
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if readErr != nil {
		return nil, &RequestError{Op: "read", Method: method, Endpoint: endpoint, Err: readErr}
	}

	return data, nil
}

// Do sends req and decodes the response into the type its endpoint returns.
// The pairing of request and response type is checked at compile time.
func Do[R Response](ctx context.Context, c *Client, req Endpoint[R]) (R, error) {
	data, err := c.do(ctx, req)
	if err != nil {
		var zero R
		return zero, err
	}
	return decode[R](data)
}

// Call sends any request and returns its response as the Response union.
// Use Narrow to recover the concrete payload.
func (c *Client) Call(ctx context.Context, req Request) (Response, error) {
	if req == nil {
		return nil, fmt.Errorf("ethproofs: nil request")
	}
	data, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	return decodeFor(req, data)
}
