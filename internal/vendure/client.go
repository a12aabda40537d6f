// Package vendure implements the shop.Shop interface against a Vendure
// GraphQL shop API. Every operation is a POST of {query, variables}; business
// failures surface as typed union branches in the response data, not as HTTP
// or GraphQL errors, and are decoded into model.DomainError.
package vendure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/model"
	"storefront/internal/shop"
	"storefront/internal/transport"
)

// authTokenHeader is the response header Vendure uses to issue or rotate the
// session bearer token.
const authTokenHeader = "vendure-auth-token"

// channelTokenHeader selects a sales channel on multi-channel installations.
const channelTokenHeader = "vendure-token"

// userAgent identifies this client to upstream servers.
// Hosted shop endpoints behind CDNs rate-limit requests without one.
const userAgent = "Storefront/1.0"

// CacheMode controls the client-facing cache hint attached to an operation.
// Queries for catalog data are cacheable; anything touching session state is
// not.
type CacheMode int

const (
	// CacheDefault lets intermediaries apply their normal heuristics.
	CacheDefault CacheMode = iota
	// CacheForce marks the result as safe to cache and reuse.
	CacheForce
	// CacheNone forbids caching; required for any session-coupled operation.
	CacheNone
)

// Request is one GraphQL operation.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`

	// Cache is the cache hint for this operation. Not serialized.
	Cache CacheMode `json:"-"`
}

// Response carries the data portion of a successful GraphQL response plus the
// cache hint the handler should forward to the client.
type Response struct {
	Data  json.RawMessage
	Cache CacheMode
}

// graphQLEnvelope is the wire shape of a GraphQL response.
type graphQLEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

// Config holds Vendure-specific client configuration.
type Config struct {
	// Endpoint is the shop API URL, e.g. https://shop.example.com/shop-api.
	Endpoint string
	// ChannelToken is sent as vendure-token when set.
	ChannelToken string
	// Timeout bounds each upstream call. Defaults to 30s.
	Timeout time.Duration
}

// Client is the GraphQL gateway to the shop API. It is stateless: the bearer
// token travels with each request context and rotated tokens are pushed back
// through the context's token sink.
type Client struct {
	httpClient   *http.Client
	endpoint     string
	channelToken string
	logger       *slog.Logger
}

// New creates a Vendure client with the given configuration.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	// Chrome TLS fingerprint transport avoids JA3-based rate limiting on
	// hosted shop endpoints. See internal/transport for rationale.
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport.NewChromeTransport(timeout),
		},
		endpoint:     cfg.Endpoint,
		channelToken: cfg.ChannelToken,
		logger:       logger,
	}, nil
}

// NewWithHTTPClient creates a client with a caller-supplied http.Client.
// Used by tests to point at a local server without the TLS transport.
func NewWithHTTPClient(cfg Config, logger *slog.Logger, hc *http.Client) (*Client, error) {
	c, err := New(cfg, logger)
	if err != nil {
		return nil, err
	}
	c.httpClient = hc
	return c, nil
}

// Send executes one GraphQL operation. The bearer token comes from the
// request context; a rotated token on the response is pushed into the
// context's token sink before returning.
//
// GraphQL top-level errors are protocol failures (bad query, auth, server
// fault) and come back as *model.APIError. Business-rule failures live inside
// Data as union branches; decoding those is the caller's job.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(httpReq, shop.AuthFrom(ctx).Token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, model.NewUpstreamError("Vendure", err)
	}
	defer resp.Body.Close()

	// Vendure issues or rotates the session token via a response header.
	if token := resp.Header.Get(authTokenHeader); token != "" {
		if sink := shop.AuthFrom(ctx).TokenSink; sink != nil {
			sink(token)
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, c.parseHTTPError(resp.StatusCode, respBody)
	}

	var envelope graphQLEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		return nil, c.parseGraphQLError(envelope.Errors)
	}

	return &Response{Data: envelope.Data, Cache: req.Cache}, nil
}

// setHeaders sets the headers for a shop API request. The bearer token is
// only attached when present; anonymous sessions start without one and
// receive one via the auth token response header.
func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.channelToken != "" {
		req.Header.Set(channelTokenHeader, c.channelToken)
	}
}

// parseHTTPError converts an HTTP-level failure to an APIError.
func (c *Client) parseHTTPError(statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.NewUnauthorizedError("Vendure authentication failed")
	case http.StatusNotFound:
		return model.NewNotFoundError("shop API endpoint")
	default:
		return model.NewUpstreamError("Vendure",
			fmt.Errorf("status %d: %s", statusCode, truncate(body, 200)))
	}
}

// parseGraphQLError converts top-level GraphQL errors to an APIError.
// These indicate protocol problems, never business rejections.
func (c *Client) parseGraphQLError(errs []graphQLError) error {
	first := errs[0]
	c.logger.Warn("graphql error from shop api",
		"code", first.Extensions.Code,
		"message", first.Message,
		"count", len(errs))

	switch first.Extensions.Code {
	case "FORBIDDEN", "UNAUTHORIZED":
		return model.NewUnauthorizedError(first.Message)
	case "BAD_USER_INPUT":
		return model.NewValidationError("request", first.Message)
	default:
		return model.NewUpstreamError("Vendure",
			fmt.Errorf("%s: %s", first.Extensions.Code, first.Message))
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// CacheControl returns the Cache-Control header value for a cache mode, or ""
// when no explicit header should be set.
func CacheControl(mode CacheMode) string {
	switch mode {
	case CacheForce:
		return "public, max-age=60"
	case CacheNone:
		return "no-store"
	default:
		return ""
	}
}
