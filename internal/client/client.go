// Package client fetches introspection results from remote GraphQL services
// over HTTP and builds client schemas from them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	introspection "github.com/hanpama/clientschema/internal/introspection"
	otelx "github.com/hanpama/clientschema/internal/otel"
	schema "github.com/hanpama/clientschema/internal/schema"
)

const defaultTimeout = 30 * time.Second

// Client posts introspection queries to a single GraphQL endpoint.
type Client struct {
	endpoint string
	headers  http.Header
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHeader adds a header to every request, such as an Authorization token.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Add(key, value) }
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the given GraphQL endpoint URL.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		headers:  make(http.Header),
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type graphQLRequest struct {
	Query string `json:"query"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// Introspect runs the introspection query and returns the raw document.
func (c *Client) Introspect(ctx context.Context) (*introspection.Document, error) {
	ctx, span := otelx.Tracer().Start(ctx, "introspection.fetch")
	defer span.End()
	span.SetAttributes(attribute.String("http.url", c.endpoint))

	doc, err := c.post(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return doc, nil
}

func (c *Client) post(ctx context.Context) (*introspection.Document, error) {
	body, err := json.Marshal(graphQLRequest{Query: introspection.Query})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting introspection query: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading introspection response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("introspection request returned %s", resp.Status)
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding introspection response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return nil, fmt.Errorf("introspection query failed: %s", envelope.Errors[0].Message)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("introspection response carries no data")
	}

	var doc introspection.Document
	if err := json.Unmarshal(envelope.Data, &doc); err != nil {
		return nil, fmt.Errorf("decoding introspection result: %w", err)
	}
	return &doc, nil
}

// FetchSchema introspects the endpoint and builds the client schema.
func (c *Client) FetchSchema(ctx context.Context, opts ...introspection.Option) (*schema.Schema, error) {
	doc, err := c.Introspect(ctx)
	if err != nil {
		return nil, err
	}
	return introspection.BuildClientSchema(doc, opts...)
}
