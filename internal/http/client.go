// Package http executes Request values against a Transport and turns every outcome into
// either a *Response or a *conoha.Error.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/keika299/conoha/internal/constants"
	"github.com/keika299/conoha/pkg/conoha"
	"golang.org/x/net/http/httpguts"
)

var errInvalidHeader = errors.New("invalid header field")

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client executes requests. It holds only configuration and is safe for concurrent use.
type Client struct {
	transport Transport
	testMode  bool
	timeout   time.Duration
	logger    Logger
	debug     bool
	userAgent string
	metrics   *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithTestMode routes every request to the fixture transport.
func WithTestMode(testMode bool) Option {
	return func(c *Client) {
		c.testMode = testMode
	}
}

// WithTransport sets the transport explicitly, overriding test mode.
func WithTransport(transport Transport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithTimeout sets the network transport timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithMetrics records every request in metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// NewClient creates a client. Unless WithTransport is given, the transport is picked by
// SelectTransport once, here.
func NewClient(opts ...Option) *Client {
	client := &Client{
		userAgent: constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.transport == nil {
		client.transport = SelectTransport(client.testMode, client.timeout, client.transportLogger())
	}

	return client
}

// transportLogger returns the logger handed to the network transport, which logs every
// attempt and is only wanted in debug mode.
func (c *Client) transportLogger() Logger {
	if !c.debug {
		return nil
	}

	return c.logger
}

// Do sends req and returns the wrapped response. Every failure, including non-2xx
// statuses, is returned as a *conoha.Error and no response is returned with it.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := c.do(ctx, req)

	if c.metrics != nil {
		c.metrics.observe(req.Method(), err, time.Since(start))
	}

	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) do(ctx context.Context, req Request) (*Response, error) {
	method := req.Method()
	target := req.URL()

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, requestError(method, target, err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":  method,
			"url":     target,
			"headers": redactHeaders(httpReq.Header),
		})
	}

	httpResp, err := c.transport.Do(httpReq)
	if err != nil {
		conohaErr := translateError(method, target, err)
		c.logFailure(conohaErr)

		return nil, conohaErr
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		conohaErr := translateError(method, target, fmt.Errorf("reading response body: %w", err))
		c.logFailure(conohaErr)

		return nil, conohaErr
	}

	resp := newResponse(httpResp.StatusCode, httpResp.Header, body)

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":      httpResp.StatusCode,
			"method":      method,
			"url":         target,
			"body_length": len(body),
		})
	}

	if !isSuccess(resp.StatusCode()) {
		conohaErr := statusError(method, target, resp)
		c.logFailure(conohaErr)

		return nil, conohaErr
	}

	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
	)

	switch req.BodyKind() {
	case BodyRaw:
		body = bytes.NewReader(req.RawBody())
	case BodyJSON:
		data, err := json.Marshal(req.JSONBody())
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = bytes.NewReader(data)
		contentType = constants.MediaTypeJSON
	case BodyNone:
	}

	// The fixture transport never sends the method, so it accepts any method string.
	method := req.Method()
	if _, fixture := c.transport.(FixtureTransport); fixture {
		method = constants.DefaultMethod
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL(), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Method = req.Method()

	if c.userAgent != "" {
		httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)
	}

	headers := req.Headers()
	if len(headers) > 0 {
		for key, value := range headers {
			if !httpguts.ValidHeaderFieldName(key) || !httpguts.ValidHeaderFieldValue(value) {
				return nil, fmt.Errorf("%w: %q", errInvalidHeader, key)
			}

			httpReq.Header.Set(key, value)
		}
	}

	if contentType != "" && httpReq.Header.Get(constants.HeaderContentType) == "" {
		httpReq.Header.Set(constants.HeaderContentType, contentType)
	}

	return httpReq, nil
}

func (c *Client) logFailure(err *conoha.Error) {
	if c.logger == nil {
		return
	}

	fields := map[string]interface{}{
		"kind":   string(err.Kind),
		"method": err.Method,
		"url":    err.URL,
	}

	if err.Kind == conoha.ErrorKindHTTPStatus {
		fields["status"] = err.StatusCode
		c.logger.Warn("HTTP request failed", fields)

		return
	}

	fields["reason"] = string(err.Reason)
	fields["error"] = err.Cause
	c.logger.Error("HTTP request failed", fields)
}

func redactHeaders(header http.Header) map[string]string {
	redacted := make(map[string]string, len(header))

	for key := range header {
		if key == constants.HeaderAuthToken {
			redacted[key] = "[REDACTED]"

			continue
		}

		redacted[key] = header.Get(key)
	}

	return redacted
}
