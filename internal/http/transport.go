package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/keika299/conoha/internal/constants"
)

// Transport performs the network I/O for one request.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// SelectTransport returns the fixture transport in test mode and a network transport
// otherwise.
func SelectTransport(testMode bool, timeout time.Duration, logger Logger) Transport {
	if testMode {
		return FixtureTransport{}
	}

	return NewNetworkTransport(timeout, logger)
}

// FixtureTransport answers every request with the same canned 200 response, whatever
// the method, URL, headers or body.
type FixtureTransport struct{}

// Do implements Transport.
func (FixtureTransport) Do(req *http.Request) (*http.Response, error) {
	body := []byte(constants.FixtureBody)

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", constants.FixtureStatusCode, http.StatusText(constants.FixtureStatusCode)),
		StatusCode:    constants.FixtureStatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        make(http.Header),
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}

// NetworkTransport sends requests over the network through go-retryablehttp with
// retries switched off: each request is attempted exactly once and error responses are
// handed back untouched.
type NetworkTransport struct {
	client *retryablehttp.Client
}

// NewNetworkTransport creates a network transport. A zero timeout leaves deadlines to the
// request context.
func NewNetworkTransport(timeout time.Duration, logger Logger) *NetworkTransport {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.CheckRetry = noRetry
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.HTTPClient.Timeout = timeout

	if logger != nil {
		client.Logger = &leveledLogger{logger: logger}
	} else {
		client.Logger = nil
	}

	return &NetworkTransport{client: client}
}

// Do implements Transport.
func (t *NetworkTransport) Do(req *http.Request) (*http.Response, error) {
	retryReq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, fmt.Errorf("preparing request: %w", err)
	}

	resp, err := t.client.Do(retryReq)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		return nil, err //nolint:wrapcheck // translated by the caller
	}

	return resp, nil
}

func noRetry(_ context.Context, _ *http.Response, _ error) (bool, error) {
	return false, nil
}

// leveledLogger adapts Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fieldsFromKeysAndValues(keysAndValues))
}

func fieldsFromKeysAndValues(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
