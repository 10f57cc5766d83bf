package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"syscall"

	"github.com/keika299/conoha/pkg/conoha"
)

// translateError converts any failure raised while sending req into a *conoha.Error.
// Causes that are not recognised fall through to a transport error with ReasonOther, so
// no foreign error type leaves the pipeline.
func translateError(method, target string, err error) *conoha.Error {
	var conohaErr *conoha.Error
	if errors.As(err, &conohaErr) {
		return conohaErr
	}

	return &conoha.Error{
		Kind:   conoha.ErrorKindTransport,
		Reason: classify(err),
		Method: method,
		URL:    target,
		Cause:  err,
	}
}

// statusError builds the error for a response with a non-2xx status.
func statusError(method, target string, resp *Response) *conoha.Error {
	return &conoha.Error{
		Kind:       conoha.ErrorKindHTTPStatus,
		Method:     method,
		URL:        target,
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}
}

// requestError builds the error for a request that could not be constructed.
func requestError(method, target string, err error) *conoha.Error {
	return &conoha.Error{
		Kind:   conoha.ErrorKindTransport,
		Reason: conoha.ReasonRequest,
		Method: method,
		URL:    target,
		Cause:  err,
	}
}

func classify(err error) conoha.Reason {
	if errors.Is(err, context.DeadlineExceeded) {
		return conoha.ReasonTimeout
	}

	if errors.Is(err, context.Canceled) {
		return conoha.ReasonCanceled
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return conoha.ReasonTimeout
		}

		return conoha.ReasonDNS
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return conoha.ReasonTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return conoha.ReasonConnectionRefused
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return conoha.ReasonConnection
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return conoha.ReasonConnection
	}

	return conoha.ReasonOther
}

func isSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
