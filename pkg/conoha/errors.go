package conoha

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrorKind classifies a failure of the request pipeline.
type ErrorKind string

const (
	// ErrorKindTransport means no HTTP response was obtained.
	ErrorKindTransport ErrorKind = "transport"

	// ErrorKindHTTPStatus means a response arrived with a non-2xx status.
	ErrorKindHTTPStatus ErrorKind = "http_status"

	// ErrorKindDecoding means a successful response body was not valid JSON.
	ErrorKindDecoding ErrorKind = "decoding"
)

// Reason narrows down why a transport failure happened.
type Reason string

// Transport failure reasons. ReasonOther is the fallback for causes that are not enumerated.
const (
	ReasonNone              Reason = ""
	ReasonTimeout           Reason = "timeout"
	ReasonCanceled          Reason = "canceled"
	ReasonDNS               Reason = "dns"
	ReasonConnectionRefused Reason = "connection_refused"
	ReasonConnection        Reason = "connection"
	ReasonRequest           Reason = "request"
	ReasonOther             Reason = "other"
)

// Sentinels for errors.Is on *Error values.
var (
	ErrTransport  = errors.New("transport failure")
	ErrHTTPStatus = errors.New("http status failure")
	ErrDecoding   = errors.New("decoding failure")
)

// Error is the single error type returned by the request pipeline.
type Error struct {
	Kind   ErrorKind
	Reason Reason

	Method string
	URL    string

	// StatusCode is 0 for transport failures.
	StatusCode int
	Header     http.Header
	Body       []byte

	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	var builder strings.Builder

	if e.Method != "" {
		builder.WriteString(e.Method)
		builder.WriteString(" ")
	}

	if e.URL != "" {
		builder.WriteString(e.URL)
		builder.WriteString(": ")
	}

	switch e.Kind {
	case ErrorKindHTTPStatus:
		builder.WriteString(fmt.Sprintf("http %d %s", e.StatusCode, http.StatusText(e.StatusCode)))

		if apiErr, err := ParseAPIError(e.Body); err == nil && apiErr.Message != "" {
			builder.WriteString(": ")
			builder.WriteString(apiErr.Message)
		}
	case ErrorKindDecoding:
		builder.WriteString("decoding response body")
	default:
		builder.WriteString("request failed")

		if e.Reason != ReasonNone {
			builder.WriteString(" (")
			builder.WriteString(string(e.Reason))
			builder.WriteString(")")
		}
	}

	if e.Cause != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Cause.Error())
	}

	return builder.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == ErrorKindTransport
	case ErrHTTPStatus:
		return e.Kind == ErrorKindHTTPStatus
	case ErrDecoding:
		return e.Kind == ErrorKindDecoding
	}

	return false
}

// AsError extracts *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var conohaErr *Error
	if errors.As(err, &conohaErr) {
		return conohaErr, true
	}

	return nil, false
}

// IsTransportFailure reports whether err was raised before any response was obtained.
func IsTransportFailure(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsHTTPStatusFailure reports whether err carries a non-2xx response.
func IsHTTPStatusFailure(err error) bool {
	return errors.Is(err, ErrHTTPStatus)
}

// IsDecodingFailure reports whether err is a JSON decoding failure.
func IsDecodingFailure(err error) bool {
	return errors.Is(err, ErrDecoding)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	conohaErr, ok := AsError(err)
	if !ok {
		return 0
	}

	return conohaErr.StatusCode
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// APIError is the fault document the API returns with error statuses, e.g.
// {"itemNotFound": {"code": 404, "message": "..."}}.
type APIError struct {
	Name    string `json:"-"       yaml:"name"`
	Code    int    `json:"code"    yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (code: %d)", e.Name, e.Message, e.Code)
}

// ParseAPIError parses a fault document. When several faults are present the first one
// in key order wins.
func ParseAPIError(data []byte) (*APIError, error) {
	var faults map[string]json.RawMessage

	err := json.Unmarshal(data, &faults)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal api error: %w", err)
	}

	names := make([]string, 0, len(faults))
	for name := range faults {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		var apiErr APIError
		if json.Unmarshal(faults[name], &apiErr) != nil || apiErr.Message == "" {
			continue
		}

		apiErr.Name = name

		return &apiErr, nil
	}

	return nil, ErrNoAPIError
}
