package http

import (
	"maps"
	"net/http"
	"strings"

	"github.com/keika299/conoha/internal/constants"
	"github.com/keika299/conoha/pkg/conoha"
)

// BodyKind tells which body form a Request carries.
type BodyKind int

const (
	// BodyNone means the request is sent without a body.
	BodyNone BodyKind = iota
	// BodyRaw means the body bytes are sent as given.
	BodyRaw
	// BodyJSON means a value is marshalled to JSON when the request is sent.
	BodyJSON
)

// Request is an immutable description of one API call. Every With method returns a
// modified copy and leaves the receiver untouched, so a partially built Request can be
// shared as a template.
type Request struct {
	method  string
	baseURI string
	uri     string
	headers map[string]string
	query   string

	bodyKind BodyKind
	rawBody  []byte
	jsonBody interface{}
}

// NewRequest returns an empty GET request.
func NewRequest() Request {
	return Request{method: constants.DefaultMethod}
}

// WithMethod sets the HTTP method. It is uppercased and not validated.
func (r Request) WithMethod(method string) Request {
	r.method = strings.ToUpper(method)

	return r
}

// WithBaseURI sets the base URI, expected without a trailing slash.
func (r Request) WithBaseURI(baseURI string) Request {
	r.baseURI = baseURI

	return r
}

// WithURI sets the path appended to the base URI, expected to start with "/".
func (r Request) WithURI(uri string) Request {
	r.uri = uri

	return r
}

// WithHeader sets a header. Keys are stored in canonical form, so writing the same key
// again in any letter case replaces the value.
func (r Request) WithHeader(key, value string) Request {
	headers := make(map[string]string, len(r.headers)+1)
	maps.Copy(headers, r.headers)
	headers[http.CanonicalHeaderKey(key)] = value
	r.headers = headers

	return r
}

// WithAccept sets the Accept header.
func (r Request) WithAccept(value string) Request {
	return r.WithHeader(constants.HeaderAccept, value)
}

// WithContentType sets the Content-Type header.
func (r Request) WithContentType(value string) Request {
	return r.WithHeader(constants.HeaderContentType, value)
}

// WithToken sets the X-Auth-Token header.
func (r Request) WithToken(token string) Request {
	return r.WithHeader(constants.HeaderAuthToken, token)
}

// WithBody sets a raw body and drops any JSON body.
func (r Request) WithBody(body []byte) Request {
	r.bodyKind = BodyRaw
	r.rawBody = append([]byte(nil), body...)
	r.jsonBody = nil

	return r
}

// WithJSON sets a value to be sent as JSON and drops any raw body.
func (r Request) WithJSON(value interface{}) Request {
	r.bodyKind = BodyJSON
	r.jsonBody = value
	r.rawBody = nil

	return r
}

// WithQuery replaces the query string with query. An empty query is a no-op and keeps
// the previous query string.
func (r Request) WithQuery(query conoha.Query) Request {
	if len(query) == 0 {
		return r
	}

	r.query = query.Encode()

	return r
}

// Method returns the uppercased method.
func (r Request) Method() string {
	return r.method
}

// URL returns base URI, path and query string concatenated as they are.
func (r Request) URL() string {
	return r.baseURI + r.uri + r.query
}

// RawQuery returns the encoded query string including the leading "?", or "".
func (r Request) RawQuery() string {
	return r.query
}

// Header returns the value stored under key, matched case-insensitively.
func (r Request) Header(key string) (string, bool) {
	value, ok := r.headers[http.CanonicalHeaderKey(key)]

	return value, ok
}

// Headers returns a copy of all headers.
func (r Request) Headers() map[string]string {
	return maps.Clone(r.headers)
}

// BodyKind reports which body form is set.
func (r Request) BodyKind() BodyKind {
	return r.bodyKind
}

// RawBody returns a copy of the raw body, or nil when another form is set.
func (r Request) RawBody() []byte {
	if r.bodyKind != BodyRaw {
		return nil
	}

	return append([]byte(nil), r.rawBody...)
}

// JSONBody returns the JSON body value, or nil when another form is set.
func (r Request) JSONBody() interface{} {
	if r.bodyKind != BodyJSON {
		return nil
	}

	return r.jsonBody
}
