package http

import (
	"encoding/json"
	"net/http"

	"github.com/keika299/conoha/pkg/conoha"
)

// Response is a completed HTTP response. It is never modified after construction.
type Response struct {
	statusCode int
	header     http.Header
	body       []byte
}

func newResponse(statusCode int, header http.Header, body []byte) *Response {
	if header == nil {
		header = make(http.Header)
	}

	return &Response{
		statusCode: statusCode,
		header:     header,
		body:       body,
	}
}

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int {
	return r.statusCode
}

// Header returns a copy of the response headers.
func (r *Response) Header() http.Header {
	return r.header.Clone()
}

// Body returns a copy of the raw body.
func (r *Response) Body() []byte {
	return append([]byte(nil), r.body...)
}

// JSON decodes the body into a generic structure. A malformed body yields a decoding
// error; nothing is cached between calls.
func (r *Response) JSON() (interface{}, error) {
	var document interface{}

	err := r.DecodeJSON(&document)
	if err != nil {
		return nil, err
	}

	return document, nil
}

// DecodeJSON decodes the body into value.
func (r *Response) DecodeJSON(value interface{}) error {
	err := json.Unmarshal(r.body, value)
	if err != nil {
		return &conoha.Error{
			Kind:       conoha.ErrorKindDecoding,
			StatusCode: r.statusCode,
			Header:     r.Header(),
			Body:       r.Body(),
			Cause:      err,
		}
	}

	return nil
}
