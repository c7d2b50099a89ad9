package model

import (
	"bytes"
	"net/http"
)

// SignedRequest is a fully built HTTP request ready for a transport.
// It is immutable: accessors return copies.
type SignedRequest struct {
	method string
	url    string
	header http.Header
	body   []byte
}

// NewSignedRequest copies its inputs into a new request. A nil header
// becomes an empty one.
func NewSignedRequest(method, url string, header http.Header, body []byte) *SignedRequest {
	if header == nil {
		header = http.Header{}
	}
	return &SignedRequest{
		method: method,
		url:    url,
		header: header.Clone(),
		body:   bytes.Clone(body),
	}
}

// Method returns the HTTP method.
func (r *SignedRequest) Method() string { return r.method }

// URL returns the absolute request URL.
func (r *SignedRequest) URL() string { return r.url }

// Header returns a copy of the request headers.
func (r *SignedRequest) Header() http.Header { return r.header.Clone() }

// HeaderValue returns the first value of a header.
func (r *SignedRequest) HeaderValue(name string) string { return r.header.Get(name) }

// Body returns a copy of the request body.
func (r *SignedRequest) Body() []byte { return bytes.Clone(r.body) }
