package model

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// RawResponse is what a transport hands back: status, headers, cookies and body.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Cookies    []*http.Cookie
	Body       []byte
}

// ResponseEnvelope is the uniform {retcode, message, data} response wrapper,
// together with the response headers and cookies the classifier and extractor need.
type ResponseEnvelope struct {
	Retcode    int
	Message    string
	Data       []byte
	StatusCode int
	Header     http.Header
	Cookies    map[string]string
}

// ParseEnvelope decodes a raw response body into an envelope.
func ParseEnvelope(raw *RawResponse) (*ResponseEnvelope, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: no response", ErrMalformedEnvelope)
	}
	if !gjson.ValidBytes(raw.Body) {
		return nil, fmt.Errorf("%w: status %d, body is not JSON", ErrMalformedEnvelope, raw.StatusCode)
	}
	root := gjson.ParseBytes(raw.Body)
	retcode := root.Get("retcode")
	if !retcode.Exists() {
		return nil, fmt.Errorf("%w: status %d, no retcode", ErrMalformedEnvelope, raw.StatusCode)
	}

	env := &ResponseEnvelope{
		Retcode:    int(retcode.Int()),
		Message:    root.Get("message").String(),
		StatusCode: raw.StatusCode,
		Header:     raw.Header.Clone(),
		Cookies:    make(map[string]string, len(raw.Cookies)),
	}
	if env.Header == nil {
		env.Header = http.Header{}
	}
	if data := root.Get("data"); data.Exists() && data.Type != gjson.Null {
		env.Data = []byte(data.Raw)
	}
	for _, c := range raw.Cookies {
		env.Cookies[c.Name] = c.Value
	}
	return env, nil
}

// HasData reports whether the envelope carries a non-null data payload.
func (e *ResponseEnvelope) HasData() bool {
	return len(bytes.TrimSpace(e.Data)) > 0
}

// Field looks up a gjson path inside the data payload.
func (e *ResponseEnvelope) Field(path string) gjson.Result {
	return gjson.GetBytes(e.Data, path)
}
