// Copyright 2026 The zhttp Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httpx

import (
	"net/http"
	"net/textproto"
)

// Response accumulates the HTTP response during dispatch. Handlers and
// middlewares mutate it through chainable setters; ownership transfers to
// the serializer once the after hooks have finished.
//
// Headers keep their first-insertion order. Setting a header that already
// exists replaces its value in place: setters are last-writer-wins.
type Response struct {
	status     int
	headerKeys []string
	headers    map[string]string
	body       []byte
}

// NewResponse returns a response with status 200 and no headers or body.
func NewResponse() *Response {
	return &Response{
		status:  http.StatusOK,
		headers: make(map[string]string),
	}
}

// Status sets the response status code.
func (r *Response) Status(code int) *Response {
	r.status = code
	return r
}

// Header sets a header. Names are canonicalized; repeated sets of the same
// name keep the original position and overwrite the value.
func (r *Response) Header(name, value string) *Response {
	key := textproto.CanonicalMIMEHeaderKey(name)
	if _, exists := r.headers[key]; !exists {
		r.headerKeys = append(r.headerKeys, key)
	}
	r.headers[key] = value
	return r
}

// ContentType sets the Content-Type header.
func (r *Response) ContentType(ct string) *Response {
	return r.Header("Content-Type", ct)
}

// Body sets the response body bytes.
func (r *Response) Body(b []byte) *Response {
	r.body = b
	return r
}

// JSON sets an application/json body.
func (r *Response) JSON(s string) *Response {
	return r.ContentType("application/json; charset=utf-8").Body([]byte(s))
}

// HTML sets a text/html body.
func (r *Response) HTML(s string) *Response {
	return r.ContentType("text/html; charset=utf-8").Body([]byte(s))
}

// Text sets a text/plain body.
func (r *Response) Text(s string) *Response {
	return r.ContentType("text/plain; charset=utf-8").Body([]byte(s))
}

// StatusCode returns the current status code.
func (r *Response) StatusCode() int { return r.status }

// HeaderValue returns the value of the named header, case-insensitively.
func (r *Response) HeaderValue(name string) string {
	return r.headers[textproto.CanonicalMIMEHeaderKey(name)]
}

// HeaderKeys returns the header names in first-insertion order.
func (r *Response) HeaderKeys() []string { return r.headerKeys }

// BodyBytes returns the current body.
func (r *Response) BodyBytes() []byte { return r.body }
