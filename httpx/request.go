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

import "net/textproto"

// Request is a fully parsed HTTP request as handed to the router.
//
// The wire parser constructs it; the router is the only component that
// mutates it afterwards, and only to inject path parameters captured during
// route matching. Middlewares and handlers receive the same instance.
type Request struct {
	method     Method
	path       string
	headers    map[string]string
	body       []byte
	pathParams map[string]string
}

// NewRequest constructs a request from parsed wire data. The path must be
// the URL-decoded path component only, starting with "/": no query string,
// no fragment.
func NewRequest(method Method, path string) *Request {
	return &Request{
		method:  method,
		path:    path,
		headers: make(map[string]string),
	}
}

// Method returns the request method.
func (r *Request) Method() Method { return r.method }

// Path returns the URL-decoded request path.
func (r *Request) Path() string { return r.path }

// Header returns the value of the named header. Lookup is case-insensitive.
func (r *Request) Header(name string) string {
	return r.headers[textproto.CanonicalMIMEHeaderKey(name)]
}

// SetHeader sets a header value. Names are canonicalized so later lookups
// are case-insensitive.
func (r *Request) SetHeader(name, value string) {
	r.headers[textproto.CanonicalMIMEHeaderKey(name)] = value
}

// Headers returns the underlying header map with canonicalized keys.
func (r *Request) Headers() map[string]string { return r.headers }

// Body returns the request body bytes. May be nil for bodyless requests.
func (r *Request) Body() []byte { return r.body }

// SetBody sets the request body bytes.
func (r *Request) SetBody(b []byte) { r.body = b }

// SetPathParam records a path parameter captured by the router.
func (r *Request) SetPathParam(name, value string) {
	if r.pathParams == nil {
		r.pathParams = make(map[string]string, 4)
	}
	r.pathParams[name] = value
}

// PathParam returns the value bound to a named route parameter, or the
// empty string when the parameter was not captured.
func (r *Request) PathParam(name string) string {
	return r.pathParams[name]
}

// PathParams returns all captured path parameters. The map is nil until the
// router injects the first parameter.
func (r *Request) PathParams() map[string]string { return r.pathParams }
