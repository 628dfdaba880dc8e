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

// HandlerFunc is the plain-function handler shape.
type HandlerFunc func(req *Request, resp *Response)

// RouteHandler is the object handler shape: any value exposing a single
// Handle operation.
type RouteHandler interface {
	Handle(req *Request, resp *Response)
}

// Handler wraps either handler shape behind one invocation token. The zero
// value is an empty sentinel: IsValid reports false and Invoke is a no-op.
// Handler is a small value type and is copied freely by the route tables.
type Handler struct {
	fn  HandlerFunc
	obj RouteHandler
}

// HandlerOf wraps a plain handler function.
func HandlerOf(fn HandlerFunc) Handler {
	return Handler{fn: fn}
}

// HandlerFor wraps an object handler.
func HandlerFor(h RouteHandler) Handler {
	return Handler{obj: h}
}

// IsValid reports whether a target is set.
func (h Handler) IsValid() bool {
	return h.fn != nil || h.obj != nil
}

// Invoke calls the wrapped target. Invoking an empty handler does nothing.
func (h Handler) Invoke(req *Request, resp *Response) {
	switch {
	case h.fn != nil:
		h.fn(req, resp)
	case h.obj != nil:
		h.obj.Handle(req, resp)
	}
}
