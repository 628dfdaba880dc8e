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

// Middleware intercepts dispatch around the handler.
//
// Before runs ahead of the handler; returning false short-circuits the
// chain: no further Before hooks run and the handler is skipped. After runs
// once dispatch finishes, in reverse entry order, and only for middlewares
// whose Before was actually entered.
type Middleware interface {
	Before(req *Request, resp *Response) bool
	After(req *Request, resp *Response)
}

// MiddlewareFuncs adapts a pair of functions into a Middleware. Either
// field may be nil: a nil BeforeFunc continues the chain, a nil AfterFunc
// does nothing.
type MiddlewareFuncs struct {
	BeforeFunc func(req *Request, resp *Response) bool
	AfterFunc  func(req *Request, resp *Response)
}

// Before implements Middleware.
func (m MiddlewareFuncs) Before(req *Request, resp *Response) bool {
	if m.BeforeFunc == nil {
		return true
	}
	return m.BeforeFunc(req, resp)
}

// After implements Middleware.
func (m MiddlewareFuncs) After(req *Request, resp *Response) {
	if m.AfterFunc != nil {
		m.AfterFunc(req, resp)
	}
}
