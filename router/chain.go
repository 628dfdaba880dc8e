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

package router

import "zhttp.dev/zhttp/httpx"

// middlewareChain is the per-request middleware pipeline, assembled from
// global, path-scoped, and route-scoped middlewares for a single dispatch.
// It is not retained across requests.
type middlewareChain struct {
	middlewares []httpx.Middleware
	entered     int
}

func (c *middlewareChain) add(mws ...httpx.Middleware) {
	c.middlewares = append(c.middlewares, mws...)
}

// executeBefore runs Before hooks left to right, tracking how many were
// entered. It stops and returns false the moment one short-circuits.
func (c *middlewareChain) executeBefore(req *httpx.Request, resp *httpx.Response) bool {
	for _, mw := range c.middlewares {
		c.entered++
		if !mw.Before(req, resp) {
			return false
		}
	}
	return true
}

// executeAfter runs After hooks right to left over the entered prefix only.
// Middlewares past a short-circuit were never entered and are skipped. A
// panicking hook is reported through onPanic and the remaining hooks still
// run, keeping the chain balanced.
func (c *middlewareChain) executeAfter(req *httpx.Request, resp *httpx.Response, onPanic func(any)) {
	for i := c.entered - 1; i >= 0; i-- {
		c.runAfter(c.middlewares[i], req, resp, onPanic)
	}
}

func (c *middlewareChain) runAfter(mw httpx.Middleware, req *httpx.Request, resp *httpx.Response, onPanic func(any)) {
	defer func() {
		if p := recover(); p != nil && onPanic != nil {
			onPanic(p)
		}
	}()
	mw.After(req, resp)
}
