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

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"zhttp.dev/zhttp/httpx"
)

// ErrAmbiguousRoute is returned when a pattern is registered both as a
// dynamic (radix) route and as a regex route. The two tiers would race for
// the same requests, so the second registration is rejected.
var ErrAmbiguousRoute = errors.New("router: pattern registered as both dynamic and regex route")

// noopLogger is the default logger when no observability is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Option defines functional options for router configuration.
type Option func(*Router)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithNotFoundHandler overrides the default 404 handler.
func WithNotFoundHandler(h httpx.Handler) Option {
	return func(r *Router) {
		if h.IsValid() {
			r.notFound = h
		}
	}
}

// Router composes the three matching tiers and the middleware chain. It is
// the entry point for every parsed request.
//
// Registration is not safe against concurrent dispatch: complete all
// Handle/Use/NotFound calls before the server starts. After that the route
// tables are immutable and Dispatch is safe for concurrent use.
type Router struct {
	static  *staticTable
	tree    *radixTree
	regexes regexTable

	global          []httpx.Middleware
	pathMiddlewares map[string][]httpx.Middleware

	// dynamicPatterns remembers radix registrations so a later regex
	// registration of the same pattern (or vice versa) is rejected.
	dynamicPatterns map[string]struct{}

	notFound httpx.Handler
	logger   *slog.Logger
}

// New creates a router with the default 404 handler installed.
func New(opts ...Option) *Router {
	r := &Router{
		static:          newStaticTable(),
		tree:            newRadixTree(),
		pathMiddlewares: make(map[string][]httpx.Middleware),
		dynamicPatterns: make(map[string]struct{}),
		notFound:        httpx.HandlerOf(defaultNotFound),
		logger:          noopLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// defaultNotFound emits the stock 404 page.
func defaultNotFound(_ *httpx.Request, resp *httpx.Response) {
	resp.Status(http.StatusNotFound).
		ContentType("text/html; charset=utf-8").
		Body([]byte("<html><body><h1>404 Not Found</h1></body></html>"))
}

// isDynamic reports whether a pattern contains parameter or catch-all
// segments and therefore belongs in the radix tree.
func isDynamic(path string) bool {
	return strings.ContainsAny(path, ":*")
}

// Handle registers a handler for a method and path pattern. Literal paths
// land in the static table; patterns with ':' parameters or '*' catch-alls
// go to the radix tree. Registering the same (method, path) twice keeps the
// second handler.
func (r *Router) Handle(method httpx.Method, path string, handler httpx.Handler) error {
	if isDynamic(path) {
		if r.regexes.has(path) {
			return fmt.Errorf("%w: %s", ErrAmbiguousRoute, path)
		}
		r.tree.insert(method, path, handler)
		r.dynamicPatterns[path] = struct{}{}
		r.logger.Debug("route registered", "tier", "radix", "method", method, "path", path)
		return nil
	}
	r.static.insert(method, path, handler)
	r.logger.Debug("route registered", "tier", "static", "method", method, "path", path)
	return nil
}

// HandleRegex registers a regex route. The pattern is compiled once and
// anchored to the full path; paramNames name the capture groups in order.
func (r *Router) HandleRegex(method httpx.Method, pattern string, paramNames []string, handler httpx.Handler) error {
	if _, ok := r.dynamicPatterns[pattern]; ok {
		return fmt.Errorf("%w: %s", ErrAmbiguousRoute, pattern)
	}
	if err := r.regexes.insert(method, pattern, paramNames, handler); err != nil {
		return err
	}
	r.logger.Debug("route registered", "tier", "regex", "method", method, "pattern", pattern)
	return nil
}

// Get registers a GET route.
func (r *Router) Get(path string, handler httpx.Handler) error {
	return r.Handle(httpx.MethodGet, path, handler)
}

// Post registers a POST route.
func (r *Router) Post(path string, handler httpx.Handler) error {
	return r.Handle(httpx.MethodPost, path, handler)
}

// Put registers a PUT route.
func (r *Router) Put(path string, handler httpx.Handler) error {
	return r.Handle(httpx.MethodPut, path, handler)
}

// Delete registers a DELETE route.
func (r *Router) Delete(path string, handler httpx.Handler) error {
	return r.Handle(httpx.MethodDelete, path, handler)
}

// Use appends a middleware to the global chain.
func (r *Router) Use(mw httpx.Middleware) {
	if mw != nil {
		r.global = append(r.global, mw)
	}
}

// UseAt scopes a middleware to a path. If the path is already registered as
// a static, dynamic, or regex route, the middleware attaches to that route;
// otherwise it applies to any request whose exact path equals the argument.
func (r *Router) UseAt(path string, mw httpx.Middleware) {
	if mw == nil {
		return
	}
	if r.static.addMiddleware(path, mw) {
		return
	}
	if _, ok := r.dynamicPatterns[path]; ok {
		r.tree.addMiddleware(path, mw)
		return
	}
	if r.regexes.addMiddleware(path, mw) {
		return
	}
	r.pathMiddlewares[path] = append(r.pathMiddlewares[path], mw)
}

// NotFound overrides the 404 handler.
func (r *Router) NotFound(h httpx.Handler) {
	if h.IsValid() {
		r.notFound = h
	}
}

// routeContext is the result of matching one request. It lives for a
// single dispatch.
type routeContext struct {
	found       bool
	handler     httpx.Handler
	middlewares []httpx.Middleware
	params      map[string]string
}

// resolve tries the three tiers in priority order. A tier only succeeds
// when it has a handler for the request method; otherwise the next tier is
// consulted. A path registered for a different method is a plain miss.
func (r *Router) resolve(method httpx.Method, path string) routeContext {
	if entry := r.static.lookup(path); entry != nil {
		if h, ok := entry.handlers[method]; ok {
			return routeContext{found: true, handler: h, middlewares: entry.middlewares}
		}
	}

	if m := r.tree.find(path); m.found {
		if h, ok := m.node.handlers[method]; ok {
			return routeContext{found: true, handler: h, middlewares: m.node.middlewares, params: m.params}
		}
	}

	if route, params := r.regexes.match(method, path); route != nil {
		return routeContext{found: true, handler: route.handlers[method], middlewares: route.middlewares, params: params}
	}

	return routeContext{}
}

// Dispatch resolves a request to a handler, runs the middleware chain
// around it, and reports whether a route was found. A panic in a before
// hook, the handler, or an after hook is contained: the response becomes a
// generic 500 and the after hooks entered so far still run.
func (r *Router) Dispatch(req *httpx.Request, resp *httpx.Response) bool {
	ctx := r.resolve(req.Method(), req.Path())

	for name, value := range ctx.params {
		req.SetPathParam(name, value)
	}

	chain := &middlewareChain{}
	chain.add(r.global...)
	chain.add(r.pathMiddlewares[req.Path()]...)
	chain.add(ctx.middlewares...)

	proceed := r.runBefore(chain, req, resp)

	if proceed {
		if ctx.found {
			r.invoke(ctx.handler, req, resp)
		} else {
			r.invoke(r.notFound, req, resp)
		}
	}

	chain.executeAfter(req, resp, func(p any) {
		r.logger.Error("after hook panicked", "path", req.Path(), "panic", p, "stack", string(debug.Stack()))
		internalError(resp)
	})

	return ctx.found
}

// runBefore executes the before hooks, converting a panic into a 500 and a
// short-circuit so the handler is skipped.
func (r *Router) runBefore(chain *middlewareChain, req *httpx.Request, resp *httpx.Response) (proceed bool) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("before hook panicked", "path", req.Path(), "panic", p, "stack", string(debug.Stack()))
			internalError(resp)
			proceed = false
		}
	}()
	return chain.executeBefore(req, resp)
}

// invoke runs a handler, converting a panic into a 500.
func (r *Router) invoke(h httpx.Handler, req *httpx.Request, resp *httpx.Response) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("handler panicked", "method", req.Method(), "path", req.Path(), "panic", p, "stack", string(debug.Stack()))
			internalError(resp)
		}
	}()
	h.Invoke(req, resp)
}

// internalError overwrites the response with a generic 500.
func internalError(resp *httpx.Response) {
	resp.Status(http.StatusInternalServerError).
		ContentType("text/html; charset=utf-8").
		Body([]byte("<html><body><h1>500 Internal Server Error</h1></body></html>"))
}
