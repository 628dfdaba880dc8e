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
	"fmt"
	"regexp"
	"strings"

	"zhttp.dev/zhttp/httpx"
)

// regexRoute is one compiled pattern with its positional capture names.
type regexRoute struct {
	pattern     string
	re          *regexp.Regexp
	paramNames  []string
	handlers    map[httpx.Method]httpx.Handler
	middlewares []httpx.Middleware
}

// regexTable is the last matching tier: an append-only list checked in
// registration order. Patterns compile once at registration, never per
// request.
type regexTable struct {
	routes []*regexRoute
}

// insert compiles and appends a pattern, or reuses the existing entry when
// the same pattern is registered again for another method. Patterns are
// anchored so they must match the full path.
func (t *regexTable) insert(method httpx.Method, pattern string, paramNames []string, handler httpx.Handler) error {
	for _, route := range t.routes {
		if route.pattern == pattern {
			route.handlers[method] = handler
			return nil
		}
	}

	re, err := regexp.Compile(anchor(pattern))
	if err != nil {
		return fmt.Errorf("compile regex route %q: %w", pattern, err)
	}

	route := &regexRoute{
		pattern:    pattern,
		re:         re,
		paramNames: paramNames,
		handlers:   map[httpx.Method]httpx.Handler{method: handler},
	}
	t.routes = append(t.routes, route)
	return nil
}

// anchor pins a pattern to the full path unless the caller anchored it
// already.
func anchor(pattern string) string {
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	if !strings.HasSuffix(pattern, "$") {
		pattern += "$"
	}
	return pattern
}

// match returns the first route whose regex matches the path and which has
// a handler for the method. Parameter values come from positional capture
// groups, paired with the declared names in order.
func (t *regexTable) match(method httpx.Method, path string) (*regexRoute, map[string]string) {
	for _, route := range t.routes {
		groups := route.re.FindStringSubmatch(path)
		if groups == nil {
			continue
		}
		if _, ok := route.handlers[method]; !ok {
			continue
		}

		var params map[string]string
		for i, name := range route.paramNames {
			if i+1 >= len(groups) {
				break
			}
			if params == nil {
				params = make(map[string]string, len(route.paramNames))
			}
			params[name] = groups[i+1]
		}
		return route, params
	}
	return nil, nil
}

// has reports whether a pattern is already registered.
func (t *regexTable) has(pattern string) bool {
	for _, route := range t.routes {
		if route.pattern == pattern {
			return true
		}
	}
	return false
}

// addMiddleware appends a route-scoped middleware to an existing pattern.
// It reports whether the pattern was registered.
func (t *regexTable) addMiddleware(pattern string, mw httpx.Middleware) bool {
	for _, route := range t.routes {
		if route.pattern == pattern {
			route.middlewares = append(route.middlewares, mw)
			return true
		}
	}
	return false
}
