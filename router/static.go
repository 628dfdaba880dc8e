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

// staticEntry holds the per-method handlers and route-scoped middlewares of
// one exact-match path.
type staticEntry struct {
	handlers    map[httpx.Method]httpx.Handler
	middlewares []httpx.Middleware
}

// staticTable is the first matching tier: a hash map keyed by the literal
// request path.
type staticTable struct {
	entries map[string]*staticEntry
}

func newStaticTable() *staticTable {
	return &staticTable{entries: make(map[string]*staticEntry)}
}

// insert registers a handler under an exact path, overwriting any previous
// handler for the same method.
func (t *staticTable) insert(method httpx.Method, path string, handler httpx.Handler) {
	entry := t.entries[path]
	if entry == nil {
		entry = &staticEntry{handlers: make(map[httpx.Method]httpx.Handler, 2)}
		t.entries[path] = entry
	}
	entry.handlers[method] = handler
}

// lookup returns the entry for an exact path, or nil.
func (t *staticTable) lookup(path string) *staticEntry {
	return t.entries[path]
}

// addMiddleware appends a route-scoped middleware to an existing entry.
// It reports whether an entry for the path existed.
func (t *staticTable) addMiddleware(path string, mw httpx.Middleware) bool {
	entry := t.entries[path]
	if entry == nil {
		return false
	}
	entry.middlewares = append(entry.middlewares, mw)
	return true
}
