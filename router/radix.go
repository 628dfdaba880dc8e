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
	"sort"
	"strings"

	"zhttp.dev/zhttp/httpx"
)

// nodeKind classifies a radix tree child. Lower value = higher match
// priority.
type nodeKind uint8

const (
	kindStatic nodeKind = iota
	kindParam
	kindCatchAll
)

// radixNode is one segment of the route trie.
//
// Invariants:
//   - children stays sorted ascending by kind; within a kind, insertion
//     order is preserved (sort.SliceStable at insert)
//   - at most one param child and one catch-all child per node
//   - static children are unique per literal segment
//
// A node is a leaf iff its handler map is non-empty. Internal nodes without
// handlers never terminate a match.
type radixNode struct {
	segment     string // raw segment as written, kept for diagnostics
	kind        nodeKind
	paramName   string // empty unless kind != kindStatic
	children    []*radixNode
	handlers    map[httpx.Method]httpx.Handler
	middlewares []httpx.Middleware
}

func (n *radixNode) isLeaf() bool { return len(n.handlers) > 0 }

// findStaticChild returns the static child matching the literal segment.
func (n *radixNode) findStaticChild(segment string) *radixNode {
	for _, child := range n.children {
		if child.kind == kindStatic && child.segment == segment {
			return child
		}
	}
	return nil
}

func (n *radixNode) findParamChild() *radixNode {
	for _, child := range n.children {
		if child.kind == kindParam {
			return child
		}
	}
	return nil
}

func (n *radixNode) findCatchAllChild() *radixNode {
	for _, child := range n.children {
		if child.kind == kindCatchAll {
			return child
		}
	}
	return nil
}

// addChild appends a child and restores the kind ordering. Stable sort
// keeps same-kind children in insertion order.
func (n *radixNode) addChild(child *radixNode) {
	n.children = append(n.children, child)
	sort.SliceStable(n.children, func(i, j int) bool {
		return n.children[i].kind < n.children[j].kind
	})
}

// radixMatch is the result of a tree lookup. Params are only populated on
// the successful branch: a failed subtree leaks no bindings.
type radixMatch struct {
	found  bool
	node   *radixNode
	params map[string]string
}

func (m *radixMatch) bind(name, value string) {
	if name == "" {
		return
	}
	if m.params == nil {
		m.params = make(map[string]string, 4)
	}
	m.params[name] = value
}

// radixTree routes `/`-separated paths to per-method handlers.
type radixTree struct {
	root *radixNode
}

func newRadixTree() *radixTree {
	return &radixTree{root: &radixNode{}}
}

// splitPath splits on "/" and drops empty segments, collapsing leading and
// trailing slashes as well as "//". The empty result denotes the root path.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// parseSegment classifies a route pattern segment.
func parseSegment(seg string) (nodeKind, string) {
	switch {
	case strings.HasPrefix(seg, ":"):
		return kindParam, seg[1:]
	case strings.HasPrefix(seg, "*"):
		return kindCatchAll, seg[1:]
	default:
		return kindStatic, ""
	}
}

// insert registers a handler for (method, path). Re-registering the same
// path and method overwrites the previous handler. Param and catch-all
// segments reuse the single existing child of their kind; the parameter
// name is overwritten so the last registration wins.
func (t *radixTree) insert(method httpx.Method, path string, handler httpx.Handler) {
	current := t.root
	for _, seg := range splitPath(path) {
		kind, paramName := parseSegment(seg)

		var child *radixNode
		switch kind {
		case kindStatic:
			child = current.findStaticChild(seg)
		case kindParam:
			child = current.findParamChild()
		case kindCatchAll:
			child = current.findCatchAllChild()
		}

		if child == nil {
			child = &radixNode{segment: seg, kind: kind, paramName: paramName}
			current.addChild(child)
		} else if kind != kindStatic {
			// Single param/catch-all child per node: reuse it, last
			// registered parameter name wins.
			child.segment = seg
			child.paramName = paramName
		}
		current = child
	}

	if current.handlers == nil {
		current.handlers = make(map[httpx.Method]httpx.Handler, 2)
	}
	current.handlers[method] = handler
}

// addMiddleware attaches a route-scoped middleware to the terminal node of
// an already-registered pattern. Unknown patterns are ignored.
func (t *radixTree) addMiddleware(path string, mw httpx.Middleware) {
	current := t.root
	for _, seg := range splitPath(path) {
		kind, _ := parseSegment(seg)
		var child *radixNode
		switch kind {
		case kindStatic:
			child = current.findStaticChild(seg)
		case kindParam:
			child = current.findParamChild()
		case kindCatchAll:
			child = current.findCatchAllChild()
		}
		if child == nil {
			return
		}
		current = child
	}
	current.middlewares = append(current.middlewares, mw)
}

// find resolves a request path. Request segments are all literals: ':' and
// '*' carry no meaning here.
func (t *radixTree) find(path string) radixMatch {
	var result radixMatch
	t.match(t.root, splitPath(path), 0, &result)
	return result
}

// match walks the tree depth-first in child priority order, backtracking
// when a higher-priority branch fails to reach a leaf. Parameter bindings
// are committed on the unwind of the successful branch only.
func (t *radixTree) match(node *radixNode, segments []string, index int, result *radixMatch) bool {
	if index >= len(segments) {
		if node.isLeaf() {
			result.found = true
			result.node = node
			return true
		}
		// Segments exhausted on an internal node: a catch-all leaf child
		// still matches, with an empty remainder. Covers both "/" against
		// a root catch-all and trailing-slash requests like "/files/".
		if catchAll := node.findCatchAllChild(); catchAll != nil && catchAll.isLeaf() {
			result.found = true
			result.node = catchAll
			result.bind(catchAll.paramName, "")
			return true
		}
		return false
	}

	seg := segments[index]

	if static := node.findStaticChild(seg); static != nil {
		if t.match(static, segments, index+1, result) {
			return true
		}
	}

	if param := node.findParamChild(); param != nil {
		if t.match(param, segments, index+1, result) {
			result.bind(param.paramName, seg)
			return true
		}
	}

	if catchAll := node.findCatchAllChild(); catchAll != nil && catchAll.isLeaf() {
		result.found = true
		result.node = catchAll
		result.bind(catchAll.paramName, strings.Join(segments[index:], "/"))
		return true
	}

	return false
}
