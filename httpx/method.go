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

// Method is an HTTP request method. Methods are comparable and usable as map
// keys, which the router relies on for its per-method handler tables.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
	MethodPatch   Method = "PATCH"
)

// knownMethods is the set of methods the framework routes on.
var knownMethods = map[Method]struct{}{
	MethodGet:     {},
	MethodPost:    {},
	MethodPut:     {},
	MethodDelete:  {},
	MethodHead:    {},
	MethodOptions: {},
	MethodPatch:   {},
}

// ParseMethod converts a wire-format method token into a Method.
// The second return value reports whether the token is a method the
// framework knows how to route.
func ParseMethod(s string) (Method, bool) {
	m := Method(s)
	_, ok := knownMethods[m]
	return m, ok
}

// String returns the wire representation of the method.
func (m Method) String() string { return string(m) }
