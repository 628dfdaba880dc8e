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
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingHandler struct {
	calls int
}

func (h *countingHandler) Handle(_ *Request, resp *Response) {
	h.calls++
	resp.Text("object")
}

func TestHandlerEmptyIsNoop(t *testing.T) {
	var h Handler

	assert.False(t, h.IsValid())

	req := NewRequest(MethodGet, "/")
	resp := NewResponse()
	h.Invoke(req, resp) // must not panic

	assert.Nil(t, resp.BodyBytes())
}

func TestHandlerWrapsFunc(t *testing.T) {
	called := false
	h := HandlerOf(func(_ *Request, resp *Response) {
		called = true
		resp.Text("func")
	})

	assert.True(t, h.IsValid())

	resp := NewResponse()
	h.Invoke(NewRequest(MethodGet, "/"), resp)

	assert.True(t, called)
	assert.Equal(t, "func", string(resp.BodyBytes()))
}

func TestHandlerWrapsObject(t *testing.T) {
	obj := &countingHandler{}
	h := HandlerFor(obj)

	assert.True(t, h.IsValid())

	resp := NewResponse()
	h.Invoke(NewRequest(MethodGet, "/"), resp)
	h.Invoke(NewRequest(MethodGet, "/"), resp)

	assert.Equal(t, 2, obj.calls)
	assert.Equal(t, "object", string(resp.BodyBytes()))
}

func TestParseMethod(t *testing.T) {
	m, ok := ParseMethod("GET")
	assert.True(t, ok)
	assert.Equal(t, MethodGet, m)

	_, ok = ParseMethod("BREW")
	assert.False(t, ok)
}
