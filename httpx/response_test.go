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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseDefaults(t *testing.T) {
	resp := NewResponse()

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Empty(t, resp.HeaderKeys())
	assert.Nil(t, resp.BodyBytes())
}

func TestResponseStatusIdempotent(t *testing.T) {
	resp := NewResponse()
	resp.Status(http.StatusCreated).Status(http.StatusCreated)

	assert.Equal(t, http.StatusCreated, resp.StatusCode())
}

func TestResponseHeaderLastWriterWins(t *testing.T) {
	resp := NewResponse()
	resp.Header("X-Test", "v1").Header("X-Test", "v2")

	assert.Equal(t, "v2", resp.HeaderValue("X-Test"))
	require.Len(t, resp.HeaderKeys(), 1)
}

func TestResponseHeaderOrderPreserved(t *testing.T) {
	resp := NewResponse()
	resp.Header("X-First", "1").
		Header("X-Second", "2").
		Header("X-First", "updated").
		Header("X-Third", "3")

	assert.Equal(t, []string{"X-First", "X-Second", "X-Third"}, resp.HeaderKeys())
	assert.Equal(t, "updated", resp.HeaderValue("X-First"))
}

func TestResponseHeaderCaseInsensitive(t *testing.T) {
	resp := NewResponse()
	resp.Header("content-type", "application/json")

	assert.Equal(t, "application/json", resp.HeaderValue("Content-Type"))
}

func TestResponseChainableSetters(t *testing.T) {
	resp := NewResponse()
	result := resp.Status(http.StatusAccepted).Header("X-A", "a").Body([]byte("hello"))

	assert.Same(t, resp, result)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode())
	assert.Equal(t, []byte("hello"), resp.BodyBytes())
}

func TestResponseRenderHelpers(t *testing.T) {
	tests := []struct {
		name        string
		render      func(*Response)
		contentType string
		body        string
	}{
		{
			name:        "json",
			render:      func(r *Response) { r.JSON(`{"ok":true}`) },
			contentType: "application/json; charset=utf-8",
			body:        `{"ok":true}`,
		},
		{
			name:        "html",
			render:      func(r *Response) { r.HTML("<h1>hi</h1>") },
			contentType: "text/html; charset=utf-8",
			body:        "<h1>hi</h1>",
		},
		{
			name:        "text",
			render:      func(r *Response) { r.Text("plain") },
			contentType: "text/plain; charset=utf-8",
			body:        "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewResponse()
			tt.render(resp)

			assert.Equal(t, tt.contentType, resp.HeaderValue("Content-Type"))
			assert.Equal(t, tt.body, string(resp.BodyBytes()))
		})
	}
}
