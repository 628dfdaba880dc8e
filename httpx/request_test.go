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

func TestRequestHeadersCaseInsensitive(t *testing.T) {
	req := NewRequest(MethodGet, "/")
	req.SetHeader("content-type", "text/plain")

	assert.Equal(t, "text/plain", req.Header("Content-Type"))
	assert.Equal(t, "text/plain", req.Header("CONTENT-TYPE"))
}

func TestRequestPathParams(t *testing.T) {
	req := NewRequest(MethodGet, "/users/42")

	assert.Empty(t, req.PathParam("id"))
	assert.Nil(t, req.PathParams())

	req.SetPathParam("id", "42")

	assert.Equal(t, "42", req.PathParam("id"))
	assert.Len(t, req.PathParams(), 1)
}

func TestRequestBody(t *testing.T) {
	req := NewRequest(MethodPost, "/data")
	req.SetBody([]byte("payload"))

	assert.Equal(t, []byte("payload"), req.Body())
}
