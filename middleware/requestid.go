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

package middleware

import (
	"github.com/google/uuid"

	"zhttp.dev/zhttp/httpx"
)

// HeaderRequestID is the header carrying the request id.
const HeaderRequestID = "X-Request-ID"

// RequestIDConfig configures the request-id middleware.
type RequestIDConfig struct {
	// Generator creates new ids (default: UUID v4).
	Generator func() string
	// UseExisting keeps an id already present on the incoming request.
	UseExisting bool
}

// RequestID tags every request and response with a request id. An id
// already present on the incoming request is kept; otherwise a UUID v4 is
// generated.
func RequestID() httpx.Middleware {
	return RequestIDWithConfig(RequestIDConfig{UseExisting: true})
}

// RequestIDWithConfig builds the middleware with custom id generation.
func RequestIDWithConfig(cfg RequestIDConfig) httpx.Middleware {
	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return httpx.MiddlewareFuncs{
		BeforeFunc: func(req *httpx.Request, resp *httpx.Response) bool {
			id := ""
			if cfg.UseExisting {
				id = req.Header(HeaderRequestID)
			}
			if id == "" {
				id = cfg.Generator()
				req.SetHeader(HeaderRequestID, id)
			}
			resp.Header(HeaderRequestID, id)
			return true
		},
	}
}
