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
	"log/slog"
	"sync"
	"time"

	"zhttp.dev/zhttp/httpx"
)

// loggingMiddleware logs one line per request with method, path, status,
// and latency.
type loggingMiddleware struct {
	logger *slog.Logger
	starts sync.Map // *httpx.Request -> time.Time
}

// Logging returns a middleware that logs request completion at info level.
func Logging(logger *slog.Logger) httpx.Middleware {
	return &loggingMiddleware{logger: logger}
}

func (m *loggingMiddleware) Before(req *httpx.Request, _ *httpx.Response) bool {
	m.starts.Store(req, time.Now())
	return true
}

func (m *loggingMiddleware) After(req *httpx.Request, resp *httpx.Response) {
	var latency time.Duration
	if v, ok := m.starts.LoadAndDelete(req); ok {
		latency = time.Since(v.(time.Time))
	}
	m.logger.Info("request",
		"method", req.Method(),
		"path", req.Path(),
		"status", resp.StatusCode(),
		"latency", latency,
	)
}
