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
	"bytes"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zhttp.dev/zhttp/httpx"
)

// metricsMiddleware records request counts and latencies.
type metricsMiddleware struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	starts   sync.Map // *httpx.Request -> time.Time
}

// Metrics returns a middleware recording zhttp_requests_total by method and
// status, and zhttp_request_duration_seconds by method. Collectors register
// on the given registerer; pass prometheus.DefaultRegisterer unless tests
// need isolation.
func Metrics(reg prometheus.Registerer) httpx.Middleware {
	m := &metricsMiddleware{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zhttp_requests_total",
			Help: "Total HTTP requests processed, by method and status code.",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zhttp_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *metricsMiddleware) Before(req *httpx.Request, _ *httpx.Response) bool {
	m.starts.Store(req, time.Now())
	return true
}

func (m *metricsMiddleware) After(req *httpx.Request, resp *httpx.Response) {
	method := req.Method().String()
	m.requests.WithLabelValues(method, strconv.Itoa(resp.StatusCode())).Inc()
	if v, ok := m.starts.LoadAndDelete(req); ok {
		m.duration.WithLabelValues(method).Observe(time.Since(v.(time.Time)).Seconds())
	}
}

// exportRecorder adapts promhttp's http.ResponseWriter output back into a
// Response.
type exportRecorder struct {
	header http.Header
	body   bytes.Buffer
	code   int
}

func (r *exportRecorder) Header() http.Header { return r.header }

func (r *exportRecorder) WriteHeader(code int) {
	if r.code == 0 {
		r.code = code
	}
}

func (r *exportRecorder) Write(b []byte) (int, error) {
	if r.code == 0 {
		r.code = http.StatusOK
	}
	return r.body.Write(b)
}

// MetricsHandler exposes a gatherer in the Prometheus text format as a
// route handler, suitable for mounting at /metrics.
func MetricsHandler(g prometheus.Gatherer) httpx.Handler {
	inner := promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	return httpx.HandlerOf(func(req *httpx.Request, resp *httpx.Response) {
		httpReq, err := http.NewRequest(http.MethodGet, "/metrics", nil)
		if err != nil {
			resp.Status(http.StatusInternalServerError).Text("metrics unavailable")
			return
		}
		if accept := req.Header("Accept"); accept != "" {
			httpReq.Header.Set("Accept", accept)
		}

		rec := &exportRecorder{header: make(http.Header)}
		inner.ServeHTTP(rec, httpReq)

		resp.Status(rec.code)
		for key, values := range rec.header {
			if len(values) > 0 {
				resp.Header(key, values[0])
			}
		}
		resp.Body(rec.body.Bytes())
	})
}
