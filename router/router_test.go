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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zhttp.dev/zhttp/httpx"
)

// dispatch runs one request through a router and returns the response and
// the found flag.
func dispatch(r *Router, method httpx.Method, path string) (*httpx.Request, *httpx.Response, bool) {
	req := httpx.NewRequest(method, path)
	resp := httpx.NewResponse()
	found := r.Dispatch(req, resp)
	return req, resp, found
}

func TestDispatchStaticRoute(t *testing.T) {
	r := New()
	require.NoError(t, r.Get("/", httpx.HandlerOf(func(_ *httpx.Request, resp *httpx.Response) {
		resp.HTML("<h1>hi</h1>")
	})))

	_, resp, found := dispatch(r, httpx.MethodGet, "/")
	assert.True(t, found)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, resp.HeaderValue("Content-Type"), "text/html")
	assert.Equal(t, "<h1>hi</h1>", string(resp.BodyBytes()))
}

func TestDispatchParamRoute(t *testing.T) {
	r := New()
	require.NoError(t, r.Get("/api/users/:id", httpx.HandlerOf(func(req *httpx.Request, resp *httpx.Response) {
		resp.JSON(fmt.Sprintf(`{"id":%q}`, req.PathParam("id")))
	})))

	_, resp, found := dispatch(r, httpx.MethodGet, "/api/users/42")
	assert.True(t, found)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, `{"id":"42"}`, string(resp.BodyBytes()))
}

func TestDispatchTierPriority(t *testing.T) {
	var hits []string
	r := New()
	require.NoError(t, r.Get("/a/b", namedHandler("static", &hits)))
	require.NoError(t, r.Get("/a/:x", namedHandler("radix", &hits)))
	require.NoError(t, r.HandleRegex(httpx.MethodGet, `/a/(\w+)`, []string{"x"}, namedHandler("regex", &hits)))

	t.Run("static table first", func(t *testing.T) {
		hits = nil
		_, _, found := dispatch(r, httpx.MethodGet, "/a/b")
		assert.True(t, found)
		assert.Equal(t, []string{"static"}, hits)
	})

	t.Run("radix before regex", func(t *testing.T) {
		hits = nil
		_, _, found := dispatch(r, httpx.MethodGet, "/a/c")
		assert.True(t, found)
		assert.Equal(t, []string{"radix"}, hits)
	})
}

func TestDispatchRegexFallback(t *testing.T) {
	r := New()
	require.NoError(t, r.HandleRegex(httpx.MethodGet, `/v(\d+)/items/(\d+)`, []string{"version", "id"},
		httpx.HandlerOf(func(req *httpx.Request, resp *httpx.Response) {
			resp.Text(req.PathParam("version") + ":" + req.PathParam("id"))
		})))

	_, resp, found := dispatch(r, httpx.MethodGet, "/v2/items/17")
	assert.True(t, found)
	assert.Equal(t, "2:17", string(resp.BodyBytes()))
}

func TestDispatchMethodIsolation(t *testing.T) {
	r := New()
	require.NoError(t, r.Post("/data", httpx.HandlerOf(noop)))

	_, resp, found := dispatch(r, httpx.MethodGet, "/data")
	assert.False(t, found)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestDispatchDefault404(t *testing.T) {
	r := New()

	_, resp, found := dispatch(r, httpx.MethodGet, "/missing")
	assert.False(t, found)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Equal(t, "text/html; charset=utf-8", resp.HeaderValue("Content-Type"))
	assert.Equal(t, "<html><body><h1>404 Not Found</h1></body></html>", string(resp.BodyBytes()))
}

func TestDispatchCustom404(t *testing.T) {
	r := New()
	r.NotFound(httpx.HandlerOf(func(_ *httpx.Request, resp *httpx.Response) {
		resp.Status(http.StatusNotFound).JSON(`{"error":"nope"}`)
	}))

	_, resp, found := dispatch(r, httpx.MethodGet, "/missing")
	assert.False(t, found)
	assert.Equal(t, `{"error":"nope"}`, string(resp.BodyBytes()))
}

func TestDispatchOverwriteKeepsSecondHandler(t *testing.T) {
	var hits []string
	r := New()
	require.NoError(t, r.Get("/x", namedHandler("first", &hits)))
	require.NoError(t, r.Get("/x", namedHandler("second", &hits)))

	_, _, found := dispatch(r, httpx.MethodGet, "/x")
	assert.True(t, found)
	assert.Equal(t, []string{"second"}, hits)
}

func TestDispatchMiddlewareOrder(t *testing.T) {
	var log []string
	r := New()
	r.Use(newTrace("A", &log))
	r.Use(newTrace("B", &log))
	require.NoError(t, r.Get("/mw", httpx.HandlerOf(func(_ *httpx.Request, _ *httpx.Response) {
		log = append(log, "handler")
	})))
	r.UseAt("/mw", newTrace("C", &log))

	_, _, found := dispatch(r, httpx.MethodGet, "/mw")
	assert.True(t, found)
	assert.Equal(t, []string{
		"A.before", "B.before", "C.before",
		"handler",
		"C.after", "B.after", "A.after",
	}, log)
}

func TestDispatchShortCircuit(t *testing.T) {
	var log []string
	a := newTrace("A", &log)
	b := newTrace("B", &log)
	b.proceed = false

	r := New()
	r.Use(a)
	r.Use(b)
	require.NoError(t, r.Get("/sc", httpx.HandlerOf(func(_ *httpx.Request, _ *httpx.Response) {
		log = append(log, "handler")
	})))
	r.UseAt("/sc", newTrace("C", &log))

	_, _, found := dispatch(r, httpx.MethodGet, "/sc")
	assert.True(t, found, "found is reported irrespective of short-circuit")
	assert.Equal(t, []string{"A.before", "B.before", "B.after", "A.after"}, log)
}

func TestDispatchShortCircuitStatusPreserved(t *testing.T) {
	var log []string
	r := New()
	r.Use(httpx.MiddlewareFuncs{
		BeforeFunc: func(_ *httpx.Request, resp *httpx.Response) bool {
			resp.Status(http.StatusUnauthorized).JSON(`{"error":"auth required"}`)
			return false
		},
		AfterFunc: func(_ *httpx.Request, _ *httpx.Response) {
			log = append(log, "after")
		},
	})
	require.NoError(t, r.Get("/secure", httpx.HandlerOf(func(_ *httpx.Request, _ *httpx.Response) {
		log = append(log, "handler")
	})))

	_, resp, _ := dispatch(r, httpx.MethodGet, "/secure")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Equal(t, []string{"after"}, log, "handler skipped, after still runs")
}

func TestDispatch404RunsThroughAfterChain(t *testing.T) {
	var statuses []int
	r := New()
	r.Use(httpx.MiddlewareFuncs{
		AfterFunc: func(_ *httpx.Request, resp *httpx.Response) {
			statuses = append(statuses, resp.StatusCode())
		},
	})

	_, _, found := dispatch(r, httpx.MethodGet, "/missing")
	assert.False(t, found)
	assert.Equal(t, []int{http.StatusNotFound}, statuses)
}

func TestDispatchPathScopedMiddlewareOnUnroutedPath(t *testing.T) {
	var log []string
	r := New()
	r.UseAt("/watched", newTrace("W", &log))

	_, _, found := dispatch(r, httpx.MethodGet, "/watched")
	assert.False(t, found)
	assert.Equal(t, []string{"W.before", "W.after"}, log)

	log = nil
	dispatch(r, httpx.MethodGet, "/other")
	assert.Empty(t, log)
}

func TestDispatchRouteScopedMiddlewareOnDynamicRoute(t *testing.T) {
	var log []string
	r := New()
	require.NoError(t, r.Get("/u/:id", httpx.HandlerOf(func(_ *httpx.Request, _ *httpx.Response) {
		log = append(log, "handler")
	})))
	r.UseAt("/u/:id", newTrace("R", &log))

	_, _, found := dispatch(r, httpx.MethodGet, "/u/9")
	assert.True(t, found)
	assert.Equal(t, []string{"R.before", "handler", "R.after"}, log)
}

func TestDispatchHandlerPanicBecomes500(t *testing.T) {
	var log []string
	r := New()
	r.Use(newTrace("A", &log))
	require.NoError(t, r.Get("/boom", httpx.HandlerOf(func(_ *httpx.Request, _ *httpx.Response) {
		panic("kaboom")
	})))

	_, resp, found := dispatch(r, httpx.MethodGet, "/boom")
	assert.True(t, found)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	assert.Contains(t, string(resp.BodyBytes()), "500 Internal Server Error")
	assert.Equal(t, []string{"A.before", "A.after"}, log, "after hooks still run on the 500")
}

func TestDispatchBeforePanicBecomes500(t *testing.T) {
	var log []string
	r := New()
	r.Use(newTrace("A", &log))
	r.Use(httpx.MiddlewareFuncs{
		BeforeFunc: func(_ *httpx.Request, _ *httpx.Response) bool { panic("bad hook") },
	})
	require.NoError(t, r.Get("/boom", httpx.HandlerOf(func(_ *httpx.Request, _ *httpx.Response) {
		log = append(log, "handler")
	})))

	_, resp, _ := dispatch(r, httpx.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	assert.NotContains(t, log, "handler")
	assert.Contains(t, log, "A.after")
}

func TestAmbiguousRouteRejected(t *testing.T) {
	t.Run("regex after dynamic", func(t *testing.T) {
		r := New()
		require.NoError(t, r.Get("/dup/:id", httpx.HandlerOf(noop)))
		err := r.HandleRegex(httpx.MethodGet, "/dup/:id", []string{"id"}, httpx.HandlerOf(noop))
		assert.ErrorIs(t, err, ErrAmbiguousRoute)
	})

	t.Run("dynamic after regex", func(t *testing.T) {
		r := New()
		require.NoError(t, r.HandleRegex(httpx.MethodGet, "/dup/:id", []string{"id"}, httpx.HandlerOf(noop)))
		err := r.Get("/dup/:id", httpx.HandlerOf(noop))
		assert.ErrorIs(t, err, ErrAmbiguousRoute)
	})
}

func TestDispatchParamsInjectedIntoRequest(t *testing.T) {
	r := New()
	require.NoError(t, r.Get("/users/:id/posts/:pid", httpx.HandlerOf(noop)))

	req, _, found := dispatch(r, httpx.MethodGet, "/users/42/posts/7")
	assert.True(t, found)
	assert.Equal(t, map[string]string{"id": "42", "pid": "7"}, req.PathParams())
}

func TestDispatchStaticBeatsParamAcrossTiers(t *testing.T) {
	var hits []string
	r := New()
	require.NoError(t, r.Get("/a/b", namedHandler("static", &hits)))
	require.NoError(t, r.Get("/a/:x", namedHandler("param", &hits)))

	_, _, _ = dispatch(r, httpx.MethodGet, "/a/b")
	require.Equal(t, []string{"static"}, hits)

	hits = nil
	req, _, _ := dispatch(r, httpx.MethodGet, "/a/c")
	assert.Equal(t, []string{"param"}, hits)
	assert.Equal(t, "c", req.PathParam("x"))
}
