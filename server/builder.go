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

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	daemon "github.com/sevlyar/go-daemon"

	"zhttp.dev/zhttp/config"
	"zhttp.dev/zhttp/httpx"
	"zhttp.dev/zhttp/middleware"
	"zhttp.dev/zhttp/router"
	"zhttp.dev/zhttp/scheduler"
)

// shutdownTimeout bounds the graceful drain started by Run.
const shutdownTimeout = 10 * time.Second

type routeRegistration struct {
	method  httpx.Method
	path    string
	handler httpx.Handler
}

type regexRegistration struct {
	method     httpx.Method
	pattern    string
	paramNames []string
	handler    httpx.Handler
}

type pathMiddleware struct {
	path string
	mw   httpx.Middleware
}

// Builder accumulates server configuration through chainable calls and
// assembles the Router, the scheduler, and the Server. The configuration
// and registration methods mutate the builder in place and return it.
type Builder struct {
	cfg         *config.Config
	middlewares []httpx.Middleware
	routes      []routeRegistration
	regexRoutes []regexRegistration
	pathMWs     []pathMiddleware
	notFound    httpx.Handler
	maxConns    int
	metricsPath string
	logWriter   *os.File

	errs []error
}

// NewBuilder returns a builder loaded with the default configuration.
func NewBuilder() *Builder {
	return &Builder{
		cfg:       config.Default(),
		logWriter: os.Stderr,
	}
}

// Listen sets the host and port to bind.
func (b *Builder) Listen(host string, port int) *Builder {
	b.cfg.Server.Host = host
	b.cfg.Server.Port = port
	return b
}

// Threads sets the scheduler worker count.
func (b *Builder) Threads(count int) *Builder {
	b.cfg.Threads.Count = count
	return b
}

// UseSharedStack puts the scheduler in shared stack mode.
func (b *Builder) UseSharedStack() *Builder {
	b.cfg.Threads.StackMode = config.StackShared
	return b
}

// UseIndependentStack puts the scheduler in independent stack mode.
func (b *Builder) UseIndependentStack() *Builder {
	b.cfg.Threads.StackMode = config.StackIndependent
	return b
}

// LogLevel sets the logging level: trace, debug, info, warn, or error.
func (b *Builder) LogLevel(level string) *Builder {
	b.cfg.Logging.Level = level
	return b
}

// ServerName sets the Server banner name.
func (b *Builder) ServerName(name string) *Builder {
	b.cfg.Server.Name = name
	return b
}

// EnableTLS turns on HTTPS with the given certificate and key files.
func (b *Builder) EnableTLS(certFile, keyFile string) *Builder {
	b.cfg.TLS.Enabled = true
	b.cfg.TLS.Cert = certFile
	b.cfg.TLS.Key = keyFile
	return b
}

// Daemon toggles daemon mode for Run.
func (b *Builder) Daemon(enable bool) *Builder {
	b.cfg.Daemon.Enabled = enable
	return b
}

// MaxConnections caps concurrently accepted connections. Zero means
// unlimited.
func (b *Builder) MaxConnections(n int) *Builder {
	b.maxConns = n
	return b
}

// FromConfig replaces the builder's configuration with a snapshot of cfg.
func (b *Builder) FromConfig(cfg *config.Config) *Builder {
	if cfg == nil {
		b.errs = append(b.errs, errors.New("server: nil config"))
		return b
	}
	snapshot := *cfg
	b.cfg = &snapshot
	return b
}

// FromConfigFile loads a TOML config file, applying ZHTTP_ environment
// overrides. A load failure surfaces at Build.
func (b *Builder) FromConfigFile(path string) *Builder {
	cfg, err := config.LoadFile(path)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.cfg = cfg
	return b
}

// Config returns the builder's current configuration.
func (b *Builder) Config() *config.Config { return b.cfg }

// Use appends a global middleware.
func (b *Builder) Use(mw httpx.Middleware) *Builder {
	if mw != nil {
		b.middlewares = append(b.middlewares, mw)
	}
	return b
}

// UseAt scopes a middleware to a route pattern or exact request path.
func (b *Builder) UseAt(path string, mw httpx.Middleware) *Builder {
	if mw != nil {
		b.pathMWs = append(b.pathMWs, pathMiddleware{path: path, mw: mw})
	}
	return b
}

// Route registers a handler for an arbitrary method.
func (b *Builder) Route(method httpx.Method, path string, handler httpx.Handler) *Builder {
	b.routes = append(b.routes, routeRegistration{method: method, path: path, handler: handler})
	return b
}

// Get registers a GET route.
func (b *Builder) Get(path string, handler httpx.Handler) *Builder {
	return b.Route(httpx.MethodGet, path, handler)
}

// Post registers a POST route.
func (b *Builder) Post(path string, handler httpx.Handler) *Builder {
	return b.Route(httpx.MethodPost, path, handler)
}

// Put registers a PUT route.
func (b *Builder) Put(path string, handler httpx.Handler) *Builder {
	return b.Route(httpx.MethodPut, path, handler)
}

// Del registers a DELETE route.
func (b *Builder) Del(path string, handler httpx.Handler) *Builder {
	return b.Route(httpx.MethodDelete, path, handler)
}

// RouteRegex registers a regex route; paramNames name the capture groups
// in order.
func (b *Builder) RouteRegex(method httpx.Method, pattern string, paramNames []string, handler httpx.Handler) *Builder {
	b.regexRoutes = append(b.regexRoutes, regexRegistration{
		method: method, pattern: pattern, paramNames: paramNames, handler: handler,
	})
	return b
}

// NotFound overrides the 404 handler.
func (b *Builder) NotFound(handler httpx.Handler) *Builder {
	b.notFound = handler
	return b
}

// EnableMetrics mounts a Prometheus middleware plus a text exposition
// endpoint at the given path ("/metrics" when empty).
func (b *Builder) EnableMetrics(path string) *Builder {
	if path == "" {
		path = "/metrics"
	}
	b.metricsPath = path
	return b
}

// Build validates the configuration, assembles the router, binds the
// listener, and starts the scheduler. The returned server is ready for
// Start.
func (b *Builder) Build() (*Server, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := config.ParseLogLevel(b.cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(b.logWriter, &slog.HandlerOptions{Level: level}))

	opts := []router.Option{router.WithLogger(logger)}
	if b.notFound.IsValid() {
		opts = append(opts, router.WithNotFoundHandler(b.notFound))
	}
	r := router.New(opts...)

	for _, mw := range b.middlewares {
		r.Use(mw)
	}

	if b.metricsPath != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		r.Use(middleware.Metrics(reg))
		if err := r.Get(b.metricsPath, middleware.MetricsHandler(reg)); err != nil {
			return nil, err
		}
	}

	var routeErrs []error
	for _, reg := range b.routes {
		if err := r.Handle(reg.method, reg.path, reg.handler); err != nil {
			routeErrs = append(routeErrs, err)
		}
	}
	for _, reg := range b.regexRoutes {
		if err := r.HandleRegex(reg.method, reg.pattern, reg.paramNames, reg.handler); err != nil {
			routeErrs = append(routeErrs, err)
		}
	}
	if len(routeErrs) > 0 {
		return nil, errors.Join(routeErrs...)
	}

	for _, pm := range b.pathMWs {
		r.UseAt(pm.path, pm.mw)
	}

	mode := scheduler.ModeIndependent
	if b.cfg.Threads.StackMode == config.StackShared {
		mode = scheduler.ModeShared
	}
	sched := scheduler.New(b.cfg.Threads.Count, mode)

	srv := newServer(b.cfg, r, sched, logger, b.maxConns)
	if err := srv.Bind(); err != nil {
		logger.Error("bind failed", "addr", b.cfg.Addr(), "error", err)
		return nil, err
	}

	sched.Start()
	return srv, nil
}

// Run builds the server, starts accepting, and blocks until SIGINT or
// SIGTERM triggers a graceful drain. Daemon mode re-execs the process into
// the background first. Signal handlers are installed here, never in
// Build, so Build stays reusable in tests.
func (b *Builder) Run() error {
	if b.cfg.Daemon.Enabled {
		dctx := &daemon.Context{}
		child, err := dctx.Reborn()
		if err != nil {
			return fmt.Errorf("server: daemonize: %w", err)
		}
		if child != nil {
			// Parent: the daemon child carries on.
			return nil
		}
		defer dctx.Release()
	}

	srv, err := b.Build()
	if err != nil {
		return err
	}

	printBanner(os.Stdout, b.cfg, srv.Addr().String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(); err != nil {
		return err
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
