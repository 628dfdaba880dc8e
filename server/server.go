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
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/net/netutil"

	"zhttp.dev/zhttp/config"
	"zhttp.dev/zhttp/router"
	"zhttp.dev/zhttp/scheduler"
)

// Server owns the listener and drives accepted connections through the
// scheduler. Build it with a Builder; direct construction is not supported.
type Server struct {
	cfg      *config.Config
	router   *router.Router
	sched    *scheduler.Scheduler
	logger   *slog.Logger
	maxConns int

	tlsConfig *tls.Config
	ln        net.Listener

	started    atomic.Bool
	inShutdown atomic.Bool
	loopDone   chan struct{}

	connsMu sync.Mutex
	conns   map[net.Conn]struct{}
}

func newServer(cfg *config.Config, r *router.Router, sched *scheduler.Scheduler, logger *slog.Logger, maxConns int) *Server {
	return &Server{
		cfg:      cfg,
		router:   r,
		sched:    sched,
		logger:   logger,
		maxConns: maxConns,
		loopDone: make(chan struct{}),
		conns:    make(map[net.Conn]struct{}),
	}
}

// trackConn registers a live connection so Stop can wake it out of an idle
// read.
func (s *Server) trackConn(conn net.Conn, add bool) {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	if add {
		s.conns[conn] = struct{}{}
	} else {
		delete(s.conns, conn)
	}
}

// Router returns the routing engine. Mutating it after Start violates the
// builder-first contract.
func (s *Server) Router() *router.Router { return s.router }

// Bind loads TLS material when enabled and opens the listener.
func (s *Server) Bind() error {
	if s.cfg.TLS.Enabled {
		cert, err := tls.LoadX509KeyPair(s.cfg.TLS.Cert, s.cfg.TLS.Key)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTLSMaterial, err)
		}
		s.tlsConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
	}

	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBindFailure, s.cfg.Addr(), err)
	}
	if s.maxConns > 0 {
		ln = netutil.LimitListener(ln, s.maxConns)
	}
	if s.tlsConfig != nil {
		ln = tls.NewListener(ln, s.tlsConfig)
	}
	s.ln = ln

	s.logger.Info("server bound", "addr", s.Addr().String(), "tls", s.cfg.TLS.Enabled)
	return nil
}

// Addr returns the bound listen address, or nil before Bind.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Start begins accepting connections. It returns immediately; the accept
// loop runs until Stop.
func (s *Server) Start() error {
	if s.ln == nil {
		return ErrNotBound
	}
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	go s.acceptLoop()
	s.logger.Info("server started",
		"addr", s.Addr().String(),
		"workers", s.sched.Workers(),
		"stack_mode", s.cfg.Threads.StackMode,
	)
	return nil
}

func (s *Server) acceptLoop() {
	defer close(s.loopDone)
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if s.inShutdown.Load() {
				return
			}
			s.logger.Warn("accept failed", "error", err)
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return
		}

		if err := s.sched.Submit(func() { s.serveConn(conn) }); err != nil {
			conn.Close()
			return
		}
	}
}

// Stop requests drain: the listener closes so no new connections are
// accepted, and in-flight connections run until they finish or the context
// expires.
func (s *Server) Stop(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		return nil
	}
	if s.ln != nil {
		s.ln.Close()
	}
	if s.started.Load() {
		<-s.loopDone
	}

	// Wake idle keep-alive connections out of their blocking read so the
	// drain does not wait on the idle timeout. Connections mid-request
	// finish serving first: serveConn checks inShutdown before the next
	// read.
	s.connsMu.Lock()
	for conn := range s.conns {
		conn.SetReadDeadline(time.Now())
	}
	s.connsMu.Unlock()
	err := s.sched.Stop(ctx)
	s.logger.Info("server stopped")
	return err
}
