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
	"bufio"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"zhttp.dev/zhttp/httpx"
)

const (
	// maxBodyBytes caps in-memory request bodies.
	maxBodyBytes = 8 << 20

	// idleTimeout bounds how long a keep-alive connection may sit between
	// requests.
	idleTimeout = 60 * time.Second
)

// serveConn is one connection's task: parse, dispatch, serialize, repeat
// while keep-alive holds. The wire parser is stdlib http.ReadRequest; the
// router only ever sees fully parsed requests.
func (s *Server) serveConn(conn net.Conn) {
	s.trackConn(conn, true)
	defer func() {
		s.trackConn(conn, false)
		conn.Close()
	}()

	br := bufio.NewReader(conn)
	bw := bufio.NewWriter(conn)

	for {
		conn.SetReadDeadline(time.Now().Add(idleTimeout))
		// Checked after arming the deadline: Stop stores the shutdown flag
		// before expiring deadlines, so either the check sees it or the
		// expiry lands after this arm and wakes the read.
		if s.inShutdown.Load() {
			return
		}

		httpReq, err := http.ReadRequest(br)
		if err != nil {
			// EOF, closed, and idle timeouts end the connection quietly;
			// anything else was a malformed request line or header block.
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
				return
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return
			}
			s.writeSimpleError(bw, http.StatusBadRequest)
			return
		}

		req, errStatus := s.toRequest(httpReq)
		if errStatus != 0 {
			s.writeSimpleError(bw, errStatus)
			return
		}

		resp := httpx.NewResponse()
		s.router.Dispatch(req, resp)

		keepAlive := shouldKeepAlive(httpReq) && !s.inShutdown.Load()
		isHead := req.Method() == httpx.MethodHead
		if err := s.writeResponse(bw, resp, keepAlive, isHead); err != nil {
			return
		}
		if !keepAlive {
			return
		}
	}
}

// toRequest converts a parsed stdlib request into the router's request
// object. A non-zero return status means the request was rejected before
// dispatch.
func (s *Server) toRequest(httpReq *http.Request) (*httpx.Request, int) {
	defer httpReq.Body.Close()

	method, ok := httpx.ParseMethod(httpReq.Method)
	if !ok {
		return nil, http.StatusNotImplemented
	}

	if httpReq.ContentLength > maxBodyBytes {
		return nil, http.StatusRequestEntityTooLarge
	}

	req := httpx.NewRequest(method, httpReq.URL.Path)
	if httpReq.Host != "" {
		req.SetHeader("Host", httpReq.Host)
	}
	for name, values := range httpReq.Header {
		req.SetHeader(name, strings.Join(values, ", "))
	}

	body, err := io.ReadAll(io.LimitReader(httpReq.Body, maxBodyBytes+1))
	if err != nil {
		return nil, http.StatusBadRequest
	}
	if len(body) > maxBodyBytes {
		return nil, http.StatusRequestEntityTooLarge
	}
	if len(body) > 0 {
		req.SetBody(body)
	}

	return req, 0
}

// shouldKeepAlive applies HTTP/1.x connection reuse rules.
func shouldKeepAlive(httpReq *http.Request) bool {
	if httpReq.Close {
		return false
	}
	if httpReq.ProtoMajor == 1 && httpReq.ProtoMinor == 0 {
		return strings.EqualFold(httpReq.Header.Get("Connection"), "keep-alive")
	}
	return true
}

// writeResponse serializes the response: status line, headers in their
// first-insertion order, framing headers, then the body. HEAD responses
// carry headers only.
func (s *Server) writeResponse(bw *bufio.Writer, resp *httpx.Response, keepAlive, isHead bool) error {
	body := resp.BodyBytes()

	bw.WriteString("HTTP/1.1 ")
	bw.WriteString(strconv.Itoa(resp.StatusCode()))
	bw.WriteByte(' ')
	bw.WriteString(statusText(resp.StatusCode()))
	bw.WriteString("\r\n")

	for _, key := range resp.HeaderKeys() {
		bw.WriteString(key)
		bw.WriteString(": ")
		bw.WriteString(resp.HeaderValue(key))
		bw.WriteString("\r\n")
	}

	if resp.HeaderValue("Server") == "" && s.cfg.Server.Name != "" {
		bw.WriteString("Server: ")
		bw.WriteString(s.cfg.Server.Name)
		bw.WriteString("\r\n")
	}
	if resp.HeaderValue("Date") == "" {
		bw.WriteString("Date: ")
		bw.WriteString(time.Now().UTC().Format(http.TimeFormat))
		bw.WriteString("\r\n")
	}

	bw.WriteString("Content-Length: ")
	bw.WriteString(strconv.Itoa(len(body)))
	bw.WriteString("\r\n")

	if keepAlive {
		bw.WriteString("Connection: keep-alive\r\n")
	} else {
		bw.WriteString("Connection: close\r\n")
	}
	bw.WriteString("\r\n")

	if !isHead && len(body) > 0 {
		bw.Write(body)
	}
	return bw.Flush()
}

// writeSimpleError emits a minimal closing response for requests rejected
// before dispatch.
func (s *Server) writeSimpleError(bw *bufio.Writer, status int) {
	resp := httpx.NewResponse()
	resp.Status(status).Text(statusText(status))
	s.writeResponse(bw, resp, false, false)
}

func statusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Status " + strconv.Itoa(code)
}
