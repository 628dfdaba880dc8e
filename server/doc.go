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

// Package server binds the routing engine to a socket.
//
// A fluent Builder accumulates configuration, routes, and middlewares,
// then Build wires a Router into a Server and starts the task scheduler.
// Each accepted connection runs as one scheduler task: read, parse,
// dispatch, write, repeat while keep-alive holds. Run adds the startup
// banner, signal handling, and graceful drain on SIGINT/SIGTERM.
package server
