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

// Package httpx defines the HTTP value objects shared by the router and the
// server: methods, requests, responses, handlers, and middlewares.
//
// A Request is produced by the wire parser and handed to the router, which
// injects path parameters before invoking middlewares and the handler. A
// Response is mutated throughout dispatch and handed to the serializer once
// the middleware chain has finished.
package httpx
