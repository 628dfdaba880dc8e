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

import "errors"

var (
	// ErrBindFailure wraps a failed listen on the configured address.
	ErrBindFailure = errors.New("server: bind failed")

	// ErrTLSMaterial wraps unreadable or invalid certificate material.
	ErrTLSMaterial = errors.New("server: tls material invalid")

	// ErrNotBound is returned by Start before a successful Bind.
	ErrNotBound = errors.New("server: not bound")

	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("server: already started")
)
