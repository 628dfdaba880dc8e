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

// Package router resolves parsed HTTP requests to handlers and runs the
// middleware chain around them.
//
// Matching is layered, in strict priority order:
//
//  1. static table: hash lookup of the exact path
//  2. radix tree: segment trie with :name parameters and * catch-alls
//  3. regex table: compiled patterns checked in registration order
//
// Within the radix tree, children match in a fixed priority: static
// segments beat parameters, parameters beat catch-alls, with backtracking
// so a more specific prefix never shadows a sibling pattern deeper in the
// tree.
//
// Thread safety follows a builder-first contract: all route and middleware
// registration completes before the server starts; afterwards the tables
// are read-only and safe for concurrent lookups without locking.
package router
