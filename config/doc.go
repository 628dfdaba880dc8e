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

// Package config holds the typed server settings: listen address, worker
// threads, coroutine stack mode, logging level, TLS materials, and the
// daemon flag.
//
// Settings round-trip through TOML, grouped under [server], [threads],
// [logging], [tls], and [daemon] tables. Unknown keys are ignored on
// parse; missing optional keys take their documented defaults. Environment
// variables with the ZHTTP_ prefix override file values.
package config
