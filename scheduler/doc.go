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

// Package scheduler runs the server's connection tasks on a bounded set of
// workers.
//
// Two stack modes are supported. Independent mode starts a fresh goroutine
// per task, each owning its stack, with a semaphore bounding concurrency at
// the worker count. Shared mode keeps a fixed pool of long-lived workers
// pulling from a task queue, so tasks reuse the pool's stacks. The mode is
// a deployment knob: observable semantics are identical.
package scheduler
