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

package config

import "fmt"

// Error is a configuration failure. Section names the TOML table the bad
// value lives in ("server", "threads", ...); it is empty for file and
// codec failures that are not tied to one table.
type Error struct {
	Section string
	Err     error
}

// Error renders as `config: [section] <cause>` so the offending TOML table
// is visible in logs without unwrapping.
func (e *Error) Error() string {
	if e.Section == "" {
		return "config: " + e.Err.Error()
	}
	return fmt.Sprintf("config: [%s] %v", e.Section, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// invalidf reports a rejected value in a TOML table.
func invalidf(section, format string, args ...any) *Error {
	return &Error{Section: section, Err: fmt.Errorf(format, args...)}
}

// wrapErr tags an underlying file or codec error with the failed operation.
func wrapErr(op string, err error) *Error {
	return &Error{Err: fmt.Errorf("%s: %w", op, err)}
}
