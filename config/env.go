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

import (
	"os"

	"github.com/spf13/cast"
)

// envPrefix is the prefix shared by all override variables.
const envPrefix = "ZHTTP_"

// ApplyEnv overrides config fields from ZHTTP_ environment variables:
//
//	ZHTTP_HOST, ZHTTP_PORT, ZHTTP_NAME        → [server]
//	ZHTTP_THREADS, ZHTTP_STACK_MODE           → [threads]
//	ZHTTP_LOG_LEVEL                           → [logging]
//	ZHTTP_TLS_ENABLED, ZHTTP_TLS_CERT,
//	ZHTTP_TLS_KEY                             → [tls]
//	ZHTTP_DAEMON                              → [daemon]
//
// Unset variables leave the current values untouched. Values that fail to
// coerce (e.g. a non-numeric port) are ignored rather than clobbering a
// valid setting; Validate catches genuinely broken configurations.
func (c *Config) ApplyEnv() {
	if v, ok := lookup("HOST"); ok {
		c.Server.Host = v
	}
	if v, ok := lookup("PORT"); ok {
		if port, err := cast.ToIntE(v); err == nil {
			c.Server.Port = port
		}
	}
	if v, ok := lookup("NAME"); ok {
		c.Server.Name = v
	}
	if v, ok := lookup("THREADS"); ok {
		if count, err := cast.ToIntE(v); err == nil {
			c.Threads.Count = count
		}
	}
	if v, ok := lookup("STACK_MODE"); ok {
		c.Threads.StackMode = StackMode(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup("TLS_ENABLED"); ok {
		if enabled, err := cast.ToBoolE(v); err == nil {
			c.TLS.Enabled = enabled
		}
	}
	if v, ok := lookup("TLS_CERT"); ok {
		c.TLS.Cert = v
	}
	if v, ok := lookup("TLS_KEY"); ok {
		c.TLS.Key = v
	}
	if v, ok := lookup("DAEMON"); ok {
		if enabled, err := cast.ToBoolE(v); err == nil {
			c.Daemon.Enabled = enabled
		}
	}
}

func lookup(key string) (string, bool) {
	return os.LookupEnv(envPrefix + key)
}
