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
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
)

// StackMode selects the coroutine stack discipline of the scheduler.
// It is a deployment knob and does not affect request semantics.
type StackMode string

const (
	// StackIndependent gives every task its own stack.
	StackIndependent StackMode = "independent"
	// StackShared multiplexes tasks over a fixed pool of worker stacks.
	StackShared StackMode = "shared"
)

// LogLevelTrace maps below slog's debug level; the remaining names map to
// their slog equivalents.
const LogLevelTrace = slog.LevelDebug - 4

// logLevels are the accepted [logging] level values.
var logLevels = map[string]slog.Level{
	"trace": LogLevelTrace,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLogLevel converts a config level string into a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	level, ok := logLevels[s]
	if !ok {
		return 0, invalidf("logging", "unrecognized log level %q", s)
	}
	return level, nil
}

// ServerSection is the [server] table.
type ServerSection struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	Name string `toml:"name"`
}

// ThreadsSection is the [threads] table.
type ThreadsSection struct {
	Count     int       `toml:"count"`
	StackMode StackMode `toml:"stack_mode"`
}

// LoggingSection is the [logging] table.
type LoggingSection struct {
	Level string `toml:"level"`
}

// TLSSection is the [tls] table.
type TLSSection struct {
	Enabled bool   `toml:"enabled"`
	Cert    string `toml:"cert"`
	Key     string `toml:"key"`
}

// DaemonSection is the [daemon] table.
type DaemonSection struct {
	Enabled bool `toml:"enabled"`
}

// Config is the complete server configuration.
type Config struct {
	Server  ServerSection  `toml:"server"`
	Threads ThreadsSection `toml:"threads"`
	Logging LoggingSection `toml:"logging"`
	TLS     TLSSection     `toml:"tls"`
	Daemon  DaemonSection  `toml:"daemon"`
}

// Default returns the documented defaults: 0.0.0.0:8080, four workers with
// independent stacks, info logging, TLS and daemon mode off.
func Default() *Config {
	return &Config{
		Server: ServerSection{
			Host: "0.0.0.0",
			Port: 8080,
			Name: "zhttp/1.0",
		},
		Threads: ThreadsSection{
			Count:     4,
			StackMode: StackIndependent,
		},
		Logging: LoggingSection{
			Level: "info",
		},
	}
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == 0 {
		errs = append(errs, invalidf("server", "port must not be 0"))
	}
	if c.Threads.Count == 0 {
		errs = append(errs, invalidf("threads", "count must not be 0"))
	}
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Threads.StackMode != StackIndependent && c.Threads.StackMode != StackShared {
		errs = append(errs, invalidf("threads", "unrecognized stack mode %q", c.Threads.StackMode))
	}
	if c.TLS.Enabled && (c.TLS.Cert == "" || c.TLS.Key == "") {
		errs = append(errs, invalidf("tls", "enabled without cert/key paths"))
	}

	return errors.Join(errs...)
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Parse decodes TOML text into a config, starting from the defaults so
// missing keys keep their documented values. Unknown keys are ignored.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if _, err := toml.Decode(string(data), c); err != nil {
		return nil, wrapErr("parse toml", err)
	}
	return c, nil
}

// LoadFile reads and parses a TOML config file, then applies ZHTTP_
// environment overrides.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapErr("read "+path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv()
	return c, nil
}

// Dump serializes the config to TOML. Parse(Dump(c)) is identical to c for
// any valid config.
func (c *Config) Dump() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, wrapErr("dump toml", err)
	}
	return buf.Bytes(), nil
}
