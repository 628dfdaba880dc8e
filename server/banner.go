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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"

	"zhttp.dev/zhttp/config"
)

// printBanner renders the startup banner: ASCII art of the server name and
// a short settings summary. Colors downsample to the terminal's profile
// and strip entirely when stdout is not a TTY.
func printBanner(out io.Writer, cfg *config.Config, addr string) {
	w := colorprofile.NewWriter(out, os.Environ())

	// "zhttp/1.0" renders as "zhttp"; the version joins the summary line.
	name, version, _ := strings.Cut(cfg.Server.Name, "/")
	art := figure.NewFigure(name, "", false)

	gradient := []string{"12", "14", "10", "11"}
	var styled strings.Builder
	for _, line := range art.Slicify() {
		if strings.TrimSpace(line) == "" {
			styled.WriteString("\n")
			continue
		}
		for i, ch := range line {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(gradient[i%len(gradient)])).
				Bold(true)
			styled.WriteString(style.Render(string(ch)))
		}
		styled.WriteString("\n")
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(12).PaddingLeft(2)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)

	fmt.Fprintln(w, styled.String())
	if version != "" {
		fmt.Fprintln(w, labelStyle.Render("version")+valueStyle.Render(version))
	}
	fmt.Fprintln(w, labelStyle.Render("listen")+valueStyle.Render(addr))
	fmt.Fprintln(w, labelStyle.Render("workers")+valueStyle.Render(fmt.Sprintf("%d (%s stacks)", cfg.Threads.Count, cfg.Threads.StackMode)))
	fmt.Fprintln(w, labelStyle.Render("log level")+valueStyle.Render(cfg.Logging.Level))
	if cfg.TLS.Enabled {
		fmt.Fprintln(w, labelStyle.Render("tls")+valueStyle.Render("enabled"))
	}
	fmt.Fprintln(w)
}
