// Copyright 2025 The Rivaas Authors
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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/common-nighthawk/go-figure"
	"golang.org/x/term"
)

var gradient = []string{"12", "14", "10", "11"}

// shouldPrintBanner reports whether w is an interactive terminal.
func shouldPrintBanner(cfg *Config, w io.Writer) bool {
	if cfg.NoBanner {
		return false
	}
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// printBanner writes the startup banner. Colors are downsampled to what the
// environment supports.
func printBanner(w io.Writer, environ []string, cfg *Config) {
	cpw := colorprofile.NewWriter(w, environ)

	var art strings.Builder
	for _, line := range figure.NewFigure(cfg.ServiceName, "", false).Slicify() {
		if strings.TrimSpace(line) == "" {
			art.WriteString("\n")
			continue
		}
		for i, char := range line {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(gradient[i%len(gradient)])).
				Bold(true)
			art.WriteString(style.Render(string(char)))
		}
		art.WriteString("\n")
	}

	category := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	label := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Width(14).
		PaddingLeft(2)
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	disabled := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	row := func(b *strings.Builder, name, v string) {
		rendered := value.Render(v)
		if v == "" || v == "none" {
			rendered = disabled.Render("Disabled")
		}
		fmt.Fprintf(b, "%s  %s\n", label.Render(name+":"), rendered)
	}

	addr := cfg.Addr
	if strings.HasPrefix(addr, ":") {
		addr = "0.0.0.0" + addr
	}

	var out strings.Builder
	out.WriteString(category.Render("Service") + "\n")
	row(&out, "Version", cfg.ServiceVersion)
	row(&out, "Address", "http://"+addr)

	out.WriteString("\n" + category.Render("Versioning") + "\n")
	row(&out, "Sources", strings.Join(sourceNames(cfg.Versioning), ", "))
	row(&out, "Default", cfg.Versioning.Default)
	row(&out, "Supported", cfg.Versioning.Supported)

	out.WriteString("\n" + category.Render("Observability") + "\n")
	row(&out, "Metrics", cfg.Metrics.Exporter)
	row(&out, "Tracing", cfg.Tracing.Exporter)

	_, _ = fmt.Fprintln(cpw)             //nolint:errcheck // Display output
	_, _ = fmt.Fprint(cpw, art.String()) //nolint:errcheck // Display output
	_, _ = fmt.Fprintln(cpw)             //nolint:errcheck // Display output
	_, _ = fmt.Fprint(cpw, out.String()) //nolint:errcheck // Display output

	if len(cfg.Routes) > 0 || len(cfg.Deprecations) > 0 {
		_, _ = fmt.Fprintln(cpw)                      //nolint:errcheck // Display output
		_, _ = fmt.Fprintln(cpw, lifecycleTable(cfg)) //nolint:errcheck // Display output
	}
	_, _ = fmt.Fprintln(cpw) //nolint:errcheck // Display output
}

func lifecycleTable(cfg *Config) string {
	header := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ROUTE / VERSION", "SUPPORTED", "SUNSET").
		StyleFunc(func(r, _ int) lipgloss.Style {
			if r == table.HeaderRow {
				return header
			}

			return cell
		})

	for _, rt := range cfg.Routes {
		t.Row(rt.Path, rt.Supported, "")
	}
	for _, dep := range cfg.Deprecations {
		t.Row(dep.Version, "deprecated", dep.Sunset)
	}

	return t.Render()
}

func sourceNames(v VersioningConfig) []string {
	var names []string
	if v.Header != "" {
		names = append(names, "header "+v.Header)
	}
	if v.Query != "" {
		names = append(names, "query "+v.Query)
	}
	if v.PathSegment != nil {
		names = append(names, fmt.Sprintf("path[%d]", *v.PathSegment))
	}
	if v.AcceptPattern != "" {
		names = append(names, "accept "+v.AcceptPattern)
	}
	if v.MediaTypeParam != "" {
		names = append(names, "media-type "+v.MediaTypeParam)
	}

	return names
}
