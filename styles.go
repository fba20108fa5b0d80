// Copyright 2025 Naren Yellavula
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
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TerminalMode int

const (
	TerminalModeUnknown TerminalMode = iota
	TerminalModeLight
	TerminalModeDark
)

// detectTerminalMode attempts to detect whether the terminal is in light or dark mode
func detectTerminalMode() TerminalMode {
	// COLORFGBG format is typically "foreground;background"
	if colorScheme := os.Getenv("COLORFGBG"); colorScheme != "" {
		parts := strings.Split(colorScheme, ";")
		if len(parts) >= 2 {
			bg := parts[len(parts)-1]
			if bg == "0" || bg == "8" || bg == "16" {
				return TerminalModeDark
			} else if bg == "15" || bg == "7" || bg == "255" {
				return TerminalModeLight
			}
		}
	}

	for _, env := range []string{"TERM_THEME", "THEME"} {
		if theme := strings.ToLower(os.Getenv(env)); theme != "" {
			if strings.Contains(theme, "dark") {
				return TerminalModeDark
			} else if strings.Contains(theme, "light") {
				return TerminalModeLight
			}
		}
	}

	return TerminalModeUnknown
}

type Styles struct {
	Title lipgloss.Style
	Key   lipgloss.Style
	Muted lipgloss.Style
	Pass  lipgloss.Style
	Fail  lipgloss.Style
	Box   lipgloss.Style
}

func newStyles() Styles {
	// darker colors for light terminals, brighter ones otherwise since
	// dark backgrounds are the more common default
	title, muted, pass, fail := "39", "243", "46", "196"
	if detectTerminalMode() == TerminalModeLight {
		title, muted, pass, fail = "4", "240", "2", "1"
	}

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(title)).
			Bold(true),
		Key: lipgloss.NewStyle().
			Foreground(lipgloss.Color(pass)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)),
		Pass: lipgloss.NewStyle().
			Foreground(lipgloss.Color(pass)).
			Bold(true),
		Fail: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fail)).
			Bold(true),
		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(muted)).
			Padding(0, 1),
	}
}

func (s Styles) check(name string, ok bool) string {
	if ok {
		return s.Pass.Render(name + " ok")
	}
	return s.Fail.Render(name + " FAIL")
}

// renderReport is the human readable form of a report
func (s Styles) renderReport(path string, r Report) string {
	return fmt.Sprintf("%s  %s  %s  %s  %s",
		s.Title.Render(path),
		s.Muted.Render(r.String()),
		s.check("deserialize", r.Valid),
		s.check("bst", r.StrictBST),
		s.check("balance", r.Balanced),
	)
}
