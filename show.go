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
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/cybrota/hbtree/hbt"
	"github.com/rs/zerolog"
)

// renderTree decodes the tree file at path and draws it. The drawing is
// returned without styling so it can be copied verbatim.
func renderTree(path string, config *Config) (Report, string, int, error) {
	fin, err := os.Open(path)
	if err != nil {
		return Report{StrictBST: true, Balanced: true}, "", 0, fmt.Errorf("open tree file: %w", err)
	}
	defer fin.Close()

	report, tree, decodeErr := EvaluateReader(fin, config.ByteOrder())
	defer tree.Release()

	var b strings.Builder
	hbt.Fprint(&b, tree.Root())
	return report, b.String(), tree.Count(), decodeErr
}

// runShow is the show command
func runShow(out io.Writer, log zerolog.Logger, config *Config, path string, copyOut bool) int {
	report, drawing, nodes, err := renderTree(path, config)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("tree file did not deserialize")
	}

	styles := newStyles()
	fmt.Fprintln(out, styles.renderReport(path, report))
	fmt.Fprintln(out, styles.Muted.Render(fmt.Sprintf("%d nodes", nodes)))
	if drawing != "" {
		fmt.Fprintln(out, styles.Box.Render(strings.TrimRight(drawing, "\n")))
	}

	if copyOut && drawing != "" {
		if err := clipboard.WriteAll(drawing); err != nil {
			log.Warn().Err(err).Msg("failed to copy to clipboard")
		} else {
			log.Info().Msg("tree copied to clipboard")
		}
	}

	if !report.Valid {
		return 1
	}
	return 0
}
