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
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/cybrota/hbtree/hbt"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// Report is the three flag result of evaluating a tree file
type Report struct {
	Valid     bool `yaml:"valid"` // the file held a complete pre-order tree
	StrictBST bool `yaml:"strict_bst"`
	Balanced  bool `yaml:"balanced"`
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// String formats the report as "valid,strictBst,balanced"
func (r Report) String() string {
	return fmt.Sprintf("%d,%d,%d", bit(r.Valid), bit(r.StrictBST), bit(r.Balanced))
}

// EvaluateReader decodes a tree and runs both validators over whatever
// was decoded, complete or not.
func EvaluateReader(r io.Reader, order binary.ByteOrder) (Report, *hbt.Tree, error) {
	d := hbt.NewDecoder(r, order)
	root, valid := d.Decode()
	report := Report{
		Valid:     valid,
		StrictBST: hbt.StrictBST(root),
		Balanced:  hbt.Balanced(root),
	}
	return report, hbt.FromRoot(root), d.Err()
}

// EvaluateFile evaluates the tree file at path. A file that cannot be
// opened is reported as invalid, with the validators run over an empty
// tree.
func EvaluateFile(path string, order binary.ByteOrder) (Report, error) {
	fin, err := os.Open(path)
	if err != nil {
		return Report{Valid: false, StrictBST: true, Balanced: true}, fmt.Errorf("open tree file: %w", err)
	}
	defer fin.Close()

	report, tree, err := EvaluateReader(fin, order)
	tree.Release()
	return report, err
}

// Evaluator evaluates tree files, reusing reports of files that have not
// changed since they were last seen, in this run or a saved earlier one.
type Evaluator struct {
	order     binary.ByteOrder
	cache     *cache.Cache
	cachePath string
	log       zerolog.Logger
	hits      int
	misses    int
}

func NewEvaluator(config *Config, log zerolog.Logger) *Evaluator {
	path := config.ReportCachePath()
	reports, err := LoadReportCache(path, config.Evaluate.CacheTTL)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("starting with an empty report cache")
	}
	return &Evaluator{
		order:     config.ByteOrder(),
		cache:     reports,
		cachePath: path,
		log:       log,
	}
}

// Save keeps the cached reports for the next run
func (e *Evaluator) Save() error {
	if e.cachePath == "" {
		return nil
	}
	return SaveReportCache(e.cachePath, e.cache)
}

// Evaluate returns the report for path
func (e *Evaluator) Evaluate(path string) Report {
	info, err := os.Stat(path)
	if err != nil {
		e.log.Warn().Err(err).Str("file", path).Msg("cannot read tree file")
		return Report{Valid: false, StrictBST: true, Balanced: true}
	}

	key := reportKey(path, info)
	if report, ok := GetReport(e.cache, key); ok {
		e.hits += 1
		e.log.Debug().Str("file", path).Msg("report cache hit")
		return report
	}
	e.misses += 1

	report, err := EvaluateFile(path, e.order)
	if err != nil {
		e.log.Warn().Err(err).Str("file", path).Msg("tree file did not deserialize")
	}
	CacheReport(e.cache, key, report)
	return report
}

// runEvaluate is the evaluate command: prints one report line per file
// and returns the process exit code, which only reflects whether every
// file deserialized.
func runEvaluate(out io.Writer, log zerolog.Logger, config *Config, paths []string, pretty bool) int {
	evaluator := NewEvaluator(config, log)
	styles := newStyles()

	code := 0
	for _, path := range paths {
		report := evaluator.Evaluate(path)
		if pretty {
			fmt.Fprintln(out, styles.renderReport(path, report))
		} else {
			fmt.Fprintln(out, report.String())
		}
		if !report.Valid {
			code = 1
		}
	}

	log.Debug().Int("hits", evaluator.hits).Int("misses", evaluator.misses).Msg("report cache")
	if err := evaluator.Save(); err != nil {
		log.Warn().Err(err).Msg("could not save report cache")
	}
	return code
}
