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
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"
	"time"

	"github.com/cybrota/hbtree/hbt"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTreeFile(t *testing.T, dir string, ops ...hbt.Op) string {
	t.Helper()
	opsPath := writeOps(t, dir, ops...)
	outPath := filepath.Join(dir, "tree.bin")
	var out bytes.Buffer
	require.Equal(t, 0, runBuild(&out, zerolog.Nop(), littleConfig(t), opsPath, outPath))
	return outPath
}

func TestReportString(t *testing.T) {
	assert.Equal(t, "1,1,1", Report{true, true, true}.String())
	assert.Equal(t, "0,1,0", Report{false, true, false}.String())
}

func TestEvaluate(t *testing.T) {
	dir := t.TempDir()

	rawFile := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0644))
		return path
	}

	testCases := []struct {
		Name     string
		Path     string
		Expected string
		Code     int
	}{
		{"Built with a duplicate", buildTreeFile(t, t.TempDir(), ins(5), ins(3), ins(8), ins(3)), "1,1,1\n", 0},
		// the duplicate lands in the right subtree of its equal key
		{"Duplicate on the right", buildTreeFile(t, t.TempDir(), ins(1), ins(2), ins(2)), "1,0,1\n", 0},
		{"Missing left child", rawFile("short.bin", []byte{1, 0, 0, 0, 0x02}), "0,1,1\n", 1},
		{"Empty file", rawFile("empty.bin", nil), "0,1,1\n", 1},
		{"Unbalanced chain", rawFile("chain.bin", []byte{3, 0, 0, 0, 0x02, 2, 0, 0, 0, 0x02, 1, 0, 0, 0, 0}), "1,1,0\n", 0},
		{"Partial tree still validated", rawFile("partial.bin", []byte{3, 0, 0, 0, 0x02, 2, 0, 0, 0, 0x02, 1, 0, 0, 0, 0x01}), "0,1,0\n", 1},
		{"Missing file", filepath.Join(dir, "missing.bin"), "0,1,1\n", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var out bytes.Buffer
			code := runEvaluate(&out, zerolog.Nop(), littleConfig(t), []string{tc.Path}, false)
			assert.Equal(t, tc.Expected, out.String())
			assert.Equal(t, tc.Code, code)
		})
	}
}

func TestEvaluateSeveralFiles(t *testing.T) {
	good := buildTreeFile(t, t.TempDir(), ins(2), ins(1), ins(3))
	bad := filepath.Join(t.TempDir(), "missing.bin")

	var out bytes.Buffer
	code := runEvaluate(&out, zerolog.Nop(), littleConfig(t), []string{good, bad}, false)
	assert.Equal(t, "1,1,1\n0,1,1\n", out.String())
	assert.Equal(t, 1, code)
}

func TestEvaluatorReusesReports(t *testing.T) {
	path := buildTreeFile(t, t.TempDir(), ins(2), ins(1), ins(3))
	evaluator := NewEvaluator(littleConfig(t), zerolog.Nop())

	first := evaluator.Evaluate(path)
	second := evaluator.Evaluate(path)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, evaluator.misses)
	assert.Equal(t, 1, evaluator.hits)

	// a changed file is evaluated again
	require.NoError(t, os.WriteFile(path, []byte{1, 0, 0, 0, 0x02, 0}, 0644))
	third := evaluator.Evaluate(path)
	assert.False(t, third.Valid)
	assert.Equal(t, 2, evaluator.misses)
}

func TestReportCache(t *testing.T) {
	c, err := LoadReportCache("", 0)
	require.NoError(t, err)
	_, ok := GetReport(c, "k")
	assert.False(t, ok)

	CacheReport(c, "k", Report{Valid: true})
	report, ok := GetReport(c, "k")
	assert.True(t, ok)
	assert.Equal(t, Report{Valid: true}, report)
}

func TestReportsKeptBetweenRuns(t *testing.T) {
	config := littleConfig(t)
	path := buildTreeFile(t, t.TempDir(), ins(1), ins(2), ins(2))

	var first bytes.Buffer
	assert.Equal(t, 0, runEvaluate(&first, zerolog.Nop(), config, []string{path}, false))
	assert.FileExists(t, config.Evaluate.CacheFile)

	// a later run answers from the saved report without decoding
	evaluator := NewEvaluator(config, zerolog.Nop())
	report := evaluator.Evaluate(path)
	assert.Equal(t, "1,0,1", report.String())
	assert.Equal(t, 1, evaluator.hits)
	assert.Equal(t, 0, evaluator.misses)

	var second bytes.Buffer
	assert.Equal(t, 0, runEvaluate(&second, zerolog.Nop(), config, []string{path}, false))
	assert.Equal(t, first.String(), second.String())

	// an edited file is decoded again
	require.NoError(t, os.WriteFile(path, []byte{1, 0, 0, 0, 0x02, 0}, 0644))
	evaluator = NewEvaluator(config, zerolog.Nop())
	assert.False(t, evaluator.Evaluate(path).Valid)
	assert.Equal(t, 0, evaluator.hits)
	assert.Equal(t, 1, evaluator.misses)
}

func TestLoadReportCache(t *testing.T) {
	dir := t.TempDir()

	t.Run("Expired entries are dropped", func(t *testing.T) {
		path := filepath.Join(dir, "saved.yaml")
		c, err := LoadReportCache(path, time.Hour)
		require.NoError(t, err)
		CacheReport(c, "fresh", Report{Valid: true, StrictBST: true, Balanced: true})
		c.Set("stale", Report{}, time.Nanosecond)
		time.Sleep(time.Millisecond)
		require.NoError(t, SaveReportCache(path, c))

		restored, err := LoadReportCache(path, time.Hour)
		require.NoError(t, err)
		report, ok := GetReport(restored, "fresh")
		assert.True(t, ok)
		assert.Equal(t, "1,1,1", report.String())
		_, ok = GetReport(restored, "stale")
		assert.False(t, ok)
	})

	t.Run("Missing file", func(t *testing.T) {
		c, err := LoadReportCache(filepath.Join(dir, "missing.yaml"), 0)
		require.NoError(t, err)
		assert.Equal(t, 0, c.ItemCount())
	})

	t.Run("Corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.yaml")
		require.NoError(t, os.WriteFile(path, []byte("key: [unterminated"), 0644))
		c, err := LoadReportCache(path, 0)
		assert.Error(t, err)
		require.NotNil(t, c)
		assert.Equal(t, 0, c.ItemCount())
	})
}

func TestEvaluateDeepChain(t *testing.T) {
	defer debug.SetMaxStack(debug.SetMaxStack(8 << 20))

	const n = 500000
	data := make([]byte, 0, n*hbt.RecordSize)
	for i := 0; i < n; i++ {
		mask := hbt.MaskLeft
		if i == n-1 {
			mask = 0
		}
		data = binary.LittleEndian.AppendUint32(data, uint32(n-i))
		data = append(data, mask)
	}
	path := filepath.Join(t.TempDir(), "chain.bin")
	require.NoError(t, os.WriteFile(path, data, 0644))

	var out bytes.Buffer
	assert.Equal(t, 0, runEvaluate(&out, zerolog.Nop(), littleConfig(t), []string{path}, false))
	assert.Equal(t, "1,1,0\n", out.String())
}

func TestShow(t *testing.T) {
	path := buildTreeFile(t, t.TempDir(), ins(2), ins(1), ins(3))

	report, drawing, nodes, err := renderTree(path, littleConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "1,1,1", report.String())
	assert.Equal(t, 3, nodes)
	assert.True(t, strings.HasPrefix(drawing, "2 +0\n"))

	var out bytes.Buffer
	assert.Equal(t, 0, runShow(&out, zerolog.Nop(), littleConfig(t), path, false))
	assert.Contains(t, out.String(), "3 nodes")
}
