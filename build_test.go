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
	"testing"

	"github.com/cybrota/hbtree/hbt"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func littleConfig(t *testing.T) *Config {
	t.Helper()
	config := defaults()
	config.Codec.ByteOrder = "little"
	config.Evaluate.CacheFile = filepath.Join(t.TempDir(), "reports.yaml")
	return config
}

func writeOps(t *testing.T, dir string, ops ...hbt.Op) string {
	t.Helper()
	path := filepath.Join(dir, "ops.bin")
	require.NoError(t, WriteOpsFile(path, ops, binary.LittleEndian))
	return path
}

func ins(k int32) hbt.Op { return hbt.Op{Key: k, Code: hbt.OpInsert} }
func del(k int32) hbt.Op { return hbt.Op{Key: k, Code: hbt.OpDelete} }

func TestBuildFromFile(t *testing.T) {
	dir := t.TempDir()
	opsPath := writeOps(t, dir, ins(5), ins(3), ins(8), ins(3), del(42))
	outPath := filepath.Join(dir, "tree.bin")

	status, stats, err := BuildFromFile(opsPath, outPath, BuildOptions{
		Order: binary.LittleEndian,
		Log:   zerolog.Nop(),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, BuildStats{Inserts: 4, Deletes: 1, MissedDeletes: 1, Nodes: 4, Height: 3}, stats)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		5, 0, 0, 0, 3,
		3, 0, 0, 0, 2,
		3, 0, 0, 0, 0,
		8, 0, 0, 0, 0,
	}, data)
}

func TestBuildWithProgress(t *testing.T) {
	dir := t.TempDir()
	opsPath := writeOps(t, dir, ins(1), ins(2), ins(3))
	outPath := filepath.Join(dir, "tree.bin")

	var progress bytes.Buffer
	status, _, err := BuildFromFile(opsPath, outPath, BuildOptions{
		Order:       binary.LittleEndian,
		Progress:    true,
		ProgressOut: &progress,
		Log:         zerolog.Nop(),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, status)
}

func TestBuildEmptyLogWritesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	opsPath := writeOps(t, dir)
	outPath := filepath.Join(dir, "tree.bin")

	var out bytes.Buffer
	code := runBuild(&out, zerolog.Nop(), littleConfig(t), opsPath, outPath)
	assert.Equal(t, 0, code)
	assert.Equal(t, "1\n", out.String())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestBuildFailures(t *testing.T) {
	dir := t.TempDir()
	goodOps := writeOps(t, dir, ins(1))
	badOps := filepath.Join(dir, "bad.bin")
	require.NoError(t, WriteOpsFile(badOps, []hbt.Op{ins(1), {Key: 2, Code: 'x'}}, binary.LittleEndian))

	testCases := []struct {
		Name     string
		Ops      string
		Out      string
		Expected string
	}{
		{"Missing operation log", filepath.Join(dir, "missing.bin"), filepath.Join(dir, "a.bin"), "0\n"},
		{"Output directory missing", goodOps, filepath.Join(dir, "no", "such", "dir.bin"), "0\n"},
		{"Malformed opcode", badOps, filepath.Join(dir, "b.bin"), "-1\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var out bytes.Buffer
			code := runBuild(&out, zerolog.Nop(), littleConfig(t), tc.Ops, tc.Out)
			assert.Equal(t, 1, code)
			assert.Equal(t, tc.Expected, out.String())
		})
	}
}

func TestBuildMalformedLeavesOutputUntouched(t *testing.T) {
	dir := t.TempDir()
	opsPath := writeOps(t, dir, ins(1), hbt.Op{Key: 2, Code: 'x'})
	outPath := filepath.Join(dir, "tree.bin")
	require.NoError(t, os.WriteFile(outPath, []byte("previous"), 0644))

	status, _, err := BuildFromFile(opsPath, outPath, BuildOptions{Order: binary.LittleEndian, Log: zerolog.Nop()})
	assert.Error(t, err)
	assert.Equal(t, StatusMalformed, status)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}
