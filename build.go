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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cybrota/hbtree/hbt"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/willf/bloom"
)

// Status is the single number printed by the build command
type Status int

const (
	StatusMalformed Status = -1 // unknown opcode in the operation log
	StatusIOError   Status = 0  // a file could not be opened or written
	StatusSuccess   Status = 1
)

const (
	// sizing of the filter that tracks inserted keys
	statsFilterEstimate = 1 << 16
	statsFilterFPRate   = 0.01
)

type BuildOptions struct {
	Order       binary.ByteOrder
	Progress    bool
	ProgressOut io.Writer
	Log         zerolog.Logger
}

// BuildStats summarises an applied operation log
type BuildStats struct {
	Inserts int
	Deletes int
	// deletes whose key was certainly never inserted earlier in the log
	MissedDeletes int
	Nodes         int
	Height        int
}

// BuildFromFile folds the operation log at opsPath into a tree and
// writes it to outPath. The output file is only created once the whole
// log has been applied, so a malformed log leaves it untouched.
func BuildFromFile(opsPath, outPath string, opts BuildOptions) (Status, BuildStats, error) {
	stats := BuildStats{}

	fin, err := os.Open(opsPath)
	if err != nil {
		return StatusIOError, stats, fmt.Errorf("open operation log: %w", err)
	}
	defer fin.Close()

	var bar *progressbar.ProgressBar
	if opts.Progress {
		size := int64(-1)
		if info, err := fin.Stat(); err == nil {
			size = info.Size()
		}
		bar = newBuildProgress(size, opts.ProgressOut)
	}

	inserted := bloom.NewWithEstimates(statsFilterEstimate, statsFilterFPRate)
	keyBuf := make([]byte, 4)

	observe := func(op hbt.Op) {
		binary.LittleEndian.PutUint32(keyBuf, uint32(op.Key))
		switch op.Code {
		case hbt.OpInsert:
			stats.Inserts += 1
			inserted.Add(keyBuf)
		case hbt.OpDelete:
			stats.Deletes += 1
			if !inserted.Test(keyBuf) {
				stats.MissedDeletes += 1
				opts.Log.Debug().Int32("key", op.Key).Msg("delete of a key never inserted")
			}
		}
		if bar != nil {
			_ = bar.Add(hbt.OpSize)
		}
	}

	tree, err := hbt.Build(fin, opts.Order, observe)
	if bar != nil {
		_ = bar.Finish()
	}
	if errors.Is(err, hbt.ErrMalformedOp) {
		return StatusMalformed, stats, err
	}
	if err != nil {
		return StatusIOError, stats, err
	}
	defer tree.Release()

	stats.Nodes = tree.Count()
	stats.Height = tree.Height()

	fout, err := os.Create(outPath)
	if err != nil {
		return StatusIOError, stats, fmt.Errorf("create tree file: %w", err)
	}

	if err := tree.Encode(fout, opts.Order); err != nil {
		fout.Close()
		return StatusIOError, stats, fmt.Errorf("write tree file: %w", err)
	}
	if err := fout.Close(); err != nil {
		return StatusIOError, stats, fmt.Errorf("close tree file: %w", err)
	}

	return StatusSuccess, stats, nil
}

func newBuildProgress(size int64, out io.Writer) *progressbar.ProgressBar {
	if out == nil {
		out = os.Stderr
	}
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Applying operations..."),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionClearOnFinish(),
	)
}

// runBuild is the build command: prints the status and returns the
// process exit code.
func runBuild(out io.Writer, log zerolog.Logger, config *Config, opsPath, outPath string) int {
	status, stats, err := BuildFromFile(opsPath, outPath, BuildOptions{
		Order:    config.ByteOrder(),
		Progress: config.Build.Progress,
		Log:      log,
	})

	switch status {
	case StatusSuccess:
		log.Debug().
			Int("inserts", stats.Inserts).
			Int("deletes", stats.Deletes).
			Int("missed_deletes", stats.MissedDeletes).
			Int("nodes", stats.Nodes).
			Int("height", stats.Height).
			Str("out", outPath).
			Msg("tree written")
	case StatusMalformed:
		log.Warn().Err(err).Str("ops", opsPath).Msg("malformed operation log")
	default:
		log.Warn().Err(err).Msg("build failed")
	}

	fmt.Fprintf(out, "%d\n", status)
	if status != StatusSuccess {
		return 1
	}
	return 0
}
