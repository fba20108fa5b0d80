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
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cybrota/hbtree/hbt"
	"github.com/mattn/go-shellwords"
)

// parseOpcode accepts the long names, the one letter opcodes, and any
// other single character verbatim so malformed logs can be written on
// purpose.
func parseOpcode(word string) (byte, error) {
	switch strings.ToLower(word) {
	case "insert", "ins", "i":
		return hbt.OpInsert, nil
	case "delete", "del", "d":
		return hbt.OpDelete, nil
	}
	if len(word) == 1 {
		return word[0], nil
	}
	return 0, fmt.Errorf("unknown opcode %q", word)
}

// ParseScriptLine splits a line such as `i 5 i 3 "d" -2` into ops. Words
// come in opcode/key pairs; a line starting with # is a comment.
func ParseScriptLine(line string) ([]hbt.Op, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}

	words, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", line, err)
	}
	if len(words)%2 != 0 {
		return nil, fmt.Errorf("odd number of words in %q", line)
	}

	ops := make([]hbt.Op, 0, len(words)/2)
	for i := 0; i < len(words); i += 2 {
		code, err := parseOpcode(words[i])
		if err != nil {
			return nil, err
		}
		key, err := strconv.ParseInt(words[i+1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad key %q: %w", words[i+1], err)
		}
		ops = append(ops, hbt.Op{Key: int32(key), Code: code})
	}
	return ops, nil
}

// ParseScript reads a whole script, one or more ops per line
func ParseScript(r io.Reader) ([]hbt.Op, error) {
	var ops []hbt.Op
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo += 1
		lineOps, err := ParseScriptLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		ops = append(ops, lineOps...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

// WriteOpsFile writes ops as a binary operation log
func WriteOpsFile(path string, ops []hbt.Op, order binary.ByteOrder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create operation log: %w", err)
	}

	w := hbt.NewOpWriter(f, order)
	for _, op := range ops {
		if err := w.Write(op); err != nil {
			f.Close()
			return fmt.Errorf("write operation %s: %w", op, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write operation log: %w", err)
	}
	return f.Close()
}

// collectOps gathers ops from a script file (if any) followed by the
// command line arguments
func collectOps(scriptPath string, args []string) ([]hbt.Op, error) {
	var ops []hbt.Op
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		ops, err = ParseScript(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", scriptPath, err)
		}
	}
	for _, arg := range args {
		argOps, err := ParseScriptLine(arg)
		if err != nil {
			return nil, err
		}
		ops = append(ops, argOps...)
	}
	return ops, nil
}
