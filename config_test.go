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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		return path
	}

	t.Run("Missing file", func(t *testing.T) {
		config, err := loadConfigFrom(filepath.Join(dir, "none.yaml"))
		require.NoError(t, err)
		assert.Equal(t, defaultConfig, *config)
	})

	t.Run("Partial file keeps defaults", func(t *testing.T) {
		path := write("partial.yaml", "codec:\n  byte_order: big\nevaluate:\n  cache_ttl: 10m\n")
		config, err := loadConfigFrom(path)
		require.NoError(t, err)
		assert.Equal(t, binary.BigEndian, config.ByteOrder())
		assert.Equal(t, 10*time.Minute, config.Evaluate.CacheTTL)
		assert.Equal(t, "info", config.Log.Level)
		assert.False(t, config.Build.Progress)
	})

	t.Run("Invalid yaml", func(t *testing.T) {
		path := write("invalid.yaml", "codec: [\n")
		config, err := loadConfigFrom(path)
		require.NoError(t, err)
		assert.Equal(t, defaultConfig, *config)
	})

	t.Run("Unknown byte order", func(t *testing.T) {
		path := write("order.yaml", "codec:\n  byte_order: sideways\n")
		config, err := loadConfigFrom(path)
		assert.Error(t, err)
		assert.Equal(t, binary.NativeEndian, config.ByteOrder())
	})
}

func TestWriteConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, writeConfigFile(path, defaults()))

	config, err := loadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig, *config)
}
