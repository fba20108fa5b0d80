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
	"os"
	"path/filepath"
	"time"

	"github.com/cybrota/hbtree/hbt"
	"gopkg.in/yaml.v3"
)

const configFileName = ".hbtree.yaml"

type CodecConfig struct {
	ByteOrder string `yaml:"byte_order"`
}

type BuildConfig struct {
	Progress bool `yaml:"progress"`
}

type EvaluateConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
	// CacheFile keeps reports between runs, ~/.hbtree.cache.yaml if empty
	CacheFile string `yaml:"cache_file"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Codec    CodecConfig    `yaml:"codec"`
	Build    BuildConfig    `yaml:"build"`
	Evaluate EvaluateConfig `yaml:"evaluate"`
	Log      LogConfig      `yaml:"log"`
}

var defaultConfig = Config{
	Codec: CodecConfig{
		ByteOrder: "native",
	},
	Build: BuildConfig{
		Progress: false,
	},
	Evaluate: EvaluateConfig{
		CacheTTL: reportCacheExpiration,
	},
	Log: LogConfig{
		Level: "info",
	},
}

// ByteOrder resolves the configured byte order, falling back to native
// on an unknown name.
func (c *Config) ByteOrder() binary.ByteOrder {
	order, err := hbt.ParseByteOrder(c.Codec.ByteOrder)
	if err != nil {
		return binary.NativeEndian
	}
	return order
}

// ReportCachePath is where evaluated reports are kept between runs. An
// empty result means reports are not kept.
func (c *Config) ReportCachePath() string {
	if c.Evaluate.CacheFile != "" {
		return c.Evaluate.CacheFile
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, reportCacheFileName)
}

// LoadConfig reads ~/.hbtree.yaml. Any problem with the file yields the
// defaults; fields missing from the file keep their default values.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaults(), nil
	}
	return loadConfigFrom(configPath)
}

func loadConfigFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return defaults(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return defaults(), nil
	}

	config := defaults()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return defaults(), nil
	}

	if _, err := hbt.ParseByteOrder(config.Codec.ByteOrder); err != nil {
		return config, fmt.Errorf("codec.byte_order: %w", err)
	}
	return config, nil
}

func defaults() *Config {
	config := defaultConfig
	return &config
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

func writeConfigFile(configPath string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configPath, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displaySettings() {
	configPath, err := getConfigPath()
	if err != nil {
		fmt.Printf("Failed to get config path: %v\n", err)
		return
	}

	config, err := LoadConfig()
	if err != nil {
		fmt.Printf("Configuration problem: %v\n", err)
	}

	configExists := true
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configExists = false
		fmt.Printf("Configuration file not found. Creating default configuration...\n\n")

		if err := writeConfigFile(configPath, defaults()); err != nil {
			fmt.Printf("Failed to create default config file: %v\n", err)
			return
		}
		fmt.Printf("Created default configuration at: %s\n\n", configPath)
	}

	styles := newStyles()
	fmt.Println(styles.Title.Render("hbtree configuration"))
	if configExists {
		fmt.Printf("Config file: %s\n\n", configPath)
	} else {
		fmt.Printf("Config file: %s (newly created)\n\n", configPath)
	}

	setting := func(name string, value interface{}, desc string) {
		fmt.Printf("  %s: %v\n", styles.Key.Render(name), value)
		fmt.Printf("    %s\n", styles.Muted.Render(desc))
	}
	setting("codec.byte_order", config.Codec.ByteOrder, "Integer byte order of tree files and operation logs (native, little, big)")
	setting("build.progress", config.Build.Progress, "Show a progress bar while an operation log is applied")
	setting("evaluate.cache_ttl", config.Evaluate.CacheTTL, "How long an evaluated report is reused for an unchanged file")
	setting("evaluate.cache_file", config.ReportCachePath(), "Where evaluated reports are kept between runs")
	setting("log.level", config.Log.Level, "Diagnostics written to stderr (debug, info, warn, error)")
}
