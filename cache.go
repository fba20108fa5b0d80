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
	"sort"
	"time"

	"github.com/patrickmn/go-cache"
	"gopkg.in/yaml.v3"
)

const (
	// Reports are reused for 30 minutes unless configured otherwise
	reportCacheExpiration = 30 * time.Minute
	// Clean up expired entries every 5 minutes
	reportCacheCleanup = 5 * time.Minute
	// Reports are kept between runs in this file under the home directory
	reportCacheFileName = ".hbtree.cache.yaml"
)

// savedReport is one cache entry as written to the report cache file
type savedReport struct {
	Key     string `yaml:"key"`
	Report  Report `yaml:"report"`
	Expires int64  `yaml:"expires"` // unix nanoseconds, 0 for never
}

// reportKey identifies a file by path, size and modification time so an
// edited file is evaluated again.
func reportKey(path string, info os.FileInfo) string {
	return fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
}

func CacheReport(c *cache.Cache, key string, report Report) {
	c.Set(key, report, cache.DefaultExpiration)
}

func GetReport(c *cache.Cache, key string) (Report, bool) {
	val, ok := c.Get(key)
	if !ok {
		return Report{}, false
	}
	return val.(Report), true
}

// LoadReportCache restores the reports saved at path by SaveReportCache.
// Entries that expired in the meantime are dropped. An empty path or a
// missing file gives an empty cache; an unreadable one gives an empty
// cache and an error. A non-positive ttl selects the default expiration.
func LoadReportCache(path string, ttl time.Duration) (*cache.Cache, error) {
	if ttl <= 0 {
		ttl = reportCacheExpiration
	}
	items := map[string]cache.Item{}
	if path == "" {
		return cache.NewFrom(ttl, reportCacheCleanup, items), nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cache.NewFrom(ttl, reportCacheCleanup, items), nil
	}
	if err != nil {
		return cache.NewFrom(ttl, reportCacheCleanup, items), fmt.Errorf("read report cache: %w", err)
	}

	var saved []savedReport
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return cache.NewFrom(ttl, reportCacheCleanup, items), fmt.Errorf("parse report cache: %w", err)
	}

	now := time.Now().UnixNano()
	for _, entry := range saved {
		if entry.Expires > 0 && entry.Expires <= now {
			continue
		}
		items[entry.Key] = cache.Item{Object: entry.Report, Expiration: entry.Expires}
	}
	return cache.NewFrom(ttl, reportCacheCleanup, items), nil
}

// SaveReportCache writes every unexpired report in c to path
func SaveReportCache(path string, c *cache.Cache) error {
	items := c.Items()
	saved := make([]savedReport, 0, len(items))
	for key, item := range items {
		report, ok := item.Object.(Report)
		if !ok {
			continue
		}
		saved = append(saved, savedReport{Key: key, Report: report, Expires: item.Expiration})
	}
	sort.Slice(saved, func(i, j int) bool {
		return saved[i].Key < saved[j].Key
	})

	data, err := yaml.Marshal(saved)
	if err != nil {
		return fmt.Errorf("failed to marshal report cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report cache: %w", err)
	}
	return nil
}
