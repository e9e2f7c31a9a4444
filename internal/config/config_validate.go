// Cinematch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/cinematch/internal/validation"
)

// MinRefreshInterval is the shortest accepted catalog refresh interval.
const MinRefreshInterval = time.Second

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateRefresh(); err != nil {
		return err
	}

	if c.Recommend.CacheSize > 0 && c.Recommend.CacheTTL <= 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive when RECOMMEND_CACHE_SIZE > 0, got %s", c.Recommend.CacheTTL)
	}

	return c.validateDatabase()
}

// validateRefresh validates the refresh interval (only if enabled)
func (c *Config) validateRefresh() error {
	if !c.Refresh.Enabled {
		return nil
	}
	if c.Refresh.Interval < MinRefreshInterval {
		return fmt.Errorf("REFRESH_INTERVAL must be at least %s, got %s", MinRefreshInterval, c.Refresh.Interval)
	}
	return nil
}

// validateDatabase validates the result store settings (only if a driver is set)
func (c *Config) validateDatabase() error {
	if !isIdentifier(c.Database.Table) {
		return fmt.Errorf("DATABASE_TABLE must be a plain SQL identifier, got %q", c.Database.Table)
	}
	if !c.Database.Enabled() {
		return nil
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DATABASE_PATH is required when DATABASE_DRIVER=%s", c.Database.Driver)
	}
	return nil
}

// isIdentifier reports whether s is safe to interpolate as a table name.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
