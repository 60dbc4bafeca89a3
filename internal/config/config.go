// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete banktui configuration.
type Config struct {
	// Gateway settings
	Gateway GatewayConfig `toml:"gateway"`

	// Session timeout settings
	Session SessionConfig `toml:"session"`

	// UI settings
	UI UIConfig `toml:"ui"`

	// Audit trail settings
	Audit AuditConfig `toml:"audit"`
}

// GatewayConfig points the console at the administration backend.
type GatewayConfig struct {
	// BaseURL is the gateway origin; the /api prefix is added by the client.
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
}

// SessionConfig holds the inactivity schedule.
//
// Valid range for the warning is 1-60 minutes and expiry must leave room
// for a countdown; values outside the range are clamped, not rejected, so
// a hand-edited config can never disable the timeout entirely.
type SessionConfig struct {
	// WarningMins is minutes of inactivity before the warning dialog.
	WarningMins int `toml:"warning_mins"`
	// ExpireMins is total minutes of inactivity before forced logout.
	ExpireMins int `toml:"expire_mins"`
}

// UIConfig contains interface preferences.
type UIConfig struct {
	// Theme selects the palette: "auto", "dark", or "light".
	Theme string `toml:"theme"`
	// PageSize is rows per table page.
	PageSize int `toml:"page_size"`
}

// AuditConfig controls the local audit trail.
type AuditConfig struct {
	// Enabled turns the local audit trail on.
	Enabled bool `toml:"enabled"`
	// Path overrides the database location (empty = ~/.banktui/audit.db).
	Path string `toml:"path"`
}

// Clamping bounds for the session schedule.
const (
	minWarningMins = 1
	maxWarningMins = 60
	maxExpireMins  = 120
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Gateway: GatewayConfig{
			BaseURL:     "http://localhost:5000",
			TimeoutSecs: 30,
		},
		Session: SessionConfig{
			WarningMins: 15,
			ExpireMins:  30,
		},
		UI: UIConfig{
			Theme:    "auto",
			PageSize: 20,
		},
		Audit: AuditConfig{
			Enabled: true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the banktui configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".banktui"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir ensures the config directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the config file, applies environment overrides, then clamps
// and validates. A missing file is not an error: defaults apply.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.Clamp()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides:
//   - BANKTUI_API_URL: overrides gateway.base_url
//   - BANKTUI_WARNING_MINS: overrides session.warning_mins
//   - BANKTUI_EXPIRE_MINS: overrides session.expire_mins
//   - BANKTUI_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("BANKTUI_API_URL"); v != "" {
		c.Gateway.BaseURL = v
	}
	if v := os.Getenv("BANKTUI_WARNING_MINS"); v != "" {
		if mins, err := strconv.Atoi(v); err == nil {
			c.Session.WarningMins = mins
		}
	}
	if v := os.Getenv("BANKTUI_EXPIRE_MINS"); v != "" {
		if mins, err := strconv.Atoi(v); err == nil {
			c.Session.ExpireMins = mins
		}
	}
	if v := os.Getenv("BANKTUI_THEME"); v != "" {
		c.UI.Theme = strings.ToLower(v)
	}
}

// Clamp forces out-of-range values back into their valid bounds.
func (c *Config) Clamp() {
	if c.Session.WarningMins < minWarningMins {
		c.Session.WarningMins = minWarningMins
	}
	if c.Session.WarningMins > maxWarningMins {
		c.Session.WarningMins = maxWarningMins
	}
	if c.Session.ExpireMins <= c.Session.WarningMins {
		c.Session.ExpireMins = c.Session.WarningMins * 2
	}
	if c.Session.ExpireMins > maxExpireMins {
		c.Session.ExpireMins = maxExpireMins
	}
	if c.Gateway.TimeoutSecs <= 0 {
		c.Gateway.TimeoutSecs = 30
	}
	if c.UI.PageSize <= 0 {
		c.UI.PageSize = 20
	}
}

// Validate rejects configurations clamping cannot repair.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Gateway.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("gateway.base_url %q is not an absolute URL", c.Gateway.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("gateway.base_url scheme %q not supported", u.Scheme)
	}
	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("ui.theme %q: want auto, dark, or light", c.UI.Theme)
	}
	return nil
}

// WarningAfter returns the warning delay as a duration.
func (c *Config) WarningAfter() time.Duration {
	return time.Duration(c.Session.WarningMins) * time.Minute
}

// ExpireAfter returns the expiry delay as a duration.
func (c *Config) ExpireAfter() time.Duration {
	return time.Duration(c.Session.ExpireMins) * time.Minute
}

// Save writes the config as TOML, creating the directory if needed.
// SECURITY: written 0600; the file may name internal hosts.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
