// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/jeranaias/deepseek-hud/internal/model"
	"github.com/jeranaias/deepseek-hud/internal/util"
)

// Opacity bounds and default.
const (
	MinOpacity     = 0.2
	MaxOpacity     = 1.0
	DefaultOpacity = 0.9
)

// Legacy window geometry was stored in pixels. These approximate one
// terminal cell and convert it to columns and rows.
const (
	legacyCellWidth  = 8
	legacyCellHeight = 16
)

// Default geometry, in cells: a 400x600 px window.
const (
	DefaultWidth  = 400 / legacyCellWidth
	DefaultHeight = 600 / legacyCellHeight
)

// LegacyConfigFile is the JSON file written by earlier releases, relative to
// the working directory.
const LegacyConfigFile = "deepseek_hud_config.json"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete HUD configuration.
type Config struct {
	// APIKey is the DeepSeek API key
	APIKey string `toml:"api_key"`

	// Opacity is the display opacity, 0.2 to 1.0
	Opacity float64 `toml:"opacity"`

	// Geometry is the last known window position and size, in cells
	Geometry Geometry `toml:"geometry"`

	// Model is the chat model identifier
	Model string `toml:"model"`

	// BaseURL is the API base URL
	BaseURL string `toml:"base_url"`

	// SystemPrompt is the first message of every conversation
	SystemPrompt string `toml:"system_prompt"`

	// Log configures the log file
	Log LogConfig `toml:"log"`

	// fileValues holds values replaced by environment overrides so that Save
	// writes back what was in the file.
	fileValues map[string]string
}

// Geometry is a window rectangle.
type Geometry struct {
	X      int `toml:"x"`
	Y      int `toml:"y"`
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// IsZero returns true if no geometry has been recorded.
func (g Geometry) IsZero() bool {
	return g.Width == 0 && g.Height == 0
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error, disabled
	Level string `toml:"level"`
	// File is the log file path (empty = ~/.deepseek-hud/hud.log)
	File string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Opacity:      DefaultOpacity,
		Model:        model.DefaultModel,
		BaseURL:      "https://api.deepseek.com",
		SystemPrompt: model.DefaultSystemPrompt,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the HUD configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".deepseek-hud"), nil
}

// ConfigPath returns the path of the TOML config file.
// HUD_CONFIG overrides the default location.
func ConfigPath() (string, error) {
	if p := os.Getenv("HUD_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultLogPath returns the log file used when log.file is empty.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hud.log"), nil
}

// ensureSecurePermissions fixes permissions on the config file.
// SECURITY: Config files should be 0600 (owner read/write only) to protect the API key.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads the configuration from ConfigPath.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from path. A missing file is not an
// error: the legacy JSON file is imported if present, otherwise defaults are
// used. Environment overrides are applied last.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	switch _, err := os.Stat(path); {
	case err == nil:
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		if _, statErr := os.Stat(LegacyConfigFile); statErr == nil {
			if err := LoadLegacyJSON(cfg, LegacyConfigFile); err != nil {
				return nil, fmt.Errorf("failed to import %s: %w", LegacyConfigFile, err)
			}
		}
	default:
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file into cfg.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	// Not fatal: permissions might not be fixable on all systems
	_ = ensureSecurePermissions(path)

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// legacyConfig is the JSON layout written by earlier releases.
type legacyConfig struct {
	APIKey   string   `json:"api_key"`
	Opacity  *float64 `json:"opacity"`
	Geometry []int    `json:"geometry"`
}

// LoadLegacyJSON imports the legacy JSON config into cfg. Pixel geometry is
// converted to cells.
func LoadLegacyJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	var legacy legacyConfig
	if err := json.Unmarshal(data, &legacy); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}

	cfg.APIKey = legacy.APIKey
	if legacy.Opacity != nil {
		cfg.Opacity = *legacy.Opacity
	}
	if len(legacy.Geometry) == 4 {
		cfg.Geometry = Geometry{
			X:      legacy.Geometry[0] / legacyCellWidth,
			Y:      legacy.Geometry[1] / legacyCellHeight,
			Width:  legacy.Geometry[2] / legacyCellWidth,
			Height: legacy.Geometry[3] / legacyCellHeight,
		}
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to ConfigPath.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to a TOML file.
// Values that came from environment overrides are not persisted.
// SECURITY: The file is created with 0600 permissions and its directory with 0700.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# DeepSeek HUD configuration file")
	fmt.Fprintln(&buf, "# Written on exit - edit while the HUD is closed or it will be overwritten")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg.persisted()); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// persisted returns a copy with environment overrides reverted.
func (c *Config) persisted() *Config {
	out := c.Clone()
	for key, value := range c.fileValues {
		switch key {
		case "api_key":
			out.APIKey = value
		case "model":
			out.Model = value
		case "base_url":
			out.BaseURL = value
		case "log.level":
			out.Log.Level = value
		}
	}
	return out
}

// =============================================================================
// DEFAULTS AND VALIDATION
// =============================================================================

// SetDefaults fills in missing values and clamps opacity into range.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Opacity == 0 || math.IsNaN(c.Opacity) {
		c.Opacity = defaults.Opacity
	}
	c.Opacity = ClampOpacity(c.Opacity)

	if strings.TrimSpace(c.Model) == "" {
		c.Model = defaults.Model
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = defaults.BaseURL
	}
	if strings.TrimSpace(c.SystemPrompt) == "" {
		c.SystemPrompt = defaults.SystemPrompt
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	c.APIKey = strings.TrimSpace(c.APIKey)
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
// A missing API key is not a validation error; see HasCredential.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Opacity < MinOpacity || c.Opacity > MaxOpacity || math.IsNaN(c.Opacity) {
		errs = append(errs, ValidationError{
			Field:   "opacity",
			Message: fmt.Sprintf("%.2f out of range [%.1f, %.1f]", c.Opacity, MinOpacity, MaxOpacity),
		})
	}

	if _, ok := model.LookupModel(c.Model); !ok {
		errs = append(errs, ValidationError{
			Field:   "model",
			Message: fmt.Sprintf("unknown model '%s', must be one of: %s", c.Model, strings.Join(model.ModelIDs(), ", ")),
		})
	}

	if u, err := url.Parse(c.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "base_url",
			Message: fmt.Sprintf("'%s' is not an http(s) URL", c.BaseURL),
		})
	}

	if c.Geometry.Width < 0 || c.Geometry.Height < 0 {
		errs = append(errs, ValidationError{
			Field:   "geometry",
			Message: "width and height must not be negative",
		})
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s'", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - DEEPSEEK_API_KEY: overrides api_key
//   - HUD_MODEL: overrides model
//   - HUD_BASE_URL: overrides base_url
//   - HUD_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	override := func(env, key string, field *string) {
		v := os.Getenv(env)
		if v == "" {
			return
		}
		if c.fileValues == nil {
			c.fileValues = make(map[string]string)
		}
		if _, seen := c.fileValues[key]; !seen {
			c.fileValues[key] = *field
		}
		*field = v
	}

	override("DEEPSEEK_API_KEY", "api_key", &c.APIKey)
	override("HUD_MODEL", "model", &c.Model)
	override("HUD_BASE_URL", "base_url", &c.BaseURL)
	override("HUD_LOG_LEVEL", "log.level", &c.Log.Level)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// HasCredential returns true if an API key is configured.
func (c *Config) HasCredential() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// SetAPIKey sets the API key entered by the user. An explicit key replaces
// any environment override and is persisted.
func (c *Config) SetAPIKey(key string) {
	c.APIKey = strings.TrimSpace(key)
	delete(c.fileValues, "api_key")
}

// ClampOpacity limits v to [MinOpacity, MaxOpacity].
func ClampOpacity(v float64) float64 {
	return math.Max(MinOpacity, math.Min(MaxOpacity, v))
}

// AdjustOpacity changes the opacity by delta, clamped, and returns the result.
// The result is rounded to two decimals so repeated steps do not drift.
func (c *Config) AdjustOpacity(delta float64) float64 {
	c.Opacity = ClampOpacity(math.Round((c.Opacity+delta)*100) / 100)
	return c.Opacity
}

// Size returns the window size in cells, falling back to the defaults.
func (c *Config) Size() (width, height int) {
	width, height = c.Geometry.Width, c.Geometry.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}

// Reload takes every setting from next except the window geometry, which
// the running HUD owns.
func (c *Config) Reload(next *Config) {
	geometry := c.Geometry
	*c = *next.Clone()
	c.Geometry = geometry
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	if c.fileValues != nil {
		out.fileValues = make(map[string]string, len(c.fileValues))
		for k, v := range c.fileValues {
			out.fileValues[k] = v
		}
	}
	return &out
}
