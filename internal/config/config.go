// Package config manages application configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/roboco-io/img2md/internal/ir"
)

// Config represents the application configuration.
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Scale    ScaleConfig    `yaml:"scale"`
	PNG      PNGConfig      `yaml:"png"`
	Prefs    PrefsConfig    `yaml:"prefs"`
	VCS      VCSConfig      `yaml:"vcs"`
	Log      LogConfig      `yaml:"log"`
}

// DefaultsConfig contains the options used until a paste saves its own.
type DefaultsConfig struct {
	DirectoryPattern   string `yaml:"directory_pattern"`
	CornerRadius       int    `yaml:"corner_radius"`
	ScalePercent       int    `yaml:"scale_percent"`
	WhiteAsTransparent bool   `yaml:"white_as_transparent"`
	RoundCorners       bool   `yaml:"round_corners"`
	Inline             bool   `yaml:"inline"`
}

// ScaleConfig selects the resampling backend.
type ScaleConfig struct {
	Backend   string `yaml:"backend"`   // xdraw, nfnt, gift
	Resampler string `yaml:"resampler"` // nearest, bilinear, lanczos
}

// PNGConfig contains encoder options.
type PNGConfig struct {
	Compression string `yaml:"compression"` // default, speed, best, none
}

// PrefsConfig selects where preferences are stored.
type PrefsConfig struct {
	Backend string `yaml:"backend"`        // yaml, sqlite, memory
	Path    string `yaml:"path,omitempty"` // empty means next to the config file
}

// VCSConfig controls staging of written images.
type VCSConfig struct {
	Enabled bool   `yaml:"enabled"`
	Git     string `yaml:"git,omitempty"` // git binary, empty for PATH lookup
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

var (
	validBackends     = []string{"xdraw", "nfnt", "gift"}
	validResamplers   = []string{"nearest", "bilinear", "lanczos"}
	validCompressions = []string{"default", "speed", "best", "none"}
	validPrefs        = []string{"yaml", "sqlite", "memory"}
	validLevels       = []string{"debug", "info", "warn", "error"}
	validFormats      = []string{"text", "json"}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			DirectoryPattern: ir.DefaultDirectoryPattern,
			CornerRadius:     ir.DefaultCornerRadius,
			ScalePercent:     ir.NoScale,
		},
		Scale: ScaleConfig{
			Backend:   "xdraw",
			Resampler: "bilinear",
		},
		PNG: PNGConfig{
			Compression: "default",
		},
		Prefs: PrefsConfig{
			Backend: "yaml",
		},
		VCS: VCSConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// InsertOptions returns the configured defaults as insert options.
func (c *Config) InsertOptions() ir.InsertOptions {
	opts := ir.DefaultInsertOptions()
	if c.Defaults.DirectoryPattern != "" {
		opts.DirectoryPattern = c.Defaults.DirectoryPattern
	}
	if c.Defaults.CornerRadius > 0 {
		opts.CornerRadius = c.Defaults.CornerRadius
	}
	if c.Defaults.ScalePercent > 0 {
		opts.ScalePercent = c.Defaults.ScalePercent
	}
	opts.WhiteAsTransparent = c.Defaults.WhiteAsTransparent
	opts.RoundCorners = c.Defaults.RoundCorners
	opts.Inline = c.Defaults.Inline
	return opts
}

// Validate checks that every enumerated setting has a known value.
// Empty values are allowed and mean the default.
func (c *Config) Validate() error {
	checks := []struct {
		key   string
		value string
		valid []string
	}{
		{"scale.backend", c.Scale.Backend, validBackends},
		{"scale.resampler", c.Scale.Resampler, validResamplers},
		{"png.compression", c.PNG.Compression, validCompressions},
		{"prefs.backend", c.Prefs.Backend, validPrefs},
		{"log.level", c.Log.Level, validLevels},
		{"log.format", c.Log.Format, validFormats},
	}
	for _, ch := range checks {
		if ch.value != "" && !contains(ch.valid, ch.value) {
			return fmt.Errorf("invalid %s: %s (valid: %s)", ch.key, ch.value, strings.Join(ch.valid, ", "))
		}
	}
	if c.Defaults.ScalePercent < 0 {
		return fmt.Errorf("invalid defaults.scale_percent: %d", c.Defaults.ScalePercent)
	}
	if c.Defaults.CornerRadius < 0 {
		return fmt.Errorf("invalid defaults.corner_radius: %d", c.Defaults.CornerRadius)
	}
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
