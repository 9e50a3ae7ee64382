// Package config loads the optional deckdex.toml configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Timing TimingConfig `toml:"timing" json:"timing"`
	Log    LogConfig    `toml:"log" json:"log"`
	UI     UIConfig     `toml:"ui" json:"ui"`
}

// TimingConfig holds the simulated robot timings. Durations are Go duration
// strings ("3s", "800ms").
type TimingConfig struct {
	SortDelay    string `toml:"sort_delay" json:"sortDelay"`
	ScanInterval string `toml:"scan_interval" json:"scanInterval"`
	// ScanStep is the progress gained per scan tick, in percentage points.
	ScanStep int `toml:"scan_step" json:"scanStep"`
	// NoticeTTL is how long toasts stay on screen.
	NoticeTTL string `toml:"notice_ttl" json:"noticeTtl"`
}

type LogConfig struct {
	File  string `toml:"file" json:"file"`   // empty disables logging
	Level string `toml:"level" json:"level"` // debug|info|warn|error
}

type UIConfig struct {
	// Seed drives the cosmetic pile counts. 0 picks a random seed.
	Seed   int64  `toml:"seed" json:"seed"`
	Glyphs string `toml:"glyphs" json:"glyphs"` // unicode|ascii
}

// Timing is TimingConfig with parsed durations.
type Timing struct {
	SortDelay    time.Duration
	ScanInterval time.Duration
	ScanStep     int
	NoticeTTL    time.Duration
}

func Default() *Config {
	return &Config{
		Timing: TimingConfig{
			SortDelay:    "3s",
			ScanInterval: "800ms",
			ScanStep:     20,
			NoticeTTL:    "4s",
		},
		Log: LogConfig{
			File:  "",
			Level: "info",
		},
		UI: UIConfig{
			Seed:   0,
			Glyphs: "unicode",
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/deckdex/config.toml (or the OS equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "deckdex", "config.toml"), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if _, err := cfg.ParseTiming(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as TOML, creating parent directories.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	b, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func (c *Config) ParseTiming() (Timing, error) {
	var t Timing
	var err error
	if t.SortDelay, err = parseDuration("sort_delay", c.Timing.SortDelay); err != nil {
		return Timing{}, err
	}
	if t.ScanInterval, err = parseDuration("scan_interval", c.Timing.ScanInterval); err != nil {
		return Timing{}, err
	}
	if t.NoticeTTL, err = parseDuration("notice_ttl", c.Timing.NoticeTTL); err != nil {
		return Timing{}, err
	}
	t.ScanStep = c.Timing.ScanStep
	if t.ScanStep <= 0 || t.ScanStep > 100 {
		return Timing{}, fmt.Errorf("scan_step must be in 1..100, got %d", t.ScanStep)
	}
	return t, nil
}

func parseDuration(key, s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, s)
	}
	return d, nil
}
