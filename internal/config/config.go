package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	styles "github.com/charmbracelet/glamour/styles"
	"github.com/pelletier/go-toml/v2"
)

const appName = "mdnav"

// Config represents the application configuration.
type Config struct {
	// ViewportWidth overrides viewport detection when positive (pixels).
	ViewportWidth int `toml:"viewport_width"`
	// CellPixelWidth converts terminal columns to pixels when the terminal
	// does not report its pixel size.
	CellPixelWidth int `toml:"cell_pixel_width"`

	TreeWidth int    `toml:"tree_width"`
	Style     string `toml:"style"`
	LogFile   string `toml:"log_file"`
	LogLevel  string `toml:"log_level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		CellPixelWidth: 8,
		TreeWidth:      28,
		Style:          styles.TokyoNightStyle,
		LogFile:        defaultLogFile(),
		LogLevel:       "info",
	}
}

// DefaultPath returns the location of the user configuration file.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName, "config.toml")
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, appName+".log")
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes cfg to path as TOML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// KnownStyle reports whether the configured glamour style exists.
func (c *Config) KnownStyle() bool {
	_, ok := styles.DefaultStyles[c.Style]
	return ok
}

func (c *Config) normalize() {
	def := Default()
	if c.CellPixelWidth <= 0 {
		c.CellPixelWidth = def.CellPixelWidth
	}
	if c.TreeWidth <= 0 {
		c.TreeWidth = def.TreeWidth
	}
	if c.Style == "" {
		c.Style = def.Style
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.ViewportWidth < 0 {
		c.ViewportWidth = 0
	}
}
