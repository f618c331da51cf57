package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/hymns/internal/models"
	"golang.org/x/text/language"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Library LibraryConfig `toml:"library"`
	Export  ExportConfig  `toml:"export"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

// LibraryConfig controls where built-in hymns come from and how they are ordered.
type LibraryConfig struct {
	Path                  string `toml:"path"`
	Locale                string `toml:"locale"`
	AlphabeticalNumbering bool   `toml:"alphabetical_numbering"`
}

// ExportConfig contains defaults for exported hymn files.
type ExportConfig struct {
	Dir       string `toml:"dir"`
	Extension string `toml:"extension"`
}

// UIConfig contains TUI defaults.
type UIConfig struct {
	DefaultTab  string `toml:"default_tab"`
	RecentLimit int    `toml:"recent_limit"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values that cannot be expressed by the TOML schema alone.
func (c *Config) Validate() error {
	if _, ok := models.ParseTab(c.UI.DefaultTab); !ok {
		return fmt.Errorf("%w: unknown default tab %q", ErrInvalidConfig, c.UI.DefaultTab)
	}
	if c.UI.RecentLimit < 0 {
		return fmt.Errorf("%w: recent_limit must not be negative", ErrInvalidConfig)
	}
	if _, err := language.Parse(c.Library.Locale); err != nil {
		return fmt.Errorf("%w: locale %q: %v", ErrInvalidConfig, c.Library.Locale, err)
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging level %q", ErrInvalidConfig, c.Logging.Level)
	}
	if c.Export.Extension != "" && !strings.HasPrefix(c.Export.Extension, ".") {
		return fmt.Errorf("%w: export extension must start with a dot", ErrInvalidConfig)
	}
	return nil
}

// Locale returns the parsed library locale, falling back to English.
func (c *Config) Locale() language.Tag {
	tag, err := language.Parse(c.Library.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// LogLevel returns the parsed logging level, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// StartTab returns the configured default tab.
func (c *Config) StartTab() models.Tab {
	tab, ok := models.ParseTab(c.UI.DefaultTab)
	if !ok {
		return models.TabHome
	}
	return tab
}
