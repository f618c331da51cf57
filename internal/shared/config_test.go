package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/hymns/internal/models"
	"golang.org/x/text/language"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Library.Locale != "en" {
			t.Errorf("expected locale en, got %s", config.Library.Locale)
		}

		if !config.Library.AlphabeticalNumbering {
			t.Error("expected alphabetical numbering to be enabled by default")
		}

		if config.Export.Extension != ".hymn" {
			t.Errorf("expected export extension .hymn, got %s", config.Export.Extension)
		}

		if config.UI.RecentLimit != 3 {
			t.Errorf("expected recent limit 3, got %d", config.UI.RecentLimit)
		}

		if config.StartTab() != models.TabHome {
			t.Errorf("expected default tab home, got %s", config.StartTab())
		}

		if err := config.Validate(); err != nil {
			t.Errorf("expected embedded config to be valid, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Export.Dir != defaultConfig.Export.Dir {
			t.Errorf("created config export dir doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[library]
path = "/srv/hymns/library.yaml"
locale = "sv"
alphabetical_numbering = false

[ui]
default_tab = "favorites"

[logging]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Library.Path != "/srv/hymns/library.yaml" {
			t.Errorf("expected library path /srv/hymns/library.yaml, got %s", config.Library.Path)
		}

		if config.Library.AlphabeticalNumbering {
			t.Error("expected alphabetical numbering to be disabled")
		}

		if config.Locale() != language.Swedish {
			t.Errorf("expected swedish locale, got %v", config.Locale())
		}

		if config.StartTab() != models.TabFavorites {
			t.Errorf("expected favorites tab, got %s", config.StartTab())
		}

		if config.LogLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", config.LogLevel())
		}

		if config.UI.RecentLimit != 3 {
			t.Errorf("expected missing keys to keep defaults, got recent_limit %d", config.UI.RecentLimit)
		}
	})

	t.Run("LoadConfig rejects invalid values", func(t *testing.T) {
		tc := []struct {
			name string
			body string
		}{
			{name: "unknown tab", body: "[ui]\ndefault_tab = \"playlists\"\n"},
			{name: "negative recent limit", body: "[ui]\nrecent_limit = -1\n"},
			{name: "bad locale", body: "[library]\nlocale = \"not a locale!\"\n"},
			{name: "bad level", body: "[logging]\nlevel = \"loud\"\n"},
			{name: "extension without dot", body: "[export]\nextension = \"hymn\"\n"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				configPath := filepath.Join(t.TempDir(), "config.toml")
				if err := os.WriteFile(configPath, []byte(tt.body), 0644); err != nil {
					t.Fatalf("failed to write test config: %v", err)
				}

				if _, err := LoadConfig(configPath); !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
