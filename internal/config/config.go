// Package config loads SpendSmart client configuration from the TOML
// config file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	Appearance AppearanceConfig `toml:"appearance"`
	General    GeneralConfig    `toml:"general"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

// AppearanceConfig holds theme settings. The theme is also mirrored into
// the local state store so the TUI can style its first frame before the
// config file is parsed.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	PageSize int `toml:"page_size"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:3002",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		General: GeneralConfig{
			PageSize: 20,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendsmart")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spendsmart")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// StatePath returns the path of the local state database.
func StatePath() string {
	return filepath.Join(Dir(), "state.db")
}

// Load reads the config file and applies environment overrides.
// A missing file yields the defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	if err := loadEnv(); err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(Path())
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if url := os.Getenv("SPENDSMART_API_URL"); url != "" {
		cfg.API.BaseURL = url
	}
	if theme := os.Getenv("SPENDSMART_THEME"); theme != "" {
		cfg.Appearance.Theme = theme
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.General.PageSize <= 0 {
		cfg.General.PageSize = 20
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

func loadEnv() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
}
