package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDev        = "dev"
	EnvProduction = "production"
)

type Config struct {
	Env       string        `yaml:"env"`
	Log       LogConfig     `yaml:"log"`
	DraftsDir string        `yaml:"drafts_dir"`
	CacheSize int           `yaml:"cache_size"`
	Debounce  time.Duration `yaml:"debounce"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File receives log output while the TUI owns the terminal.
	File string `yaml:"file"`
	// Keep is the number of recent entries retained in memory.
	Keep int `yaml:"keep"`
}

// Dir returns the per-user config directory.
func Dir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "edit0r")
	}
	h, _ := os.UserHomeDir()
	if h == "" && runtime.GOOS == "windows" {
		h = os.Getenv("USERPROFILE")
	}
	if h == "" {
		h = "."
	}
	return filepath.Join(h, ".config", "edit0r")
}

// Path returns the config file location, EDIT0R_CONFIG taking precedence.
func Path() string {
	if p := strings.TrimSpace(os.Getenv("EDIT0R_CONFIG")); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.yaml")
}

func Default() Config {
	dir := Dir()
	return Config{
		Env:       EnvProduction,
		Log:       LogConfig{Format: "CONSOLE", File: filepath.Join(dir, "edit0r.log"), Keep: 100},
		DraftsDir: filepath.Join(dir, "drafts"),
		CacheSize: 256,
		Debounce:  250 * time.Millisecond,
	}
}

// Load layers defaults, the YAML file, a .env file in the working directory
// and the process environment, in that order. A missing .env is skipped; a
// malformed one is an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(Path())
}

// LoadFrom is Load without .env handling and with an explicit file path.
// A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "DEBUG"
		if cfg.Env == EnvProduction {
			cfg.Log.Level = "WARN"
		}
	}
	if cfg.CacheSize <= 0 {
		return nil, fmt.Errorf("cache_size must be positive, got %d", cfg.CacheSize)
	}
	if cfg.Debounce < 0 {
		return nil, fmt.Errorf("debounce must not be negative, got %s", cfg.Debounce)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := env("EDIT0R_ENV"); v != "" {
		cfg.Env = strings.ToLower(v)
	}
	if v := env("EDIT0R_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := env("EDIT0R_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := env("EDIT0R_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := env("EDIT0R_DRAFTS_DIR"); v != "" {
		cfg.DraftsDir = v
	}
	if v := env("EDIT0R_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EDIT0R_CACHE_SIZE: %w", err)
		}
		cfg.CacheSize = n
	}
	if v := env("EDIT0R_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("EDIT0R_DEBOUNCE: %w", err)
		}
		cfg.Debounce = d
	}
	return nil
}

func env(key string) string { return strings.TrimSpace(os.Getenv(key)) }
