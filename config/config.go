// Package config loads nativeimport settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings.
type Config struct {
	// DatabaseURL is a PostgreSQL connection URL
	DatabaseURL string `yaml:"database_url" validate:"omitempty,url"`

	// DefaultLocale is the fallback for missing translations
	DefaultLocale string `yaml:"default_locale" validate:"required"`

	// UILocale is the locale problems are reported in
	UILocale string `yaml:"ui_locale" validate:"required"`

	// Locales lists the locale codes installed on the site
	Locales []string `yaml:"locales" validate:"dive,required"`

	// CatalogDir holds extra <locale>.yaml message files
	CatalogDir string `yaml:"catalog_dir,omitempty"`

	// MetricsTextfile is written after each run when set
	MetricsTextfile string `yaml:"metrics_textfile,omitempty"`

	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig sizes the user group cache.
type CacheConfig struct {
	Size int           `yaml:"size" validate:"gte=1"`
	TTL  time.Duration `yaml:"ttl" validate:"gt=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultLocale: "en_US",
		UILocale:      "en_US",
		Cache: CacheConfig{
			Size: 64,
			TTL:  5 * time.Minute,
		},
	}
}

// configDirOverride holds a user-specified configuration directory.
// When empty, the default $HOME/.nativeimport is used.
var configDirOverride string

// SetConfigDir overrides the default configuration directory.
func SetConfigDir(dir string) {
	configDirOverride = dir
}

// ConfigDir returns the nativeimport configuration directory.
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".nativeimport"), nil
}

// DefaultPath returns the path of the default config file.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads path (or the default config file when path is empty),
// applies NATIVEIMPORT_* environment overrides and validates the result.
// A missing default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("NATIVEIMPORT_DATABASE_URL"); ok {
		cfg.DatabaseURL = v
	}
	if v, ok := os.LookupEnv("NATIVEIMPORT_DEFAULT_LOCALE"); ok {
		cfg.DefaultLocale = v
	}
	if v, ok := os.LookupEnv("NATIVEIMPORT_UI_LOCALE"); ok {
		cfg.UILocale = v
	}
	if v, ok := os.LookupEnv("NATIVEIMPORT_LOCALES"); ok {
		cfg.Locales = splitList(v)
	}
	if v, ok := os.LookupEnv("NATIVEIMPORT_CATALOG_DIR"); ok {
		cfg.CatalogDir = v
	}
	if v, ok := os.LookupEnv("NATIVEIMPORT_METRICS_TEXTFILE"); ok {
		cfg.MetricsTextfile = v
	}
	if v, ok := os.LookupEnv("NATIVEIMPORT_CACHE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NATIVEIMPORT_CACHE_SIZE: %w", err)
		}
		cfg.Cache.Size = n
	}
	if v, ok := os.LookupEnv("NATIVEIMPORT_CACHE_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("NATIVEIMPORT_CACHE_TTL: %w", err)
		}
		cfg.Cache.TTL = d
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var validate = validator.New()

// Validate checks the configuration's field constraints.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
