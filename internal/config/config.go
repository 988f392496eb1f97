// Package config carga la configuración de la consola: YAML opcional y
// luego overrides por variables de entorno.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MemoryCatalog como catalog.url usa el catálogo en memoria (modo dev).
const MemoryCatalog = "memory"

type Config struct {
	Listen  string        `yaml:"listen"`
	Title   string        `yaml:"title"`
	Catalog CatalogConfig `yaml:"catalog"`
	Logging LoggingConfig `yaml:"logging"`
}

type CatalogConfig struct {
	URL string `yaml:"url"`
	// Timeout en formato Go ("5s"). Vacío o "0" => sin timeout propio.
	Timeout string `yaml:"timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

func Default() *Config {
	return &Config{
		Listen: ":3000",
		Title:  "Marron's Pet Store",
		Catalog: CatalogConfig{
			URL: "http://localhost:8080/marron",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			App:    "pet-console",
		},
	}
}

// Load lee path (si no es vacío) sobre los defaults y aplica el entorno.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides: PORT, CATALOG_URL, CATALOG_TIMEOUT, LOG_LEVEL, LOG_FORMAT,
// APP_NAME, CONSOLE_TITLE.
func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		c.Listen = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv("CATALOG_URL")); v != "" {
		c.Catalog.URL = v
	}
	if v := strings.TrimSpace(os.Getenv("CATALOG_TIMEOUT")); v != "" {
		c.Catalog.Timeout = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		c.Logging.Format = v
	}
	if v := strings.TrimSpace(os.Getenv("APP_NAME")); v != "" {
		c.Logging.App = v
	}
	if v := strings.TrimSpace(os.Getenv("CONSOLE_TITLE")); v != "" {
		c.Title = v
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return errors.New("config: listen address required")
	}
	if strings.TrimSpace(c.Catalog.URL) == "" {
		return errors.New("config: catalog.url required")
	}
	if _, err := c.CatalogTimeout(); err != nil {
		return err
	}
	return nil
}

// CatalogTimeout parsea catalog.timeout; vacío => 0.
func (c *Config) CatalogTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Catalog.Timeout)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid catalog.timeout %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: catalog.timeout must not be negative")
	}
	return d, nil
}

// UseMemoryCatalog indica modo dev sin servicio externo.
func (c *Config) UseMemoryCatalog() bool {
	return strings.EqualFold(strings.TrimSpace(c.Catalog.URL), MemoryCatalog)
}
