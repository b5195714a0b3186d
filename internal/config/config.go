// Package config loads the client configuration once at startup. Values are
// process-wide constants afterwards: nothing re-reads the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every externally supplied setting.
type Config struct {
	// APIURL is the base URL of the school backend API.
	APIURL string `yaml:"api_url" validate:"required,url"`

	// AdminURL is the backend's admin panel, used only to print links.
	AdminURL string `yaml:"admin_url" validate:"omitempty,url"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format" validate:"omitempty,oneof=text json"`
}

const (
	defaultAPIURL   = "http://localhost:8000/api"
	defaultAdminURL = "http://localhost:8000/admin"
)

// Load builds the configuration from, in increasing precedence: defaults, the
// YAML file under the config directory, and COLEGIO_* environment variables.
// A .env file in the working directory is folded into the environment first.
func Load() (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:    defaultAPIURL,
		AdminURL:  defaultAdminURL,
		LogLevel:  "info",
		LogFormat: "text",
	}

	path := filepath.Join(Dir(), "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if v := os.Getenv("COLEGIO_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("COLEGIO_ADMIN_URL"); v != "" {
		cfg.AdminURL = v
	}
	if v := os.Getenv("COLEGIO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("COLEGIO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Dir returns the per-user state directory (~/.colegio). COLEGIO_HOME
// overrides it, which tests and CI rely on.
func Dir() string {
	if dir := os.Getenv("COLEGIO_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".colegio"
	}
	return filepath.Join(home, ".colegio")
}

// CredentialsPath returns where the session store persists credentials.
func CredentialsPath() string {
	return filepath.Join(Dir(), "credentials.json")
}

// CachePath returns the dashboard snapshot database location.
func CachePath() string {
	return filepath.Join(Dir(), "cache.db")
}

// AdminSectionPath maps an admin panel section name to its path, mirroring
// the backend's admin registry.
func AdminSectionPath(section string) (string, bool) {
	paths := map[string]string{
		"students":       "/core/alumno/",
		"teachers":       "/core/maestro/",
		"courses":        "/core/curso/",
		"subjects":       "/core/materia/",
		"grades":         "/core/nota/",
		"attendance":     "/core/asistencia/",
		"participations": "/core/participacion/",
		"parents":        "/core/padre/",
		"schools":        "/core/colegio/",
	}
	p, ok := paths[section]
	return p, ok
}
