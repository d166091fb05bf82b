package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	Interpreter InterpreterConfig `yaml:"interpreter"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Tailscale   TailscaleConfig   `yaml:"tailscale"`
}

// TailscaleConfig controls serving over a tailnet instead of a plain
// TCP listener.
type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// InterpreterConfig points at the language model used to parse feedback.
// An empty endpoint disables the model and feedback is parsed by the
// keyword fallback only.
type InterpreterConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
}

// CatalogConfig points at the exercise catalog service. An empty base URL
// disables it and lookups use the built-in exercise table. CacheDir, when
// set, holds the local SQLite lookup cache.
type CatalogConfig struct {
	BaseURL  string `yaml:"base_url"`
	CacheDir string `yaml:"cache_dir"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix REPLAN_ and underscore-separated paths:
//
//	REPLAN_SERVER_HOST, REPLAN_SERVER_PORT,
//	REPLAN_DB_HOST, REPLAN_DB_PORT, REPLAN_DB_NAME,
//	REPLAN_DB_USER, REPLAN_DB_PASSWORD, REPLAN_DB_SSLMODE,
//	REPLAN_AUTH_API_KEY,
//	REPLAN_INTERPRETER_ENDPOINT, REPLAN_INTERPRETER_MODEL,
//	REPLAN_CATALOG_BASE_URL, REPLAN_CATALOG_CACHE_DIR,
//	REPLAN_TS_HOSTNAME, REPLAN_TS_STATE_DIR
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REPLAN_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("REPLAN_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REPLAN_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("REPLAN_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("REPLAN_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("REPLAN_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("REPLAN_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REPLAN_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("REPLAN_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("REPLAN_INTERPRETER_ENDPOINT"); v != "" {
		cfg.Interpreter.Endpoint = v
	}
	if v := os.Getenv("REPLAN_INTERPRETER_MODEL"); v != "" {
		cfg.Interpreter.Model = v
	}
	if v := os.Getenv("REPLAN_CATALOG_BASE_URL"); v != "" {
		cfg.Catalog.BaseURL = v
	}
	if v := os.Getenv("REPLAN_CATALOG_CACHE_DIR"); v != "" {
		cfg.Catalog.CacheDir = v
	}
	if v := os.Getenv("REPLAN_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("REPLAN_TS_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Interpreter.Endpoint != "" && c.Interpreter.Model == "" {
		return fmt.Errorf("interpreter.model is required when interpreter.endpoint is set")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale.enabled is true")
	}
	return nil
}
