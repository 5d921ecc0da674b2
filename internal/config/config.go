package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Upload  UploadConfig  `yaml:"upload"`
	Log     LogConfig     `yaml:"log"`
	Report  ReportConfig  `yaml:"report"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// Inside a container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return "0.0.0.0"
	}
	return c.Host
}

// UploadConfig limits what the upload endpoints accept
type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

// LogConfig selects the log level and encoder
type LogConfig struct {
	Level       string `yaml:"level"`  // debug, info, warn, error
	Format      string `yaml:"format"` // json or console
	RedactNames *bool  `yaml:"redact_names"`
}

// Redact reports whether agent names are masked in logs (default true)
func (c LogConfig) Redact() bool {
	return c.RedactNames == nil || *c.RedactNames
}

// ReportConfig holds presentation settings
type ReportConfig struct {
	Title          string   `yaml:"title"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled *bool `yaml:"enabled"`
}

// IsEnabled reports whether /metrics is served (default true)
func (c MetricsConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Default upload limit: the tracker is meant for small rota exports.
const defaultMaxUploadBytes = 10 << 20

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Upload.MaxBytes <= 0 {
		cfg.Upload.MaxBytes = defaultMaxUploadBytes
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Report.Title == "" {
		cfg.Report.Title = "Agent Performance Tracker"
	}
	if len(cfg.Report.AllowedOrigins) == 0 {
		cfg.Report.AllowedOrigins = []string{"http://localhost:8080"}
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars.
// A missing config file is not an error: defaults are used instead.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if os.IsNotExist(err) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("UPLOAD_MAX_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.Upload.MaxBytes = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("REPORT_TITLE"); v != "" {
		cfg.Report.Title = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = &on
		}
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.Report.AllowedOrigins = origins
		}
	}

	return cfg, nil
}
