package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where LoadConfig looks for the YAML file unless
// CONFIG_PATH says otherwise.
const DefaultConfigPath = "configs/config.yaml"

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string `yaml:"port" envconfig:"PORT"`
		Mode            string `yaml:"mode" envconfig:"SERVER_MODE"`
		ReadTimeout     string `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
		WriteTimeout    string `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
		IdleTimeout     string `yaml:"idle_timeout" envconfig:"SERVER_IDLE_TIMEOUT"`
		ShutdownTimeout string `yaml:"shutdown_timeout" envconfig:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Logging struct {
		Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
		Format string `yaml:"format" envconfig:"LOG_FORMAT"`
	} `yaml:"logging"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" envconfig:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`

	Metrics struct {
		Enabled bool      `yaml:"enabled" envconfig:"METRICS_ENABLED"`
		Path    string    `yaml:"path" envconfig:"METRICS_PATH"`
		Buckets []float64 `yaml:"buckets" envconfig:"METRICS_BUCKETS"` // request latency buckets, seconds
	} `yaml:"metrics"`

	Swagger struct {
		Enabled bool `yaml:"enabled" envconfig:"SWAGGER_ENABLED"`
	} `yaml:"swagger"`

	Store struct {
		Seed bool `yaml:"seed" envconfig:"STORE_SEED"`
	} `yaml:"store"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and environment still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Default returns a configuration holding only the built-in defaults
func Default() *Config {
	config := &Config{}
	setDefaults(config)
	return config
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "3000"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "10s"
	config.Server.IdleTimeout = "120s"
	config.Server.ShutdownTimeout = "10s"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.CORS.AllowedOrigins = []string{"*"}

	config.Metrics.Enabled = true
	config.Metrics.Path = "/metrics"

	config.Swagger.Enabled = true

	config.Store.Seed = true
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	port, err := strconv.Atoi(config.Server.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("server port must be a number between 0 and 65535, got %q", config.Server.Port)
	}

	for name, value := range map[string]string{
		"read timeout":     config.Server.ReadTimeout,
		"write timeout":    config.Server.WriteTimeout,
		"idle timeout":     config.Server.IdleTimeout,
		"shutdown timeout": config.Server.ShutdownTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid server %s format: %w", name, err)
		}
	}

	switch strings.ToLower(config.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("logging format must be json or text, got %q", config.Logging.Format)
	}

	if config.Metrics.Enabled && !strings.HasPrefix(config.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/', got %q", config.Metrics.Path)
	}

	for i, bound := range config.Metrics.Buckets {
		if bound <= 0 || (i > 0 && bound <= config.Metrics.Buckets[i-1]) {
			return fmt.Errorf("metrics buckets must be positive and strictly increasing, got %v", config.Metrics.Buckets)
		}
	}

	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Server.Mode) == "production"
}

// PathFromEnv returns the config file path, honouring CONFIG_PATH.
func PathFromEnv() string {
	if value, exists := os.LookupEnv("CONFIG_PATH"); exists && value != "" {
		return value
	}
	return DefaultConfigPath
}
