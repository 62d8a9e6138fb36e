package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// dotEnvFile is read before the environment is processed. Variables already
// present in the process environment win over the file.
var dotEnvFile = ".env"

// loadFromEnv overrides configuration with environment variables. Each field
// answers to its short envconfig tag (PORT, LOG_LEVEL, ...) as well as the
// section-prefixed form (SERVER_PORT, LOGGING_LOG_LEVEL, ...).
func loadFromEnv(config *Config) error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", dotEnvFile, err)
	}

	if err := envconfig.Process("", config); err != nil {
		return err
	}

	return nil
}
