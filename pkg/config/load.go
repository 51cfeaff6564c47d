package config

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the first env file found among envFilePath (searching parent
// directories), then fills App from the environment. Missing files are not an error.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Debug("Loading environment variables")

	if len(envFilePath) == 0 {
		envFilePath = []string{".env"}
	}

	for _, path := range envFilePath {
		logger.Debug("Looking for environment file", "path", path)
		foundPath, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}

		logger.Debug("Loading environment from file", "path", foundPath)
		if err := godotenv.Load(foundPath); err != nil {
			logger.Warn("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		break
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Default().Debug("App config loaded",
		"env", cfg.Env,
		"log_format", cfg.Log.Format,
		"exchange_api_url", cfg.ExchangeRate.ApiUrl,
		"exchange_base", cfg.ExchangeRate.Base,
		"exchange_http_timeout", cfg.ExchangeRate.HTTPTimeout,
		"exchange_max_age", cfg.ExchangeRate.MaxAge,
	)
	return &cfg, nil
}
