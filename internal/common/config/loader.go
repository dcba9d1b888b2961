// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like SEARCH_KEY, SERVER_ACCESS_PIN
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored when absent
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideFromEnv(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or the project root so that
// the loader behaves the same when started from cmd/, test/, or the repo root.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "assist-server"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = 64 << 10 // 64 KiB is plenty for a chat query
	}
	if cfg.Weather.GeocodeBaseURL == "" {
		cfg.Weather.GeocodeBaseURL = "https://geocoding-api.open-meteo.com"
	}
	if cfg.Weather.ForecastBaseURL == "" {
		cfg.Weather.ForecastBaseURL = "https://api.open-meteo.com"
	}
	if cfg.Weather.GeocodeTimeout == 0 {
		cfg.Weather.GeocodeTimeout = 8000
	}
	if cfg.Weather.ForecastTimeout == 0 {
		cfg.Weather.ForecastTimeout = 8000
	}
	if cfg.Weather.SourceURL == "" {
		cfg.Weather.SourceURL = "https://open-meteo.com/"
	}
	if cfg.Search.BaseURL == "" {
		cfg.Search.BaseURL = "https://api.search.brave.com"
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 3
	}
	if cfg.Search.Freshness == "" {
		cfg.Search.Freshness = "day"
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 8000
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 86400
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// overrideFromEnv keeps compatibility with the flat variable names the service
// was historically deployed with.
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("ACCESS_PIN"); v != "" {
		cfg.Server.AccessPIN = v
	}
	if v := os.Getenv("BRAVE_KEY"); v != "" {
		cfg.Search.Key = v
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	if cfg.Weather.ForecastTimeout <= 0 {
		return fmt.Errorf("weather.forecast_timeout must be positive")
	}
	if cfg.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive")
	}
	if cfg.Cache.Enabled && cfg.Cache.Redis.Address == "" {
		return fmt.Errorf("cache.redis.address required when cache is enabled")
	}
	return nil
}
