// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Weather WeatherConfig `mapstructure:"weather"`
	Search  SearchConfig  `mapstructure:"search"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	AccessPIN   string `mapstructure:"access_pin"`
	PublicDir   string `mapstructure:"public_dir"`
	MaxBodySize int64  `mapstructure:"max_body_size"` // bytes
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// WeatherConfig holds settings for the Open-Meteo geocoding and forecast clients.
type WeatherConfig struct {
	GeocodeBaseURL  string `mapstructure:"geocode_base_url"`
	ForecastBaseURL string `mapstructure:"forecast_base_url"`
	GeocodeTimeout  int    `mapstructure:"geocode_timeout"`  // milliseconds
	ForecastTimeout int    `mapstructure:"forecast_timeout"` // milliseconds
	SourceURL       string `mapstructure:"source_url"`
}

// SearchConfig holds settings for the Brave web search client.
type SearchConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	Key        string `mapstructure:"key"`
	MaxResults int    `mapstructure:"max_results"`
	Freshness  string `mapstructure:"freshness"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
}

// CacheConfig holds settings for the optional geocode result cache.
type CacheConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	Redis   RedisConfig `mapstructure:"redis"`
	TTL     int         `mapstructure:"ttl"` // seconds
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
