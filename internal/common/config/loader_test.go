// internal/common/config/loader_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	assert.Equal(t, "assist-server", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, int64(64<<10), cfg.Server.MaxBodySize)
	assert.Equal(t, "https://geocoding-api.open-meteo.com", cfg.Weather.GeocodeBaseURL)
	assert.Equal(t, "https://api.open-meteo.com", cfg.Weather.ForecastBaseURL)
	assert.Equal(t, 8000, cfg.Weather.ForecastTimeout)
	assert.Equal(t, "https://open-meteo.com/", cfg.Weather.SourceURL)
	assert.Equal(t, "https://api.search.brave.com", cfg.Search.BaseURL)
	assert.Equal(t, 3, cfg.Search.MaxResults)
	assert.Equal(t, "day", cfg.Search.Freshness)
	assert.Equal(t, 86400, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.Server.Port = 8080
	cfg.Search.MaxResults = 5
	applyDefaults(&cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Search.MaxResults)
}

func TestOverrideFromEnv(t *testing.T) {
	t.Setenv("PORT", "4321")
	t.Setenv("ACCESS_PIN", "7777")
	t.Setenv("BRAVE_KEY", "BSAtesttoken")

	var cfg Config
	applyDefaults(&cfg)
	overrideFromEnv(&cfg)

	assert.Equal(t, 4321, cfg.Server.Port)
	assert.Equal(t, "7777", cfg.Server.AccessPIN)
	assert.Equal(t, "BSAtesttoken", cfg.Search.Key)
}

func TestOverrideFromEnv_IgnoresBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	var cfg Config
	applyDefaults(&cfg)
	overrideFromEnv(&cfg)

	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestValidateConfig(t *testing.T) {
	valid := Config{}
	applyDefaults(&valid)
	require.NoError(t, validateConfig(&valid))

	badPort := valid
	badPort.Server.Port = -1
	assert.Error(t, validateConfig(&badPort))

	badTimeout := valid
	badTimeout.Weather.ForecastTimeout = 0
	assert.Error(t, validateConfig(&badTimeout))

	badResults := valid
	badResults.Search.MaxResults = 0
	assert.Error(t, validateConfig(&badResults))

	cacheNoAddr := valid
	cacheNoAddr.Cache.Enabled = true
	cacheNoAddr.Cache.Redis.Address = ""
	assert.Error(t, validateConfig(&cacheNoAddr))
}

func TestServerAddr(t *testing.T) {
	cfg := ServerConfig{Port: 3000}
	assert.Equal(t, ":3000", cfg.Addr())
}
