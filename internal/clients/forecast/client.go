// internal/clients/forecast/client.go
package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "assist-server/internal/common/errors"
	httpx "assist-server/internal/common/http"
	"assist-server/internal/common/logger"
	"assist-server/internal/common/metrics"
)

// Snapshot holds the current weather and today's daily aggregates. Daily
// fields are nil when the API omits them.
type Snapshot struct {
	WeatherCode int
	Temperature *float64
	WindSpeed   *float64
	TempMax     *float64
	TempMin     *float64
	PrecipProb  *int
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	config *Config
	client *httpx.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	return &Client{
		config: config,
		client: httpx.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{
			"client": "forecast",
		}),
	}
}

// Today fetches the current weather plus today's min/max temperature and
// precipitation probability. The call is abandoned once the configured
// deadline elapses and surfaces as a timeout error.
func (c *Client) Today(ctx context.Context, lat, lon float64) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.buildURL(lat, lon), nil)
	if err != nil {
		return nil, apperrors.NewForecastFailedError(err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.CollaboratorCalls.WithLabelValues("forecast", "error").Inc()
		if ctx.Err() == context.DeadlineExceeded ||
			errors.Is(err, context.DeadlineExceeded) ||
			strings.Contains(err.Error(), "Client.Timeout") {
			return nil, apperrors.NewForecastTimeoutError()
		}
		return nil, apperrors.NewForecastFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.CollaboratorCalls.WithLabelValues("forecast", "error").Inc()
		return nil, apperrors.NewForecastFailedError(fmt.Errorf("forecast API returned %d", resp.StatusCode))
	}

	var apiResponse struct {
		CurrentWeather struct {
			Temperature *float64 `json:"temperature"`
			WindSpeed   *float64 `json:"windspeed"`
			WeatherCode int      `json:"weathercode"`
		} `json:"current_weather"`
		Daily struct {
			TempMax    []float64 `json:"temperature_2m_max"`
			TempMin    []float64 `json:"temperature_2m_min"`
			PrecipProb []int     `json:"precipitation_probability_max"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		metrics.CollaboratorCalls.WithLabelValues("forecast", "error").Inc()
		return nil, apperrors.NewForecastFailedError(fmt.Errorf("decode error: %v", err))
	}

	metrics.CollaboratorCalls.WithLabelValues("forecast", "success").Inc()

	snapshot := &Snapshot{
		WeatherCode: apiResponse.CurrentWeather.WeatherCode,
		Temperature: apiResponse.CurrentWeather.Temperature,
		WindSpeed:   apiResponse.CurrentWeather.WindSpeed,
	}
	if len(apiResponse.Daily.TempMax) > 0 {
		snapshot.TempMax = &apiResponse.Daily.TempMax[0]
	}
	if len(apiResponse.Daily.TempMin) > 0 {
		snapshot.TempMin = &apiResponse.Daily.TempMin[0]
	}
	if len(apiResponse.Daily.PrecipProb) > 0 {
		snapshot.PrecipProb = &apiResponse.Daily.PrecipProb[0]
	}
	return snapshot, nil
}

func (c *Client) buildURL(lat, lon float64) string {
	params := url.Values{}
	params.Add("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Add("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Add("current_weather", "true")
	params.Add("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max")
	params.Add("timezone", "auto")
	return c.config.BaseURL + "/v1/forecast?" + params.Encode()
}
