// internal/clients/geocode/client.go
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"assist-server/internal/common/cache"
	apperrors "assist-server/internal/common/errors"
	httpx "assist-server/internal/common/http"
	"assist-server/internal/common/logger"
	"assist-server/internal/common/metrics"

	"github.com/redis/go-redis/v9"
)

// Location is the best geocoding match for a place name.
type Location struct {
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Label joins the non-empty location parts into the display name.
func (l *Location) Label() string {
	label := l.Name
	if l.Admin1 != "" {
		label += ", " + l.Admin1
	}
	if l.Country != "" {
		label += ", " + l.Country
	}
	return label
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	config *Config
	client *httpx.Client
	cache  *cache.RedisCache
	logger logger.Logger
}

// NewClient creates a geocoding client. The cache may be nil, in which case
// every lookup goes to the API.
func NewClient(config *Config, redisCache *cache.RedisCache, log logger.Logger) *Client {
	return &Client{
		config: config,
		client: httpx.NewClient(config.Timeout),
		cache:  redisCache,
		logger: log.With(map[string]interface{}{
			"client": "geocode",
		}),
	}
}

// Lookup resolves a canonical place name to at most one location. A miss is
// (nil, nil); only transport and decode problems are errors.
func (c *Client) Lookup(ctx context.Context, place string) (*Location, error) {
	if loc, ok := c.cacheGet(ctx, place); ok {
		return loc, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.buildURL(place), nil)
	if err != nil {
		return nil, apperrors.NewGeocodeFailedError(err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.CollaboratorCalls.WithLabelValues("geocode", "error").Inc()
		return nil, apperrors.NewGeocodeFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.CollaboratorCalls.WithLabelValues("geocode", "error").Inc()
		return nil, apperrors.NewGeocodeFailedError(fmt.Errorf("geocoding API returned %d", resp.StatusCode))
	}

	var apiResponse struct {
		Results []struct {
			Name      string  `json:"name"`
			Admin1    string  `json:"admin1"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		metrics.CollaboratorCalls.WithLabelValues("geocode", "error").Inc()
		return nil, apperrors.NewGeocodeFailedError(fmt.Errorf("decode error: %v", err))
	}

	metrics.CollaboratorCalls.WithLabelValues("geocode", "success").Inc()

	if len(apiResponse.Results) == 0 {
		return nil, nil
	}

	r := apiResponse.Results[0]
	loc := &Location{
		Name:      r.Name,
		Admin1:    r.Admin1,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
	c.cacheSet(ctx, place, loc)
	return loc, nil
}

func (c *Client) buildURL(place string) string {
	params := url.Values{}
	params.Add("name", place)
	params.Add("count", "1")
	params.Add("language", "ru")
	params.Add("format", "json")
	return c.config.BaseURL + "/v1/search?" + params.Encode()
}

func (c *Client) cacheGet(ctx context.Context, place string) (*Location, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, cacheKey(place))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("geocode cache read failed", map[string]interface{}{
				"place": place,
				"error": err.Error(),
			})
		}
		metrics.GeocodeCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}
	var loc Location
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		metrics.GeocodeCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.GeocodeCacheHits.WithLabelValues("hit").Inc()
	return &loc, true
}

func (c *Client) cacheSet(ctx context.Context, place string, loc *Location) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(loc)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKey(place), string(raw)); err != nil {
		c.logger.Warn("geocode cache write failed", map[string]interface{}{
			"place": place,
			"error": err.Error(),
		})
	}
}

func cacheKey(place string) string {
	return "geocode:" + place
}
