// internal/clients/search/client.go
package search

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

// Result is a single web search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type Config struct {
	BaseURL    string
	Key        string
	MaxResults int
	Freshness  string
	Timeout    time.Duration
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
			"client": "search",
		}),
	}
}

// Enabled reports whether a usable credential is configured. The Brave API
// rejects non-ASCII header values, so such keys count as absent.
func (c *Client) Enabled() bool {
	return keyUsable(c.config.Key)
}

func keyUsable(key string) bool {
	k := strings.TrimSpace(key)
	if k == "" {
		return false
	}
	for i := 0; i < len(k); i++ {
		if k[i] > 0x7F {
			return false
		}
	}
	return true
}

// Search runs a web search and returns up to MaxResults hits. When no usable
// credential is configured it returns the disabled configuration-gap error.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if !c.Enabled() {
		return nil, apperrors.NewSearchDisabledError()
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.buildURL(query), nil)
	if err != nil {
		return nil, apperrors.NewSearchFailedError(err)
	}
	req.Header.Set("X-Subscription-Token", strings.TrimSpace(c.config.Key))

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.CollaboratorCalls.WithLabelValues("search", "error").Inc()
		if ctx.Err() == context.DeadlineExceeded ||
			errors.Is(err, context.DeadlineExceeded) ||
			strings.Contains(err.Error(), "Client.Timeout") {
			return nil, apperrors.NewSearchTimeoutError()
		}
		return nil, apperrors.NewSearchFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.CollaboratorCalls.WithLabelValues("search", "error").Inc()
		return nil, apperrors.NewSearchFailedError(fmt.Errorf("search API returned %d", resp.StatusCode))
	}

	var apiResponse struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Snippet     string `json:"snippet"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		metrics.CollaboratorCalls.WithLabelValues("search", "error").Inc()
		return nil, apperrors.NewSearchFailedError(fmt.Errorf("decode error: %v", err))
	}

	metrics.CollaboratorCalls.WithLabelValues("search", "success").Inc()

	results := make([]Result, 0, len(apiResponse.Web.Results))
	for _, r := range apiResponse.Web.Results {
		snippet := r.Snippet
		if snippet == "" {
			snippet = r.Description
		}
		results = append(results, Result{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: snippet,
		})
		if len(results) >= c.config.MaxResults {
			break
		}
	}

	c.logger.Info("web search completed", map[string]interface{}{
		"query":       query,
		"resultCount": len(results),
	})

	return results, nil
}

func (c *Client) buildURL(query string) string {
	params := url.Values{}
	params.Add("q", query)
	params.Add("count", strconv.Itoa(c.config.MaxResults))
	params.Add("freshness", c.config.Freshness)
	return c.config.BaseURL + "/res/v1/web/search?" + params.Encode()
}
