// internal/assist/models.go
package assist

import (
	"context"

	"assist-server/internal/clients/forecast"
	"assist-server/internal/clients/geocode"
	"assist-server/internal/clients/search"
	"assist-server/internal/nlp/intent"
	"assist-server/internal/nlp/style"
)

// Provider identifies which collaborator served the answer.
const (
	ProviderLocal     = "local"
	ProviderOpenMeteo = "open-meteo"
	ProviderBrave     = "brave"
)

// Meta carries per-request bookkeeping in the response envelope.
type Meta struct {
	Provider string `json:"provider"`
	OK       bool   `json:"ok"`
	TookMs   int64  `json:"tookMs"`
}

// Action is a client-side follow-up the UI may offer.
type Action struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Envelope is the uniform reply structure returned for every processed query.
type Envelope struct {
	Reply   string        `json:"reply"`
	Style   style.Style   `json:"style"`
	Intent  intent.Intent `json:"intent"`
	Meta    Meta          `json:"meta"`
	Actions []Action      `json:"actions,omitempty"`
}

// Geocoder resolves a canonical place name to at most one location.
type Geocoder interface {
	Lookup(ctx context.Context, place string) (*geocode.Location, error)
}

// Forecaster fetches the current weather snapshot for coordinates.
type Forecaster interface {
	Today(ctx context.Context, lat, lon float64) (*forecast.Snapshot, error)
}

// Searcher runs a bounded web search.
type Searcher interface {
	Enabled() bool
	Search(ctx context.Context, query string) ([]search.Result, error)
}
