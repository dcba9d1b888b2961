// internal/assist/service.go
package assist

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	apperrors "assist-server/internal/common/errors"
	"assist-server/internal/common/logger"
	"assist-server/internal/common/metrics"
	"assist-server/internal/common/observability"
	"assist-server/internal/nlp/intent"
	"assist-server/internal/nlp/normalizer"
	"assist-server/internal/nlp/place"
	"assist-server/internal/nlp/style"
)

type Config struct {
	// SourceURL is the canonical weather source appended to forecast replies.
	SourceURL string
}

// Service is the dispatcher: it classifies a query and routes it to the
// matching handler, calling out to collaborators as needed.
type Service struct {
	config   *Config
	geocoder Geocoder
	forecast Forecaster
	searcher Searcher
	obs      *observability.Observability
	logger   logger.Logger
	now      func() time.Time
}

// NewService builds the dispatcher. obs may be nil, in which case only the
// Prometheus collectors are updated.
func NewService(config *Config, geocoder Geocoder, forecaster Forecaster, searcher Searcher, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		config:   config,
		geocoder: geocoder,
		forecast: forecaster,
		searcher: searcher,
		obs:      obs,
		logger: log.With(map[string]interface{}{
			"component": "assist",
		}),
		now: time.Now,
	}
}

// SearchEnabled reports whether the web-search collaborator has a usable
// credential. Used by the capability probe.
func (s *Service) SearchEnabled() bool {
	return s.searcher.Enabled()
}

// Handle processes one query end to end and returns the response envelope
// together with the HTTP status to serve it with. Collaborator failures are
// caught here, logged, and converted to the generic error envelope; internal
// error text never reaches the caller.
func (s *Service) Handle(ctx context.Context, query, styleLock string) (*Envelope, int) {
	started := s.now()

	query = strings.TrimSpace(query)
	if query == "" {
		stdErr := apperrors.NewEmptyQueryError()
		metrics.AssistRequestsFailed.WithLabelValues(string(intent.Empty), string(stdErr.Code)).Inc()
		return &Envelope{
			Reply:  replyEmptyQuery,
			Style:  style.Formal,
			Intent: intent.Empty,
			Meta:   s.meta(ProviderLocal, false, started),
		}, http.StatusBadRequest
	}

	normalized := normalizer.Normalize(query)
	tag := intent.Classify(normalized)
	st := style.Resolve(style.DetectAuto(query), styleLock)

	s.logger.Info("handling query", map[string]interface{}{
		"intent": string(tag),
		"style":  string(st),
		"query":  query,
	})

	var (
		env *Envelope
		err error
	)

	switch tag {
	case intent.Greeting, intent.HowAreYou, intent.Thanks, intent.Bye,
		intent.SmallTalk, intent.GeneralChat:
		env = s.canned(tag, st, started)
	case intent.Time:
		env = s.localTime(tag, st, started)
	case intent.Weather:
		env, err = s.weather(ctx, query, tag, st, started)
	default:
		env, err = s.webSearch(ctx, query, normalized, tag, st, started)
	}

	if err != nil {
		return s.errorEnvelope(tag, err, started)
	}

	metrics.AssistRequestsTotal.WithLabelValues(string(tag), env.Meta.Provider).Inc()
	metrics.AssistRequestDuration.WithLabelValues(string(tag)).Observe(s.now().Sub(started).Seconds())
	if s.obs != nil {
		s.obs.RecordRequest(ctx, string(tag), env.Meta.Provider)
		s.obs.RecordDuration(ctx, s.now().Sub(started), string(tag))
	}
	return env, http.StatusOK
}

func (s *Service) canned(tag intent.Intent, st style.Style, started time.Time) *Envelope {
	return &Envelope{
		Reply:  cannedReplies[tag][st],
		Style:  st,
		Intent: tag,
		Meta:   s.meta(ProviderLocal, true, started),
	}
}

func (s *Service) localTime(tag intent.Intent, st style.Style, started time.Time) *Envelope {
	return &Envelope{
		Reply:  timeReply(st, s.now().Format("15:04")),
		Style:  st,
		Intent: tag,
		Meta:   s.meta(ProviderLocal, true, started),
	}
}

func (s *Service) weather(ctx context.Context, query string, tag intent.Intent, st style.Style, started time.Time) (*Envelope, error) {
	raw, ok := place.Extract(query)
	if !ok {
		// Clarifying prompt, no collaborator involved.
		return &Envelope{
			Reply:  askPlaceReply(st),
			Style:  st,
			Intent: tag,
			Meta:   s.meta(ProviderLocal, true, started),
		}, nil
	}

	// Alias passes after Tidy: country to capital first, then city form.
	resolved := raw
	if capital, found := place.CountryCapital(resolved); found {
		resolved = capital
	}
	if canonical, found := place.CityForm(resolved); found {
		resolved = canonical
	}

	loc, err := s.geocoder.Lookup(ctx, resolved)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		// Single retry through the country capital, when applicable.
		if capital, found := place.CountryCapital(resolved); found {
			loc, err = s.geocoder.Lookup(ctx, capital)
			if err != nil {
				return nil, err
			}
		}
	}
	if loc == nil {
		s.logMiss(tag, apperrors.NewLocationNotFoundError(resolved))
		return &Envelope{
			Reply:  placeNotFoundReply(st, resolved),
			Style:  st,
			Intent: tag,
			Meta:   s.meta(ProviderOpenMeteo, false, started),
		}, nil
	}

	snap, err := s.forecast.Today(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		Reply:  weatherReply(st, loc.Label(), snap) + "\nИсточник: " + s.config.SourceURL,
		Style:  st,
		Intent: tag,
		Meta:   s.meta(ProviderOpenMeteo, true, started),
		Actions: []Action{
			{Type: "open_url", URL: s.config.SourceURL},
		},
	}, nil
}

func (s *Service) webSearch(ctx context.Context, query, normalized string, tag intent.Intent, st style.Style, started time.Time) (*Envelope, error) {
	results, err := s.searcher.Search(ctx, normalized)
	if err != nil {
		var stdErr *apperrors.StandardError
		if errors.As(err, &stdErr) && stdErr.Code == apperrors.ErrCodeSearchDisabled {
			return &Envelope{
				Reply:  replySearchOff,
				Style:  st,
				Intent: tag,
				Meta:   s.meta(ProviderBrave, false, started),
			}, nil
		}
		return nil, err
	}

	if len(results) == 0 {
		return &Envelope{
			Reply:  nothingFoundReply(query),
			Style:  st,
			Intent: tag,
			Meta:   s.meta(ProviderBrave, false, started),
		}, nil
	}

	top := results[0]
	return &Envelope{
		Reply:  top.Snippet + "\nПодробнее: " + top.URL,
		Style:  st,
		Intent: tag,
		Meta:   s.meta(ProviderBrave, true, started),
		Actions: []Action{
			{Type: "open_url", URL: top.URL},
		},
	}, nil
}

// logMiss records a valid "no answer" outcome. Resolution misses stay at
// HTTP 200 and are never counted as failures.
func (s *Service) logMiss(tag intent.Intent, missErr *apperrors.StandardError) {
	if !apperrors.IsResolutionMiss(missErr.Code) {
		return
	}
	s.logger.Info("query resolved to no answer", map[string]interface{}{
		"intent":    string(tag),
		"errorCode": string(missErr.Code),
		"details":   missErr.Details,
	})
}

// errorEnvelope converts any collaborator failure into the generic error
// reply. Full detail is logged server-side only.
func (s *Service) errorEnvelope(tag intent.Intent, err error, started time.Time) (*Envelope, int) {
	errorCode := "UNKNOWN_ERROR"
	message := "request failed"
	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) {
		errorCode = string(stdErr.Code)
		if apperrors.IsCollaboratorFailure(stdErr.Code) {
			message = "collaborator call failed"
		}
	}

	s.logger.Error(message, map[string]interface{}{
		"intent":    string(tag),
		"error":     err.Error(),
		"errorCode": errorCode,
	})
	metrics.AssistRequestsFailed.WithLabelValues(string(tag), errorCode).Inc()

	return &Envelope{
		Reply:  replyServerError,
		Style:  style.Formal,
		Intent: intent.Error,
		Meta:   s.meta(ProviderLocal, false, started),
	}, http.StatusInternalServerError
}

func (s *Service) meta(provider string, ok bool, started time.Time) Meta {
	return Meta{
		Provider: provider,
		OK:       ok,
		TookMs:   s.now().Sub(started).Milliseconds(),
	}
}
