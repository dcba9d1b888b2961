// internal/server/handlers_test.go
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"assist-server/internal/assist"
	"assist-server/internal/clients/forecast"
	"assist-server/internal/clients/geocode"
	"assist-server/internal/clients/search"
	"assist-server/internal/common/config"
	apperrors "assist-server/internal/common/errors"
	"assist-server/internal/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGeocoder struct {
	locations map[string]*geocode.Location
}

func (g *fakeGeocoder) Lookup(_ context.Context, place string) (*geocode.Location, error) {
	return g.locations[place], nil
}

type fakeForecaster struct {
	snapshot *forecast.Snapshot
	err      error
}

func (f *fakeForecaster) Today(_ context.Context, _, _ float64) (*forecast.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

type fakeSearcher struct {
	enabled bool
	results []search.Result
}

func (s *fakeSearcher) Enabled() bool { return s.enabled }

func (s *fakeSearcher) Search(_ context.Context, _ string) ([]search.Result, error) {
	if !s.enabled {
		return nil, apperrors.NewSearchDisabledError()
	}
	return s.results, nil
}

type serverOptions struct {
	pin        string
	geocoder   *fakeGeocoder
	forecaster *fakeForecaster
	searcher   *fakeSearcher
}

func newTestServer(opts serverOptions) *Server {
	if opts.geocoder == nil {
		opts.geocoder = &fakeGeocoder{}
	}
	if opts.forecaster == nil {
		opts.forecaster = &fakeForecaster{}
	}
	if opts.searcher == nil {
		opts.searcher = &fakeSearcher{enabled: true}
	}

	cfg := &config.Config{}
	cfg.App.Environment = "test"
	cfg.Server.Port = 3000
	cfg.Server.AccessPIN = opts.pin
	cfg.Server.MaxBodySize = 64 * 1024
	cfg.Weather.SourceURL = "https://open-meteo.com/"

	log := logger.NewNop()
	service := assist.NewService(
		&assist.Config{SourceURL: cfg.Weather.SourceURL},
		opts.geocoder, opts.forecaster, opts.searcher, nil, log,
	)
	return New(cfg, service, log)
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) assist.Envelope {
	t.Helper()
	var env assist.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(serverOptions{})

	rec := doJSON(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["time"])
}

func TestMeta(t *testing.T) {
	srv := newTestServer(serverOptions{searcher: &fakeSearcher{enabled: true}})
	rec := doJSON(t, srv, http.MethodGet, "/api/meta", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, true, body["web_search_enabled"])

	srv = newTestServer(serverOptions{searcher: &fakeSearcher{enabled: false}})
	rec = doJSON(t, srv, http.MethodGet, "/api/meta", "")
	body = map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["web_search_enabled"])
}

func TestAssist_Greeting(t *testing.T) {
	srv := newTestServer(serverOptions{})

	rec := doJSON(t, srv, http.MethodPost, "/api/assist", `{"query": "Привет"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "GREETING", string(env.Intent))
	assert.Equal(t, "friendly", string(env.Style))
	assert.Equal(t, "Йо! 👋 Рад тебя видеть 😎", env.Reply)
	assert.Equal(t, "local", env.Meta.Provider)
	assert.True(t, env.Meta.OK)
}

func TestAssist_StyleLock(t *testing.T) {
	srv := newTestServer(serverOptions{})

	rec := doJSON(t, srv, http.MethodPost, "/api/assist", `{"query": "Привет", "styleLock": "formal"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "formal", string(env.Style))
	assert.Equal(t, "Здравствуйте!", env.Reply)
}

func TestAssist_EmptyQuery(t *testing.T) {
	srv := newTestServer(serverOptions{})

	rec := doJSON(t, srv, http.MethodPost, "/api/assist", `{"query": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "EMPTY", string(env.Intent))
	assert.Equal(t, "Пустой запрос.", env.Reply)
	assert.False(t, env.Meta.OK)
}

func TestAssist_SchemaValidation(t *testing.T) {
	srv := newTestServer(serverOptions{})

	tests := []struct {
		name string
		body string
	}{
		{"not json", `not json at all`},
		{"query wrong type", `{"query": 42}`},
		{"missing query", `{"styleLock": "formal"}`},
		{"unknown field", `{"query": "привет", "bogus": 1}`},
		{"bad styleLock value", `{"query": "привет", "styleLock": "shouty"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/assist", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "invalid request body")
		})
	}
}

func TestAssist_WeatherEndToEnd(t *testing.T) {
	temp := 21.4
	wind := 3.2
	srv := newTestServer(serverOptions{
		geocoder: &fakeGeocoder{locations: map[string]*geocode.Location{
			"москва": {Name: "Москва", Country: "Россия", Latitude: 55.75, Longitude: 37.62},
		}},
		forecaster: &fakeForecaster{snapshot: &forecast.Snapshot{
			WeatherCode: 0,
			Temperature: &temp,
			WindSpeed:   &wind,
		}},
	})

	rec := doJSON(t, srv, http.MethodPost, "/api/assist", `{"query": "какая погода в Москве?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "WEATHER", string(env.Intent))
	assert.Equal(t, "open-meteo", env.Meta.Provider)
	assert.True(t, env.Meta.OK)
	assert.Contains(t, env.Reply, "Москва, Россия")
	assert.Contains(t, env.Reply, "21°C")
	assert.Contains(t, env.Reply, "Источник: https://open-meteo.com/")
	require.Len(t, env.Actions, 1)
	assert.Equal(t, "open_url", env.Actions[0].Type)
}

func TestAssist_WeatherPlaceNotFound(t *testing.T) {
	srv := newTestServer(serverOptions{geocoder: &fakeGeocoder{}})

	rec := doJSON(t, srv, http.MethodPost, "/api/assist", `{"query": "погода в Хоббитании"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "WEATHER", string(env.Intent))
	assert.False(t, env.Meta.OK)
	assert.Contains(t, env.Reply, "Не нашёл локацию")
}

func TestAssist_ForecastTimeoutBecomesServerError(t *testing.T) {
	srv := newTestServer(serverOptions{
		geocoder: &fakeGeocoder{locations: map[string]*geocode.Location{
			"москва": {Name: "Москва", Country: "Россия", Latitude: 55.75, Longitude: 37.62},
		}},
		forecaster: &fakeForecaster{err: apperrors.NewForecastTimeoutError()},
	})

	rec := doJSON(t, srv, http.MethodPost, "/api/assist", `{"query": "погода в Москве"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "ERROR", string(env.Intent))
	assert.Equal(t, "Ошибка при обработке запроса.", env.Reply)
	assert.False(t, env.Meta.OK)
}

func TestAssist_SearchDisabled(t *testing.T) {
	srv := newTestServer(serverOptions{searcher: &fakeSearcher{enabled: false}})

	rec := doJSON(t, srv, http.MethodPost, "/api/assist", `{"query": "расскажи про марс"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "WEB_SEARCH", string(env.Intent))
	assert.Equal(t, "brave", env.Meta.Provider)
	assert.False(t, env.Meta.OK)
	assert.Contains(t, env.Reply, "Поиск временно недоступен")
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(serverOptions{})

	rec := doJSON(t, srv, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "test-id-123")
	echo := httptest.NewRecorder()
	srv.Engine().ServeHTTP(echo, req)
	assert.Equal(t, "test-id-123", echo.Header().Get("X-Request-ID"))
}
