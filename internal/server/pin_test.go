// internal/server/pin_test.go
package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPINGuard_DisabledWithoutPIN(t *testing.T) {
	srv := newTestServer(serverOptions{})

	rec := doJSON(t, srv, http.MethodGet, "/api/meta", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "online")
}

func TestPINGuard_ServesFormWithoutCookie(t *testing.T) {
	srv := newTestServer(serverOptions{pin: "1234"})

	rec := doJSON(t, srv, http.MethodGet, "/api/meta", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Введите PIN для доступа")
	assert.NotContains(t, rec.Body.String(), "online")
}

func TestPINGuard_BypassesProbeEndpoints(t *testing.T) {
	srv := newTestServer(serverOptions{pin: "1234"})

	rec := doJSON(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)

	rec = doJSON(t, srv, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPINGuard_Login(t *testing.T) {
	srv := newTestServer(serverOptions{pin: "1234"})

	form := url.Values{"pin": {"1234"}}
	req := httptest.NewRequest(http.MethodPost, "/pin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "pin", cookies[0].Name)
	assert.Equal(t, "1234", cookies[0].Value)
}

func TestPINGuard_LoginWrongPIN(t *testing.T) {
	srv := newTestServer(serverOptions{pin: "1234"})

	form := url.Values{"pin": {"0000"}}
	req := httptest.NewRequest(http.MethodPost, "/pin", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Неверный PIN")
}

func TestPINGuard_CookieGrantsAccess(t *testing.T) {
	srv := newTestServer(serverOptions{pin: "1234"})

	req := httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	req.AddCookie(&http.Cookie{Name: "pin", Value: "1234"})
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "online")
}

func TestPINGuard_WrongCookieServesForm(t *testing.T) {
	srv := newTestServer(serverOptions{pin: "1234"})

	req := httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	req.AddCookie(&http.Cookie{Name: "pin", Value: "0000"})
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Введите PIN для доступа")
}

func TestPINGuard_Logout(t *testing.T) {
	srv := newTestServer(serverOptions{pin: "1234"})

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "pin", Value: "1234"})
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Вы вышли")

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "pin", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
