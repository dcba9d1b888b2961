// internal/server/pin.go
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const pinCookieName = "pin"

const pinFormHTML = `<!doctype html><html><body style="font-family:-apple-system,system-ui,Segoe UI,Roboto,Arial,sans-serif;text-align:center;padding:40px;">
<h2>Введите PIN для доступа</h2>
<form method="POST" action="/pin">
  <input type="password" name="pin" style="padding:8px;font-size:16px"/>
  <button type="submit" style="padding:8px 16px;font-size:16px">Войти</button>
</form>
</body></html>`

// PINGuard gates every route behind a shared cookie PIN. With no PIN
// configured the middleware is a no-op. Liveness and metrics endpoints are
// always reachable so probes and scrapes keep working behind the gate.
func PINGuard(pin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pin == "" {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if path == "/healthz" || path == "/metrics" {
			c.Next()
			return
		}

		if c.Request.Method == http.MethodGet && path == "/logout" {
			c.SetCookie(pinCookieName, "", -1, "/", "", false, true)
			c.Header("Content-Type", "text/html; charset=utf-8")
			c.String(http.StatusOK, "<h2>Вы вышли</h2><a href='/'>На главную</a>")
			c.Abort()
			return
		}

		if cookie, err := c.Cookie(pinCookieName); err == nil && cookie == pin {
			c.Next()
			return
		}

		if c.Request.Method == http.MethodPost && path == "/pin" {
			if c.PostForm(pinCookieName) == pin {
				c.SetCookie(pinCookieName, pin, 0, "/", "", false, true)
				c.Redirect(http.StatusFound, "/")
				c.Abort()
				return
			}
			c.Header("Content-Type", "text/html; charset=utf-8")
			c.String(http.StatusUnauthorized, "<h2>Неверный PIN</h2><a href='/'>Попробовать снова</a>")
			c.Abort()
			return
		}

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, pinFormHTML)
		c.Abort()
	}
}
