package middleware

import (
	"net/http"

	"revorz/internal/config"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxSessionIDKey = "session_id" // string
)

// cookieからセッションIDを取り出してcontextへ入れる。
// cookieが無ければここで発行する（セッション層の仕事）。
// 以降の解決はSessionIDによる読み取りだけで、副作用は無い。
func Session(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string

			cookie, err := c.Cookie(cfg.SessionCookieName)
			if err == nil && cookie.Value != "" {
				sid = cookie.Value
			} else {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     cfg.SessionCookieName,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Secure:   cfg.GoEnv == "prod",
				})
			}

			c.Set(CtxSessionIDKey, sid)
			return next(c)
		}
	}
}

// contextからセッションIDを取り出す。無ければok=false。
func SessionID(c echo.Context) (string, bool) {
	raw := c.Get(CtxSessionIDKey)
	sid, ok := raw.(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}
