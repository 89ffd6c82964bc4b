package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
)

// NewSessionStore returns the signed cookie store backing browser sessions.
// secure marks the cookie HTTPS-only; plain-HTTP deployments must pass false or
// browsers drop the session.
func NewSessionStore(secret []byte, secure bool, maxAge int) sessions.Store {
	store := cookie.NewStore(secret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}
