package http

import (
	"net/http"
	"time"
)

// SessionCookieName carries the signed session token.
const SessionCookieName = "token"

// setSessionCookie stores the session token in an HTTP-only,
// same-site-strict cookie. Its lifetime must match the token's own
// expiry; the Secure flag is only set in production-like deployments so
// local development over plain HTTP keeps working.
func setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie instructs the browser to discard the session
// cookie. There is no server-side revocation: a stolen token stays
// valid until its natural expiry.
func clearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
