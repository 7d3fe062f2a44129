package context

import (
	"net/http"
	"strings"
	"time"
)

const (
	// SessionCookieName is the cookie that carries the session id.
	SessionCookieName = "session_id"
	// SessionCookieMaxAge is 30 days.
	SessionCookieMaxAge = 30 * 24 * time.Hour
)

// SetSessionCookie adds a Set-Cookie header for id, replacing an earlier session cookie
// written during the same response.
func SetSessionCookie(w http.ResponseWriter, id string, secure bool) {
	writeSessionCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(SessionCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ExpireSessionCookie tells the client to drop the session cookie.
func ExpireSessionCookie(w http.ResponseWriter, secure bool) {
	writeSessionCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeSessionCookie(w http.ResponseWriter, cookie *http.Cookie) {
	header := w.Header()
	var kept []string
	for _, v := range header.Values("Set-Cookie") {
		if !strings.HasPrefix(v, SessionCookieName+"=") {
			kept = append(kept, v)
		}
	}
	header.Del("Set-Cookie")
	for _, v := range kept {
		header.Add("Set-Cookie", v)
	}

	http.SetCookie(w, cookie)
}
