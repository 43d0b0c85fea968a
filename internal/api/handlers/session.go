package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "sid"
)

// sessionID returns the caller's session id, the header taking priority over the cookie.
func sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return id
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// ensureSession returns the existing session id or starts a new one,
// echoing it back in both the header and the cookie.
func ensureSession(w http.ResponseWriter, r *http.Request) string {
	id := sessionID(r)
	if id == "" {
		id = uuid.NewString()
	}

	w.Header().Set(SessionHeader, id)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
