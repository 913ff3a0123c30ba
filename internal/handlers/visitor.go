package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bhushan0206/HeartAndHands/internal/session"
	"github.com/gorilla/sessions"
)

const (
	visitorCookie = "visitor-session"
	visitorIDKey  = "id"
)

// Visitors maps the signed visitor cookie onto an in-memory session.
type Visitors struct {
	Cookies sessions.Store
	Manager *session.Manager
}

// Session returns the caller's session, issuing a new cookie when the
// request carries none or names a session that no longer exists.
func (v *Visitors) Session(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	cookie, err := v.Cookies.Get(r, visitorCookie)
	if err != nil {
		slog.Debug("Discarding unreadable visitor cookie", "error", err)
	}
	id, _ := cookie.Values[visitorIDKey].(string)

	s, err := v.Manager.Get(id)
	if err != nil {
		return nil, err
	}
	if s.ID != id {
		cookie.Values[visitorIDKey] = s.ID
		if err := cookie.Save(r, w); err != nil {
			slog.Error("Failed to save visitor cookie", "error", err)
		}
	}
	return s, nil
}
