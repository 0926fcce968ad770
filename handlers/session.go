package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"gstinvoice/models"
	"gstinvoice/repository"
)

const sessionCookie = "gstinvoice_session"

// SessionManager binds a server side session to the browser through a cookie.
type SessionManager struct {
	Store  *repository.SessionStore
	Secure bool
}

type sessionIDKey struct{}

// Middleware resolves the session once per request so every later Load sees the same id.
func (m *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.resolve(w, r)
		ctx := context.WithValue(r.Context(), sessionIDKey{}, sess.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Load returns the caller's session, starting a new one when the cookie is absent or stale.
func (m *SessionManager) Load(w http.ResponseWriter, r *http.Request) models.Session {
	if id, ok := r.Context().Value(sessionIDKey{}).(string); ok {
		if sess, ok := m.Store.Get(id); ok {
			return sess
		}
		sess := models.Session{ID: id}
		m.Store.Save(sess)
		return sess
	}
	return m.resolve(w, r)
}

func (m *SessionManager) resolve(w http.ResponseWriter, r *http.Request) models.Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := m.Store.Get(c.Value); ok {
			return sess
		}
	}

	sess := models.Session{ID: uuid.NewString()}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	m.Store.Save(sess)
	return sess
}

func (m *SessionManager) Save(sess models.Session) {
	m.Store.Save(sess)
}

func (m *SessionManager) Destroy(w http.ResponseWriter, r *http.Request) {
	m.Store.Delete(m.Load(w, r).ID)
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
}

func (m *SessionManager) Flash(w http.ResponseWriter, r *http.Request, category, message string) {
	m.FlashLink(w, r, category, message, "")
}

func (m *SessionManager) FlashLink(w http.ResponseWriter, r *http.Request, category, message, link string) {
	sess := m.Load(w, r)
	sess.Flashes = append(sess.Flashes, models.Flash{Category: category, Message: message, Link: link})
	m.Store.Save(sess)
}

// PopFlashes returns the pending messages and clears them.
func (m *SessionManager) PopFlashes(w http.ResponseWriter, r *http.Request) []models.Flash {
	sess := m.Load(w, r)
	if len(sess.Flashes) == 0 {
		return nil
	}
	flashes := sess.Flashes
	sess.Flashes = nil
	m.Store.Save(sess)
	return flashes
}
