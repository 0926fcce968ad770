package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"gstinvoice/logger"
	"gstinvoice/models"
	"gstinvoice/utils"
)

// AuthHandler guards the app behind a single shared password when PasswordHash is set.
type AuthHandler struct {
	PasswordHash string
	Sessions     *SessionManager
	Renderer     *utils.Renderer
}

type loginPage struct {
	Flashes []models.Flash
}

func (h *AuthHandler) Enabled() bool {
	return h.PasswordHash != ""
}

// LoginPage serves the password prompt
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.showLogin(w, r, http.StatusOK)
}

// Login checks the password against the bcrypt hash
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.Enabled() {
		http.Redirect(w, r, "/new-invoice", http.StatusSeeOther)
		return
	}

	password := r.FormValue("password")
	if err := bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(password)); err != nil {
		log := logger.FromContext(r.Context())
		log.Warn().Str("remote", r.RemoteAddr).Msg("login failed")
		h.Sessions.Flash(w, r, "error", "Incorrect password")
		h.showLogin(w, r, http.StatusUnauthorized)
		return
	}

	sess := h.Sessions.Load(w, r)
	sess.Authenticated = true
	h.Sessions.Save(sess)
	http.Redirect(w, r, "/new-invoice", http.StatusSeeOther)
}

// Logout clears the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Destroy(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// RequireLogin redirects unauthenticated callers to the login page.
func (h *AuthHandler) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Enabled() && !h.Sessions.Load(w, r).Authenticated {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *AuthHandler) showLogin(w http.ResponseWriter, r *http.Request, status int) {
	page := loginPage{Flashes: h.Sessions.PopFlashes(w, r)}
	renderPage(w, r, func(w http.ResponseWriter) error {
		return h.Renderer.Page(w, "login", page)
	}, status)
}
