// ABOUTME: Admin web UI package for managing the cafe site content
// ABOUTME: Provides password login, session cookies, CSRF protection, and the admin routes

package webadmin

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/2389/cafesite/internal/collection"
	"github.com/2389/cafesite/internal/session"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "cafesite_admin_session"

	// CSRFCookieName is the name of the CSRF token cookie
	CSRFCookieName = "cafesite_admin_csrf"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const csrfContextKey contextKey = "csrf_token"

// Admin handles admin UI routes and authentication
type Admin struct {
	service  *collection.Service
	sessions *session.Manager
	siteName string
	logger   *slog.Logger
}

// Config holds admin UI configuration
type Config struct {
	// SiteName is shown in the admin header
	SiteName string
}

// New creates a new Admin handler
func New(service *collection.Service, sessions *session.Manager, cfg Config) *Admin {
	return &Admin{
		service:  service,
		sessions: sessions,
		siteName: cfg.SiteName,
		logger:   slog.Default().With("component", "webadmin"),
	}
}

// RegisterRoutes registers all admin routes under /admin on r
func (a *Admin) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		// Public routes (no auth required)
		r.Get("/login", a.handleLoginPage)
		r.Post("/login", a.handleLogin)

		// Protected routes (auth required)
		r.Group(func(r chi.Router) {
			r.Use(a.requireAuth)

			r.Get("/", a.handleDashboard)
			r.Post("/logout", a.handleLogout)

			r.Get("/menu", a.handleMenuPage)
			r.Post("/menu", a.handleMenuSave)
			r.Get("/menu/{id}/delete", a.handleMenuDeleteConfirm)
			r.Post("/menu/{id}/delete", a.handleMenuDelete)

			r.Get("/gallery", a.handleGalleryPage)
			r.Post("/gallery", a.handleGallerySave)
			r.Get("/gallery/{id}/delete", a.handleGalleryDeleteConfirm)
			r.Post("/gallery/{id}/delete", a.handleGalleryDelete)

			r.Get("/news", a.handleNewsPage)
			r.Post("/news", a.handleNewsSave)
			r.Get("/news/{id}/delete", a.handleNewsDeleteConfirm)
			r.Post("/news/{id}/delete", a.handleNewsDelete)

			r.Get("/about", a.handleAboutPage)
			r.Post("/about", a.handleAboutSave)
			r.Post("/about/images", a.handleAboutImageAdd)
			r.Get("/about/images/{id}/delete", a.handleAboutImageDeleteConfirm)
			r.Post("/about/images/{id}/delete", a.handleAboutImageDelete)

			r.Get("/settings", a.handleSettingsPage)
			r.Post("/settings", a.handleSettingsSave)
			r.Post("/settings/password", a.handlePasswordChange)
		})
	})

	a.logger.Info("admin routes registered")
}

// requireAuth wraps a handler to require an open admin session
func (a *Admin) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.authenticated(r) {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authenticated reports whether the request carries a valid session cookie
func (a *Admin) authenticated(r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return false
	}
	gate := a.sessions.Gate(cookie.Value)
	return gate.Authenticated()
}

// getCSRFToken retrieves the CSRF token from the request context
func getCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfContextKey).(string)
	return token
}

// ensureCSRFToken generates a CSRF token if not present and adds it to context
func (a *Admin) ensureCSRFToken(w http.ResponseWriter, r *http.Request) (*http.Request, string) {
	// Try to get existing token from cookie
	cookie, err := r.Cookie(CSRFCookieName)
	if err == nil && cookie.Value != "" {
		ctx := context.WithValue(r.Context(), csrfContextKey, cookie.Value)
		return r.WithContext(ctx), cookie.Value
	}

	token, err := generateSecureToken(32)
	if err != nil {
		a.logger.Error("failed to generate CSRF token", "error", err)
		token = "" // Will fail validation, but won't crash
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/admin",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	ctx := context.WithValue(r.Context(), csrfContextKey, token)
	return r.WithContext(ctx), token
}

// validateCSRF checks the CSRF token from form against cookie
func (a *Admin) validateCSRF(r *http.Request) bool {
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	formToken := r.FormValue("csrf_token")
	if formToken == "" {
		formToken = r.Header.Get("X-CSRF-Token")
	}

	return formToken != "" && formToken == cookie.Value
}

// handleLoginPage renders the login page
func (a *Admin) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	// If already logged in, redirect to dashboard
	if a.authenticated(r) {
		http.Redirect(w, r, "/admin/", http.StatusSeeOther)
		return
	}

	_, csrfToken := a.ensureCSRFToken(w, r)
	a.renderLoginPage(w, http.StatusOK, "", csrfToken)
}

// handleLogin checks the submitted password and opens a session
func (a *Admin) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_, csrfToken := a.ensureCSRFToken(w, r)
		a.renderLoginPage(w, http.StatusBadRequest, "Invalid form data", csrfToken)
		return
	}

	if !a.validateCSRF(r) {
		_, csrfToken := a.ensureCSRFToken(w, r)
		a.renderLoginPage(w, http.StatusForbidden, "Invalid request, please try again", csrfToken)
		return
	}

	token, err := a.sessions.Login(r.Context(), r.FormValue("password"))
	if err != nil {
		_, csrfToken := a.ensureCSRFToken(w, r)
		if errors.Is(err, session.ErrWrongSecret) {
			a.renderLoginPage(w, http.StatusUnauthorized, "비밀번호가 올바르지 않습니다.", csrfToken)
			return
		}
		a.logger.Error("login failed", "error", err)
		a.renderLoginPage(w, http.StatusInternalServerError, "An error occurred", csrfToken)
		return
	}

	// No Expires: the session ends with the browser session or a restart
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/admin",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/admin/", http.StatusSeeOther)
}

// handleLogout ends the current session
func (a *Admin) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err == nil {
		// Validate CSRF - but don't block logout if invalid
		if !a.validateCSRF(r) {
			a.logger.Warn("logout request with invalid CSRF token")
		}
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		a.sessions.Logout(cookie.Value)
	}

	// Clear session cookie
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
	})

	// Clear CSRF cookie
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// handleDashboard lands on the first tab
func (a *Admin) handleDashboard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/menu", http.StatusSeeOther)
}

// Notices shown after a redirect, keyed by the notice query parameter
var notices = map[string]string{
	"created":  "추가되었습니다.",
	"updated":  "수정되었습니다.",
	"deleted":  "삭제되었습니다.",
	"saved":    "저장되었습니다.",
	"password": "비밀번호가 변경되었습니다.",
}

// redirectWithNotice sends the browser to path with a notice and optional extra query values
func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string, extra url.Values) {
	q := url.Values{}
	for k, v := range extra {
		q[k] = v
	}
	if notice != "" {
		q.Set("notice", notice)
	}
	u := url.URL{Path: path, RawQuery: q.Encode()}
	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

// forbidCSRF rejects a mutation whose CSRF token does not match
func (a *Admin) forbidCSRF(w http.ResponseWriter, r *http.Request) bool {
	if a.validateCSRF(r) {
		return false
	}
	a.logger.Warn("rejected admin request with invalid CSRF token", "path", r.URL.Path)
	http.Error(w, "Invalid CSRF token", http.StatusForbidden)
	return true
}

// serverError logs err and writes a generic 500
func (a *Admin) serverError(w http.ResponseWriter, what string, err error) {
	a.logger.Error("failed "+what, "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// generateSecureToken generates a cryptographically secure random token
func generateSecureToken(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
