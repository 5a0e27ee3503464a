package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/courtside/internal/services/auth"
	"github.com/mcoot/courtside/internal/web/middleware"
	"github.com/mcoot/courtside/internal/web/templates/layout"
	"github.com/mcoot/courtside/internal/web/templates/pages"
)

const (
	invalidCredentialsMessage = "Invalid username or password."
	registeredMessage         = "Registration successful. You can now log in."
	loggedOutMessage          = "You have been logged out."
	defaultLandingPath        = "/players"
)

// AuthHandler handles login, registration and logout
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		http.Redirect(w, r, defaultLandingPath, http.StatusSeeOther)
		return
	}

	render(w, r, pages.Login(pages.LoginData{
		PageData: pageData(r, "Log in"),
		Next:     r.URL.Query().Get("next"),
	}))
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		http.Redirect(w, r, defaultLandingPath, http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderLoginFailure(w, r, "", "")
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	next := r.PostFormValue("next")

	result, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Error("login failed", slog.String("error", err.Error()))
		}
		h.renderLoginFailure(w, r, username, next)
		return
	}

	h.setSessionCookie(w, result.Token)
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// RegisterPage renders the registration form
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		http.Redirect(w, r, defaultLandingPath, http.StatusSeeOther)
		return
	}

	render(w, r, pages.Register(pages.RegisterData{
		PageData: pageData(r, "Register"),
	}))
}

// Register handles registration form submission.
// A registered user still has to log in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		http.Redirect(w, r, defaultLandingPath, http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderRegisterForm(w, r, "", nil, errorNotice("Invalid form data."))
		return
	}

	username := strings.TrimSpace(r.PostFormValue(auth.FieldUsername))
	_, err := h.authService.Register(r.Context(),
		username,
		r.PostFormValue(auth.FieldPassword),
		r.PostFormValue(auth.FieldPasswordConfirm),
	)
	if err != nil {
		var validationErr *auth.ValidationError
		if errors.As(err, &validationErr) {
			h.renderRegisterForm(w, r, username, validationErr.Fields)
			return
		}
		h.logger.Error("registration failed", slog.String("error", err.Error()))
		h.renderRegisterForm(w, r, username, nil, errorNotice("Registration failed, please try again."))
		return
	}

	redirectWithFlash(w, r, flashSuccess, registeredMessage, "/login")
}

// Logout ends the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), middleware.SessionToken(r)); err != nil {
		h.logger.Warn("failed to delete session", slog.String("error", err.Error()))
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	redirectWithFlash(w, r, flashInfo, loggedOutMessage, "/login")
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.authService.SessionDuration().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderLoginFailure(w http.ResponseWriter, r *http.Request, username, next string) {
	render(w, r, pages.Login(pages.LoginData{
		PageData: pageData(r, "Log in", errorNotice(invalidCredentialsMessage)),
		Username: username,
		Next:     next,
	}))
}

func (h *AuthHandler) renderRegisterForm(w http.ResponseWriter, r *http.Request, username string, fieldErrors map[string]string, notices ...layout.FlashMessage) {
	render(w, r, pages.Register(pages.RegisterData{
		PageData:    pageData(r, "Register", notices...),
		Username:    username,
		FieldErrors: fieldErrors,
	}))
}

// safeNext only follows local paths free of control bytes; anything else
// lands on the players list
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return defaultLandingPath
	}
	for i := 0; i < len(next); i++ {
		if next[i] < 0x20 || next[i] == 0x7f {
			return defaultLandingPath
		}
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return defaultLandingPath
	}
	return next
}
