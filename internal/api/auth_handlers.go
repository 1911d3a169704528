package api

import (
	"log"
	"net/http"

	"rentaride/internal/auth"
	"rentaride/internal/service"
	"rentaride/internal/session"
)

type AuthHandler struct {
	Service  *service.AuthService
	Sessions session.Store
}

func NewAuthHandler(svc *service.AuthService, sessions session.Store) *AuthHandler {
	return &AuthHandler{Service: svc, Sessions: sessions}
}

func (h *AuthHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PageResponse{Page: "index", Messages: popFlashes(r, h.Sessions)})
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PageResponse{Page: "login", Messages: popFlashes(r, h.Sessions)})
}

func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PageResponse{Page: "signup", Messages: popFlashes(r, h.Sessions)})
}

func (h *AuthHandler) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PageResponse{Page: "forgot_password", Messages: popFlashes(r, h.Sessions)})
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Signup(
		r.FormValue("username"),
		r.FormValue("email"),
		r.FormValue("phone"),
		r.FormValue("password"),
	)
	if err != nil {
		flashAndRedirect(w, r, h.Sessions, "/signup", "error", err.Error())
		return
	}

	// New accounts are logged in right away.
	token := auth.SessionTokenFrom(r.Context())
	if err := h.Sessions.SetUser(r.Context(), token, user.ID); err != nil {
		log.Printf("Error binding session after signup: %v", err)
	}
	flashAndRedirect(w, r, h.Sessions, "/vehicle-selection", "success", "Account created successfully! You are now logged in.")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Login(r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		flashAndRedirect(w, r, h.Sessions, "/login", "error", "Invalid username or password")
		return
	}

	token := auth.SessionTokenFrom(r.Context())
	if err := h.Sessions.SetUser(r.Context(), token, user.ID); err != nil {
		log.Printf("Error binding session after login: %v", err)
		flashAndRedirect(w, r, h.Sessions, "/login", "error", "Could not start session")
		return
	}
	http.Redirect(w, r, "/vehicle-selection", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := auth.SessionTokenFrom(r.Context())
	if token != "" {
		if err := h.Sessions.Destroy(r.Context(), token); err != nil {
			log.Printf("Error destroying session: %v", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RequestPasswordReset(r.FormValue("email")); err != nil {
		flashAndRedirect(w, r, h.Sessions, "/login", "error", err.Error())
		return
	}
	flashAndRedirect(w, r, h.Sessions, "/login", "success", "Password reset instructions have been sent to your email.")
}
