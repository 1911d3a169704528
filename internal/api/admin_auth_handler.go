package api

import (
	"encoding/json"
	"net/http"

	"rentaride/internal/auth"
	"rentaride/internal/service"
)

type AdminAuthHandler struct {
	Service   *service.AuthService
	JWTSecret string
}

func NewAdminAuthHandler(svc *service.AuthService, jwtSecret string) *AdminAuthHandler {
	return &AdminAuthHandler{Service: svc, JWTSecret: jwtSecret}
}

// Login exchanges admin credentials for a bearer token for the admin API.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Service.AdminLogin(req.Username, req.Password)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.SignAdminToken(h.JWTSecret, user.ID, user.Username)
	if err != nil {
		http.Error(w, "Could not issue token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, AdminLoginResponse{Token: token})
}
