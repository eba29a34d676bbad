package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pequenospassos/storefront/internal/auth"
)

const tokenTTL = 7 * 24 * time.Hour

// AuthHandler issues admin tokens against env-configured credentials. The
// rest of the system only ever sees the resulting "caller is admin"
// predicate via auth.RequireAdmin.
type AuthHandler struct {
	JWTSecret  string
	AdminEmail string
	AdminPass  string
}

func (h *AuthHandler) Register(r *chi.Mux) {
	r.Post("/auth/login", h.login)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin(h.JWTSecret))
		r.Get("/auth/me", h.me)
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Email != h.AdminEmail || req.Password != h.AdminPass {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token, err := auth.Sign(h.JWTSecret, req.Email, auth.RoleAdmin, tokenTTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  map[string]string{"email": req.Email, "role": auth.RoleAdmin},
	})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]string{"email": claims.Email, "role": claims.Role},
	})
}
