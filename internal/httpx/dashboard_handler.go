package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pequenospassos/storefront/internal/auth"
	"github.com/pequenospassos/storefront/internal/orders"
	"github.com/pequenospassos/storefront/internal/redisx"
)

type DashboardHandler struct {
	Svc       *orders.Service
	Redis     *redis.Client
	Log       *zap.Logger
	JWTSecret string
}

func (h *DashboardHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin(h.JWTSecret))
		r.Get("/dashboard/summary", h.summary)
	})
}

func (h *DashboardHandler) summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, redisx.KeyDashboard).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	sum, err := h.Svc.Dashboard(ctx)
	if err != nil {
		h.Log.Error("dashboard aggregation failed", zap.Error(err))
		writeError(w, err)
		return
	}

	if h.Redis != nil {
		body, _ := json.Marshal(sum)
		_ = h.Redis.Set(ctx, redisx.KeyDashboard, body, redisx.TTLDashboard).Err()
	}
	writeJSON(w, http.StatusOK, sum)
}
