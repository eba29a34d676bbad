package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pequenospassos/storefront/internal/auth"
	"github.com/pequenospassos/storefront/internal/catalog"
)

type ProductsHandler struct {
	Repo      *catalog.Repo
	Log       *zap.Logger
	JWTSecret string
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.list)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin(h.JWTSecret))
		r.Post("/products", h.create)
		r.Put("/products/{id}", h.update)
		r.Delete("/products/{id}", h.delete)
	})
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Repo.List(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	if ps == nil {
		ps = []catalog.Product{}
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in catalog.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if in.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if in.PriceCents < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price_cents must be non-negative"})
		return
	}
	for _, s := range in.Sizes {
		if s.Quantity < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "size quantity must be non-negative"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Repo.Create(ctx, in)
	if err != nil {
		writeError(w, err)
		return
	}
	h.Log.Info("product created", zap.String("product_id", p.ID), zap.String("name", p.Name))
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	var patch catalog.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if patch.PriceCents != nil && *patch.PriceCents < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price_cents must be non-negative"})
		return
	}
	if patch.Sizes != nil {
		for _, s := range *patch.Sizes {
			if s.Quantity < 0 {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "size quantity must be non-negative"})
				return
			}
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Repo.Update(ctx, chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
