package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pequenospassos/storefront/internal/catalog"
	"github.com/pequenospassos/storefront/internal/inventory"
	"github.com/pequenospassos/storefront/internal/orders"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the domain error taxonomy onto HTTP statuses. Rejections
// carry enough detail to fix the input; anything unexpected becomes an opaque
// 500 so storage errors never leak.
func writeError(w http.ResponseWriter, err error) {
	var ve *orders.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Error()})
		return
	}

	var ise *inventory.InsufficientStockError
	if errors.As(err, &ise) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":      "insufficient stock",
			"product_id": ise.ProductID,
			"size":       ise.Size,
			"requested":  ise.Requested,
			"available":  ise.Available,
		})
		return
	}

	var ite *orders.InvalidTransitionError
	if errors.As(err, &ite) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": ite.Error(),
			"from":  string(ite.From),
			"to":    string(ite.To),
		})
		return
	}

	switch {
	case errors.Is(err, inventory.ErrProductNotFound):
		// the wrap carries the offending product id, which the caller needs
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, orders.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
