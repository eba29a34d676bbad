package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pequenospassos/storefront/internal/orders"
)

func newDashboardRouter(store orders.Store) http.Handler {
	h := &DashboardHandler{
		Svc:       &orders.Service{Store: store, Log: zap.NewNop()},
		Log:       zap.NewNop(),
		JWTSecret: testSecret,
	}
	router := NewRouter()
	h.Register(router)
	return router
}

func TestDashboardSummary(t *testing.T) {
	store := &fakeStore{
		ApprovedOrdersFn: func(_ context.Context, limit int) ([]orders.ApprovedOrder, error) {
			return []orders.ApprovedOrder{
				{ID: "o1", TotalCents: 3000, Items: []orders.SoldItem{{ProductID: "a", ProductName: "Tênis", Qty: 3}}},
				{ID: "o2", TotalCents: 4000, Items: []orders.SoldItem{
					{ProductID: "a", ProductName: "Tênis", Qty: 2},
					{ProductID: "b", ProductName: "Sandália", Qty: 1},
				}},
			}, nil
		},
	}
	router := newDashboardRouter(store)

	w := doJSON(t, router, http.MethodGet, "/dashboard/summary", adminToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var sum orders.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.Equal(t, 2, sum.ApprovedCount)
	assert.Equal(t, 7000, sum.RevenueCents)
	assert.Equal(t, "a", sum.BestSellerID)
	assert.Equal(t, "Tênis", sum.BestSellerName)
	assert.Equal(t, 5, sum.BestSellerQty)
}

func TestDashboardEmptyLedger(t *testing.T) {
	store := &fakeStore{
		ApprovedOrdersFn: func(_ context.Context, limit int) ([]orders.ApprovedOrder, error) {
			return nil, nil
		},
	}
	router := newDashboardRouter(store)

	w := doJSON(t, router, http.MethodGet, "/dashboard/summary", adminToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var sum orders.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.Equal(t, 0, sum.ApprovedCount)
	assert.Equal(t, 0, sum.RevenueCents)
	assert.Empty(t, sum.BestSellerID)
}

func TestDashboardReadFailureDegradesToError(t *testing.T) {
	store := &fakeStore{
		ApprovedOrdersFn: func(_ context.Context, limit int) ([]orders.ApprovedOrder, error) {
			return nil, errors.New("connection refused")
		},
	}
	router := newDashboardRouter(store)

	w := doJSON(t, router, http.MethodGet, "/dashboard/summary", adminToken(t), nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body["error"])
}

func TestDashboardRequiresAdmin(t *testing.T) {
	router := newDashboardRouter(&fakeStore{})
	w := doJSON(t, router, http.MethodGet, "/dashboard/summary", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
