package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateEmptyLedger(t *testing.T) {
	sum := Aggregate(nil)
	assert.Equal(t, 0, sum.ApprovedCount)
	assert.Equal(t, 0, sum.RevenueCents)
	assert.Empty(t, sum.BestSellerID)
	assert.Empty(t, sum.BestSellerName)
	assert.Equal(t, 0, sum.BestSellerQty)
}

func TestAggregateCountsRevenueAndBestSeller(t *testing.T) {
	rows := []ApprovedOrder{
		{ID: "o1", TotalCents: 3000, Items: []SoldItem{
			{ProductID: "productA", ProductName: "Tênis Azul", Qty: 3},
		}},
		{ID: "o2", TotalCents: 5000, Items: []SoldItem{
			{ProductID: "productA", ProductName: "Tênis Azul", Qty: 2},
			{ProductID: "productB", ProductName: "Sandália", Qty: 1},
		}},
	}

	sum := Aggregate(rows)
	assert.Equal(t, 2, sum.ApprovedCount)
	assert.Equal(t, 8000, sum.RevenueCents)
	assert.Equal(t, "productA", sum.BestSellerID)
	assert.Equal(t, "Tênis Azul", sum.BestSellerName)
	assert.Equal(t, 5, sum.BestSellerQty)
}

func TestAggregateTieBreaksToSmallestProductID(t *testing.T) {
	rows := []ApprovedOrder{
		{ID: "o1", TotalCents: 1000, Items: []SoldItem{
			{ProductID: "b-product", Qty: 2},
			{ProductID: "a-product", Qty: 2},
		}},
	}

	sum := Aggregate(rows)
	assert.Equal(t, "a-product", sum.BestSellerID)
	assert.Equal(t, 2, sum.BestSellerQty)
}
