package inventory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stock(pairs ...any) []SizeStock {
	out := make([]SizeStock, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, SizeStock{Size: pairs[i].(string), Quantity: pairs[i+1].(int)})
	}
	return out
}

func TestDecrement(t *testing.T) {
	sizes := stock("38", 5, "40", 3)

	updated, left, err := Decrement(sizes, "38", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, left)
	assert.Equal(t, stock("38", 3, "40", 3), updated)

	// input untouched
	assert.Equal(t, stock("38", 5, "40", 3), sizes)
}

func TestDecrementToZero(t *testing.T) {
	updated, left, err := Decrement(stock("42", 4), "42", 4)
	require.NoError(t, err)
	assert.Equal(t, 0, left)
	assert.Equal(t, 0, updated[0].Quantity)
}

func TestDecrementInsufficient(t *testing.T) {
	sizes := stock("42", 4)
	_, _, err := Decrement(sizes, "42", 10)

	var ise *InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, "42", ise.Size)
	assert.Equal(t, 10, ise.Requested)
	assert.Equal(t, 4, ise.Available)
	assert.Equal(t, 4, sizes[0].Quantity)
}

func TestDecrementUnknownSize(t *testing.T) {
	_, _, err := Decrement(stock("38", 5), "44", 1)
	assert.True(t, errors.Is(err, ErrUnknownSize))
}

func TestDecrementRejectsNonPositiveQty(t *testing.T) {
	for _, qty := range []int{0, -1} {
		_, _, err := Decrement(stock("38", 5), "38", qty)
		assert.Error(t, err, "qty %d", qty)
	}
}

func TestIncrementExisting(t *testing.T) {
	updated, now := Increment(stock("38", 1), "38", 4)
	assert.Equal(t, 5, now)
	assert.Equal(t, stock("38", 5), updated)
}

func TestIncrementCreatesMissingSizeInOrder(t *testing.T) {
	updated, now := Increment(stock("36", 2, "40", 1), "38", 3)
	assert.Equal(t, 3, now)
	assert.Equal(t, stock("36", 2, "38", 3, "40", 1), updated)
}

func TestIncrementNumericOrdering(t *testing.T) {
	// "8" sorts before "10" numerically even though it is larger as a string
	updated, _ := Increment(stock("10", 1), "8", 2)
	assert.Equal(t, stock("8", 2, "10", 1), updated)
}

func TestIncrementClampsNegativeQty(t *testing.T) {
	updated, now := Increment(stock("38", 5), "38", -3)
	assert.Equal(t, 5, now)
	assert.Equal(t, stock("38", 5), updated)

	_, created := Increment(nil, "40", -1)
	assert.Equal(t, 0, created)
}
