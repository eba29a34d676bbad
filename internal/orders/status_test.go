package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusDelivered, false},
		{StatusPending, StatusPreparing, false},
		{StatusApproved, StatusPreparing, true},
		{StatusApproved, StatusOutForDelivery, true},
		{StatusApproved, StatusDelivered, true},
		{StatusApproved, StatusCanceled, true},
		{StatusApproved, StatusPending, false},
		{StatusPreparing, StatusOutForDelivery, true},
		{StatusPreparing, StatusDelivered, true},
		{StatusPreparing, StatusCanceled, false},
		{StatusOutForDelivery, StatusDelivered, true},
		{StatusOutForDelivery, StatusApproved, false},
		{StatusDelivered, StatusCanceled, false},
		{StatusCanceled, StatusPending, false},
		{StatusCanceled, StatusApproved, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCanceled} {
		assert.True(t, ValidStatus(s), string(s))
	}
	assert.False(t, ValidStatus("SHIPPED"))
	assert.False(t, ValidStatus(""))
}

func TestRestocksOnCancel(t *testing.T) {
	assert.True(t, RestocksOnCancel(StatusPending))
	assert.True(t, RestocksOnCancel(StatusApproved))
	assert.False(t, RestocksOnCancel(StatusPreparing))
	assert.False(t, RestocksOnCancel(StatusDelivered))
	assert.False(t, RestocksOnCancel(StatusCanceled))
}
