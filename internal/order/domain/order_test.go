package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderDerivesTotalFromItems(t *testing.T) {
	o := NewOrder("oid", "sid", "cid", []ProductOrder{
		{ProductID: "p1", UnitPrice: 1000, Quantity: 5},
		{ProductID: "p2", UnitPrice: 2500, Quantity: 2},
	})

	assert.Equal(t, int64(5*1000+2*2500), o.Total)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "sid", o.StoreID)
	assert.Equal(t, "cid", o.CustomerID)
	assert.False(t, o.CreatedAt.IsZero())
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "PROCESSING", "COMPLETED", "CANCELLED"} {
		got, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, OrderStatus(s), got)
	}

	_, err := ParseStatus("SHIPPED")
	require.ErrorIs(t, err, ErrInvalidStatus)
	_, err = ParseStatus("pending")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusCancelled, false},
		{StatusCompleted, StatusProcessing, false},
		{StatusCancelled, StatusPending, false},
		{StatusProcessing, StatusPending, false},
		{StatusPending, StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestSubtotal(t *testing.T) {
	item := ProductOrder{UnitPrice: 1500, Quantity: 3}
	assert.Equal(t, int64(4500), item.Subtotal())
}

func TestInsufficientStockErrorNamesProduct(t *testing.T) {
	err := &InsufficientStockError{ProductName: "Kopi Susu", Requested: 3, Available: 1}
	assert.Equal(t, "product Kopi Susu out of stock", err.Error())
}
