package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerdom "github.com/tokopasar/storefront/internal/customer/domain"
	orderdom "github.com/tokopasar/storefront/internal/order/domain"
)

func TestOrderConfirmation(t *testing.T) {
	order := orderdom.Order{
		ID:        "o-1",
		Number:    42,
		StoreName: "acme",
		Customer: customerdom.Customer{
			Name:        "Budi",
			Email:       "budi@example.com",
			PhoneNumber: "081234567890",
			Address:     "Jl. Merdeka 1",
		},
		Items: []orderdom.ProductOrder{
			{ProductName: "Kopi Susu", UnitPrice: 1000, Quantity: 5},
			{ProductName: "Roti Bakar", UnitPrice: 2500, Quantity: 2},
		},
		Total: 10000,
	}

	email, err := OrderConfirmation(order)
	require.NoError(t, err)

	assert.Equal(t, "budi@example.com", email.RecipientEmail)
	assert.Equal(t, "Order #42 confirmed - acme", email.Subject)
	assert.Contains(t, email.HTML, "Kopi Susu")
	assert.Contains(t, email.HTML, "Roti Bakar")
	assert.Contains(t, email.HTML, "10000")
	assert.Contains(t, email.HTML, "5000") // 5 × 1000 line subtotal
	assert.Contains(t, email.HTML, "Jl. Merdeka 1")
}

func TestOrderConfirmationEscapesHTML(t *testing.T) {
	order := orderdom.Order{
		Number:    1,
		StoreName: "acme",
		Customer:  customerdom.Customer{Name: "<script>alert(1)</script>", Email: "x@y.co"},
	}
	email, err := OrderConfirmation(order)
	require.NoError(t, err)
	assert.NotContains(t, email.HTML, "<script>")
}
