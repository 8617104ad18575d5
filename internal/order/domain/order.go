package domain

import (
	"fmt"
	"time"

	customerdom "github.com/tokopasar/storefront/internal/customer/domain"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// ParseStatus rejects anything outside the enum; admin input goes through
// here before it reaches the state machine.
func ParseStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// CanTransition encodes PENDING → PROCESSING → (COMPLETED | CANCELLED).
// Terminal states have no exits and nothing moves backwards.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	switch s {
	case StatusPending:
		return to == StatusProcessing
	case StatusProcessing:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

// ProductOrder is one line item. Quantity is immutable; UnitPrice is the
// product's price captured at order time.
type ProductOrder struct {
	ID          int64
	ProductID   string
	ProductName string
	UnitPrice   int64
	Quantity    int
}

func (p ProductOrder) Subtotal() int64 {
	return int64(p.Quantity) * p.UnitPrice
}

type Order struct {
	ID         string
	Number     int64
	StoreID    string
	StoreName  string
	CustomerID string
	Customer   customerdom.Customer
	Items      []ProductOrder
	Total      int64
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrder derives the total from the line items, so a stored order always
// satisfies total == sum(unit price × quantity).
func NewOrder(id, storeID, customerID string, items []ProductOrder) Order {
	var total int64
	for _, item := range items {
		total += int64(item.Quantity) * item.UnitPrice
	}
	now := time.Now().UTC()
	return Order{
		ID:         id,
		StoreID:    storeID,
		CustomerID: customerID,
		Items:      items,
		Total:      total,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
