package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound: a cart item's product vanished between cart build
	// and checkout.
	ErrProductNotFound = errors.New("product does not exist")

	// ErrTransactionTimeout covers both the transaction deadline and the
	// connection-acquire bound.
	ErrTransactionTimeout = errors.New("order transaction timed out")

	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("unknown order status")
	ErrInvalidChange = errors.New("illegal status transition")
	ErrStaleStatus   = errors.New("order status changed concurrently")
)

// InsufficientStockError names the offending product; the storefront cart
// matches on the message to show its localized out-of-stock notice.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %s out of stock", e.ProductName)
}
