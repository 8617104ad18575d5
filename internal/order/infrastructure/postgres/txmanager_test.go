package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokopasar/storefront/internal/order/domain"
)

func TestMapTimeout(t *testing.T) {
	err := mapTimeout(fmt.Errorf("acquire connection: %w", context.DeadlineExceeded))
	require.ErrorIs(t, err, domain.ErrTransactionTimeout)

	plain := errors.New("relation does not exist")
	assert.Equal(t, plain, mapTimeout(plain))

	var stockErr *domain.InsufficientStockError
	wrapped := mapTimeout(&domain.InsufficientStockError{ProductName: "Kopi"})
	require.ErrorAs(t, wrapped, &stockErr)
}
