package application

import (
	"context"

	"github.com/jackc/pgx/v5"

	catalogdom "github.com/tokopasar/storefront/internal/catalog/domain"
	customerdom "github.com/tokopasar/storefront/internal/customer/domain"
	"github.com/tokopasar/storefront/internal/order/domain"
)

// TxRunner owns the transaction lifecycle: acquire a connection within the
// wait bound, begin, run fn under the transaction deadline, commit or roll
// back. Every repository write in fn shares the one pgx.Tx.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

type StoreFinder interface {
	FindActiveStore(ctx context.Context, name string) (catalogdom.Store, error)
}

// StockReserver decrements stock for every cart item or fails the whole set.
// The returned line items carry the database price snapshot.
type StockReserver interface {
	Reserve(ctx context.Context, tx pgx.Tx, items []domain.CartItem) ([]domain.ProductOrder, error)
}

type CustomerDirectory interface {
	FindOrCreate(ctx context.Context, tx pgx.Tx, c customerdom.Customer) (customerdom.Customer, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx pgx.Tx, o *domain.Order) error
	ListAll(ctx context.Context) ([]domain.Order, error)
	GetStatus(ctx context.Context, id string) (domain.OrderStatus, error)
	// UpdateStatus moves id from one status to another; it fails with
	// domain.ErrStaleStatus when the row is no longer in `from`.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) error
}

// EventEnqueuer appends an event to the transactional outbox as part of the
// ambient transaction; the relay publishes it only after commit.
type EventEnqueuer interface {
	Enqueue(ctx context.Context, tx pgx.Tx, aggregateType, aggregateID, eventType string,
		payload []byte, headers map[string]string, traceparent string) error
}
