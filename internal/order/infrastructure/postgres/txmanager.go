package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tokopasar/storefront/internal/order/domain"
)

const (
	// The checkout transaction must finish within TxTimeout of starting;
	// waiting for a free pooled connection gives up after AcquireWait.
	TxTimeout   = 20 * time.Second
	AcquireWait = 18 * time.Second
)

// TxManager owns begin/commit/rollback for the checkout flow; repositories
// only ever see the pgx.Tx it hands them.
type TxManager struct {
	log         *slog.Logger
	pool        *pgxpool.Pool
	acquireWait time.Duration
	txTimeout   time.Duration
}

func NewTxManager(log *slog.Logger, pool *pgxpool.Pool) *TxManager {
	return &TxManager{
		log:         log,
		pool:        pool,
		acquireWait: AcquireWait,
		txTimeout:   TxTimeout,
	}
}

func (m *TxManager) InTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	acquireCtx, cancel := context.WithTimeout(ctx, m.acquireWait)
	conn, err := m.pool.Acquire(acquireCtx)
	cancel()
	if err != nil {
		return mapTimeout(fmt.Errorf("acquire connection: %w", err))
	}
	defer conn.Release()

	txCtx, cancelTx := context.WithTimeout(ctx, m.txTimeout)
	defer cancelTx()

	tx, err := conn.BeginTx(txCtx, pgx.TxOptions{})
	if err != nil {
		return mapTimeout(fmt.Errorf("begin transaction: %w", err))
	}
	// Roll back on a context no longer subject to the expired deadline so an
	// aborted transaction is still cleaned up.
	defer func() {
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(txCtx, tx); err != nil {
		return mapTimeout(err)
	}
	if err := tx.Commit(txCtx); err != nil {
		return mapTimeout(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

func mapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTransactionTimeout, err)
	}
	return err
}
