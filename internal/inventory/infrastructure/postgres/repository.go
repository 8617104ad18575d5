package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/tokopasar/storefront/internal/order/domain"
)

// Repository is the stock ledger. It only ever touches products.stock, and
// only inside the checkout transaction handed to it.
type Repository struct {
	log *slog.Logger
}

func NewRepository(log *slog.Logger) *Repository {
	return &Repository{log: log}
}

// Reserve debits stock for every item or none. The decrement is conditional
// (`WHERE stock >= quantity`), so two checkouts racing over the last units
// cannot both pass: the loser's update hits zero rows and the whole
// transaction rolls back. Aggregate stock can never go negative.
func (r *Repository) Reserve(ctx context.Context, tx pgx.Tx, items []domain.CartItem) ([]domain.ProductOrder, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	type productRow struct {
		name  string
		price int64
		stock int
	}
	rows, err := tx.Query(ctx, `
		SELECT id, name, price, stock
		FROM products
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	defer rows.Close()

	products := make(map[string]productRow, len(items))
	for rows.Next() {
		var id string
		var p productRow
		if err := rows.Scan(&id, &p.name, &p.price, &p.stock); err != nil {
			return nil, err
		}
		products[id] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reserved := make([]domain.ProductOrder, 0, len(items))
	for _, item := range items {
		p, ok := products[item.ProductID]
		if !ok {
			return nil, domain.ErrProductNotFound
		}
		if p.stock < item.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductName: p.name,
				Requested:   item.Quantity,
				Available:   p.stock,
			}
		}
		reserved = append(reserved, domain.ProductOrder{
			ProductID:   item.ProductID,
			ProductName: p.name,
			UnitPrice:   p.price,
			Quantity:    item.Quantity,
		})
	}

	// The decrements are pipelined in one batch; results come back in queue
	// order so a zero-row update can still be blamed on its product.
	batch := &pgx.Batch{}
	for _, item := range reserved {
		batch.Queue(`
			UPDATE products
			SET stock = stock - $2, updated_at = now()
			WHERE id = $1 AND stock >= $2
		`, item.ProductID, item.Quantity)
	}
	results := tx.SendBatch(ctx, batch)
	var failed *domain.InsufficientStockError
	for _, item := range reserved {
		ct, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return nil, fmt.Errorf("decrement stock for %s: %w", item.ProductID, err)
		}
		if ct.RowsAffected() == 0 && failed == nil {
			failed = &domain.InsufficientStockError{
				ProductName: item.ProductName,
				Requested:   item.Quantity,
			}
		}
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("close stock batch: %w", err)
	}
	if failed != nil {
		return nil, failed
	}
	return reserved, nil
}
