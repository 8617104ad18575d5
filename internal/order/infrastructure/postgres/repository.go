package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tokopasar/storefront/internal/order/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// Create inserts the order and its line items in the caller's transaction
// and fills in the generated display number, line item ids and timestamps.
func (r *Repository) Create(ctx context.Context, tx pgx.Tx, o *domain.Order) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO orders (id, store_id, customer_id, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING number
	`, o.ID, o.StoreID, o.CustomerID, o.Total, o.Status, o.CreatedAt, o.UpdatedAt).Scan(&o.Number)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for _, item := range o.Items {
		batch.Queue(`
			INSERT INTO product_orders (order_id, product_id, quantity)
			VALUES ($1, $2, $3)
			RETURNING id
		`, o.ID, item.ProductID, item.Quantity)
	}
	results := tx.SendBatch(ctx, batch)
	for i := range o.Items {
		if err := results.QueryRow().Scan(&o.Items[i].ID); err != nil {
			_ = results.Close()
			return fmt.Errorf("insert line item for %s: %w", o.Items[i].ProductID, err)
		}
	}
	return results.Close()
}

// ListAll returns orders of non-deleted stores, newest first, each with its
// customer, store name and line items.
func (r *Repository) ListAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id, o.number, o.store_id, s.name, o.customer_id, o.total, o.status,
		       o.created_at, o.updated_at,
		       c.name, c.email, c.phone_number, c.address
		FROM orders o
		JOIN stores s ON s.id = o.store_id
		JOIN customers c ON c.id = o.customer_id
		WHERE s.is_deleted = FALSE
		ORDER BY o.number DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	index := map[string]int{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Number, &o.StoreID, &o.StoreName, &o.CustomerID,
			&o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt,
			&o.Customer.Name, &o.Customer.Email, &o.Customer.PhoneNumber, &o.Customer.Address); err != nil {
			return nil, err
		}
		o.Customer.ID = o.CustomerID
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	itemRows, err := r.pool.Query(ctx, `
		SELECT po.order_id, po.id, po.product_id, p.name, p.price, po.quantity
		FROM product_orders po
		JOIN products p ON p.id = po.product_id
		WHERE po.order_id = ANY($1)
		ORDER BY po.id
	`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var item domain.ProductOrder
		if err := itemRows.Scan(&orderID, &item.ID, &item.ProductID, &item.ProductName,
			&item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, itemRows.Err()
}

func (r *Repository) GetStatus(ctx context.Context, id string) (domain.OrderStatus, error) {
	var status domain.OrderStatus
	err := r.pool.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}
	return status, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
	`, id, from, to)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrStaleStatus
	}
	return nil
}
