package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tokopasar/storefront/internal/catalog/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) FindActiveStore(ctx context.Context, name string) (domain.Store, error) {
	var s domain.Store
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, is_deleted, created_at, updated_at
		FROM stores
		WHERE name = $1 AND is_deleted = FALSE
	`, name).Scan(&s.ID, &s.Name, &s.IsDeleted, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Store{}, domain.ErrStoreNotFound
	}
	if err != nil {
		return domain.Store{}, err
	}
	return s, nil
}

func (r *Repository) ListProducts(ctx context.Context, storeID string) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, store_id, name, description, image_url, price, price_base, stock, created_at, updated_at
		FROM products
		WHERE store_id = $1
		ORDER BY name
	`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	index := map[string]int{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.ImageURL,
			&p.Price, &p.PriceBase, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return products, nil
	}

	catRows, err := r.pool.Query(ctx, `
		SELECT pc.product_id, c.id, c.name, c.store_id
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		JOIN products p ON p.id = pc.product_id
		WHERE p.store_id = $1
	`, storeID)
	if err != nil {
		return nil, err
	}
	defer catRows.Close()

	for catRows.Next() {
		var productID string
		var c domain.Category
		if err := catRows.Scan(&productID, &c.ID, &c.Name, &c.StoreID); err != nil {
			return nil, err
		}
		if i, ok := index[productID]; ok {
			products[i].Categories = append(products[i].Categories, c)
		}
	}
	return products, catRows.Err()
}
