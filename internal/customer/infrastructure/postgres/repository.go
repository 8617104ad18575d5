package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tokopasar/storefront/internal/customer/domain"
)

type Repository struct {
	log *slog.Logger
}

func NewRepository(log *slog.Logger) *Repository {
	return &Repository{log: log}
}

// FindOrCreate runs inside the caller's transaction. An existing record wins
// over the incoming fields; ON CONFLICT DO NOTHING plus a re-read keeps two
// concurrent first orders from one phone number down to a single row.
func (r *Repository) FindOrCreate(ctx context.Context, tx pgx.Tx, c domain.Customer) (domain.Customer, error) {
	existing, err := r.findByPhone(ctx, tx, c.PhoneNumber)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Customer{}, fmt.Errorf("look up customer: %w", err)
	}

	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	ct, err := tx.Exec(ctx, `
		INSERT INTO customers (id, name, email, phone_number, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (phone_number) DO NOTHING
	`, c.ID, c.Name, c.Email, c.PhoneNumber, c.Address, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	if ct.RowsAffected() == 1 {
		return c, nil
	}

	// Lost the race to a concurrent insert; the committed row wins.
	existing, err = r.findByPhone(ctx, tx, c.PhoneNumber)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("re-read customer: %w", err)
	}
	return existing, nil
}

func (r *Repository) findByPhone(ctx context.Context, tx pgx.Tx, phone string) (domain.Customer, error) {
	var c domain.Customer
	err := tx.QueryRow(ctx, `
		SELECT id, name, email, phone_number, address, created_at, updated_at
		FROM customers
		WHERE phone_number = $1
	`, phone).Scan(&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
