package domain

import "time"

// Store is one tenant storefront. Deleted stores keep their rows (soft
// delete) but are invisible to the ordering and browsing paths.
type Store struct {
	ID        string
	Name      string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Category struct {
	ID      string
	Name    string
	StoreID string
}

// Product prices are whole currency units (IDR has no subunit). Stock is the
// only field the order path mutates.
type Product struct {
	ID          string
	StoreID     string
	Name        string
	Description string
	ImageURL    string
	Price       int64
	PriceBase   int64
	Stock       int
	Categories  []Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
