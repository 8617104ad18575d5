package domain

import "time"

// Customer is keyed by phone number: the first order from a number creates
// the record, later orders reuse it as-is. Name and address are never
// refreshed on repeat orders.
type Customer struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
