package domain

import "time"

// Sweet is a catalog item. Stock never goes below zero; the repository
// enforces that with a conditional decrement.
type Sweet struct {
	ID        string
	Name      string
	Price     float64
	Stock     int
	ImageURL  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
