package domain

import "time"

// OrderStatus enumerates order lifecycle states. Orders are created as
// PENDING and no code path transitions them further; the field is kept for
// the stored contract.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is an append-only purchase record. Username and SweetName are
// snapshots taken at purchase time, not live joins, so the ledger stays
// stable when users or sweets are later renamed or deleted.
type Order struct {
	ID         string
	Username   string
	SweetName  string
	SweetID    string
	Quantity   int
	TotalPrice float64
	Status     OrderStatus
	CreatedAt  time.Time
}
