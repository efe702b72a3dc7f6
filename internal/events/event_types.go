package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderPlaced   EventType = "order_placed"
	EventSweetCreated  EventType = "sweet_created"
	EventStockDepleted EventType = "stock_depleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	OrderID    string  `json:"order_id"`
	Username   string  `json:"username"`
	SweetID    string  `json:"sweet_id"`
	SweetName  string  `json:"sweet_name"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

// SweetCreatedPayload payload.
type SweetCreatedPayload struct {
	SweetID string  `json:"sweet_id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Stock   int     `json:"stock"`
}

// StockDepletedPayload payload.
type StockDepletedPayload struct {
	SweetID   string `json:"sweet_id"`
	SweetName string `json:"sweet_name"`
}
