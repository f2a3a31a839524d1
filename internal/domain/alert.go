package domain

import "time"

// PortionsFullyOut is the sentinel portions-out count meaning the item is
// completely unavailable, not just low.
const PortionsFullyOut = -1

// OutOfStockAlert blocks the affected terminal until a staff member
// acknowledges it. Alerts never expire on their own.
type OutOfStockAlert struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"item_id,omitempty"`
	ItemName    string    `json:"item_name"`
	PortionsOut int       `json:"portions_out"`
	OrderKey    string    `json:"order_key,omitempty"`
	TableNo     int       `json:"table_no,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Acked       bool      `json:"acked"`
	AckedBy     string    `json:"acked_by,omitempty"`
	AckedAt     time.Time `json:"acked_at,omitempty"`
}
