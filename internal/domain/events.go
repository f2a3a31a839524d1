package domain

import (
	"fmt"
	"time"
)

const (
	EventKOTCreated   = "kot.created"
	EventBillPrinted  = "bill.printed"
	EventSaleSettled  = "sale.settled"
	EventItemOutStock = "stock.item_out"
)

// TableKey renders a table number in the shared order-key form used by KDS
// status reports and broadcasts ("T7"); pickup sessions use their order
// number ("P3") directly.
func TableKey(tableNo int) string { return fmt.Sprintf("T%d", tableNo) }

// KitchenOrder is the normalized ticket handed to the kitchen display and
// printer collaborators: the lines of a single KOT plus enough context to
// render it as a fresh ticket or a running-order addendum.
type KitchenOrder struct {
	TenantID       string     `json:"tenant_id"`
	TerminalID     string     `json:"terminal_id"`
	OrderKey       string     `json:"order_key"`
	OrderType      OrderType  `json:"order_type"`
	TableNo        int        `json:"table_no,omitempty"`
	OrderNo        string     `json:"order_no,omitempty"`
	KOTNumber      int        `json:"kot_number"`
	IsRunningOrder bool       `json:"is_running_order"`
	Lines          []CartLine `json:"lines"`
	CreatedAt      time.Time  `json:"created_at"`
}

type KitchenStatus string

const (
	KitchenPending    KitchenStatus = "pending"
	KitchenInProgress KitchenStatus = "in_progress"
	KitchenReady      KitchenStatus = "ready"
	KitchenCompleted  KitchenStatus = "completed"
)

// KitchenStatusEvent is reported back by the KDS per order key and ticket.
// The core only ever reads these to gate billing.
type KitchenStatusEvent struct {
	TenantID   string        `json:"tenant_id"`
	OrderKey   string        `json:"order_key"`
	KOTNumber  int           `json:"kot_number"`
	Status     KitchenStatus `json:"status"`
	ReadyCount int           `json:"ready_count"`
	PrepCount  int           `json:"prep_count"`
	Timestamp  time.Time     `json:"timestamp"`
}

// StockEvent is the kitchen's "item unavailable" signal. PortionsOut of -1
// means fully out.
type StockEvent struct {
	EventType   string    `json:"event_type"`
	ItemID      string    `json:"item_id,omitempty"`
	ItemName    string    `json:"item_name"`
	PortionsOut int       `json:"portions_out"`
	OrderKey    string    `json:"order_key,omitempty"`
	TableNo     int       `json:"table_no,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// BillSnapshot is the immutable view of a session frozen for payment.
type BillSnapshot struct {
	InvoiceNo     string     `bson:"invoice_no" json:"invoice_no"`
	OrderKey      string     `bson:"order_key" json:"order_key"`
	Channel       string     `bson:"channel" json:"channel"`
	Items         []CartLine `bson:"items" json:"items"`
	Subtotal      float64    `bson:"subtotal" json:"subtotal"`
	Tax           float64    `bson:"tax" json:"tax"`
	Discount      float64    `bson:"discount" json:"discount"`
	PackingCharge float64    `bson:"packing_charge" json:"packing_charge"`
	Total         float64    `bson:"total" json:"total"`
	GeneratedAt   time.Time  `bson:"generated_at" json:"generated_at"`
}

const (
	ChannelPOS    = "pos"
	ChannelPickup = "pickup"
)
