package domain

import "time"

type OrderType string

const (
	OrderDineIn   OrderType = "dine_in"
	OrderTakeout  OrderType = "takeout"
	OrderDelivery OrderType = "delivery"
)

type OrderStatus string

const (
	OrderDraft     OrderStatus = "draft"
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// PaymentPending is the sentinel method carried by every order until the
// session is settled.
const PaymentPending = "pending"

type ItemSource string

const (
	ItemCatalog ItemSource = "catalog"
	ItemSpecial ItemSource = "special"
	ItemCustom  ItemSource = "custom"
)

// MenuItemRef is the resolved identity of a sellable item. Catalog items are
// resolved against the venue menu at cart-add time; specials and ad-hoc custom
// items carry their own price and are never looked up again downstream.
type MenuItemRef struct {
	ID       string     `bson:"id" json:"id"`
	Name     string     `bson:"name" json:"name"`
	Price    float64    `bson:"price" json:"price"`
	Category string     `bson:"category,omitempty" json:"category,omitempty"`
	Source   ItemSource `bson:"source" json:"source"`
}

type Modifier struct {
	ID    string  `bson:"id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

type ComboItem struct {
	ID         string  `bson:"id" json:"id"`
	Name       string  `bson:"name" json:"name"`
	PriceDelta float64 `bson:"price_delta" json:"price_delta"`
}

type ComboSelection struct {
	GroupID   string      `bson:"group_id" json:"group_id"`
	GroupName string      `bson:"group_name,omitempty" json:"group_name,omitempty"`
	Items     []ComboItem `bson:"items" json:"items"`
}

// CartLine is one selection, either staged in a cart or committed to an
// order. Subtotal is (item price + modifiers + combo deltas) * quantity and
// is recomputed on every mutation.
type CartLine struct {
	ID           string           `bson:"id" json:"id"`
	Item         MenuItemRef      `bson:"item" json:"item"`
	Quantity     int              `bson:"quantity" json:"quantity"`
	Modifiers    []Modifier       `bson:"modifiers,omitempty" json:"modifiers,omitempty"`
	Combos       []ComboSelection `bson:"combos,omitempty" json:"combos,omitempty"`
	Instructions string           `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Subtotal     float64          `bson:"subtotal" json:"subtotal"`
}

type Order struct {
	Type          OrderType   `bson:"type" json:"type"`
	TableNo       int         `bson:"table_no,omitempty" json:"table_no,omitempty"`
	Items         []CartLine  `bson:"items" json:"items"`
	Subtotal      float64     `bson:"subtotal" json:"subtotal"`
	Tax           float64     `bson:"tax" json:"tax"`
	Discount      float64     `bson:"discount" json:"discount"`
	PackingCharge float64     `bson:"packing_charge" json:"packing_charge"`
	Total         float64     `bson:"total" json:"total"`
	PaymentMethod string      `bson:"payment_method" json:"payment_method"`
	Status        OrderStatus `bson:"status" json:"status"`
	Notes         string      `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time   `bson:"created_at" json:"created_at"`
}

// KOTRecord is one kitchen order ticket: the line ids committed in a single
// send-to-kitchen call. Records are append-only and never edited.
type KOTRecord struct {
	Number    int       `bson:"number" json:"number"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	LineIDs   []string  `bson:"line_ids" json:"line_ids"`
	Sent      bool      `bson:"sent" json:"sent"`
}
