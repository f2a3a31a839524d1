package domain

import "time"

// TableSession is the open tab for one dine-in table. At most one session
// exists per table number; the session lives from opening the table until
// payment is recorded or the table is force-cleared.
type TableSession struct {
	TableNo     int         `bson:"table_no" json:"table_no"`
	Guests      int         `bson:"guests" json:"guests"`
	Order       Order       `bson:"order" json:"order"`
	StartedAt   time.Time   `bson:"started_at" json:"started_at"`
	KOTs        []KOTRecord `bson:"kots" json:"kots"`
	LastKOTAt   time.Time   `bson:"last_kot_at,omitempty" json:"last_kot_at,omitempty"`
	BillPrinted bool        `bson:"bill_printed" json:"bill_printed"`
	InvoiceNo   string      `bson:"invoice_no,omitempty" json:"invoice_no,omitempty"`
}

// Key is the cross-component identifier used for KDS status and broadcasts.
func (s *TableSession) Key() string { return TableKey(s.TableNo) }

type PickupStatus string

const (
	PickupStaging PickupStatus = "staging"
	PickupSent    PickupStatus = "sent"
	PickupBilled  PickupStatus = "billed"
	PickupClosed  PickupStatus = "closed"
)

// PickupSession mirrors TableSession for takeout orders, keyed by a generated
// short order number instead of a table number. Unlike tables it carries its
// lifecycle status explicitly.
type PickupSession struct {
	OrderNo      string       `bson:"order_no" json:"order_no"`
	CustomerName string       `bson:"customer_name,omitempty" json:"customer_name,omitempty"`
	Status       PickupStatus `bson:"status" json:"status"`
	Order        Order        `bson:"order" json:"order"`
	StartedAt    time.Time    `bson:"started_at" json:"started_at"`
	KOTs         []KOTRecord  `bson:"kots" json:"kots"`
	LastKOTAt    time.Time    `bson:"last_kot_at,omitempty" json:"last_kot_at,omitempty"`
	BillPrinted  bool         `bson:"bill_printed" json:"bill_printed"`
	InvoiceNo    string       `bson:"invoice_no,omitempty" json:"invoice_no,omitempty"`
}

func (s *PickupSession) Key() string { return s.OrderNo }
