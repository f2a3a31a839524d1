package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SaleRecord is persisted once per settled session.
type SaleRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TenantID      string             `bson:"tenant_id" json:"tenant_id"`
	InvoiceNo     string             `bson:"invoice_no" json:"invoice_no"`
	Bill          BillSnapshot       `bson:"bill" json:"bill"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"`
	StaffID       string             `bson:"staff_id" json:"staff_id"`
	Channel       string             `bson:"channel" json:"channel"`
	SettledAt     time.Time          `bson:"settled_at" json:"settled_at"`
}
