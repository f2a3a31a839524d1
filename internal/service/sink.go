package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/suyeshs/tandoor-pos/internal/domain"
)

// TicketSink receives every committed ticket, bill and settlement. The sync
// broadcaster and any other observer (printer, UI push) sit behind it; calls
// must not block and must never return an error to the session managers.
type TicketSink interface {
	TicketCreated(ko domain.KitchenOrder)
	BillGenerated(bill domain.BillSnapshot)
	SaleSettled(sale domain.SaleRecord)
}

// NopSink is used when a terminal runs without any sync or printer wiring.
type NopSink struct{}

func (NopSink) TicketCreated(domain.KitchenOrder) {}
func (NopSink) BillGenerated(domain.BillSnapshot) {}
func (NopSink) SaleSettled(domain.SaleRecord)     {}

// newInvoiceNo generates an invoice number locally so billing never blocks
// on a remote allocator.
func newInvoiceNo() string {
	suffix := uuid.NewString()[:8]
	return "INV-" + time.Now().Format("20060102") + "-" + suffix
}
