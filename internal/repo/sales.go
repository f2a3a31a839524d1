package repo

import (
	"context"

	"github.com/suyeshs/tandoor-pos/internal/domain"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *domain.SaleRecord) error
	GetByInvoice(ctx context.Context, tenantID, invoiceNo string) (*domain.SaleRecord, error)
}
