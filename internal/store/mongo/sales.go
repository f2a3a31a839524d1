package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/suyeshs/tandoor-pos/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SaleRepository struct {
	collection *mongo.Collection
}

func NewSaleRepository(db *mongo.Database) *SaleRepository {
	return &SaleRepository{
		collection: db.Collection(collSales),
	}
}

func (r *SaleRepository) Create(ctx context.Context, sale *domain.SaleRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if sale.ID.IsZero() {
		sale.ID = primitive.NewObjectID()
	}
	if sale.SettledAt.IsZero() {
		sale.SettledAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, sale); err != nil {
		return fmt.Errorf("failed to create sale record: %w", err)
	}

	return nil
}

func (r *SaleRepository) GetByInvoice(ctx context.Context, tenantID, invoiceNo string) (*domain.SaleRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sale domain.SaleRecord
	err := r.collection.FindOne(ctx, bson.M{"tenant_id": tenantID, "invoice_no": invoiceNo}).Decode(&sale)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("sale not found")
		}
		return nil, fmt.Errorf("failed to get sale record: %w", err)
	}

	return &sale, nil
}
