package repo

import (
	"context"

	"github.com/suyeshs/tandoor-pos/internal/domain"
)

// CatalogRepository reads the venue menu owned by the external catalog.
// UpdateProductStatusByProductID is the single write-back used when the
// kitchen declares an item fully out.
type CatalogRepository interface {
	GetByVenueID(ctx context.Context, venueID string) (*domain.Menu, error)
	FindMenuByProductID(ctx context.Context, productID string) (*domain.Menu, error)
	UpdateProductStatusByProductID(ctx context.Context, productID string, status string) error
}
