// Package catalog resolves cart-add requests against the venue menu. The
// duck-typed item shapes of the terminals (catalog item, today's special,
// ad-hoc custom item) are unified into one MenuItemRef here, once, instead
// of being re-branched downstream.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/suyeshs/tandoor-pos/internal/domain"
	"github.com/suyeshs/tandoor-pos/internal/repo"
	"go.uber.org/zap"
)

var (
	ErrItemNotFound    = errors.New("item not found in catalog")
	ErrItemUnavailable = errors.New("item is not available")
	ErrUnknownModifier = errors.New("unknown modifier for item")
)

type Service struct {
	repo   repo.CatalogRepository
	logger *zap.SugaredLogger
}

func NewService(catalogRepo repo.CatalogRepository, logger *zap.SugaredLogger) *Service {
	return &Service{
		repo:   catalogRepo,
		logger: logger,
	}
}

// Resolve looks up a catalog item and its selected modifiers for a venue.
// Unavailable items are rejected here so no downstream component needs the
// availability flag.
func (s *Service) Resolve(ctx context.Context, venueID, itemID string, modifierIDs []string) (domain.MenuItemRef, []domain.Modifier, error) {
	menu, err := s.repo.GetByVenueID(ctx, venueID)
	if err != nil {
		return domain.MenuItemRef{}, nil, fmt.Errorf("failed to load menu: %w", err)
	}

	var product *domain.Product
	for i := range menu.Products {
		if menu.Products[i].ID == itemID {
			product = &menu.Products[i]
			break
		}
	}
	if product == nil {
		return domain.MenuItemRef{}, nil, ErrItemNotFound
	}
	if product.Status != domain.ProductAvailable {
		return domain.MenuItemRef{}, nil, ErrItemUnavailable
	}

	attrs := make(map[string]domain.Attribute, len(menu.Attributes))
	for _, a := range menu.Attributes {
		attrs[a.ID] = a
	}

	modifiers := make([]domain.Modifier, 0, len(modifierIDs))
	for _, id := range modifierIDs {
		attr, ok := attrs[id]
		if !ok {
			return domain.MenuItemRef{}, nil, fmt.Errorf("%w: %s", ErrUnknownModifier, id)
		}
		modifiers = append(modifiers, domain.Modifier{
			ID:    attr.ID,
			Name:  attr.Name,
			Price: attr.Price,
		})
	}

	ref := domain.MenuItemRef{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Category: product.Category,
		Source:   domain.ItemCatalog,
	}

	return ref, modifiers, nil
}

// CustomItem builds a ref for a special or ad-hoc item priced at the
// terminal, without touching the catalog.
func CustomItem(name string, price float64, source domain.ItemSource) domain.MenuItemRef {
	if source != domain.ItemSpecial {
		source = domain.ItemCustom
	}
	return domain.MenuItemRef{
		ID:     uuid.NewString(),
		Name:   name,
		Price:  price,
		Source: source,
	}
}

// MarkUnavailable flips a product to not_available after the kitchen
// declares it fully out.
func (s *Service) MarkUnavailable(ctx context.Context, productID string) error {
	if err := s.repo.UpdateProductStatusByProductID(ctx, productID, domain.ProductNotAvailable); err != nil {
		return fmt.Errorf("failed to mark item unavailable: %w", err)
	}

	s.logger.Infow("catalog item marked unavailable", "product_id", productID)

	return nil
}
