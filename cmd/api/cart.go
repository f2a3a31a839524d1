package main

import (
	"context"
	"errors"

	"github.com/suyeshs/tandoor-pos/internal/catalog"
	"github.com/suyeshs/tandoor-pos/internal/domain"
)

// AddCartLineRequest is shared by the table and pickup cart endpoints.
// Catalog items are referenced by id and resolved server-side; specials and
// custom items carry their own name and price.
type AddCartLineRequest struct {
	ItemID       string                  `json:"item_id"`
	Name         string                  `json:"name"`
	Price        float64                 `json:"price" validate:"omitempty,gte=0"`
	Source       string                  `json:"source" validate:"omitempty,oneof=catalog special custom"`
	Quantity     int                     `json:"quantity" validate:"omitempty,min=1"`
	ModifierIDs  []string                `json:"modifier_ids"`
	Combos       []domain.ComboSelection `json:"combos"`
	Instructions string                  `json:"instructions"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

var errItemRequired = errors.New("item_id, or name and price for a custom item, is required")

// resolveItem turns the request into one MenuItemRef, exactly once, before
// the cart sees it.
func (app *application) resolveItem(ctx context.Context, req AddCartLineRequest) (domain.MenuItemRef, []domain.Modifier, error) {
	source := domain.ItemSource(req.Source)
	if source == domain.ItemSpecial || source == domain.ItemCustom {
		if req.Name == "" {
			return domain.MenuItemRef{}, nil, errItemRequired
		}
		return catalog.CustomItem(req.Name, req.Price, source), nil, nil
	}

	if req.ItemID == "" {
		return domain.MenuItemRef{}, nil, errItemRequired
	}

	return app.catalog.Resolve(ctx, app.config.tenantID, req.ItemID, req.ModifierIDs)
}
