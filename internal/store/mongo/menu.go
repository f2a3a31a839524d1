package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/suyeshs/tandoor-pos/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository is the mongo-backed view of the externally owned menu
// catalog. The core reads it to resolve prices and flips product status when
// the kitchen reports an item fully out; everything else stays with the
// catalog service.
type CatalogRepository struct {
	collection *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		collection: db.Collection(collMenus),
	}
}

func (r *CatalogRepository) GetByVenueID(ctx context.Context, venueID string) (*domain.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var menu domain.Menu
	err := r.collection.FindOne(ctx, bson.M{"venue_id": venueID}).Decode(&menu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("menu not found")
		}
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}

	return &menu, nil
}

func (r *CatalogRepository) FindMenuByProductID(ctx context.Context, productID string) (*domain.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var menu domain.Menu
	filter := bson.M{"products.id": productID}
	err := r.collection.FindOne(ctx, filter).Decode(&menu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("menu with product not found")
		}
		return nil, fmt.Errorf("failed to find menu by product: %w", err)
	}

	return &menu, nil
}

func (r *CatalogRepository) UpdateProductStatusByProductID(ctx context.Context, productID string, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"products.id": productID}
	update := bson.M{
		"$set": bson.M{
			"products.$.status": status,
			"updated_at":        time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update product status: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("product not found")
	}

	return nil
}
