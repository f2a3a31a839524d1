package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/suyeshs/tandoor-pos/internal/domain"
	"go.uber.org/zap"
)

type fakeCatalogRepo struct {
	menu          *domain.Menu
	statusUpdates map[string]string
}

func (f *fakeCatalogRepo) GetByVenueID(ctx context.Context, venueID string) (*domain.Menu, error) {
	if f.menu == nil || f.menu.VenueID != venueID {
		return nil, errors.New("menu not found")
	}
	return f.menu, nil
}

func (f *fakeCatalogRepo) FindMenuByProductID(ctx context.Context, productID string) (*domain.Menu, error) {
	return f.menu, nil
}

func (f *fakeCatalogRepo) UpdateProductStatusByProductID(ctx context.Context, productID, status string) error {
	if f.statusUpdates == nil {
		f.statusUpdates = make(map[string]string)
	}
	f.statusUpdates[productID] = status
	return nil
}

func testMenu() *domain.Menu {
	return &domain.Menu{
		VenueID: "venue-1",
		Products: []domain.Product{
			{ID: "p-curry", Name: "Chicken Curry", Price: 180, Category: "mains", Status: domain.ProductAvailable},
			{ID: "p-biryani", Name: "Mutton Biryani", Price: 320, Category: "mains", Status: domain.ProductNotAvailable},
		},
		Attributes: []domain.Attribute{
			{ID: "a-spicy", Name: "Extra Spicy", Price: 0},
			{ID: "a-cheese", Name: "Extra Cheese", Price: 30},
		},
	}
}

func TestResolve(t *testing.T) {
	svc := NewService(&fakeCatalogRepo{menu: testMenu()}, zap.NewNop().Sugar())
	ctx := context.Background()

	ref, modifiers, err := svc.Resolve(ctx, "venue-1", "p-curry", []string{"a-spicy", "a-cheese"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ref.Name != "Chicken Curry" || ref.Price != 180 || ref.Category != "mains" {
		t.Errorf("ref = %+v, want the catalog product", ref)
	}
	if ref.Source != domain.ItemCatalog {
		t.Errorf("Source = %v, want catalog", ref.Source)
	}
	if len(modifiers) != 2 || modifiers[1].Price != 30 {
		t.Errorf("modifiers = %+v, want both attributes with prices", modifiers)
	}
}

func TestResolveRejectsUnavailableItem(t *testing.T) {
	svc := NewService(&fakeCatalogRepo{menu: testMenu()}, zap.NewNop().Sugar())

	_, _, err := svc.Resolve(context.Background(), "venue-1", "p-biryani", nil)
	if !errors.Is(err, ErrItemUnavailable) {
		t.Errorf("error = %v, want ErrItemUnavailable", err)
	}
}

func TestResolveUnknownItemAndModifier(t *testing.T) {
	svc := NewService(&fakeCatalogRepo{menu: testMenu()}, zap.NewNop().Sugar())
	ctx := context.Background()

	if _, _, err := svc.Resolve(ctx, "venue-1", "p-ghost", nil); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("error = %v, want ErrItemNotFound", err)
	}
	if _, _, err := svc.Resolve(ctx, "venue-1", "p-curry", []string{"a-ghost"}); !errors.Is(err, ErrUnknownModifier) {
		t.Errorf("error = %v, want ErrUnknownModifier", err)
	}
}

func TestCustomItem(t *testing.T) {
	special := CustomItem("Chef Special Thali", 250, domain.ItemSpecial)
	if special.Source != domain.ItemSpecial || special.Price != 250 || special.ID == "" {
		t.Errorf("special = %+v, want special source with a generated id", special)
	}

	// anything that is not a special is an ad-hoc custom item
	custom := CustomItem("Open Food", 100, domain.ItemCatalog)
	if custom.Source != domain.ItemCustom {
		t.Errorf("Source = %v, want custom", custom.Source)
	}
}

func TestMarkUnavailable(t *testing.T) {
	repo := &fakeCatalogRepo{menu: testMenu()}
	svc := NewService(repo, zap.NewNop().Sugar())

	if err := svc.MarkUnavailable(context.Background(), "p-curry"); err != nil {
		t.Fatalf("MarkUnavailable() error = %v", err)
	}
	if repo.statusUpdates["p-curry"] != domain.ProductNotAvailable {
		t.Error("product status must be written back as not_available")
	}
}
