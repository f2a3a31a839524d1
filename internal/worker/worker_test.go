package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/suyeshs/tandoor-pos/internal/catalog"
	"github.com/suyeshs/tandoor-pos/internal/domain"
	"github.com/suyeshs/tandoor-pos/internal/kds"
	"github.com/suyeshs/tandoor-pos/internal/metrics"
	"github.com/suyeshs/tandoor-pos/internal/service"
	"go.uber.org/zap"
)

type fakeCatalogRepo struct {
	statusUpdates map[string]string
}

func (f *fakeCatalogRepo) GetByVenueID(ctx context.Context, venueID string) (*domain.Menu, error) {
	return nil, errors.New("not used")
}

func (f *fakeCatalogRepo) FindMenuByProductID(ctx context.Context, productID string) (*domain.Menu, error) {
	return nil, errors.New("not used")
}

func (f *fakeCatalogRepo) UpdateProductStatusByProductID(ctx context.Context, productID, status string) error {
	if f.statusUpdates == nil {
		f.statusUpdates = make(map[string]string)
	}
	f.statusUpdates[productID] = status
	return nil
}

func TestKitchenStatusWorkerFeedsCache(t *testing.T) {
	cache := kds.NewStatusCache()
	w := NewKitchenStatusWorker(cache, nil, zap.NewNop().Sugar())

	msg, _ := json.Marshal(domain.KitchenStatusEvent{
		OrderKey:  "T7",
		KOTNumber: 1,
		Status:    domain.KitchenCompleted,
	})
	if err := w.handleMessage(context.Background(), msg); err != nil {
		t.Fatalf("handleMessage() error = %v", err)
	}

	kots := []domain.KOTRecord{{Number: 1}}
	if !cache.Gate("T7", kots, kds.GateAllComplete) {
		t.Error("completed status must open the billing gate")
	}
}

func TestKitchenStatusWorkerRejectsMalformedMessage(t *testing.T) {
	w := NewKitchenStatusWorker(kds.NewStatusCache(), nil, zap.NewNop().Sugar())

	if err := w.handleMessage(context.Background(), []byte("{not json")); err == nil {
		t.Error("malformed message must return an error for the retry path")
	}
}

func TestStockAlertWorkerQueuesAlert(t *testing.T) {
	alerts := service.NewAlertService(metrics.NewRegistry(), zap.NewNop().Sugar())
	repo := &fakeCatalogRepo{}
	w := NewStockAlertWorker(alerts, catalog.NewService(repo, zap.NewNop().Sugar()), nil, zap.NewNop().Sugar())

	msg, _ := json.Marshal(domain.StockEvent{
		ItemID:      "p-biryani",
		ItemName:    "Mutton Biryani",
		PortionsOut: 2,
	})
	if err := w.handleMessage(context.Background(), msg); err != nil {
		t.Fatalf("handleMessage() error = %v", err)
	}

	head := alerts.Next()
	if head == nil || head.ItemName != "Mutton Biryani" {
		t.Fatal("stock event must surface as a pending alert")
	}
	if len(repo.statusUpdates) != 0 {
		t.Error("a partial shortage must not touch the catalog")
	}
}

func TestStockAlertWorkerFlipsCatalogWhenFullyOut(t *testing.T) {
	alerts := service.NewAlertService(metrics.NewRegistry(), zap.NewNop().Sugar())
	repo := &fakeCatalogRepo{}
	w := NewStockAlertWorker(alerts, catalog.NewService(repo, zap.NewNop().Sugar()), nil, zap.NewNop().Sugar())

	msg, _ := json.Marshal(domain.StockEvent{
		ItemID:      "p-biryani",
		ItemName:    "Mutton Biryani",
		PortionsOut: domain.PortionsFullyOut,
	})
	if err := w.handleMessage(context.Background(), msg); err != nil {
		t.Fatalf("handleMessage() error = %v", err)
	}

	if repo.statusUpdates["p-biryani"] != domain.ProductNotAvailable {
		t.Error("a fully-out item must be marked unavailable in the catalog")
	}
}
