package service

import (
	"errors"
	"testing"

	"github.com/suyeshs/tandoor-pos/internal/domain"
	"github.com/suyeshs/tandoor-pos/internal/metrics"
	"go.uber.org/zap"
)

func newAlertService() *AlertService {
	return NewAlertService(metrics.NewRegistry(), zap.NewNop().Sugar())
}

// Scenario: the kitchen flags Mutton Biryani as fully out; the alert stays
// at the head of the queue until a named staff member dismisses it.
func TestAlertLifecycle(t *testing.T) {
	svc := newAlertService()

	raised := svc.Raise(domain.StockEvent{
		ItemID:      "p-biryani",
		ItemName:    "Mutton Biryani",
		PortionsOut: domain.PortionsFullyOut,
		OrderKey:    "T4",
		TableNo:     4,
	})

	head := svc.Next()
	if head == nil || head.ID != raised.ID {
		t.Fatal("raised alert must be the head of the queue")
	}
	if head.PortionsOut != domain.PortionsFullyOut {
		t.Errorf("PortionsOut = %d, want fully-out marker", head.PortionsOut)
	}

	// the alert survives until explicitly acknowledged
	if again := svc.Next(); again == nil || again.ID != raised.ID {
		t.Fatal("alert must persist until acknowledged")
	}

	acked, err := svc.Acknowledge(raised.ID, "Ravi")
	if err != nil {
		t.Fatalf("Acknowledge() error = %v", err)
	}
	if !acked.Acked || acked.AckedBy != "Ravi" || acked.AckedAt.IsZero() {
		t.Error("acknowledgment must record who dismissed the alert and when")
	}

	if svc.Next() != nil {
		t.Error("queue must be empty after the only alert is acknowledged")
	}
}

func TestAlertsSurfaceOldestFirst(t *testing.T) {
	svc := newAlertService()

	first := svc.Raise(domain.StockEvent{ItemName: "Dal", PortionsOut: 3})
	second := svc.Raise(domain.StockEvent{ItemName: "Naan", PortionsOut: 1})

	if head := svc.Next(); head.ID != first.ID {
		t.Fatal("oldest alert must surface first")
	}

	pending := svc.Pending()
	if len(pending) != 2 || pending[0].ID != first.ID || pending[1].ID != second.ID {
		t.Fatal("Pending must list alerts oldest first")
	}

	svc.Acknowledge(first.ID, "Asha")
	if head := svc.Next(); head.ID != second.ID {
		t.Error("acknowledging the head must promote the next alert")
	}
}

func TestAcknowledgeUnknownAlert(t *testing.T) {
	svc := newAlertService()

	if _, err := svc.Acknowledge("no-such-id", "Ravi"); !errors.Is(err, ErrAlertNotFound) {
		t.Errorf("error = %v, want ErrAlertNotFound", err)
	}
}

func TestRaiseNotifiesSubscribers(t *testing.T) {
	svc := newAlertService()

	var seen []string
	svc.Subscribe(func(a domain.OutOfStockAlert) {
		seen = append(seen, a.ItemName)
	})

	svc.Raise(domain.StockEvent{ItemName: "Dal", PortionsOut: 2})
	svc.Raise(domain.StockEvent{ItemName: "Naan", PortionsOut: 1})

	if len(seen) != 2 || seen[0] != "Dal" || seen[1] != "Naan" {
		t.Errorf("subscriber saw %v, want both alerts in order", seen)
	}
}
