package kds

import (
	"testing"
	"time"

	"github.com/suyeshs/tandoor-pos/internal/domain"
)

func statusEvent(key string, kotNumber int, status domain.KitchenStatus) domain.KitchenStatusEvent {
	return domain.KitchenStatusEvent{
		TenantID:  "venue-1",
		OrderKey:  key,
		KOTNumber: kotNumber,
		Status:    status,
		Timestamp: time.Now(),
	}
}

func TestParsePolicy(t *testing.T) {
	if _, err := ParsePolicy("all_complete"); err != nil {
		t.Errorf("ParsePolicy(all_complete) error = %v", err)
	}
	if _, err := ParsePolicy("any_complete"); err != nil {
		t.Errorf("ParsePolicy(any_complete) error = %v", err)
	}
	if _, err := ParsePolicy("whatever"); err == nil {
		t.Error("ParsePolicy should reject unknown policies")
	}
}

func TestGate(t *testing.T) {
	kots := []domain.KOTRecord{{Number: 1}, {Number: 2}}

	tests := []struct {
		name   string
		events []domain.KitchenStatusEvent
		policy GatePolicy
		want   bool
	}{
		{
			name:   "noReportsAllPolicy",
			policy: GateAllComplete,
			want:   false,
		},
		{
			name:   "noReportsAnyPolicy",
			policy: GateAnyComplete,
			want:   false,
		},
		{
			name:   "oneCompleteAnyPolicy",
			events: []domain.KitchenStatusEvent{statusEvent("T7", 1, domain.KitchenCompleted)},
			policy: GateAnyComplete,
			want:   true,
		},
		{
			name:   "oneCompleteAllPolicy",
			events: []domain.KitchenStatusEvent{statusEvent("T7", 1, domain.KitchenCompleted)},
			policy: GateAllComplete,
			want:   false,
		},
		{
			name: "allCompleteAllPolicy",
			events: []domain.KitchenStatusEvent{
				statusEvent("T7", 1, domain.KitchenCompleted),
				statusEvent("T7", 2, domain.KitchenCompleted),
			},
			policy: GateAllComplete,
			want:   true,
		},
		{
			name: "inProgressIsNotComplete",
			events: []domain.KitchenStatusEvent{
				statusEvent("T7", 1, domain.KitchenCompleted),
				statusEvent("T7", 2, domain.KitchenInProgress),
			},
			policy: GateAllComplete,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewStatusCache()
			for _, ev := range tt.events {
				cache.Apply(ev)
			}
			if got := cache.Gate("T7", kots, tt.policy); got != tt.want {
				t.Errorf("Gate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGateNoTickets(t *testing.T) {
	cache := NewStatusCache()
	if cache.Gate("T7", nil, GateAnyComplete) {
		t.Error("Gate() with no tickets must be false")
	}
}

func TestStatusUpgradesAndDrop(t *testing.T) {
	cache := NewStatusCache()
	cache.Apply(statusEvent("P3", 1, domain.KitchenInProgress))
	cache.Apply(statusEvent("P3", 1, domain.KitchenCompleted))

	snap := cache.Snapshot("P3")
	if snap[1].Status != domain.KitchenCompleted {
		t.Errorf("Snapshot status = %v, want completed", snap[1].Status)
	}

	cache.Drop("P3")
	if len(cache.Snapshot("P3")) != 0 {
		t.Error("Drop() should forget the order key")
	}
}
