package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/suyeshs/tandoor-pos/internal/domain"
	"github.com/suyeshs/tandoor-pos/internal/metrics"
	"go.uber.org/zap"
)

// AlertService queues out-of-stock alerts raised by the kitchen. Alerts are
// surfaced one at a time, oldest first, and only leave the queue through an
// explicit staff acknowledgment; there is no timeout or auto-dismiss.
type AlertService struct {
	mu      sync.Mutex
	pending []*domain.OutOfStockAlert
	subs    []func(domain.OutOfStockAlert)

	metrics *metrics.Registry
	logger  *zap.SugaredLogger
}

func NewAlertService(reg *metrics.Registry, logger *zap.SugaredLogger) *AlertService {
	return &AlertService{
		metrics: reg,
		logger:  logger,
	}
}

// Subscribe registers an observer (UI push, sync) notified on every new
// alert. Callbacks run inline; keep them cheap.
func (s *AlertService) Subscribe(fn func(domain.OutOfStockAlert)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Raise queues a new alert. An alert raised while a prior one is still
// pending simply waits its turn.
func (s *AlertService) Raise(ev domain.StockEvent) *domain.OutOfStockAlert {
	alert := &domain.OutOfStockAlert{
		ID:          uuid.NewString(),
		ItemID:      ev.ItemID,
		ItemName:    ev.ItemName,
		PortionsOut: ev.PortionsOut,
		OrderKey:    ev.OrderKey,
		TableNo:     ev.TableNo,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.pending = append(s.pending, alert)
	s.metrics.AlertsPending.Set(float64(len(s.pending)))
	subs := make([]func(domain.OutOfStockAlert), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(*alert)
	}

	s.logger.Infow("stock alert raised", "item", ev.ItemName, "portions_out", ev.PortionsOut)

	return alert
}

// Next returns the oldest unacknowledged alert, or nil when the queue is
// clear.
func (s *AlertService) Next() *domain.OutOfStockAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil
	}
	head := *s.pending[0]
	return &head
}

// Pending returns a copy of the whole queue, oldest first.
func (s *AlertService) Pending() []domain.OutOfStockAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.OutOfStockAlert, 0, len(s.pending))
	for _, a := range s.pending {
		out = append(out, *a)
	}
	return out
}

// Acknowledge records who dismissed the alert and removes it from the
// queue.
func (s *AlertService) Acknowledge(alertID, staffName string) (*domain.OutOfStockAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.pending {
		if a.ID != alertID {
			continue
		}
		a.Acked = true
		a.AckedBy = staffName
		a.AckedAt = time.Now()

		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		s.metrics.AlertsPending.Set(float64(len(s.pending)))

		s.logger.Infow("stock alert acknowledged", "item", a.ItemName, "by", staffName)

		ack := *a
		return &ack, nil
	}

	return nil, ErrAlertNotFound
}
