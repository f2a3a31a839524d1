package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/suyeshs/tandoor-pos/internal/catalog"
	"github.com/suyeshs/tandoor-pos/internal/domain"
	"github.com/suyeshs/tandoor-pos/internal/queue"
	"github.com/suyeshs/tandoor-pos/internal/service"
	"go.uber.org/zap"
)

// StockAlertWorker consumes the kitchen's out-of-stock events, queues the
// blocking alert for the terminal, and marks the catalog item unavailable
// when it is fully out.
type StockAlertWorker struct {
	alerts  *service.AlertService
	catalog *catalog.Service
	broker  queue.Broker
	logger  *zap.SugaredLogger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewStockAlertWorker(
	alerts *service.AlertService,
	catalogService *catalog.Service,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *StockAlertWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &StockAlertWorker{
		alerts:  alerts,
		catalog: catalogService,
		broker:  broker,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (w *StockAlertWorker) Start() error {
	w.logger.Info("starting stock alert worker")

	return w.broker.Subscribe(w.ctx, queue.QueueStockAlerts, w.handleMessage)
}

func (w *StockAlertWorker) Stop() {
	w.logger.Info("stopping stock alert worker")
	w.cancel()
}

func (w *StockAlertWorker) handleMessage(ctx context.Context, message []byte) error {
	var ev domain.StockEvent
	if err := json.Unmarshal(message, &ev); err != nil {
		w.logger.Errorw("failed to unmarshal stock event", "error", err)
		return fmt.Errorf("failed to unmarshal stock event: %w", err)
	}

	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	w.alerts.Raise(ev)

	if ev.ItemID != "" && ev.PortionsOut == domain.PortionsFullyOut && w.catalog != nil {
		if err := w.catalog.MarkUnavailable(ctx, ev.ItemID); err != nil {
			// the alert is already queued; catalog write-back is best effort
			w.logger.Warnw("failed to update catalog availability", "item_id", ev.ItemID, "error", err)
		}
	}

	return nil
}
