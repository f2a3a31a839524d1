package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/suyeshs/tandoor-pos/internal/domain"
	"github.com/suyeshs/tandoor-pos/internal/kds"
	"github.com/suyeshs/tandoor-pos/internal/queue"
	"go.uber.org/zap"
)

// KitchenStatusWorker consumes the KDS status reports and feeds the local
// status cache that gates billing.
type KitchenStatusWorker struct {
	cache  *kds.StatusCache
	broker queue.Broker
	logger *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewKitchenStatusWorker(cache *kds.StatusCache, broker queue.Broker, logger *zap.SugaredLogger) *KitchenStatusWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &KitchenStatusWorker{
		cache:  cache,
		broker: broker,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (w *KitchenStatusWorker) Start() error {
	w.logger.Info("starting kitchen status worker")

	return w.broker.Subscribe(w.ctx, queue.QueueKDSStatus, w.handleMessage)
}

func (w *KitchenStatusWorker) Stop() {
	w.logger.Info("stopping kitchen status worker")
	w.cancel()
}

func (w *KitchenStatusWorker) handleMessage(ctx context.Context, message []byte) error {
	var ev domain.KitchenStatusEvent
	if err := json.Unmarshal(message, &ev); err != nil {
		w.logger.Errorw("failed to unmarshal kitchen status event", "error", err)
		return fmt.Errorf("failed to unmarshal kitchen status event: %w", err)
	}

	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	w.cache.Apply(ev)

	w.logger.Infow("kitchen status applied", "order_key", ev.OrderKey, "kot", ev.KOTNumber, "status", ev.Status)

	return nil
}
