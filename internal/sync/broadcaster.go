// Package sync propagates new tickets, bills and settlements to the other
// terminals of a venue over two independent best-effort paths: the cloud
// relay queue and the local-network peer bus. Neither path may fail or block
// the operation that produced the event.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/suyeshs/tandoor-pos/internal/domain"
	"github.com/suyeshs/tandoor-pos/internal/metrics"
	"github.com/suyeshs/tandoor-pos/internal/queue"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

type Broadcaster struct {
	broker     queue.Broker
	peers      PeerPublisher
	tenantID   string
	terminalID string
	metrics    *metrics.Registry
	logger     *zap.SugaredLogger
}

func NewBroadcaster(
	broker queue.Broker,
	peers PeerPublisher,
	tenantID string,
	terminalID string,
	reg *metrics.Registry,
	logger *zap.SugaredLogger,
) *Broadcaster {
	return &Broadcaster{
		broker:     broker,
		peers:      peers,
		tenantID:   tenantID,
		terminalID: terminalID,
		metrics:    reg,
		logger:     logger,
	}
}

type envelope struct {
	Type       string          `json:"type"`
	TenantID   string          `json:"tenant_id"`
	TerminalID string          `json:"terminal_id"`
	SentAt     time.Time       `json:"sent_at"`
	Payload    json.RawMessage `json:"payload"`
}

// TicketCreated fans a new kitchen ticket out on both paths and returns
// immediately. A terminal that misses this recovers from persistence on its
// next reload, not from here.
func (b *Broadcaster) TicketCreated(ko domain.KitchenOrder) {
	b.fanOut(domain.EventKOTCreated, ko)
}

func (b *Broadcaster) BillGenerated(bill domain.BillSnapshot) {
	b.fanOut(domain.EventBillPrinted, bill)
}

func (b *Broadcaster) SaleSettled(sale domain.SaleRecord) {
	b.fanOut(domain.EventSaleSettled, sale)
}

func (b *Broadcaster) fanOut(eventType string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		b.logger.Errorw("failed to marshal broadcast payload", "event", eventType, "error", err)
		return
	}

	env := envelope{
		Type:       eventType,
		TenantID:   b.tenantID,
		TerminalID: b.terminalID,
		SentAt:     time.Now(),
		Payload:    body,
	}

	msg, err := json.Marshal(env)
	if err != nil {
		b.logger.Errorw("failed to marshal broadcast envelope", "event", eventType, "error", err)
		return
	}

	go b.publishRelay(eventType, msg)
	go b.publishPeers(eventType, msg)
}

func (b *Broadcaster) publishRelay(eventType string, msg []byte) {
	if b.broker == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	queueName := queue.QueueKOTBroadcast
	if eventType == domain.EventSaleSettled {
		queueName = queue.QueueSalesExport
	}

	if err := b.broker.Publish(ctx, queueName, msg); err != nil {
		b.metrics.BroadcastFailures.WithLabelValues("relay").Inc()
		b.logger.Warnw("cloud relay broadcast failed", "event", eventType, "error", err)
	}
}

func (b *Broadcaster) publishPeers(eventType string, msg []byte) {
	if b.peers == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	subject := fmt.Sprintf("pos.%s.%s", b.tenantID, eventType)
	if err := b.peers.Publish(ctx, subject, msg); err != nil {
		b.metrics.BroadcastFailures.WithLabelValues("lan").Inc()
		b.logger.Warnw("lan peer broadcast failed", "event", eventType, "error", err)
	}
}
