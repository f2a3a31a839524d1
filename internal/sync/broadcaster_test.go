package sync

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/suyeshs/tandoor-pos/internal/domain"
	"github.com/suyeshs/tandoor-pos/internal/metrics"
	"github.com/suyeshs/tandoor-pos/internal/queue"
	"go.uber.org/zap"
)

type publishedMsg struct {
	target string
	body   []byte
}

type fakeBroker struct {
	err      error
	messages chan publishedMsg
}

func newFakeBroker(err error) *fakeBroker {
	return &fakeBroker{err: err, messages: make(chan publishedMsg, 8)}
}

func (f *fakeBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	f.messages <- publishedMsg{target: queueName, body: message}
	return f.err
}

func (f *fakeBroker) Subscribe(ctx context.Context, queueName string, handler queue.MessageHandler) error {
	return nil
}

func (f *fakeBroker) Close() error { return nil }

type fakePeers struct {
	err      error
	messages chan publishedMsg
}

func newFakePeers(err error) *fakePeers {
	return &fakePeers{err: err, messages: make(chan publishedMsg, 8)}
}

func (f *fakePeers) Publish(ctx context.Context, subject string, msg []byte) error {
	f.messages <- publishedMsg{target: subject, body: msg}
	return f.err
}

func (f *fakePeers) Close() error { return nil }

func waitFor(t *testing.T, ch chan publishedMsg) publishedMsg {
	t.Helper()
	select {
	case m := <-ch:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast never reached the fake")
		return publishedMsg{}
	}
}

func TestTicketCreatedReachesBothPaths(t *testing.T) {
	broker := newFakeBroker(nil)
	peers := newFakePeers(nil)
	b := NewBroadcaster(broker, peers, "venue-1", "terminal-1", metrics.NewRegistry(), zap.NewNop().Sugar())

	b.TicketCreated(domain.KitchenOrder{OrderKey: "T7", KOTNumber: 1})

	relay := waitFor(t, broker.messages)
	if relay.target != queue.QueueKOTBroadcast {
		t.Errorf("relay queue = %q, want %q", relay.target, queue.QueueKOTBroadcast)
	}

	lan := waitFor(t, peers.messages)
	if lan.target != "pos.venue-1.kot.created" {
		t.Errorf("peer subject = %q, want pos.venue-1.kot.created", lan.target)
	}

	var env envelope
	if err := json.Unmarshal(lan.body, &env); err != nil {
		t.Fatalf("envelope does not unmarshal: %v", err)
	}
	if env.Type != domain.EventKOTCreated || env.TenantID != "venue-1" || env.TerminalID != "terminal-1" {
		t.Errorf("envelope = %+v, want event/tenant/terminal stamped", env)
	}

	var ko domain.KitchenOrder
	if err := json.Unmarshal(env.Payload, &ko); err != nil {
		t.Fatalf("payload does not unmarshal: %v", err)
	}
	if ko.OrderKey != "T7" || ko.KOTNumber != 1 {
		t.Errorf("payload = %+v, want the original ticket", ko)
	}
}

func TestSaleSettledRoutesToExportQueue(t *testing.T) {
	broker := newFakeBroker(nil)
	b := NewBroadcaster(broker, nil, "venue-1", "terminal-1", metrics.NewRegistry(), zap.NewNop().Sugar())

	b.SaleSettled(domain.SaleRecord{InvoiceNo: "INV-20260901-abc12345"})

	relay := waitFor(t, broker.messages)
	if relay.target != queue.QueueSalesExport {
		t.Errorf("relay queue = %q, want %q", relay.target, queue.QueueSalesExport)
	}
}

func TestPathFailuresAreSwallowed(t *testing.T) {
	broker := newFakeBroker(errors.New("relay down"))
	peers := newFakePeers(errors.New("lan down"))
	b := NewBroadcaster(broker, peers, "venue-1", "terminal-1", metrics.NewRegistry(), zap.NewNop().Sugar())

	// must not panic or block even with both paths failing
	b.BillGenerated(domain.BillSnapshot{InvoiceNo: "INV-20260901-abc12345"})

	waitFor(t, broker.messages)
	waitFor(t, peers.messages)
}

func TestNilPathsAreTolerated(t *testing.T) {
	b := NewBroadcaster(nil, nil, "venue-1", "terminal-1", metrics.NewRegistry(), zap.NewNop().Sugar())

	b.TicketCreated(domain.KitchenOrder{OrderKey: "T1", KOTNumber: 1})
	b.BillGenerated(domain.BillSnapshot{})
	b.SaleSettled(domain.SaleRecord{})
}
