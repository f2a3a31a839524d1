// Package kds caches the status the kitchen display reports back per order
// key and ticket. The core only reads this cache to gate billing; it never
// writes kitchen state itself.
package kds

import (
	"fmt"
	"sync"
	"time"

	"github.com/suyeshs/tandoor-pos/internal/domain"
)

// GatePolicy selects the kitchen-completion condition required before a
// dine-in session may be billed.
type GatePolicy string

const (
	// GateAllComplete requires every ticket of the session to be completed.
	GateAllComplete GatePolicy = "all_complete"
	// GateAnyComplete requires at least one completed ticket.
	GateAnyComplete GatePolicy = "any_complete"
)

func ParsePolicy(s string) (GatePolicy, error) {
	switch GatePolicy(s) {
	case GateAllComplete, GateAnyComplete:
		return GatePolicy(s), nil
	}
	return "", fmt.Errorf("unknown kds gate policy %q", s)
}

// TicketState is the last reported state of one ticket.
type TicketState struct {
	Status     domain.KitchenStatus
	ReadyCount int
	PrepCount  int
	UpdatedAt  time.Time
}

// StatusCache holds per-ticket kitchen state keyed by order key.
type StatusCache struct {
	mu     sync.RWMutex
	orders map[string]map[int]TicketState
}

func NewStatusCache() *StatusCache {
	return &StatusCache{orders: make(map[string]map[int]TicketState)}
}

// Apply records a status report from the kitchen display.
func (c *StatusCache) Apply(ev domain.KitchenStatusEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tickets, ok := c.orders[ev.OrderKey]
	if !ok {
		tickets = make(map[int]TicketState)
		c.orders[ev.OrderKey] = tickets
	}
	tickets[ev.KOTNumber] = TicketState{
		Status:     ev.Status,
		ReadyCount: ev.ReadyCount,
		PrepCount:  ev.PrepCount,
		UpdatedAt:  ev.Timestamp,
	}
}

// Gate reports whether the session's tickets satisfy the policy. A ticket
// the kitchen has not reported on yet counts as incomplete.
func (c *StatusCache) Gate(orderKey string, kots []domain.KOTRecord, policy GatePolicy) bool {
	if len(kots) == 0 {
		return false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	tickets := c.orders[orderKey]
	completed := 0
	for _, k := range kots {
		if st, ok := tickets[k.Number]; ok && st.Status == domain.KitchenCompleted {
			completed++
		}
	}

	if policy == GateAnyComplete {
		return completed > 0
	}
	return completed == len(kots)
}

// Snapshot returns a copy of the per-ticket state for one order key.
func (c *StatusCache) Snapshot(orderKey string) map[int]TicketState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[int]TicketState, len(c.orders[orderKey]))
	for n, st := range c.orders[orderKey] {
		out[n] = st
	}
	return out
}

// Drop forgets an order key once its session closes.
func (c *StatusCache) Drop(orderKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.orders, orderKey)
}
