// Package kot tracks kitchen order tickets per session: sequential
// numbering, the running-order flag forwarded to the kitchen display, and
// the full-submission check.
package kot

import (
	"time"

	"github.com/suyeshs/tandoor-pos/internal/domain"
)

// Next returns the next ticket number for a session and whether that ticket
// is a running order (an addendum after at least one prior ticket).
func Next(kots []domain.KOTRecord) (number int, running bool) {
	number = len(kots) + 1
	return number, number > 1
}

// NewRecord builds the append-only ticket covering the given lines.
func NewRecord(number int, lines []domain.CartLine) domain.KOTRecord {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ID)
	}
	return domain.KOTRecord{
		Number:    number,
		CreatedAt: time.Now(),
		LineIDs:   ids,
	}
}

// IsFullySubmitted reports whether every line in the order is covered by the
// union of the session's ticket line-id lists. False means a line reached
// the order without a ticket, which should not happen under normal API use.
func IsFullySubmitted(order domain.Order, kots []domain.KOTRecord) bool {
	covered := make(map[string]bool)
	for _, k := range kots {
		for _, id := range k.LineIDs {
			covered[id] = true
		}
	}
	for _, line := range order.Items {
		if !covered[line.ID] {
			return false
		}
	}
	return true
}
