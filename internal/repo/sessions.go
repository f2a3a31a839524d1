package repo

import (
	"context"

	"github.com/suyeshs/tandoor-pos/internal/domain"
)

// SessionRepository is the persistence collaborator for open sessions.
// Save is an upsert keyed by (tenant, table/order number) and is the commit
// point for a kitchen ticket; Close removes the record and frees the key.
type SessionRepository interface {
	SaveTable(ctx context.Context, tenantID string, session *domain.TableSession) error
	CloseTable(ctx context.Context, tenantID string, tableNo int) error
	ActiveTables(ctx context.Context, tenantID string) (map[int]*domain.TableSession, error)

	SavePickup(ctx context.Context, tenantID string, session *domain.PickupSession) error
	ClosePickup(ctx context.Context, tenantID string, orderNo string) error
	ActivePickups(ctx context.Context, tenantID string) (map[string]*domain.PickupSession, error)
}
