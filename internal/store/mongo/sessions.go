package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/suyeshs/tandoor-pos/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionRepository persists open sessions as whole documents so a terminal
// can rebuild its active set losslessly on reload.
type SessionRepository struct {
	tables  *mongo.Collection
	pickups *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{
		tables:  db.Collection(collTableSessions),
		pickups: db.Collection(collPickupSessions),
	}
}

type tableSessionDoc struct {
	TenantID            string    `bson:"tenant_id"`
	domain.TableSession `bson:",inline"`
	UpdatedAt           time.Time `bson:"updated_at"`
}

type pickupSessionDoc struct {
	TenantID             string    `bson:"tenant_id"`
	domain.PickupSession `bson:",inline"`
	UpdatedAt            time.Time `bson:"updated_at"`
}

func (r *SessionRepository) SaveTable(ctx context.Context, tenantID string, session *domain.TableSession) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	doc := tableSessionDoc{
		TenantID:     tenantID,
		TableSession: *session,
		UpdatedAt:    time.Now(),
	}

	filter := bson.M{"tenant_id": tenantID, "table_no": session.TableNo}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.tables.ReplaceOne(ctx, filter, doc, opts); err != nil {
		return fmt.Errorf("failed to save table session: %w", err)
	}

	return nil
}

func (r *SessionRepository) CloseTable(ctx context.Context, tenantID string, tableNo int) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.tables.DeleteOne(ctx, bson.M{"tenant_id": tenantID, "table_no": tableNo}); err != nil {
		return fmt.Errorf("failed to close table session: %w", err)
	}

	return nil
}

func (r *SessionRepository) ActiveTables(ctx context.Context, tenantID string) (map[int]*domain.TableSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.tables.Find(ctx, bson.M{"tenant_id": tenantID})
	if err != nil {
		return nil, fmt.Errorf("failed to list table sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := make(map[int]*domain.TableSession)
	for cursor.Next(ctx) {
		var doc tableSessionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode table session: %w", err)
		}
		session := doc.TableSession
		sessions[session.TableNo] = &session
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return sessions, nil
}

func (r *SessionRepository) SavePickup(ctx context.Context, tenantID string, session *domain.PickupSession) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	doc := pickupSessionDoc{
		TenantID:      tenantID,
		PickupSession: *session,
		UpdatedAt:     time.Now(),
	}

	filter := bson.M{"tenant_id": tenantID, "order_no": session.OrderNo}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.pickups.ReplaceOne(ctx, filter, doc, opts); err != nil {
		return fmt.Errorf("failed to save pickup session: %w", err)
	}

	return nil
}

func (r *SessionRepository) ClosePickup(ctx context.Context, tenantID string, orderNo string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.pickups.DeleteOne(ctx, bson.M{"tenant_id": tenantID, "order_no": orderNo}); err != nil {
		return fmt.Errorf("failed to close pickup session: %w", err)
	}

	return nil
}

func (r *SessionRepository) ActivePickups(ctx context.Context, tenantID string) (map[string]*domain.PickupSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.pickups.Find(ctx, bson.M{"tenant_id": tenantID})
	if err != nil {
		return nil, fmt.Errorf("failed to list pickup sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := make(map[string]*domain.PickupSession)
	for cursor.Next(ctx) {
		var doc pickupSessionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode pickup session: %w", err)
		}
		session := doc.PickupSession
		sessions[session.OrderNo] = &session
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return sessions, nil
}
