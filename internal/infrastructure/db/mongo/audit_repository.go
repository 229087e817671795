package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

const authEventsCollection = "auth_events"

// inserter is the part of *mongo.Collection the audit repository uses.
type inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	events inserter
	now    func() time.Time
}

// NewAuditRepository creates a new AuditRepository on the auth_events collection.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{events: db.Collection(authEventsCollection), now: time.Now}
}

// InsertAuthEvent appends an entry to the authentication audit trail.
func (r *AuditRepository) InsertAuthEvent(ctx context.Context, event *domain.AuthEvent) error {
	if _, err := r.events.InsertOne(ctx, authEventDocument(event, r.now())); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

func authEventDocument(event *domain.AuthEvent, recordedAt time.Time) bson.M {
	doc := bson.M{
		"type":        string(event.Type),
		"email":       event.Email,
		"timestamp":   event.Timestamp.UTC(),
		"recorded_at": recordedAt.UTC(),
	}
	if event.UserID != 0 {
		doc["user_id"] = event.UserID
	}
	if event.Role != "" {
		doc["role"] = event.Role
	}
	return doc
}
