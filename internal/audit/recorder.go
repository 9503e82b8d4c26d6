package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config holds the mongo connection settings
type Config struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoClient connects to mongo and pings the primary
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// Entry is one audit document per order
type Entry struct {
	OrderID    int64                 `bson:"order_id"`
	UserID     int64                 `bson:"user_id"`
	EventID    string                `bson:"event_id"`
	PlacedAt   time.Time             `bson:"placed_at"`
	Tickets    []models.TicketRecord `bson:"tickets"`
	RecordedAt time.Time             `bson:"recorded_at"`
}

// Recorder writes order audit entries to a mongo collection
type Recorder struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewRecorder creates a recorder over the collection
func NewRecorder(collection *mongo.Collection) *Recorder {
	return &Recorder{collection: collection, now: time.Now}
}

// EnsureIndexes creates the unique order_id index
func (r *Recorder) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "order_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create audit index: %w", err)
	}
	return nil
}

// RecordOrderPlaced upserts the entry for the order. Replaying the same event
// leaves a single document.
func (r *Recorder) RecordOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error {
	entry := EntryFromEvent(event, r.now())

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"order_id": event.OrderID},
		bson.M{"$set": entry},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to record order %d: %w", event.OrderID, err)
	}
	return nil
}

// EntryFromEvent builds the audit document for an event
func EntryFromEvent(event models.OrderPlacedEvent, recordedAt time.Time) Entry {
	return Entry{
		OrderID:    event.OrderID,
		UserID:     event.UserID,
		EventID:    event.EventID,
		PlacedAt:   event.PlacedAt,
		Tickets:    event.Tickets,
		RecordedAt: recordedAt,
	}
}
