package repository

import (
	"context"
	"sort"

	"courtcast-service/internal/domain/entity"
	"courtcast-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxRetainedAlerts is the retention cap: the oldest entries are
// truncated when the ledger grows past it.
const MaxRetainedAlerts = 1000

// MongoAlertRepository implements the AlertRepository interface
type MongoAlertRepository struct {
	collection *mongo.Collection
}

// NewMongoAlertRepository creates a new MongoDB alert repository
func NewMongoAlertRepository(db *mongo.Database) repository.AlertRepository {
	collection := db.Collection("booking_alerts")

	// Index on timestamp for newest-first reads
	ctx := context.Background()
	timestampIndex := mongo.IndexModel{
		Keys: bson.M{"timestamp": -1},
	}
	collection.Indexes().CreateOne(ctx, timestampIndex)

	return &MongoAlertRepository{
		collection: collection,
	}
}

// FindAll returns all persisted alerts, newest first
func (r *MongoAlertRepository) FindAll(ctx context.Context) ([]*entity.BookingAlert, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var alerts []*entity.BookingAlert
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// ReplaceAll overwrites the whole ledger with the given records,
// enforcing newest-first order and the retention cap
func (r *MongoAlertRepository) ReplaceAll(ctx context.Context, alerts []*entity.BookingAlert) error {
	alerts = SortAndTruncate(alerts, MaxRetainedAlerts)

	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(alerts) == 0 {
		return nil
	}

	docs := make([]interface{}, len(alerts))
	for i, alert := range alerts {
		docs[i] = alert
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// Clear removes all persisted alerts
func (r *MongoAlertRepository) Clear(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

// SortAndTruncate orders alerts newest first and drops the oldest
// entries beyond limit. The input slice is not modified.
func SortAndTruncate(alerts []*entity.BookingAlert, limit int) []*entity.BookingAlert {
	out := make([]*entity.BookingAlert, len(alerts))
	copy(out, alerts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
