package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/coldstore/internal/domain/models"
)

// ErrNotFound is returned when a lookup by id (or name) matches no document.
var ErrNotFound = errors.New("document not found")

// storedTimeLayout is the canonical timestamp format for persisted documents:
// RFC 3339 UTC with fixed-width nanoseconds, so lexicographic comparison of
// stored strings matches chronological order and range filters work on them.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func encodeTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// SummaryStore persists end-of-day summaries produced by the export job.
type SummaryStore interface {
	SaveDailySummary(ctx context.Context, summary models.DailySummary) error
}

// Repository owns the MongoDB connection and hands out per-collection stores.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Products returns the product collection store.
func (r *Repository) Products() ProductStore {
	return &productStore{coll: r.db.Collection("products")}
}

// Clients returns the client collection store.
func (r *Repository) Clients() ClientStore {
	return &clientStore{coll: r.db.Collection("clients")}
}

// Sales returns the sale collection store.
func (r *Repository) Sales() SaleStore {
	return &saleStore{coll: r.db.Collection("sales")}
}

// SaveDailySummary appends a daily summary document.
func (r *Repository) SaveDailySummary(ctx context.Context, summary models.DailySummary) error {
	if _, err := r.db.Collection("daily_summaries").InsertOne(ctx, summary); err != nil {
		return fmt.Errorf("failed to insert daily summary: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
