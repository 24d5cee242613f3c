package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/coldstore/internal/domain/models"
)

// SaleStore defines the persistence operations for recorded sales. Sales are
// append-only; there are no update or delete operations.
type SaleStore interface {
	Insert(ctx context.Context, sale models.Sale) error
	FindByID(ctx context.Context, id string) (*models.Sale, error)
	FindAll(ctx context.Context, limit int64) ([]models.Sale, error)
	FindSince(ctx context.Context, since time.Time) ([]models.Sale, error)
	Count(ctx context.Context) (int64, error)
}

type saleItemDoc struct {
	ProductID   string  `bson:"product_id"`
	ProductName string  `bson:"product_name"`
	Quantity    float64 `bson:"quantity"`
	UnitPrice   float64 `bson:"unit_price"`
	TotalPrice  float64 `bson:"total_price"`
}

type saleDoc struct {
	ID            string        `bson:"id"`
	ClientID      *string       `bson:"client_id"`
	ClientName    string        `bson:"client_name"`
	Items         []saleItemDoc `bson:"items"`
	Subtotal      float64       `bson:"subtotal"`
	Discount      float64       `bson:"discount"`
	Total         float64       `bson:"total"`
	PaymentMethod string        `bson:"payment_method"`
	Status        string        `bson:"status"`
	CreatedAt     string        `bson:"created_at"`
	InvoiceNumber string        `bson:"invoice_number"`
}

func encodeSale(s models.Sale) saleDoc {
	items := make([]saleItemDoc, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, saleItemDoc(item))
	}
	return saleDoc{
		ID:            s.ID,
		ClientID:      s.ClientID,
		ClientName:    s.ClientName,
		Items:         items,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		CreatedAt:     encodeTime(s.CreatedAt),
		InvoiceNumber: s.InvoiceNumber,
	}
}

func decodeSale(doc saleDoc) (models.Sale, error) {
	createdAt, err := decodeTime(doc.CreatedAt)
	if err != nil {
		return models.Sale{}, fmt.Errorf("sale %s: %w", doc.ID, err)
	}
	items := make([]models.SaleItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, models.SaleItem(item))
	}
	return models.Sale{
		ID:            doc.ID,
		ClientID:      doc.ClientID,
		ClientName:    doc.ClientName,
		Items:         items,
		Subtotal:      doc.Subtotal,
		Discount:      doc.Discount,
		Total:         doc.Total,
		PaymentMethod: doc.PaymentMethod,
		Status:        doc.Status,
		CreatedAt:     createdAt,
		InvoiceNumber: doc.InvoiceNumber,
	}, nil
}

type saleStore struct {
	coll *mongo.Collection
}

func (s *saleStore) Insert(ctx context.Context, sale models.Sale) error {
	if _, err := s.coll.InsertOne(ctx, encodeSale(sale)); err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}
	return nil
}

func (s *saleStore) FindByID(ctx context.Context, id string) (*models.Sale, error) {
	var doc saleDoc
	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find sale %s: %w", id, err)
	}

	sale, err := decodeSale(doc)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindAll returns sales newest first, up to limit.
func (s *saleStore) FindAll(ctx context.Context, limit int64) ([]models.Sale, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return decodeSaleCursor(ctx, cursor)
}

// FindSince returns sales created at or after the given instant. The range
// filter compares canonical timestamp strings, which order chronologically.
func (s *saleStore) FindSince(ctx context.Context, since time.Time) ([]models.Sale, error) {
	filter := bson.M{"created_at": bson.M{"$gte": encodeTime(since)}}
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales since %s: %w", since, err)
	}
	return decodeSaleCursor(ctx, cursor)
}

func (s *saleStore) Count(ctx context.Context) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count sales: %w", err)
	}
	return count, nil
}

func decodeSaleCursor(ctx context.Context, cursor *mongo.Cursor) ([]models.Sale, error) {
	defer cursor.Close(ctx)

	var sales []models.Sale
	for cursor.Next(ctx) {
		var doc saleDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode sale document: %w", err)
		}
		sale, err := decodeSale(doc)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("sale cursor failed: %w", err)
	}
	return sales, nil
}
