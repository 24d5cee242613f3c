package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/coldstore/internal/domain/models"
)

// ProductStore defines the persistence operations for catalog products.
type ProductStore interface {
	Insert(ctx context.Context, product models.Product) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindAll(ctx context.Context, limit int64) ([]models.Product, error)
	Update(ctx context.Context, id string, upd models.ProductUpdate, updatedAt time.Time) (*models.Product, error)
	UpdateStock(ctx context.Context, id string, stock float64, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	SearchByName(ctx context.Context, query string, limit int64) ([]models.Product, error)
	FindLowStock(ctx context.Context, threshold float64, limit int64) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
}

// productDoc is the persisted shape of a product. Timestamps are stored as
// canonical strings, never as raw BSON datetimes.
type productDoc struct {
	ID        string  `bson:"id"`
	Name      string  `bson:"name"`
	Category  string  `bson:"category"`
	Price     float64 `bson:"price"`
	Stock     float64 `bson:"stock"`
	Unit      string  `bson:"unit"`
	CreatedAt string  `bson:"created_at"`
	UpdatedAt string  `bson:"updated_at"`
}

func encodeProduct(p models.Product) productDoc {
	return productDoc{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Stock:     p.Stock,
		Unit:      p.Unit,
		CreatedAt: encodeTime(p.CreatedAt),
		UpdatedAt: encodeTime(p.UpdatedAt),
	}
}

func decodeProduct(doc productDoc) (models.Product, error) {
	createdAt, err := decodeTime(doc.CreatedAt)
	if err != nil {
		return models.Product{}, fmt.Errorf("product %s: %w", doc.ID, err)
	}
	updatedAt, err := decodeTime(doc.UpdatedAt)
	if err != nil {
		return models.Product{}, fmt.Errorf("product %s: %w", doc.ID, err)
	}
	return models.Product{
		ID:        doc.ID,
		Name:      doc.Name,
		Category:  doc.Category,
		Price:     doc.Price,
		Stock:     doc.Stock,
		Unit:      doc.Unit,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

type productStore struct {
	coll *mongo.Collection
}

func (s *productStore) Insert(ctx context.Context, product models.Product) error {
	if _, err := s.coll.InsertOne(ctx, encodeProduct(product)); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (s *productStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var doc productDoc
	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", id, err)
	}

	product, err := decodeProduct(doc)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productStore) FindAll(ctx context.Context, limit int64) ([]models.Product, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return decodeProductCursor(ctx, cursor)
}

func (s *productStore) Update(ctx context.Context, id string, upd models.ProductUpdate, updatedAt time.Time) (*models.Product, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Stock != nil {
		set["stock"] = *upd.Stock
	}
	if upd.Unit != nil {
		set["unit"] = *upd.Unit
	}
	set["updated_at"] = encodeTime(updatedAt)

	res, err := s.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return s.FindByID(ctx, id)
}

func (s *productStore) UpdateStock(ctx context.Context, id string, stock float64, updatedAt time.Time) error {
	set := bson.M{"stock": stock, "updated_at": encodeTime(updatedAt)}
	res, err := s.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update stock of product %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *productStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *productStore) SearchByName(ctx context.Context, query string, limit int64) ([]models.Product, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: query, Options: "i"}}
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return decodeProductCursor(ctx, cursor)
}

func (s *productStore) FindLowStock(ctx context.Context, threshold float64, limit int64) ([]models.Product, error) {
	filter := bson.M{"stock": bson.M{"$lte": threshold}}
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	return decodeProductCursor(ctx, cursor)
}

func (s *productStore) Count(ctx context.Context) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func decodeProductCursor(ctx context.Context, cursor *mongo.Cursor) ([]models.Product, error) {
	defer cursor.Close(ctx)

	var products []models.Product
	for cursor.Next(ctx) {
		var doc productDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product document: %w", err)
		}
		product, err := decodeProduct(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("product cursor failed: %w", err)
	}
	return products, nil
}
