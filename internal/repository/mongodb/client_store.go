package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/coldstore/internal/domain/models"
)

// ClientStore defines the persistence operations for registered clients.
type ClientStore interface {
	Insert(ctx context.Context, client models.Client) error
	FindByID(ctx context.Context, id string) (*models.Client, error)
	FindByName(ctx context.Context, name string) (*models.Client, error)
	FindAll(ctx context.Context, limit int64) ([]models.Client, error)
	Update(ctx context.Context, id string, upd models.ClientUpdate) (*models.Client, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type clientDoc struct {
	ID          string  `bson:"id"`
	Name        string  `bson:"name"`
	Phone       string  `bson:"phone"`
	Address     string  `bson:"address"`
	Email       string  `bson:"email"`
	CreditLimit float64 `bson:"credit_limit"`
	CurrentDebt float64 `bson:"current_debt"`
	CreatedAt   string  `bson:"created_at"`
}

func encodeClient(c models.Client) clientDoc {
	return clientDoc{
		ID:          c.ID,
		Name:        c.Name,
		Phone:       c.Phone,
		Address:     c.Address,
		Email:       c.Email,
		CreditLimit: c.CreditLimit,
		CurrentDebt: c.CurrentDebt,
		CreatedAt:   encodeTime(c.CreatedAt),
	}
}

func decodeClient(doc clientDoc) (models.Client, error) {
	createdAt, err := decodeTime(doc.CreatedAt)
	if err != nil {
		return models.Client{}, fmt.Errorf("client %s: %w", doc.ID, err)
	}
	return models.Client{
		ID:          doc.ID,
		Name:        doc.Name,
		Phone:       doc.Phone,
		Address:     doc.Address,
		Email:       doc.Email,
		CreditLimit: doc.CreditLimit,
		CurrentDebt: doc.CurrentDebt,
		CreatedAt:   createdAt,
	}, nil
}

type clientStore struct {
	coll *mongo.Collection
}

func (s *clientStore) Insert(ctx context.Context, client models.Client) error {
	if _, err := s.coll.InsertOne(ctx, encodeClient(client)); err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

func (s *clientStore) FindByID(ctx context.Context, id string) (*models.Client, error) {
	return s.findOne(ctx, bson.M{"id": id})
}

// FindByName resolves a client by exact, case-sensitive name match. Names are
// unique by convention only; the first match wins.
func (s *clientStore) FindByName(ctx context.Context, name string) (*models.Client, error) {
	return s.findOne(ctx, bson.M{"name": name})
}

func (s *clientStore) findOne(ctx context.Context, filter bson.M) (*models.Client, error) {
	var doc clientDoc
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	client, err := decodeClient(doc)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *clientStore) FindAll(ctx context.Context, limit int64) ([]models.Client, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []models.Client
	for cursor.Next(ctx) {
		var doc clientDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode client document: %w", err)
		}
		client, err := decodeClient(doc)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("client cursor failed: %w", err)
	}
	return clients, nil
}

func (s *clientStore) Update(ctx context.Context, id string, upd models.ClientUpdate) (*models.Client, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.CreditLimit != nil {
		set["credit_limit"] = *upd.CreditLimit
	}

	// An all-nil update is still a valid request; skip the write and return
	// the current document.
	if len(set) > 0 {
		res, err := s.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
		if err != nil {
			return nil, fmt.Errorf("failed to update client %s: %w", id, err)
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
	}

	return s.FindByID(ctx, id)
}

func (s *clientStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *clientStore) Count(ctx context.Context) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}
