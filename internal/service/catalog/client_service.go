package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/coldstore/internal/domain/models"
	"github.com/mamadbah2/coldstore/internal/repository/mongodb"
)

// ClientService exposes CRUD over registered clients. Name uniqueness is a
// convention relied on by sale-time lookups, not enforced here.
type ClientService struct {
	store  mongodb.ClientStore
	logger *zap.Logger
}

// NewClientService wires a new client catalog service instance.
func NewClientService(store mongodb.ClientStore, logger *zap.Logger) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{store: store, logger: logger}
}

// CreateClient registers a new client.
func (s *ClientService) CreateClient(ctx context.Context, req models.ClientCreate) (*models.Client, error) {
	client := req.NewClient(time.Now().UTC())
	if err := s.store.Insert(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("client created",
		zap.String("client_id", client.ID),
		zap.String("name", client.Name))

	return &client, nil
}

// ListClients returns registered clients, up to the list cap.
func (s *ClientService) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.store.FindAll(ctx, listLimit)
}

// GetClient fetches a single client by id.
func (s *ClientService) GetClient(ctx context.Context, id string) (*models.Client, error) {
	return s.store.FindByID(ctx, id)
}

// UpdateClient applies the fields present in the request.
func (s *ClientService) UpdateClient(ctx context.Context, id string, upd models.ClientUpdate) (*models.Client, error) {
	return s.store.Update(ctx, id, upd)
}

// DeleteClient removes a client.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
