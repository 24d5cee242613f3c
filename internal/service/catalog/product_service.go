package catalog

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/coldstore/internal/domain/models"
	"github.com/mamadbah2/coldstore/internal/repository/mongodb"
)

const (
	listLimit       = 1000
	searchLimit     = 10
	minSearchLength = 2
)

// ProductService exposes CRUD and type-ahead search over the product catalog.
type ProductService struct {
	store  mongodb.ProductStore
	logger *zap.Logger
}

// NewProductService wires a new product catalog service instance.
func NewProductService(store mongodb.ProductStore, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{store: store, logger: logger}
}

// CreateProduct registers a new product.
func (s *ProductService) CreateProduct(ctx context.Context, req models.ProductCreate) (*models.Product, error) {
	product := req.NewProduct(time.Now().UTC())
	if err := s.store.Insert(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name))

	return &product, nil
}

// ListProducts returns catalog entries, up to the list cap.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.FindAll(ctx, listLimit)
}

// GetProduct fetches a single product by id.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.store.FindByID(ctx, id)
}

// UpdateProduct applies the fields present in the request and refreshes the
// update timestamp.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	return s.store.Update(ctx, id, upd, time.Now().UTC())
}

// DeleteProduct removes a product from the catalog.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// SearchProducts performs the case-insensitive substring search backing the
// sale form type-ahead. Queries shorter than two characters yield an empty
// result instead of scanning the whole catalog.
func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]models.ProductSuggestion, error) {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < minSearchLength {
		return []models.ProductSuggestion{}, nil
	}

	products, err := s.store.SearchByName(ctx, trimmed, searchLimit)
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.ProductSuggestion, 0, len(products))
	for _, p := range products {
		suggestions = append(suggestions, models.ProductSuggestion{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Stock: p.Stock,
			Unit:  p.Unit,
		})
	}
	return suggestions, nil
}
