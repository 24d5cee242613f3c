// Package repositorytest provides in-memory store implementations used by
// service and handler tests in place of a running MongoDB.
package repositorytest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mamadbah2/coldstore/internal/domain/models"
	"github.com/mamadbah2/coldstore/internal/repository/mongodb"
)

// ProductStore is an in-memory mongodb.ProductStore. Setting Err makes every
// call fail with that error.
type ProductStore struct {
	mu    sync.Mutex
	byID  map[string]models.Product
	order []string
	Err   error
}

var _ mongodb.ProductStore = (*ProductStore)(nil)

// NewProductStore returns an empty in-memory product store.
func NewProductStore() *ProductStore {
	return &ProductStore{byID: make(map[string]models.Product)}
}

// Seed inserts products without going through Insert error handling.
func (s *ProductStore) Seed(products ...models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		if _, ok := s.byID[p.ID]; !ok {
			s.order = append(s.order, p.ID)
		}
		s.byID[p.ID] = p
	}
}

func (s *ProductStore) Insert(_ context.Context, product models.Product) error {
	if s.Err != nil {
		return s.Err
	}
	s.Seed(product)
	return nil
}

func (s *ProductStore) FindByID(_ context.Context, id string) (*models.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	return &p, nil
}

func (s *ProductStore) FindAll(_ context.Context, limit int64) ([]models.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var products []models.Product
	for _, id := range s.order {
		if int64(len(products)) >= limit {
			break
		}
		products = append(products, s.byID[id])
	}
	return products, nil
}

func (s *ProductStore) Update(ctx context.Context, id string, upd models.ProductUpdate, updatedAt time.Time) (*models.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	p, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return nil, mongodb.ErrNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	if upd.Unit != nil {
		p.Unit = *upd.Unit
	}
	p.UpdatedAt = updatedAt
	s.byID[id] = p
	s.mu.Unlock()
	return s.FindByID(ctx, id)
}

func (s *ProductStore) UpdateStock(_ context.Context, id string, stock float64, updatedAt time.Time) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return mongodb.ErrNotFound
	}
	p.Stock = stock
	p.UpdatedAt = updatedAt
	s.byID[id] = p
	return nil
}

func (s *ProductStore) Delete(_ context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return mongodb.ErrNotFound
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *ProductStore) SearchByName(_ context.Context, query string, limit int64) ([]models.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(query)
	var products []models.Product
	for _, id := range s.order {
		if int64(len(products)) >= limit {
			break
		}
		p := s.byID[id]
		if strings.Contains(strings.ToLower(p.Name), needle) {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *ProductStore) FindLowStock(_ context.Context, threshold float64, limit int64) ([]models.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var products []models.Product
	for _, id := range s.order {
		if int64(len(products)) >= limit {
			break
		}
		p := s.byID[id]
		if p.Stock <= threshold {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *ProductStore) Count(_ context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.byID)), nil
}

// ClientStore is an in-memory mongodb.ClientStore.
type ClientStore struct {
	mu    sync.Mutex
	byID  map[string]models.Client
	order []string
	Err   error
}

var _ mongodb.ClientStore = (*ClientStore)(nil)

// NewClientStore returns an empty in-memory client store.
func NewClientStore() *ClientStore {
	return &ClientStore{byID: make(map[string]models.Client)}
}

// Seed inserts clients without going through Insert error handling.
func (s *ClientStore) Seed(clients ...models.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range clients {
		if _, ok := s.byID[c.ID]; !ok {
			s.order = append(s.order, c.ID)
		}
		s.byID[c.ID] = c
	}
}

func (s *ClientStore) Insert(_ context.Context, client models.Client) error {
	if s.Err != nil {
		return s.Err
	}
	s.Seed(client)
	return nil
}

func (s *ClientStore) FindByID(_ context.Context, id string) (*models.Client, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	return &c, nil
}

func (s *ClientStore) FindByName(_ context.Context, name string) (*models.Client, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		if c := s.byID[id]; c.Name == name {
			return &c, nil
		}
	}
	return nil, mongodb.ErrNotFound
}

func (s *ClientStore) FindAll(_ context.Context, limit int64) ([]models.Client, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var clients []models.Client
	for _, id := range s.order {
		if int64(len(clients)) >= limit {
			break
		}
		clients = append(clients, s.byID[id])
	}
	return clients, nil
}

func (s *ClientStore) Update(ctx context.Context, id string, upd models.ClientUpdate) (*models.Client, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	c, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return nil, mongodb.ErrNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.Address != nil {
		c.Address = *upd.Address
	}
	if upd.Email != nil {
		c.Email = *upd.Email
	}
	if upd.CreditLimit != nil {
		c.CreditLimit = *upd.CreditLimit
	}
	s.byID[id] = c
	s.mu.Unlock()
	return s.FindByID(ctx, id)
}

func (s *ClientStore) Delete(_ context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return mongodb.ErrNotFound
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *ClientStore) Count(_ context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.byID)), nil
}

// SaleStore is an in-memory mongodb.SaleStore.
type SaleStore struct {
	mu    sync.Mutex
	sales []models.Sale
	Err   error
}

var _ mongodb.SaleStore = (*SaleStore)(nil)

// NewSaleStore returns an empty in-memory sale store.
func NewSaleStore() *SaleStore {
	return &SaleStore{}
}

// Seed appends sales without going through Insert error handling.
func (s *SaleStore) Seed(sales ...models.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append(s.sales, sales...)
}

func (s *SaleStore) Insert(_ context.Context, sale models.Sale) error {
	if s.Err != nil {
		return s.Err
	}
	s.Seed(sale)
	return nil
}

func (s *SaleStore) FindByID(_ context.Context, id string) (*models.Sale, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sale := range s.sales {
		if sale.ID == id {
			found := sale
			return &found, nil
		}
	}
	return nil, mongodb.ErrNotFound
}

func (s *SaleStore) FindAll(_ context.Context, limit int64) ([]models.Sale, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sales := make([]models.Sale, len(s.sales))
	copy(sales, s.sales)
	sort.Slice(sales, func(i, j int) bool {
		return sales[i].CreatedAt.After(sales[j].CreatedAt)
	})
	if int64(len(sales)) > limit {
		sales = sales[:limit]
	}
	return sales, nil
}

func (s *SaleStore) FindSince(_ context.Context, since time.Time) ([]models.Sale, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var sales []models.Sale
	for _, sale := range s.sales {
		if !sale.CreatedAt.Before(since) {
			sales = append(sales, sale)
		}
	}
	return sales, nil
}

func (s *SaleStore) Count(_ context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.sales)), nil
}

// SummaryStore records saved daily summaries.
type SummaryStore struct {
	mu        sync.Mutex
	summaries []models.DailySummary
	Err       error
}

var _ mongodb.SummaryStore = (*SummaryStore)(nil)

// NewSummaryStore returns an empty in-memory summary store.
func NewSummaryStore() *SummaryStore {
	return &SummaryStore{}
}

func (s *SummaryStore) SaveDailySummary(_ context.Context, summary models.DailySummary) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = append(s.summaries, summary)
	return nil
}

// Saved returns a copy of the recorded summaries.
func (s *SummaryStore) Saved() []models.DailySummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.DailySummary, len(s.summaries))
	copy(out, s.summaries)
	return out
}
