package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/coldstore/internal/domain/models"
	"github.com/mamadbah2/coldstore/internal/repository/mongodb"
)

// lowStockListLimit caps the low-stock product list in the stats payload.
const lowStockListLimit = 100

// Service computes the dashboard aggregate on demand; nothing is cached.
type Service struct {
	products mongodb.ProductStore
	clients  mongodb.ClientStore
	sales    mongodb.SaleStore
	logger   *zap.Logger
}

// NewService wires a new dashboard service instance.
func NewService(products mongodb.ProductStore, clients mongodb.ClientStore, sales mongodb.SaleStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		products: products,
		clients:  clients,
		sales:    sales,
		logger:   logger,
	}
}

// Stats aggregates catalog counts, today's sales (since UTC midnight) and the
// low-stock product set.
func (s *Service) Stats(ctx context.Context) (*models.DashboardStats, error) {
	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalClients, err := s.clients.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalSales, err := s.sales.Count(ctx)
	if err != nil {
		return nil, err
	}

	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
	todaySales, err := s.sales.FindSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}

	var todayRevenue float64
	for _, sale := range todaySales {
		todayRevenue += sale.Total
	}

	lowStock, err := s.products.FindLowStock(ctx, models.LowStockThreshold, lowStockListLimit)
	if err != nil {
		return nil, err
	}
	if lowStock == nil {
		lowStock = []models.Product{}
	}

	return &models.DashboardStats{
		TotalProducts:    totalProducts,
		TotalClients:     totalClients,
		TotalSales:       totalSales,
		TodaySalesCount:  len(todaySales),
		TodayRevenue:     todayRevenue,
		LowStockCount:    len(lowStock),
		LowStockProducts: lowStock,
	}, nil
}
