package reporting

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/coldstore/internal/domain/models"
	"github.com/mamadbah2/coldstore/internal/repository/mongodb"
	"github.com/mamadbah2/coldstore/internal/repository/sheets"
)

// Service builds end-of-day summaries and ships them to the archive
// collection and the bookkeeping spreadsheet.
type Service struct {
	sales     mongodb.SaleStore
	products  mongodb.ProductStore
	summaries mongodb.SummaryStore
	exporter  sheets.Exporter
	logger    *zap.Logger
}

// NewService wires a new reporting service instance. exporter may be nil to
// keep summaries local only.
func NewService(sales mongodb.SaleStore, products mongodb.ProductStore, summaries mongodb.SummaryStore, exporter sheets.Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sales:     sales,
		products:  products,
		summaries: summaries,
		exporter:  exporter,
		logger:    logger,
	}
}

// BuildDailySummary aggregates the sales recorded on the given day (UTC) and
// the current low-stock count.
func (s *Service) BuildDailySummary(ctx context.Context, day time.Time) (models.DailySummary, error) {
	startOfDay := day.UTC().Truncate(24 * time.Hour)

	daySales, err := s.sales.FindSince(ctx, startOfDay)
	if err != nil {
		return models.DailySummary{}, err
	}

	var revenue float64
	for _, sale := range daySales {
		revenue += sale.Total
	}

	lowStock, err := s.products.FindLowStock(ctx, models.LowStockThreshold, 100)
	if err != nil {
		return models.DailySummary{}, err
	}

	return models.DailySummary{
		Date:          startOfDay,
		SalesCount:    len(daySales),
		Revenue:       revenue,
		LowStockCount: len(lowStock),
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// ExportDailySummary builds the summary for the given day, archives it and
// appends it to the spreadsheet when an exporter is configured.
func (s *Service) ExportDailySummary(ctx context.Context, day time.Time) error {
	summary, err := s.BuildDailySummary(ctx, day)
	if err != nil {
		return err
	}

	if err := s.summaries.SaveDailySummary(ctx, summary); err != nil {
		return err
	}

	if s.exporter != nil {
		if err := s.exporter.AppendDailySummary(ctx, summary); err != nil {
			return err
		}
	}

	s.logger.Info("daily summary exported",
		zap.Time("date", summary.Date),
		zap.Int("sales_count", summary.SalesCount),
		zap.Float64("revenue", summary.Revenue),
		zap.Int("low_stock_count", summary.LowStockCount))

	return nil
}
