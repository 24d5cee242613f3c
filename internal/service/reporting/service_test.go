package reporting_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/coldstore/internal/domain/models"
	"github.com/mamadbah2/coldstore/internal/repository/repositorytest"
	"github.com/mamadbah2/coldstore/internal/service/reporting"
)

type recordingExporter struct {
	mu        sync.Mutex
	summaries []models.DailySummary
	err       error
}

func (e *recordingExporter) AppendDailySummary(_ context.Context, summary models.DailySummary) error {
	if e.err != nil {
		return e.err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.summaries = append(e.summaries, summary)
	return nil
}

func TestBuildDailySummary(t *testing.T) {
	sales := repositorytest.NewSaleStore()
	products := repositorytest.NewProductStore()
	svc := reporting.NewService(sales, products, repositorytest.NewSummaryStore(), nil, nil)

	now := time.Now().UTC()
	sales.Seed(
		models.Sale{ID: "s1", Total: 120, CreatedAt: now},
		models.Sale{ID: "s2", Total: 30, CreatedAt: now},
		models.Sale{ID: "s3", Total: 77, CreatedAt: now.Add(-48 * time.Hour)},
	)
	products.Seed(models.Product{ID: "p1", Name: "Salmon fillet", Stock: 2, CreatedAt: now, UpdatedAt: now})

	summary, err := svc.BuildDailySummary(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.SalesCount)
	assert.InDelta(t, 150, summary.Revenue, 0.01)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, now.Truncate(24*time.Hour), summary.Date)
}

func TestExportDailySummary(t *testing.T) {
	sales := repositorytest.NewSaleStore()
	products := repositorytest.NewProductStore()
	summaries := repositorytest.NewSummaryStore()
	exporter := &recordingExporter{}
	svc := reporting.NewService(sales, products, summaries, exporter, nil)

	now := time.Now().UTC()
	sales.Seed(models.Sale{ID: "s1", Total: 50, CreatedAt: now})

	require.NoError(t, svc.ExportDailySummary(context.Background(), now))

	saved := summaries.Saved()
	require.Len(t, saved, 1)
	assert.Equal(t, 1, saved[0].SalesCount)

	require.Len(t, exporter.summaries, 1)
	assert.InDelta(t, 50, exporter.summaries[0].Revenue, 0.01)
}

func TestExportDailySummaryWithoutExporter(t *testing.T) {
	summaries := repositorytest.NewSummaryStore()
	svc := reporting.NewService(repositorytest.NewSaleStore(), repositorytest.NewProductStore(), summaries, nil, nil)

	require.NoError(t, svc.ExportDailySummary(context.Background(), time.Now().UTC()))
	assert.Len(t, summaries.Saved(), 1)
}

func TestExportDailySummaryExporterFailure(t *testing.T) {
	exporter := &recordingExporter{err: errors.New("sheets unavailable")}
	svc := reporting.NewService(repositorytest.NewSaleStore(), repositorytest.NewProductStore(), repositorytest.NewSummaryStore(), exporter, nil)

	err := svc.ExportDailySummary(context.Background(), time.Now().UTC())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheets unavailable")
}
