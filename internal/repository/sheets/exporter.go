package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/coldstore/internal/config"
	"github.com/mamadbah2/coldstore/internal/domain/models"
)

// Exporter appends daily summaries to an external bookkeeping sheet.
type Exporter interface {
	AppendDailySummary(ctx context.Context, summary models.DailySummary) error
}

// GoogleSheetExporter implements Exporter using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.ExportConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.SheetRange,
		logger:        logger,
	}, nil
}

// AppendDailySummary appends one summary row: date, sales count, revenue,
// low-stock count, recorded-at.
func (e *GoogleSheetExporter) AppendDailySummary(ctx context.Context, summary models.DailySummary) error {
	values := []interface{}{
		summary.Date.Format("2006-01-02"),
		summary.SalesCount,
		summary.Revenue,
		summary.LowStockCount,
		summary.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, e.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append summary row into range %s: %w", e.sheetRange, err)
	}

	e.logger.Debug("daily summary appended to sheet", zap.String("range", e.sheetRange))
	return nil
}
