package models

import "time"

// DailySummary is the end-of-day snapshot persisted by the export job and
// appended to the bookkeeping spreadsheet.
type DailySummary struct {
	Date          time.Time `bson:"date" json:"date"`
	SalesCount    int       `bson:"sales_count" json:"sales_count"`
	Revenue       float64   `bson:"revenue" json:"revenue"`
	LowStockCount int       `bson:"low_stock_count" json:"low_stock_count"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
