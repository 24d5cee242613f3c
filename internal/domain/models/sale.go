package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Payment methods accepted at the register.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentCredit = "credit"
)

// SaleStatusCompleted is the only status issued today; sales are immutable
// facts once recorded.
const SaleStatusCompleted = "completed"

// SaleItem is one priced line of a sale. Name and unit price are snapshots
// taken at sale time so later catalog edits do not rewrite history.
type SaleItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// Sale is an immutable record of a completed transaction.
type Sale struct {
	ID            string     `json:"id"`
	ClientID      *string    `json:"client_id"`
	ClientName    string     `json:"client_name"`
	Items         []SaleItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	Discount      float64    `json:"discount"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	InvoiceNumber string     `json:"invoice_number"`
}

// SaleItemRequest is one requested line of a sale before pricing.
type SaleItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  float64 `json:"quantity"`
}

// SaleCreate is the payload accepted by the sale endpoint.
type SaleCreate struct {
	ClientID      *string           `json:"client_id"`
	ClientName    string            `json:"client_name"`
	Items         []SaleItemRequest `json:"items" binding:"required"`
	Discount      float64           `json:"discount"`
	PaymentMethod string            `json:"payment_method"`
}

// NewSaleID generates a fresh sale identifier.
func NewSaleID() string {
	return uuid.NewString()
}

// InvoiceNumber derives the human-facing invoice reference from the sale
// creation time. Second granularity; concurrent sales within the same
// second share a reference.
func InvoiceNumber(t time.Time) string {
	return fmt.Sprintf("INV-%s", t.Format("20060102-150405"))
}
