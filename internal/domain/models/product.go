package models

import (
	"time"

	"github.com/google/uuid"
)

// LowStockThreshold is the stock level at or below which a product is
// considered low on stock, both for dashboard aggregation and alerts.
const LowStockThreshold = 5.0

// Product represents a catalog entry of the store.
// Stock is a float64 because goods are sold by weight (fractional kg).
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"` // "fish" or "meat"
	Price     float64   `json:"price"`
	Stock     float64   `json:"stock"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductCreate is the payload accepted when registering a new product.
type ProductCreate struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Price    float64 `json:"price"`
	Stock    float64 `json:"stock"`
	Unit     string  `json:"unit"`
}

// NewProduct materializes a Product from its creation payload.
func (pc ProductCreate) NewProduct(now time.Time) Product {
	unit := pc.Unit
	if unit == "" {
		unit = "kg"
	}
	return Product{
		ID:        uuid.NewString(),
		Name:      pc.Name,
		Category:  pc.Category,
		Price:     pc.Price,
		Stock:     pc.Stock,
		Unit:      unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ProductUpdate carries a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Stock    *float64 `json:"stock"`
	Unit     *string  `json:"unit"`
}

// ProductSuggestion is the reduced shape returned by the type-ahead search.
type ProductSuggestion struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock float64 `json:"stock"`
	Unit  string  `json:"unit"`
}
