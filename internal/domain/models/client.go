package models

import (
	"time"

	"github.com/google/uuid"
)

// AnonymousClient is the display name carried by sales that are not
// associated with a registered client.
const AnonymousClient = "Anonymous"

// Client represents a registered buyer of the store.
// CurrentDebt is persisted but no operation adjusts it yet; credit sales
// only gate on the client existing, not on the balance.
type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Email       string    `json:"email"`
	CreditLimit float64   `json:"credit_limit"`
	CurrentDebt float64   `json:"current_debt"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClientCreate is the payload accepted when registering a new client.
type ClientCreate struct {
	Name        string  `json:"name" binding:"required"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	Email       string  `json:"email"`
	CreditLimit float64 `json:"credit_limit"`
}

// NewClient materializes a Client from its creation payload.
func (cc ClientCreate) NewClient(now time.Time) Client {
	return Client{
		ID:          uuid.NewString(),
		Name:        cc.Name,
		Phone:       cc.Phone,
		Address:     cc.Address,
		Email:       cc.Email,
		CreditLimit: cc.CreditLimit,
		CurrentDebt: 0,
		CreatedAt:   now,
	}
}

// ClientUpdate carries a partial update; nil fields are left untouched.
type ClientUpdate struct {
	Name        *string  `json:"name"`
	Phone       *string  `json:"phone"`
	Address     *string  `json:"address"`
	Email       *string  `json:"email"`
	CreditLimit *float64 `json:"credit_limit"`
}
