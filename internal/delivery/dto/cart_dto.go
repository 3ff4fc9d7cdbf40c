package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,gte=1"`
}

type UpdateCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity"`
}

// Response DTOs

type CartItemResponse struct {
	ProductID            uuid.UUID       `json:"product_id"`
	Name                 string          `json:"name"`
	Price                decimal.Decimal `json:"price"`
	Quantity             int             `json:"quantity"`
	Category             string          `json:"category,omitempty"`
	RequiresPrescription bool            `json:"requires_prescription"`
	LineTotal            decimal.Decimal `json:"line_total"`
	AddedAt              time.Time       `json:"added_at"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
}
