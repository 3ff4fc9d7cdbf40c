package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateProductRequest struct {
	Name                 string           `json:"name" validate:"required,min=2"`
	Description          string           `json:"description"`
	Price                *decimal.Decimal `json:"price" validate:"required"`
	Category             string           `json:"category" validate:"omitempty,oneof=prescription otc vitamins wellness beauty baby"`
	StockQuantity        *int             `json:"stock_quantity" validate:"omitempty,gte=0"`
	RequiresPrescription bool             `json:"requires_prescription"`
	ImageURL             string           `json:"image_url" validate:"omitempty,url"`
}

// UpdateProductRequest is a partial update; nil fields are left unchanged.
type UpdateProductRequest struct {
	Name                 *string          `json:"name" validate:"omitempty,min=2"`
	Description          *string          `json:"description"`
	Price                *decimal.Decimal `json:"price"`
	Category             *string          `json:"category" validate:"omitempty,oneof=prescription otc vitamins wellness beauty baby"`
	StockQuantity        *int             `json:"stock_quantity" validate:"omitempty,gte=0"`
	RequiresPrescription *bool            `json:"requires_prescription"`
	ImageURL             *string          `json:"image_url" validate:"omitempty,url"`
}

// Response DTOs

type ProductResponse struct {
	ID                   uuid.UUID       `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Price                decimal.Decimal `json:"price"`
	Category             string          `json:"category"`
	StockQuantity        int             `json:"stock_quantity"`
	RequiresPrescription bool            `json:"requires_prescription"`
	ImageURL             string          `json:"image_url,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

type SeedProductsResponse struct {
	Seeded   bool  `json:"seeded"`
	Inserted int   `json:"inserted"`
	Existing int64 `json:"existing"`
}
