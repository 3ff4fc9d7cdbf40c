package converter

import (
	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// CartToResponse builds the cart view with per-line and overall totals.
func CartToResponse(items []entity.CartItem) *dto.CartResponse {
	resp := &dto.CartResponse{
		Items:    make([]dto.CartItemResponse, len(items)),
		Subtotal: decimal.Zero,
	}

	for i, item := range items {
		lineTotal := item.LineTotal()
		resp.Items[i] = dto.CartItemResponse{
			ProductID:            item.ProductID,
			Name:                 item.Name,
			Price:                item.Price,
			Quantity:             item.Quantity,
			Category:             string(item.Category),
			RequiresPrescription: item.RequiresPrescription,
			LineTotal:            lineTotal,
			AddedAt:              item.CreatedAt,
		}
		resp.ItemCount += item.Quantity
		resp.Subtotal = resp.Subtotal.Add(lineTotal)
	}

	return resp
}
