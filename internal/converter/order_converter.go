package converter

import (
	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
)

// OrderToResponse includes the buyer only when the Account relation is loaded.
func OrderToResponse(order *entity.Order) *dto.OrderResponse {
	if order == nil {
		return nil
	}

	resp := &dto.OrderResponse{
		ID:              order.ID,
		AccountID:       order.AccountID,
		Items:           make([]dto.OrderItemResponse, len(order.Items)),
		Subtotal:        order.Subtotal,
		Tax:             order.Tax,
		Total:           order.Total,
		ShippingAddress: order.ShippingAddress,
		Status:          string(order.Status),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}

	for i, item := range order.Items {
		resp.Items[i] = dto.OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	if order.Account != nil {
		resp.Buyer = &dto.OrderBuyerResponse{
			ID:    order.Account.ID,
			Name:  order.Account.Name,
			Email: order.Account.Email,
			Phone: order.Account.Phone,
		}
	}

	return resp
}

func OrdersToResponses(orders []entity.Order) []dto.OrderResponse {
	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *OrderToResponse(&orders[i])
	}
	return responses
}
