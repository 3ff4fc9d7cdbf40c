package converter

import (
	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
)

func ProductToResponse(product *entity.Product) *dto.ProductResponse {
	if product == nil {
		return nil
	}

	return &dto.ProductResponse{
		ID:                   product.ID,
		Name:                 product.Name,
		Description:          product.Description,
		Price:                product.Price,
		Category:             string(product.Category),
		StockQuantity:        product.StockQuantity,
		RequiresPrescription: product.RequiresPrescription,
		ImageURL:             product.ImageURL,
		CreatedAt:            product.CreatedAt,
		UpdatedAt:            product.UpdatedAt,
	}
}

func ProductsToResponses(products []entity.Product) []dto.ProductResponse {
	responses := make([]dto.ProductResponse, len(products))
	for i := range products {
		responses[i] = *ProductToResponse(&products[i])
	}
	return responses
}
