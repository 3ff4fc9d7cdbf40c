package converter

import (
	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/domain/entity"
)

// AccountToResponse converts an Account entity to its public projection.
// The password hash has no counterpart in the DTO.
func AccountToResponse(account *entity.Account) *dto.AccountResponse {
	if account == nil {
		return nil
	}

	return &dto.AccountResponse{
		ID:         account.ID,
		Name:       account.Name,
		Phone:      account.Phone,
		Email:      account.Email,
		Address:    account.Address,
		Role:       int(account.Role),
		RoleName:   account.Role.String(),
		IsApproved: account.IsApproved,
		CreatedAt:  account.CreatedAt,
	}
}

func AccountsToResponses(accounts []entity.Account) []dto.AccountResponse {
	responses := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = *AccountToResponse(&accounts[i])
	}
	return responses
}
