package handler

import (
	"errors"
	"net/http"
	"strconv"

	"pharmacy-backend/internal/domain/entity"
	"pharmacy-backend/internal/usecase"
	"pharmacy-backend/pkg/response"

	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	accountUsecase usecase.AccountUsecase
	log            *logrus.Logger
}

func NewAccountHandler(accountUsecase usecase.AccountUsecase, log *logrus.Logger) *AccountHandler {
	return &AccountHandler{
		accountUsecase: accountUsecase,
		log:            log,
	}
}

// GetAll lists accounts
// @Summary List accounts
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param role query int false "Role filter (1-5)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users [get]
func (h *AccountHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	var role *entity.Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid role")
			return
		}
		parsed, err := entity.ParseRole(v)
		if err != nil {
			response.BadRequest(w, "Invalid role")
			return
		}
		role = &parsed
	}

	accounts, err := h.accountUsecase.List(r.Context(), role)
	if err != nil {
		h.log.Errorf("List accounts failed: %+v", err)
		response.InternalServerError(w, "Failed to get accounts")
		return
	}

	response.Success(w, http.StatusOK, "Accounts retrieved successfully", accounts)
}

// Approve marks an account as approved
// @Summary Approve account
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id}/approve [put]
func (h *AccountHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentAccountID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "Invalid account ID")
	if !ok {
		return
	}

	account, err := h.accountUsecase.Approve(r.Context(), actorID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrAccountNotFound) {
			response.NotFound(w, "Account not found")
			return
		}
		h.log.Errorf("Approve account failed: %+v", err)
		response.InternalServerError(w, "Failed to approve account")
		return
	}

	response.Success(w, http.StatusOK, "Account approved successfully", account)
}

// Delete removes an account and its cart
// @Summary Delete account
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentAccountID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "Invalid account ID")
	if !ok {
		return
	}

	if err := h.accountUsecase.Delete(r.Context(), actorID, id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrCannotDeleteSelf):
			response.BadRequest(w, "You cannot delete your own account")
		case errors.Is(err, usecase.ErrAccountNotFound):
			response.NotFound(w, "Account not found")
		default:
			h.log.Errorf("Delete account failed: %+v", err)
			response.InternalServerError(w, "Failed to delete account")
		}
		return
	}

	response.Success(w, http.StatusOK, "Account deleted successfully", nil)
}
