package handler

import (
	"errors"
	"net/http"

	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/usecase"
	"pharmacy-backend/pkg/response"
	"pharmacy-backend/pkg/validator"

	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUsecase
	validator    *validator.CustomValidator
	log          *logrus.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUsecase, validator *validator.CustomValidator, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		orderUsecase: orderUsecase,
		validator:    validator,
		log:          log,
	}
}

// Checkout places an order from the caller's cart
// @Summary Checkout
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Checkout Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /orders/checkout [post]
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	accountID, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	order, err := h.orderUsecase.Checkout(r.Context(), accountID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCartEmpty):
			response.BadRequest(w, "Cart is empty")
		case errors.Is(err, usecase.ErrValidation):
			response.BadRequest(w, err.Error())
		default:
			h.log.Errorf("Checkout failed: %+v", err)
			response.InternalServerError(w, "Failed to place order")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Order placed successfully", order)
}

// GetMine lists the caller's orders
// @Summary List my orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /orders [get]
func (h *OrderHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	accountID, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	orders, err := h.orderUsecase.ListMine(r.Context(), accountID)
	if err != nil {
		h.log.Errorf("List orders failed: %+v", err)
		response.InternalServerError(w, "Failed to get orders")
		return
	}

	response.Success(w, http.StatusOK, "Orders retrieved successfully", orders)
}

// GetByID returns one of the caller's orders
// @Summary Get my order
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	accountID, ok := currentAccountID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "Invalid order ID")
	if !ok {
		return
	}

	order, err := h.orderUsecase.GetMine(r.Context(), accountID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrOrderNotFound) {
			response.NotFound(w, "Order not found")
			return
		}
		h.log.Errorf("Get order failed: %+v", err)
		response.InternalServerError(w, "Failed to get order")
		return
	}

	response.Success(w, http.StatusOK, "Order retrieved successfully", order)
}

// GetAll lists every order with its buyer
// @Summary List all orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /orders/all [get]
func (h *OrderHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUsecase.ListAll(r.Context())
	if err != nil {
		h.log.Errorf("List all orders failed: %+v", err)
		response.InternalServerError(w, "Failed to get orders")
		return
	}

	response.Success(w, http.StatusOK, "Orders retrieved successfully", orders)
}

// UpdateStatus moves an order to a new status
// @Summary Update order status
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.UpdateOrderStatusRequest true "Update Order Status Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentAccountID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "Invalid order ID")
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	order, err := h.orderUsecase.UpdateStatus(r.Context(), actorID, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrOrderNotFound):
			response.NotFound(w, "Order not found")
		case errors.Is(err, usecase.ErrValidation):
			response.BadRequest(w, err.Error())
		default:
			h.log.Errorf("Update order status failed: %+v", err)
			response.InternalServerError(w, "Failed to update order status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Order status updated successfully", order)
}
