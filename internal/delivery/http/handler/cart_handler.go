package handler

import (
	"errors"
	"net/http"

	"pharmacy-backend/internal/delivery/dto"
	"pharmacy-backend/internal/usecase"
	"pharmacy-backend/pkg/response"
	"pharmacy-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CartHandler struct {
	cartUsecase usecase.CartUsecase
	validator   *validator.CustomValidator
	log         *logrus.Logger
}

func NewCartHandler(cartUsecase usecase.CartUsecase, validator *validator.CustomValidator, log *logrus.Logger) *CartHandler {
	return &CartHandler{
		cartUsecase: cartUsecase,
		validator:   validator,
		log:         log,
	}
}

// Get returns the caller's cart
// @Summary Get cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /cart [get]
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	cart, err := h.cartUsecase.Get(r.Context(), accountID)
	if err != nil {
		h.log.Errorf("Get cart failed: %+v", err)
		response.InternalServerError(w, "Failed to get cart")
		return
	}

	response.Success(w, http.StatusOK, "Cart retrieved successfully", cart)
}

// Add puts a product in the cart or increases its quantity
// @Summary Add cart item
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AddCartItemRequest true "Add Cart Item Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cart [post]
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	accountID, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	var req dto.AddCartItemRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	cart, err := h.cartUsecase.AddItem(r.Context(), accountID, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		h.log.Errorf("Add cart item failed: %+v", err)
		response.InternalServerError(w, "Failed to add item to cart")
		return
	}

	response.Success(w, http.StatusOK, "Item added to cart", cart)
}

// Update sets a line's quantity; zero removes it
// @Summary Update cart item
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateCartItemRequest true "Update Cart Item Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /cart [put]
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateCartItemRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	cart, err := h.cartUsecase.UpdateItem(r.Context(), accountID, &req)
	if err != nil {
		h.log.Errorf("Update cart item failed: %+v", err)
		response.InternalServerError(w, "Failed to update cart")
		return
	}

	response.Success(w, http.StatusOK, "Cart updated successfully", cart)
}

// Remove deletes one line from the cart
// @Summary Remove cart item
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param product_id query string true "Product ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /cart [delete]
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	accountID, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	productID, err := uuid.Parse(r.URL.Query().Get("product_id"))
	if err != nil {
		response.BadRequest(w, "product_id is required")
		return
	}

	cart, err := h.cartUsecase.RemoveItem(r.Context(), accountID, productID)
	if err != nil {
		h.log.Errorf("Remove cart item failed: %+v", err)
		response.InternalServerError(w, "Failed to remove item from cart")
		return
	}

	response.Success(w, http.StatusOK, "Item removed from cart", cart)
}

// Clear empties the cart
// @Summary Clear cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /cart/clear [delete]
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	accountID, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	if err := h.cartUsecase.Clear(r.Context(), accountID); err != nil {
		h.log.Errorf("Clear cart failed: %+v", err)
		response.InternalServerError(w, "Failed to clear cart")
		return
	}

	response.Success(w, http.StatusOK, "Cart cleared", nil)
}
