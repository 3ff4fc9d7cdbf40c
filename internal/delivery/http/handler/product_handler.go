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

type ProductHandler struct {
	productUsecase usecase.ProductUsecase
	validator      *validator.CustomValidator
	log            *logrus.Logger
}

func NewProductHandler(productUsecase usecase.ProductUsecase, validator *validator.CustomValidator, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validator:      validator,
		log:            log,
	}
}

func (h *ProductHandler) writeError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, usecase.ErrProductNotFound):
		response.NotFound(w, "Product not found")
	case errors.Is(err, usecase.ErrValidation):
		response.BadRequest(w, err.Error())
	default:
		h.log.Errorf("%s failed: %+v", action, err)
		response.InternalServerError(w, "Failed to "+action)
	}
}

// GetAll handles listing the catalogue
// @Summary List products
// @Tags Products
// @Produce json
// @Param category query string false "Category, or all"
// @Param search query string false "Case-insensitive name/description search"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /products [get]
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	products, err := h.productUsecase.List(r.Context(), query.Get("category"), query.Get("search"))
	if err != nil {
		h.writeError(w, err, "get products")
		return
	}

	response.Success(w, http.StatusOK, "Products retrieved successfully", products)
}

// GetByID handles getting a product
// @Summary Get product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "Invalid product ID")
	if !ok {
		return
	}

	product, err := h.productUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "get product")
		return
	}

	response.Success(w, http.StatusOK, "Product retrieved successfully", product)
}

// Create handles product creation
// @Summary Create a new product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateProductRequest true "Create Product Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	product, err := h.productUsecase.Create(r.Context(), actorID, &req)
	if err != nil {
		h.writeError(w, err, "create product")
		return
	}

	response.Success(w, http.StatusCreated, "Product created successfully", product)
}

// Update handles partial product updates
// @Summary Update product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body dto.UpdateProductRequest true "Update Product Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentAccountID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "Invalid product ID")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	product, err := h.productUsecase.Update(r.Context(), actorID, id, &req)
	if err != nil {
		h.writeError(w, err, "update product")
		return
	}

	response.Success(w, http.StatusOK, "Product updated successfully", product)
}

// Delete handles product deletion
// @Summary Delete product
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentAccountID(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "Invalid product ID")
	if !ok {
		return
	}

	if err := h.productUsecase.Delete(r.Context(), actorID, id); err != nil {
		h.writeError(w, err, "delete product")
		return
	}

	response.Success(w, http.StatusOK, "Product deleted successfully", nil)
}

// Seed loads the starter catalogue into an empty product table
// @Summary Seed products
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /products/seed [post]
func (h *ProductHandler) Seed(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	result, err := h.productUsecase.Seed(r.Context(), actorID)
	if err != nil {
		h.writeError(w, err, "seed products")
		return
	}

	message := "Products seeded successfully"
	if !result.Seeded {
		message = "Products already exist"
	}
	response.Success(w, http.StatusOK, message, result)
}
