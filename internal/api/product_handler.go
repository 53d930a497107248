package api

import (
	"net/http"

	"github.com/bespokesol/catalog/internal/models"
	"github.com/nhalm/canonlog"
)

// CreateProduct godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body CreateProductRequest true "Product to create"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /products [post]
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	canonlog.AddRequestFields(r.Context(), map[string]any{
		"product_name": req.Name,
		"vendor_id":    req.VendorID,
	})

	product, err := h.productSvc.CreateProduct(r.Context(), &models.CreateProductRequest{
		Name:                 req.Name,
		Description:          req.Description,
		Price:                *req.Price,
		GSTPercentage:        *req.GSTPercentage,
		MinimumOrderQuantity: *req.MinimumOrderQuantity,
		AvailableStock:       *req.AvailableStock,
		VendorID:             req.VendorID,
		CreatedBy:            currentUserID(r),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Created(w, convertToProductResponse(product))
}

// ListProducts godoc
// @Summary List active products
// @Tags products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} ListResponse{data=[]ProductResponse}
// @Router /products [get]
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.productSvc.ListProducts(r.Context(), pageParams(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	responses := make([]ProductResponse, len(result.Products))
	for i, p := range result.Products {
		responses[i] = convertToProductResponse(p)
	}

	List(w, responses, result.Page)
}

// GetProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [get]
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, convertToProductResponse(product))
}

// UpdateProduct godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param product body UpdateProductRequest true "Fields to change"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [patch]
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), &models.UpdateProductRequest{
		ID:                   id,
		Name:                 req.Name,
		Description:          req.Description,
		Price:                req.Price,
		GSTPercentage:        req.GSTPercentage,
		MinimumOrderQuantity: req.MinimumOrderQuantity,
		AvailableStock:       req.AvailableStock,
		VendorID:             req.VendorID,
		UpdatedBy:            currentUserID(r),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, convertToProductResponse(product))
}

// DeleteProduct godoc
// @Summary Deactivate a product
// @Tags products
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [delete]
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id, currentUserID(r)); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
