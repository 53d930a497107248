package api

import (
	"net/http"
	"strings"

	"github.com/bespokesol/catalog/internal/models"
)

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body CreateCategoryRequest true "Category to create"
// @Success 201 {object} CategoryResponse
// @Failure 409 {object} ErrorResponse
// @Router /categories [post]
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	category, err := h.categorySvc.CreateCategory(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Created(w, convertToCategoryResponse(category))
}

// ListCategories godoc
// @Summary List active categories
// @Tags categories
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Case-insensitive name filter"
// @Success 200 {object} ListResponse{data=[]CategoryResponse}
// @Router /categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.categorySvc.ListCategories(r.Context(), models.ListCategoriesFilter{
		PageParams: pageParams(r),
		Search:     strings.TrimSpace(r.URL.Query().Get("search")),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	responses := make([]CategoryResponse, len(result.Categories))
	for i, c := range result.Categories {
		responses[i] = convertToCategoryResponse(c)
	}

	List(w, responses, result.Page)
}

// GetCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} CategoryResponse
// @Failure 404 {object} ErrorResponse
// @Router /categories/{id} [get]
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	category, err := h.categorySvc.GetCategory(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, convertToCategoryResponse(category))
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param category body UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} CategoryResponse
// @Router /categories/{id} [patch]
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	category, err := h.categorySvc.UpdateCategory(r.Context(), &models.UpdateCategoryRequest{
		ID:     id,
		Name:   req.Name,
		Status: statusPtr(req.Status),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, convertToCategoryResponse(category))
}

// DeleteCategory godoc
// @Summary Deactivate a category
// @Tags categories
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204
// @Router /categories/{id} [delete]
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.categorySvc.DeleteCategory(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func statusPtr(s *string) *models.Status {
	if s == nil {
		return nil
	}
	status := models.Status(*s)
	return &status
}
