package api

import (
	"net/http"

	"github.com/bespokesol/catalog/internal/models"
)

// CreateMedia godoc
// @Summary Register media for a product
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param media body CreateMediaRequest true "Media metadata"
// @Success 201 {object} MediaResponse
// @Failure 400 {object} ErrorResponse
// @Router /media [post]
func (h *Handler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	var req CreateMediaRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	media, err := h.mediaSvc.CreateMedia(r.Context(), &models.CreateMediaRequest{
		Name:      req.Name,
		Type:      models.MediaType(req.Type),
		ProductID: req.ProductID,
		CreatedBy: currentUserID(r),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Created(w, convertToMediaResponse(media, nil))
}

// ListMedia godoc
// @Summary List active media
// @Tags media
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} ListResponse{data=[]MediaResponse}
// @Router /media [get]
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	result, err := h.mediaSvc.ListMedia(r.Context(), pageParams(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	responses := make([]MediaResponse, len(result.Media))
	for i, m := range result.Media {
		responses[i] = convertToMediaResponse(m.Media, m.ProductName)
	}

	List(w, responses, result.Page)
}

// GetMedia godoc
// @Summary Get a media item
// @Tags media
// @Produce json
// @Param id path int true "Media ID"
// @Success 200 {object} MediaResponse
// @Failure 404 {object} ErrorResponse
// @Router /media/{id} [get]
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	media, err := h.mediaSvc.GetMedia(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, convertToMediaResponse(media.Media, media.ProductName))
}

// UpdateMedia godoc
// @Summary Update media metadata
// @Tags media
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Media ID"
// @Param media body UpdateMediaRequest true "Fields to change"
// @Success 200 {object} MediaResponse
// @Router /media/{id} [patch]
func (h *Handler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateMediaRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var mediaType *models.MediaType
	if req.Type != nil {
		t := models.MediaType(*req.Type)
		mediaType = &t
	}

	media, err := h.mediaSvc.UpdateMedia(r.Context(), &models.UpdateMediaRequest{
		ID:        id,
		Name:      req.Name,
		Type:      mediaType,
		ProductID: req.ProductID,
		Status:    statusPtr(req.Status),
		UpdatedBy: currentUserID(r),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, convertToMediaResponse(media, nil))
}

// DeleteMedia godoc
// @Summary Deactivate a media item
// @Tags media
// @Security BearerAuth
// @Param id path int true "Media ID"
// @Success 204
// @Router /media/{id} [delete]
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.mediaSvc.DeleteMedia(r.Context(), id, currentUserID(r)); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
