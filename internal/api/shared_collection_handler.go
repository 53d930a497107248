package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nhalm/canonlog"
)

// CreateSharedCollection godoc
// @Summary Share a set of products
// @Description Snapshots the given active products under a new public slug.
// @Tags shared-collections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param collection body CreateSharedCollectionRequest true "Products to share"
// @Success 201 {object} SharedCollectionCreatedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /shared-collections [post]
func (h *Handler) CreateSharedCollection(w http.ResponseWriter, r *http.Request) {
	var req CreateSharedCollectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	canonlog.AddRequestFields(r.Context(), map[string]any{
		"product_count": len(req.ProductIDs),
	})

	result, err := h.collectionSvc.Create(r.Context(), req.ProductIDs, currentUserID(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	canonlog.AddRequestFields(r.Context(), map[string]any{
		"collection_id": result.ID,
		"slug":          result.Slug,
	})

	Created(w, SharedCollectionCreatedResponse{
		ID:           result.ID,
		Slug:         result.Slug,
		ExpiresAt:    formatTimePtr(result.ExpiresAt),
		ProductCount: result.ProductCount,
	})
}

// ResolveSharedCollection godoc
// @Summary Open a shared collection
// @Description Accepts a numeric id or a slug, as a JSON string or number.
// @Tags shared-collections
// @Accept json
// @Produce json
// @Param collection body ResolveSharedCollectionRequest true "Collection id or slug"
// @Success 200 {object} ResolvedCollectionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse
// @Router /shared-collections/resolve [post]
func (h *Handler) ResolveSharedCollection(w http.ResponseWriter, r *http.Request) {
	var req ResolveSharedCollectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.resolve(w, r, string(req.ID))
}

// GetSharedCollection godoc
// @Summary Open a shared collection by path
// @Tags shared-collections
// @Produce json
// @Param identifier path string true "Collection id or slug"
// @Success 200 {object} ResolvedCollectionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse
// @Router /shared-collections/{identifier} [get]
func (h *Handler) GetSharedCollection(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, chi.URLParam(r, "identifier"))
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, identifier string) {
	canonlog.AddRequestFields(r.Context(), map[string]any{"collection": identifier})

	resolved, err := h.collectionSvc.Resolve(r.Context(), identifier)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, convertToResolvedCollectionResponse(resolved))
}
