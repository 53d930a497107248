package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/bespokesol/catalog/internal/apperrors"
	"github.com/bespokesol/catalog/internal/models"
	"github.com/bespokesol/catalog/internal/repository"
)

type MediaRepository interface {
	Create(ctx context.Context, req *models.CreateMediaRequest) (*models.Media, error)
	GetByID(ctx context.Context, id int64) (*models.MediaDetail, error)
	Update(ctx context.Context, req *models.UpdateMediaRequest) (*models.Media, error)
	SoftDelete(ctx context.Context, id, deletedBy int64) error
	List(ctx context.Context, page models.PageParams) ([]*models.MediaDetail, int, error)
}

type ProductLookup interface {
	GetByID(ctx context.Context, id int64, activeOnly bool) (*models.Product, error)
}

type MediaService struct {
	repo     MediaRepository
	products ProductLookup
}

func NewMediaService(repo MediaRepository, products ProductLookup) *MediaService {
	return &MediaService{repo: repo, products: products}
}

func (s *MediaService) CreateMedia(ctx context.Context, req *models.CreateMediaRequest) (*models.Media, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}
	if req.Type == "" {
		req.Type = models.MediaTypeImage
	}
	if !req.Type.Valid() {
		return nil, apperrors.NewValidationError("type", "must be one of IMAGE, VIDEO, PDF")
	}
	if err := s.checkProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}

	m, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, storeError("create media", err)
	}
	return m, nil
}

func (s *MediaService) GetMedia(ctx context.Context, id int64) (*models.MediaDetail, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "media", strconv.FormatInt(id, 10), "get media")
	}
	return m, nil
}

func (s *MediaService) UpdateMedia(ctx context.Context, req *models.UpdateMediaRequest) (*models.Media, error) {
	if req.Type != nil && !req.Type.Valid() {
		return nil, apperrors.NewValidationError("type", "must be one of IMAGE, VIDEO, PDF")
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, apperrors.NewValidationError("status", "must be active or inactive")
	}
	if req.ProductID != nil {
		if err := s.checkProduct(ctx, *req.ProductID); err != nil {
			return nil, err
		}
	}

	m, err := s.repo.Update(ctx, req)
	if err != nil {
		return nil, notFoundOr(err, "media", strconv.FormatInt(req.ID, 10), "update media")
	}
	return m, nil
}

func (s *MediaService) DeleteMedia(ctx context.Context, id, deletedBy int64) error {
	if err := s.repo.SoftDelete(ctx, id, deletedBy); err != nil {
		return notFoundOr(err, "media", strconv.FormatInt(id, 10), "delete media")
	}
	return nil
}

func (s *MediaService) ListMedia(ctx context.Context, page models.PageParams) (*models.ListMediaResult, error) {
	page = page.Normalize()

	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, storeError("list media", err)
	}
	return &models.ListMediaResult{Media: items, Page: models.NewPageInfo(page, total)}, nil
}

func (s *MediaService) checkProduct(ctx context.Context, productID int64) error {
	_, err := s.products.GetByID(ctx, productID, true)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewValidationError("product_id", "product does not exist or is inactive")
	}
	if err != nil {
		return storeError("get product", err)
	}
	return nil
}
