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

type CategoryRepository interface {
	Create(ctx context.Context, name string) (*models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Update(ctx context.Context, req *models.UpdateCategoryRequest) (*models.Category, error)
	SoftDelete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.ListCategoriesFilter) ([]*models.Category, int, error)
}

type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}

	c, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, categoryWriteError(err, "create category")
	}
	return c, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "category", strconv.FormatInt(id, 10), "get category")
	}
	return c, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, req *models.UpdateCategoryRequest) (*models.Category, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("name", "must not be empty")
		}
		req.Name = &trimmed
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, apperrors.NewValidationError("status", "must be active or inactive")
	}

	c, err := s.repo.Update(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("category", strconv.FormatInt(req.ID, 10))
		}
		return nil, categoryWriteError(err, "update category")
	}
	return c, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return notFoundOr(err, "category", strconv.FormatInt(id, 10), "delete category")
	}
	return nil
}

func (s *CategoryService) ListCategories(ctx context.Context, filter models.ListCategoriesFilter) (*models.ListCategoriesResult, error) {
	filter.PageParams = filter.PageParams.Normalize()

	categories, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError("list categories", err)
	}
	return &models.ListCategoriesResult{
		Categories: categories,
		Page:       models.NewPageInfo(filter.PageParams, total),
	}, nil
}

func categoryWriteError(err error, op string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewConflictError("category", "a category with this name already exists")
	}
	return storeError(op, err)
}
