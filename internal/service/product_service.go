package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/bespokesol/catalog/internal/apperrors"
	"github.com/bespokesol/catalog/internal/models"
	"github.com/bespokesol/catalog/internal/repository"
)

type ProductRepository interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, id int64, activeOnly bool) (*models.Product, error)
	Update(ctx context.Context, req *models.UpdateProductRequest) (*models.Product, error)
	SoftDelete(ctx context.Context, id, deletedBy int64) error
	List(ctx context.Context, page models.PageParams) ([]*models.Product, int, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type ProductService struct {
	repo     ProductRepository
	users    UserLookup
	enricher *enricher
}

func NewProductService(repo ProductRepository, users UserLookup, vendors VendorNameStore, media CollectionMediaStore, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		repo:     repo,
		users:    users,
		enricher: &enricher{vendors: vendors, media: media, logger: logger},
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.ProductDetail, error) {
	if err := validateProductAmounts(&req.Price, &req.GSTPercentage); err != nil {
		return nil, err
	}
	if err := s.checkVendor(ctx, req.VendorID); err != nil {
		return nil, err
	}

	product, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, storeError("create product", err)
	}
	return s.enricher.enrich(ctx, []*models.Product{product})[0], nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.ProductDetail, error) {
	product, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		return nil, notFoundOr(err, "product", strconv.FormatInt(id, 10), "get product")
	}
	return s.enricher.enrich(ctx, []*models.Product{product})[0], nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, req *models.UpdateProductRequest) (*models.ProductDetail, error) {
	if err := validateProductAmounts(req.Price, req.GSTPercentage); err != nil {
		return nil, err
	}
	if req.VendorID != nil {
		if err := s.checkVendor(ctx, *req.VendorID); err != nil {
			return nil, err
		}
	}

	product, err := s.repo.Update(ctx, req)
	if err != nil {
		return nil, notFoundOr(err, "product", strconv.FormatInt(req.ID, 10), "update product")
	}
	return s.enricher.enrich(ctx, []*models.Product{product})[0], nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id, deletedBy int64) error {
	if err := s.repo.SoftDelete(ctx, id, deletedBy); err != nil {
		return notFoundOr(err, "product", strconv.FormatInt(id, 10), "delete product")
	}
	return nil
}

func (s *ProductService) ListProducts(ctx context.Context, page models.PageParams) (*models.ListProductsResult, error) {
	page = page.Normalize()

	products, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, storeError("list products", err)
	}

	return &models.ListProductsResult{
		Products: s.enricher.enrich(ctx, products),
		Page:     models.NewPageInfo(page, total),
	}, nil
}

func (s *ProductService) checkVendor(ctx context.Context, vendorID int64) error {
	vendor, err := s.users.GetByID(ctx, vendorID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return storeError("get vendor", err)
	}
	if vendor == nil || !vendor.IsActiveVendor() {
		return apperrors.NewValidationError("vendor_id", "vendor does not exist or is inactive")
	}
	return nil
}
