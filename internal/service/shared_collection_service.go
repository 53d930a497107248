package service

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bespokesol/catalog/internal/apperrors"
	"github.com/bespokesol/catalog/internal/id"
	"github.com/bespokesol/catalog/internal/metrics"
	"github.com/bespokesol/catalog/internal/models"
	"github.com/bespokesol/catalog/internal/repository"
	"golang.org/x/sync/errgroup"
)

// MaxSlugAttempts bounds how many slugs Create tries before giving up.
const MaxSlugAttempts = 5

const sharedCollectionResource = "shared collection"

type CollectionProductStore interface {
	CountActive(ctx context.Context, ids []int64) (int, error)
	FindByIDs(ctx context.Context, ids []int64, activeOnly bool) ([]*models.Product, error)
}

type SharedCollectionStore interface {
	Create(ctx context.Context, c *models.SharedCollection) (*models.SharedCollection, error)
	GetByID(ctx context.Context, id int64) (*models.SharedCollection, error)
	GetBySlug(ctx context.Context, slug string) (*models.SharedCollection, error)
}

type SlugGenerator interface {
	NewSlug() (string, error)
}

type SharedCollectionService struct {
	collections SharedCollectionStore
	products    CollectionProductStore
	enricher    *enricher
	slugs       SlugGenerator
	now         func() time.Time
	logger      *slog.Logger
}

type SharedCollectionOption func(*SharedCollectionService)

// WithClock replaces time.Now for expiry checks and, unless WithSlugGenerator
// is also given, for slug timestamps.
func WithClock(now func() time.Time) SharedCollectionOption {
	return func(s *SharedCollectionService) { s.now = now }
}

func WithSlugGenerator(g SlugGenerator) SharedCollectionOption {
	return func(s *SharedCollectionService) { s.slugs = g }
}

func NewSharedCollectionService(
	collections SharedCollectionStore,
	products CollectionProductStore,
	vendors VendorNameStore,
	media CollectionMediaStore,
	logger *slog.Logger,
	opts ...SharedCollectionOption,
) *SharedCollectionService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &SharedCollectionService{
		collections: collections,
		products:    products,
		enricher:    &enricher{vendors: vendors, media: media, logger: logger},
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.slugs == nil {
		s.slugs = id.NewSlugGenerator(id.Clock(s.now), nil)
	}
	return s
}

// Create stores a new collection of the given products and returns its handle.
// Duplicate ids are dropped, keeping the first occurrence.
func (s *SharedCollectionService) Create(ctx context.Context, productIDs []int64, createdBy int64) (*models.CreateSharedCollectionResult, error) {
	if createdBy <= 0 {
		return nil, apperrors.NewUnauthorizedError("authentication required to share products")
	}

	ids := dedupeIDs(productIDs)
	if len(ids) == 0 {
		return nil, apperrors.NewValidationError("product_ids", "please select at least one product to share")
	}
	for _, pid := range ids {
		if pid <= 0 {
			return nil, apperrors.NewValidationError("product_ids", "product ids must be positive integers")
		}
	}

	active, err := s.products.CountActive(ctx, ids)
	if err != nil {
		return nil, dependencyError("product store", err)
	}
	if active != len(ids) {
		return nil, apperrors.NewValidationError("product_ids", "one or more products do not exist or are inactive")
	}

	for attempt := 1; attempt <= MaxSlugAttempts; attempt++ {
		slug, err := s.slugs.NewSlug()
		if err != nil {
			return nil, apperrors.NewDependencyError("slug generator", err)
		}

		created, err := s.collections.Create(ctx, &models.SharedCollection{
			Slug:       slug,
			ProductIDs: ids,
			CreatedBy:  createdBy,
		})
		if err == nil {
			metrics.SharedCollectionsCreated.Inc()
			s.logger.DebugContext(ctx, "shared collection created",
				"collection_id", created.ID, "slug", created.Slug, "products", len(ids), "attempt", attempt)
			return &models.CreateSharedCollectionResult{
				ID:           created.ID,
				Slug:         created.Slug,
				ExpiresAt:    created.ExpiresAt,
				ProductCount: len(created.ProductIDs),
			}, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, dependencyError("shared collection store", err)
		}

		metrics.SlugCollisions.Inc()
		s.logger.WarnContext(ctx, "shared collection slug collision", "slug", slug, "attempt", attempt)
	}

	return nil, apperrors.NewConflictError(sharedCollectionResource, "could not allocate a unique slug")
}

// Resolve looks a collection up by numeric id or slug and returns it with its
// products. Products are returned even if they were deactivated after sharing.
func (s *SharedCollectionService) Resolve(ctx context.Context, identifier string) (resolved *models.ResolvedCollection, err error) {
	defer func() {
		metrics.SharedCollectionResolutions.WithLabelValues(resolveOutcome(err)).Inc()
	}()

	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, apperrors.NewValidationError("id", "collection id or slug is required")
	}

	c, err := s.lookup(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if c.ExpiredAt(s.now()) {
		return nil, apperrors.NewExpiredError(sharedCollectionResource, *c.ExpiresAt, c.CreatedAt)
	}

	if len(c.ProductIDs) == 0 {
		return &models.ResolvedCollection{SharedCollection: c, Products: []*models.ProductDetail{}}, nil
	}

	products, err := s.loadProducts(ctx, c.ProductIDs)
	if err != nil {
		return nil, err
	}
	return &models.ResolvedCollection{SharedCollection: c, Products: products}, nil
}

func (s *SharedCollectionService) lookup(ctx context.Context, identifier string) (*models.SharedCollection, error) {
	if n, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		c, err := s.collections.GetByID(ctx, n)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, dependencyError("shared collection store", err)
		}
	}

	c, err := s.collections.GetBySlug(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFoundError(sharedCollectionResource, identifier)
	}
	if err != nil {
		return nil, dependencyError("shared collection store", err)
	}
	return c, nil
}

// loadProducts fetches the snapshot's products and media concurrently, then
// vendor names, and orders the result like ids.
func (s *SharedCollectionService) loadProducts(ctx context.Context, ids []int64) ([]*models.ProductDetail, error) {
	var (
		products []*models.Product
		media    map[int64][]*models.Media
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.products.FindByIDs(gctx, ids, false)
		if err != nil {
			return dependencyError("product store", err)
		}
		products = found
		return nil
	})
	g.Go(func() error {
		media = s.enricher.mediaByProduct(gctx, ids)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := s.enricher.vendorNames(ctx, products)
	details := assemble(products, names, media)
	sortByIDOrder(details, ids)
	return details, nil
}

func sortByIDOrder(details []*models.ProductDetail, ids []int64) {
	pos := make(map[int64]int, len(ids))
	for i, pid := range ids {
		if _, ok := pos[pid]; !ok {
			pos[pid] = i
		}
	}
	slices.SortStableFunc(details, func(a, b *models.ProductDetail) int {
		return cmp.Compare(pos[a.ID], pos[b.ID])
	})
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, v := range ids {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func resolveOutcome(err error) string {
	var (
		notFound   *apperrors.NotFoundError
		expired    *apperrors.ExpiredError
		validation *apperrors.ValidationError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &expired):
		return "expired"
	case errors.As(err, &validation):
		return "invalid"
	default:
		return "error"
	}
}
