package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/bespokesol/catalog/internal/metrics"
	"github.com/bespokesol/catalog/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultCollectionCacheTTL = 10 * time.Minute

	collectionKeyByID   = "sc:id:"
	collectionKeyBySlug = "sc:slug:"
)

// SharedCollectionCache keeps shared collection records in Redis. Records never
// change after creation, so entries are only ever written and left to expire.
type SharedCollectionCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewSharedCollectionCache(client redis.Cmdable, ttl time.Duration) *SharedCollectionCache {
	if ttl <= 0 {
		ttl = DefaultCollectionCacheTTL
	}
	return &SharedCollectionCache{client: client, ttl: ttl}
}

type cachedCollection struct {
	ID         int64      `json:"id"`
	Slug       string     `json:"slug"`
	ProductIDs []int64    `json:"product_ids"`
	CreatedBy  int64      `json:"created_by"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func encodeCachedCollection(c *models.SharedCollection) ([]byte, error) {
	return json.Marshal(cachedCollection{
		ID:         c.ID,
		Slug:       c.Slug,
		ProductIDs: c.ProductIDs,
		CreatedBy:  c.CreatedBy,
		ExpiresAt:  c.ExpiresAt,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	})
}

func decodeCachedCollection(data []byte) (*models.SharedCollection, error) {
	var cc cachedCollection
	if err := json.Unmarshal(data, &cc); err != nil {
		return nil, fmt.Errorf("%w: cached collection: %v", ErrCorruptRecord, err)
	}
	if cc.ProductIDs == nil {
		cc.ProductIDs = []int64{}
	}
	return &models.SharedCollection{
		ID:         cc.ID,
		Slug:       cc.Slug,
		ProductIDs: cc.ProductIDs,
		CreatedBy:  cc.CreatedBy,
		ExpiresAt:  cc.ExpiresAt,
		CreatedAt:  cc.CreatedAt,
		UpdatedAt:  cc.UpdatedAt,
	}, nil
}

// GetByID returns nil, nil on a miss.
func (c *SharedCollectionCache) GetByID(ctx context.Context, id int64) (*models.SharedCollection, error) {
	return c.get(ctx, collectionKeyByID+strconv.FormatInt(id, 10))
}

// GetBySlug returns nil, nil on a miss.
func (c *SharedCollectionCache) GetBySlug(ctx context.Context, slug string) (*models.SharedCollection, error) {
	return c.get(ctx, collectionKeyBySlug+slug)
}

func (c *SharedCollectionCache) get(ctx context.Context, key string) (*models.SharedCollection, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeCachedCollection(data)
}

// Set stores the record under both its id and its slug.
func (c *SharedCollectionCache) Set(ctx context.Context, sc *models.SharedCollection) error {
	data, err := encodeCachedCollection(sc)
	if err != nil {
		return err
	}
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, collectionKeyByID+strconv.FormatInt(sc.ID, 10), data, c.ttl)
		pipe.Set(ctx, collectionKeyBySlug+sc.Slug, data, c.ttl)
		return nil
	})
	return err
}

type sharedCollectionStore interface {
	Create(ctx context.Context, c *models.SharedCollection) (*models.SharedCollection, error)
	GetByID(ctx context.Context, id int64) (*models.SharedCollection, error)
	GetBySlug(ctx context.Context, slug string) (*models.SharedCollection, error)
}

type collectionCache interface {
	GetByID(ctx context.Context, id int64) (*models.SharedCollection, error)
	GetBySlug(ctx context.Context, slug string) (*models.SharedCollection, error)
	Set(ctx context.Context, c *models.SharedCollection) error
}

// CachedSharedCollectionStore reads through a cache in front of the database.
// Cache failures are logged and the database answers instead.
type CachedSharedCollectionStore struct {
	store  sharedCollectionStore
	cache  collectionCache
	logger *slog.Logger
}

func NewCachedSharedCollectionStore(store sharedCollectionStore, cache collectionCache, logger *slog.Logger) *CachedSharedCollectionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSharedCollectionStore{store: store, cache: cache, logger: logger}
}

func (s *CachedSharedCollectionStore) Create(ctx context.Context, c *models.SharedCollection) (*models.SharedCollection, error) {
	created, err := s.store.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	s.fill(ctx, created)
	return created, nil
}

func (s *CachedSharedCollectionStore) GetByID(ctx context.Context, id int64) (*models.SharedCollection, error) {
	return s.readThrough(ctx,
		func() (*models.SharedCollection, error) { return s.cache.GetByID(ctx, id) },
		func() (*models.SharedCollection, error) { return s.store.GetByID(ctx, id) },
	)
}

func (s *CachedSharedCollectionStore) GetBySlug(ctx context.Context, slug string) (*models.SharedCollection, error) {
	return s.readThrough(ctx,
		func() (*models.SharedCollection, error) { return s.cache.GetBySlug(ctx, slug) },
		func() (*models.SharedCollection, error) { return s.store.GetBySlug(ctx, slug) },
	)
}

func (s *CachedSharedCollectionStore) readThrough(
	ctx context.Context,
	fromCache func() (*models.SharedCollection, error),
	fromStore func() (*models.SharedCollection, error),
) (*models.SharedCollection, error) {
	cached, err := fromCache()
	switch {
	case err != nil:
		metrics.CacheOperations.WithLabelValues("error").Inc()
		s.logger.WarnContext(ctx, "shared collection cache read failed", "error", err)
	case cached != nil:
		metrics.CacheOperations.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		metrics.CacheOperations.WithLabelValues("miss").Inc()
	}

	c, err := fromStore()
	if err != nil {
		return nil, err
	}
	s.fill(ctx, c)
	return c, nil
}

func (s *CachedSharedCollectionStore) fill(ctx context.Context, c *models.SharedCollection) {
	if err := s.cache.Set(ctx, c); err != nil {
		s.logger.WarnContext(ctx, "shared collection cache write failed", "id", c.ID, "error", err)
	}
}
