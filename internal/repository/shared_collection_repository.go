package repository

import (
	"context"

	"github.com/bespokesol/catalog/internal/models"
	"github.com/jackc/pgx/v5"
)

const sharedCollectionColumns = "id, slug, product_ids, created_by, expires_at, created_at, updated_at"

type SharedCollectionRepository struct {
	db Querier
}

func NewSharedCollectionRepository(db Querier) *SharedCollectionRepository {
	return &SharedCollectionRepository{db: db}
}

func scanSharedCollection(row pgx.Row) (*models.SharedCollection, error) {
	var (
		c   models.SharedCollection
		raw string
	)
	if err := row.Scan(&c.ID, &c.Slug, &raw, &c.CreatedBy, &c.ExpiresAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	ids, err := decodeProductIDs(raw)
	if err != nil {
		return nil, err
	}
	c.ProductIDs = ids
	return &c, nil
}

// Create inserts c and returns it with the database-assigned id and timestamps.
// A slug collision surfaces as a *DuplicateError.
func (r *SharedCollectionRepository) Create(ctx context.Context, c *models.SharedCollection) (*models.SharedCollection, error) {
	raw, err := encodeProductIDs(c.ProductIDs)
	if err != nil {
		return nil, err
	}

	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	out := *c
	out.ProductIDs = append([]int64(nil), c.ProductIDs...)
	err = r.db.QueryRow(dbctx, `
INSERT INTO shared_product_collections (slug, product_ids, created_by, expires_at)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`, c.Slug, raw, c.CreatedBy, c.ExpiresAt).
		Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &out, nil
}

func (r *SharedCollectionRepository) GetByID(ctx context.Context, id int64) (*models.SharedCollection, error) {
	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	c, err := scanSharedCollection(r.db.QueryRow(dbctx,
		`SELECT `+sharedCollectionColumns+` FROM shared_product_collections WHERE id = $1`, id))
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

func (r *SharedCollectionRepository) GetBySlug(ctx context.Context, slug string) (*models.SharedCollection, error) {
	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	c, err := scanSharedCollection(r.db.QueryRow(dbctx,
		`SELECT `+sharedCollectionColumns+` FROM shared_product_collections WHERE slug = $1`, slug))
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}
