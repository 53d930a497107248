package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/bespokesol/catalog/internal/models"
	"github.com/jackc/pgx/v5"
)

const mediaColumns = "id, name, type, product_id, is_active, created_by, updated_by, created_at, updated_at"

var mediaDetailColumns = []string{
	"m.id", "m.name", "m.type", "m.product_id", "m.is_active",
	"m.created_by", "m.updated_by", "m.created_at", "m.updated_at", "p.name",
}

type MediaRepository struct {
	db Querier
}

func NewMediaRepository(db Querier) *MediaRepository {
	return &MediaRepository{db: db}
}

func scanMedia(row pgx.Row, extra ...any) (*models.Media, error) {
	var (
		m         models.Media
		mediaType string
		active    bool
	)
	dest := []any{&m.ID, &m.Name, &mediaType, &m.ProductID, &active, &m.CreatedBy, &m.UpdatedBy, &m.CreatedAt, &m.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	m.Type = models.MediaType(mediaType)
	m.Status = models.StatusFromActive(active)
	return &m, nil
}

func scanMediaDetail(row pgx.Row) (*models.MediaDetail, error) {
	var productName *string
	m, err := scanMedia(row, &productName)
	if err != nil {
		return nil, err
	}
	return &models.MediaDetail{Media: m, ProductName: productName}, nil
}

func (r *MediaRepository) Create(ctx context.Context, req *models.CreateMediaRequest) (*models.Media, error) {
	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	m, err := scanMedia(r.db.QueryRow(dbctx, `
INSERT INTO media (name, type, product_id, created_by, updated_by)
VALUES ($1, $2, $3, $4, $4)
RETURNING `+mediaColumns, req.Name, string(req.Type), req.ProductID, req.CreatedBy))
	if err != nil {
		return nil, translateError(err)
	}
	return m, nil
}

// GetByID loads an active media item together with its product's name.
func (r *MediaRepository) GetByID(ctx context.Context, id int64) (*models.MediaDetail, error) {
	query, args, err := r.detailQuery().Where(sq.Eq{"m.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build media query: %w", err)
	}

	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	m, err := scanMediaDetail(r.db.QueryRow(dbctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return m, nil
}

func (r *MediaRepository) Update(ctx context.Context, req *models.UpdateMediaRequest) (*models.Media, error) {
	var mediaType *string
	if req.Type != nil {
		t := string(*req.Type)
		mediaType = &t
	}

	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	m, err := scanMedia(r.db.QueryRow(dbctx, `
UPDATE media SET
	name = COALESCE($2, name),
	type = COALESCE($3, type),
	product_id = COALESCE($4, product_id),
	is_active = COALESCE($5, is_active),
	updated_by = $6,
	updated_at = now()
WHERE id = $1 AND is_active
RETURNING `+mediaColumns, req.ID, req.Name, mediaType, req.ProductID, activeFlag(req.Status), req.UpdatedBy))
	if err != nil {
		return nil, translateError(err)
	}
	return m, nil
}

func (r *MediaRepository) SoftDelete(ctx context.Context, id, deletedBy int64) error {
	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(dbctx, `
UPDATE media SET is_active = FALSE, updated_by = $2, updated_at = now()
WHERE id = $1 AND is_active`, id, deletedBy)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List pages through active media, newest first, with product names.
func (r *MediaRepository) List(ctx context.Context, page models.PageParams) ([]*models.MediaDetail, int, error) {
	page = page.Normalize()

	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	total, err := countRows(dbctx, r.db, psql.Select("COUNT(*)").From("media").Where("is_active"))
	if err != nil {
		return nil, 0, err
	}

	query, args, err := r.detailQuery().
		OrderBy("m.created_at DESC", "m.id DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build media list query: %w", err)
	}

	rows, err := r.db.Query(dbctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	var items []*models.MediaDetail
	for rows.Next() {
		m, err := scanMediaDetail(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindByProductIDs returns the media attached to any of productIDs, oldest first.
func (r *MediaRepository) FindByProductIDs(ctx context.Context, productIDs []int64, activeOnly bool) ([]*models.Media, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	b := psql.Select(mediaColumns).From("media").Where(sq.Eq{"product_id": productIDs})
	if activeOnly {
		b = b.Where("is_active")
	}
	query, args, err := b.OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build media lookup query: %w", err)
	}

	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(dbctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var items []*models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *MediaRepository) detailQuery() sq.SelectBuilder {
	return psql.Select(mediaDetailColumns...).
		From("media m").
		LeftJoin("products p ON p.id = m.product_id").
		Where("m.is_active")
}
