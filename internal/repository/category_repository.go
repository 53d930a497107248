package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/bespokesol/catalog/internal/models"
	"github.com/jackc/pgx/v5"
)

const categoryColumns = "id, name, is_active, created_at, updated_at"

type CategoryRepository struct {
	db Querier
}

func NewCategoryRepository(db Querier) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var (
		c      models.Category
		active bool
	)
	if err := row.Scan(&c.ID, &c.Name, &active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Status = models.StatusFromActive(active)
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, name string) (*models.Category, error) {
	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	c, err := scanCategory(r.db.QueryRow(dbctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING `+categoryColumns, name))
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	c, err := scanCategory(r.db.QueryRow(dbctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND is_active`, id))
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

// Update renames and/or changes the status of an active category.
func (r *CategoryRepository) Update(ctx context.Context, req *models.UpdateCategoryRequest) (*models.Category, error) {
	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	c, err := scanCategory(r.db.QueryRow(dbctx, `
UPDATE categories SET
	name = COALESCE($2, name),
	is_active = COALESCE($3, is_active),
	updated_at = now()
WHERE id = $1 AND is_active
RETURNING `+categoryColumns, req.ID, req.Name, activeFlag(req.Status)))
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

func (r *CategoryRepository) SoftDelete(ctx context.Context, id int64) error {
	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(dbctx,
		`UPDATE categories SET is_active = FALSE, updated_at = now() WHERE id = $1 AND is_active`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List pages through active categories, optionally filtered by a case-insensitive name substring.
func (r *CategoryRepository) List(ctx context.Context, filter models.ListCategoriesFilter) ([]*models.Category, int, error) {
	page := filter.PageParams.Normalize()

	where := sq.And{sq.Expr("is_active")}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where = append(where, sq.ILike{"name": "%" + search + "%"})
	}

	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	total, err := countRows(dbctx, r.db, psql.Select("COUNT(*)").From("categories").Where(where))
	if err != nil {
		return nil, 0, err
	}

	query, args, err := psql.Select(categoryColumns).
		From("categories").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build category list query: %w", err)
	}

	rows, err := r.db.Query(dbctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}
