package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/bespokesol/catalog/internal/models"
	"github.com/jackc/pgx/v5"
)

const userColumns = "id, name, mobile, email, role, password_hash, is_active, created_at, updated_at"

type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u      models.User
		role   string
		active bool
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Mobile, &u.Email, &role, &u.PasswordHash, &active, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	u.Status = models.StatusFromActive(active)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, p models.CreateUserParams) (*models.User, error) {
	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(dbctx, `
INSERT INTO users (name, mobile, email, role, password_hash)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+userColumns, p.Name, p.Mobile, p.Email, string(p.Role), p.PasswordHash)

	u, err := scanUser(row)
	if err != nil {
		return nil, translateError(err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(dbctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translateError(err)
	}
	return u, nil
}

func (r *UserRepository) GetByMobile(ctx context.Context, mobile string) (*models.User, error) {
	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	u, err := scanUser(r.db.QueryRow(dbctx, `SELECT `+userColumns+` FROM users WHERE mobile = $1`, mobile))
	if err != nil {
		return nil, translateError(err)
	}
	return u, nil
}

// FindNamesByIDs maps user id to display name for the ids that exist.
func (r *UserRepository) FindNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(dbctx, `SELECT id, name FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// ListVendors returns one page of active vendors, newest first.
func (r *UserRepository) ListVendors(ctx context.Context, page models.PageParams) ([]*models.User, int, error) {
	page = page.Normalize()
	vendors := sq.And{sq.Eq{"role": string(models.RoleVendor)}, sq.Expr("is_active")}

	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	total, err := countRows(dbctx, r.db, psql.Select("COUNT(*)").From("users").Where(vendors))
	if err != nil {
		return nil, 0, err
	}

	query, args, err := psql.Select(userColumns).
		From("users").
		Where(vendors).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build vendor list query: %w", err)
	}

	rows, err := r.db.Query(dbctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
