package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/bespokesol/catalog/internal/models"
	"github.com/jackc/pgx/v5"
)

var productColumns = []string{
	"id", "name", "description", "price::text", "gst_percentage::text",
	"minimum_order_quantity", "available_stock", "vendor_id", "is_active",
	"created_by", "updated_by", "created_at", "updated_at",
}

const productReturning = `RETURNING id, name, description, price::text, gst_percentage::text,
	minimum_order_quantity, available_stock, vendor_id, is_active,
	created_by, updated_by, created_at, updated_at`

type ProductRepository struct {
	db Querier
}

func NewProductRepository(db Querier) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var (
		p          models.Product
		price, gst string
		active     bool
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &price, &gst,
		&p.MinimumOrderQuantity, &p.AvailableStock, &p.VendorID, &active,
		&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if p.Price, err = parseDecimal("price", price); err != nil {
		return nil, err
	}
	if p.GSTPercentage, err = parseDecimal("gst_percentage", gst); err != nil {
		return nil, err
	}
	p.Status = models.StatusFromActive(active)
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]*models.Product, error) {
	defer rows.Close()

	var out []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(dbctx, `
INSERT INTO products (name, description, price, gst_percentage, minimum_order_quantity,
	available_stock, vendor_id, created_by, updated_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
`+productReturning,
		req.Name, req.Description, req.Price, req.GSTPercentage, req.MinimumOrderQuantity,
		req.AvailableStock, req.VendorID, req.CreatedBy)

	p, err := scanProduct(row)
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

// GetByID loads one product. With activeOnly set, a deactivated product is reported as ErrNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id int64, activeOnly bool) (*models.Product, error) {
	b := psql.Select(productColumns...).From("products").Where(sq.Eq{"id": id})
	if activeOnly {
		b = b.Where("is_active")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build product query: %w", err)
	}

	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(dbctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

// Update applies the non-nil fields of req to an active product.
func (r *ProductRepository) Update(ctx context.Context, req *models.UpdateProductRequest) (*models.Product, error) {
	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(dbctx, `
UPDATE products SET
	name = COALESCE($2, name),
	description = COALESCE($3, description),
	price = COALESCE($4, price),
	gst_percentage = COALESCE($5, gst_percentage),
	minimum_order_quantity = COALESCE($6, minimum_order_quantity),
	available_stock = COALESCE($7, available_stock),
	vendor_id = COALESCE($8, vendor_id),
	updated_by = $9,
	updated_at = now()
WHERE id = $1 AND is_active
`+productReturning,
		req.ID, req.Name, req.Description, req.Price, req.GSTPercentage,
		req.MinimumOrderQuantity, req.AvailableStock, req.VendorID, req.UpdatedBy)

	p, err := scanProduct(row)
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func (r *ProductRepository) SoftDelete(ctx context.Context, id, deletedBy int64) error {
	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(dbctx, `
UPDATE products SET is_active = FALSE, updated_by = $2, updated_at = now()
WHERE id = $1 AND is_active`, id, deletedBy)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns one page of active products, newest first, plus the total active count.
func (r *ProductRepository) List(ctx context.Context, page models.PageParams) ([]*models.Product, int, error) {
	page = page.Normalize()

	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	total, err := countRows(dbctx, r.db, psql.Select("COUNT(*)").From("products").Where("is_active"))
	if err != nil {
		return nil, 0, err
	}

	query, args, err := psql.Select(productColumns...).
		From("products").
		Where("is_active").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build product list query: %w", err)
	}

	rows, err := r.db.Query(dbctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err)
	}
	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, translateError(err)
	}
	return products, total, nil
}

// FindByIDs loads the products among ids that exist, in no particular order.
// Without activeOnly, deactivated products are included.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []int64, activeOnly bool) ([]*models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	b := psql.Select(productColumns...).From("products").Where(sq.Eq{"id": ids})
	if activeOnly {
		b = b.Where("is_active")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build product lookup query: %w", err)
	}

	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(dbctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	products, err := scanProducts(rows)
	if err != nil {
		return nil, translateError(err)
	}
	return products, nil
}

// CountActive counts how many of ids reference active products.
func (r *ProductRepository) CountActive(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	dbctx, cancel := withTimeout(ctx)
	defer cancel()

	var n int
	err := r.db.QueryRow(dbctx,
		`SELECT COUNT(*) FROM products WHERE id = ANY($1) AND is_active`, ids).Scan(&n)
	if err != nil {
		return 0, translateError(err)
	}
	return n, nil
}
