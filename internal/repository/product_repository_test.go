package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bespokesol/catalog/internal/models"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{
	"id", "name", "description", "price", "gst_percentage",
	"minimum_order_quantity", "available_stock", "vendor_id", "is_active",
	"created_by", "updated_by", "created_at", "updated_at",
}

func productRows(now time.Time) *pgxmock.Rows {
	vendor := int64(7)
	return pgxmock.NewRows(productCols).
		AddRow(int64(1), "Desk", "Oak desk", "1499.50", "18.00", 1, 20, &vendor, true, int64(3), int64(3), now, now).
		AddRow(int64(2), "Lamp", "LED lamp", "99.00", "5.00", 2, 0, (*int64)(nil), false, int64(3), int64(4), now, now)
}

func TestProductRepository_GetByID(t *testing.T) {
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		vendor := int64(7)
		mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1 AND is_active`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(productCols).
				AddRow(int64(1), "Desk", "Oak desk", "1499.50", "18.00", 1, 20, &vendor, true, int64(3), int64(3), now, now))

		p, err := NewProductRepository(mock).GetByID(context.Background(), 1, true)
		require.NoError(t, err)
		assert.Equal(t, "Desk", p.Name)
		assert.True(t, p.Price.Equal(decimal.RequireFromString("1499.5")))
		assert.True(t, p.GSTPercentage.Equal(decimal.NewFromInt(18)))
		require.NotNil(t, p.VendorID)
		assert.Equal(t, int64(7), *p.VendorID)
		assert.Equal(t, models.StatusActive, p.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`FROM products`).WithArgs(int64(99)).WillReturnError(pgx.ErrNoRows)

		_, err := NewProductRepository(mock).GetByID(context.Background(), 99, true)
		assert.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt price", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`FROM products`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(productCols).
				AddRow(int64(1), "Desk", "", "NaN?", "0", 1, 1, (*int64)(nil), true, int64(1), int64(1), now, now))

		_, err := NewProductRepository(mock).GetByID(context.Background(), 1, false)
		assert.ErrorIs(t, err, ErrCorruptRecord)
	})
}

func TestProductRepository_FindByIDs(t *testing.T) {
	now := time.Now().UTC()

	t.Run("includes inactive without filter", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`FROM products WHERE id IN \(\$1,\$2\)$`).
			WithArgs(int64(1), int64(2)).
			WillReturnRows(productRows(now))

		products, err := NewProductRepository(mock).FindByIDs(context.Background(), []int64{1, 2}, false)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, models.StatusInactive, products[1].Status)
		assert.Nil(t, products[1].VendorID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("active filter", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`FROM products WHERE id IN \(\$1\) AND is_active`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(productCols))

		products, err := NewProductRepository(mock).FindByIDs(context.Background(), []int64{1}, true)
		require.NoError(t, err)
		assert.Empty(t, products)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty input skips query", func(t *testing.T) {
		mock := newMock(t)
		products, err := NewProductRepository(mock).FindByIDs(context.Background(), nil, false)
		require.NoError(t, err)
		assert.Nil(t, products)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`FROM products`).WithArgs(int64(1)).WillReturnError(errors.New("boom"))

		_, err := NewProductRepository(mock).FindByIDs(context.Background(), []int64{1}, false)
		assert.EqualError(t, err, "boom")
	})
}

func TestProductRepository_CountActive(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE id = ANY\(\$1\) AND is_active`).
		WithArgs([]int64{1, 2, 3}).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	n, err := NewProductRepository(mock).CountActive(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List(t *testing.T) {
	now := time.Now().UTC()
	mock := newMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE is_active`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`FROM products WHERE is_active ORDER BY created_at DESC, id DESC LIMIT 10 OFFSET 10`).
		WillReturnRows(productRows(now))

	products, total, err := NewProductRepository(mock).List(context.Background(), models.PageParams{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Len(t, products, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create(t *testing.T) {
	now := time.Now().UTC()
	mock := newMock(t)
	vendor := int64(7)

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("Desk", "Oak desk", pgxmock.AnyArg(), pgxmock.AnyArg(), 1, 20, int64(7), int64(3)).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(int64(1), "Desk", "Oak desk", "1499.50", "18.00", 1, 20, &vendor, true, int64(3), int64(3), now, now))

	p, err := NewProductRepository(mock).Create(context.Background(), &models.CreateProductRequest{
		Name:                 "Desk",
		Description:          "Oak desk",
		Price:                decimal.RequireFromString("1499.50"),
		GSTPercentage:        decimal.NewFromInt(18),
		MinimumOrderQuantity: 1,
		AvailableStock:       20,
		VendorID:             7,
		CreatedBy:            3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update(t *testing.T) {
	now := time.Now().UTC()
	mock := newMock(t)
	name := "Standing desk"

	mock.ExpectQuery(`UPDATE products SET`).
		WithArgs(int64(1), &name, (*string)(nil), (*decimal.Decimal)(nil), (*decimal.Decimal)(nil), (*int)(nil), (*int)(nil), (*int64)(nil), int64(4)).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(int64(1), name, "Oak desk", "1499.50", "18.00", 1, 20, (*int64)(nil), true, int64(3), int64(4), now, now))

	p, err := NewProductRepository(mock).Update(context.Background(), &models.UpdateProductRequest{ID: 1, Name: &name, UpdatedBy: 4})
	require.NoError(t, err)
	assert.Equal(t, name, p.Name)
	assert.Equal(t, int64(4), p.UpdatedBy)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_SoftDelete(t *testing.T) {
	t.Run("deactivates", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`UPDATE products SET is_active = FALSE`).
			WithArgs(int64(1), int64(3)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, NewProductRepository(mock).SoftDelete(context.Background(), 1, 3))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already inactive", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`UPDATE products SET is_active = FALSE`).
			WithArgs(int64(1), int64(3)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, NewProductRepository(mock).SoftDelete(context.Background(), 1, 3), ErrNotFound)
	})
}
