package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bespokesol/catalog/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryCols = []string{"id", "name", "is_active", "created_at", "updated_at"}

func TestCategoryRepository_Create(t *testing.T) {
	now := time.Now().UTC()

	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs("Furniture").
		WillReturnRows(pgxmock.NewRows(categoryCols).AddRow(int64(1), "Furniture", true, now, now))
	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs("Furniture").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "categories_name_key"})

	repo := NewCategoryRepository(mock)
	c, err := repo.Create(context.Background(), "Furniture")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, c.Status)

	_, err = repo.Create(context.Background(), "Furniture")
	assert.ErrorIs(t, err, ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_List(t *testing.T) {
	now := time.Now().UTC()

	t.Run("with search", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM categories WHERE \(is_active AND name ILIKE \$1\)`).
			WithArgs("%furn%").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`FROM categories WHERE \(is_active AND name ILIKE \$1\) ORDER BY created_at DESC, id DESC LIMIT 10 OFFSET 0`).
			WithArgs("%furn%").
			WillReturnRows(pgxmock.NewRows(categoryCols).AddRow(int64(1), "Furniture", true, now, now))

		cats, total, err := NewCategoryRepository(mock).List(context.Background(), models.ListCategoriesFilter{Search: " furn "})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, cats, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without search", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM categories WHERE \(is_active\)`).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`FROM categories WHERE \(is_active\) ORDER BY`).
			WillReturnRows(pgxmock.NewRows(categoryCols))

		cats, total, err := NewCategoryRepository(mock).List(context.Background(), models.ListCategoriesFilter{})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, cats)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryRepository_Update(t *testing.T) {
	now := time.Now().UTC()
	mock := newMock(t)
	inactive := models.StatusInactive
	active := false

	mock.ExpectQuery(`UPDATE categories SET`).
		WithArgs(int64(1), (*string)(nil), &active).
		WillReturnRows(pgxmock.NewRows(categoryCols).AddRow(int64(1), "Furniture", false, now, now))

	c, err := NewCategoryRepository(mock).Update(context.Background(), &models.UpdateCategoryRequest{ID: 1, Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, c.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
