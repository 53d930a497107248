package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bespokesol/catalog/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var collectionCols = []string{"id", "slug", "product_ids", "created_by", "expires_at", "created_at", "updated_at"}

func TestSharedCollectionRepository_Create(t *testing.T) {
	now := time.Now().UTC()

	t.Run("inserts encoded ids", func(t *testing.T) {
		mock := newMock(t)
		repo := NewSharedCollectionRepository(mock)

		mock.ExpectQuery(`INSERT INTO shared_product_collections`).
			WithArgs("share-abc-123456", "[1,2,3]", int64(42), (*time.Time)(nil)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(9), now, now))

		got, err := repo.Create(context.Background(), &models.SharedCollection{
			Slug:       "share-abc-123456",
			ProductIDs: []int64{1, 2, 3},
			CreatedBy:  42,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(9), got.ID)
		assert.Equal(t, "share-abc-123456", got.Slug)
		assert.Equal(t, []int64{1, 2, 3}, got.ProductIDs)
		assert.Nil(t, got.ExpiresAt)
		assert.Equal(t, now, got.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("slug collision", func(t *testing.T) {
		mock := newMock(t)
		repo := NewSharedCollectionRepository(mock)

		mock.ExpectQuery(`INSERT INTO shared_product_collections`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "shared_product_collections_slug_key"})

		_, err := repo.Create(context.Background(), &models.SharedCollection{Slug: "share-x-000000", ProductIDs: []int64{1}, CreatedBy: 1})
		assert.ErrorIs(t, err, ErrDuplicate)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSharedCollectionRepository_Get(t *testing.T) {
	now := time.Now().UTC()
	expires := now.Add(time.Hour)

	tests := []struct {
		name    string
		call    func(r *SharedCollectionRepository) (*models.SharedCollection, error)
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
		check   func(t *testing.T, c *models.SharedCollection)
	}{
		{
			name: "by id",
			call: func(r *SharedCollectionRepository) (*models.SharedCollection, error) {
				return r.GetByID(context.Background(), 5)
			},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM shared_product_collections WHERE id`).
					WithArgs(int64(5)).
					WillReturnRows(pgxmock.NewRows(collectionCols).
						AddRow(int64(5), "share-a-aaaaaa", "[4,2]", int64(1), &expires, now, now))
			},
			check: func(t *testing.T, c *models.SharedCollection) {
				assert.Equal(t, []int64{4, 2}, c.ProductIDs)
				require.NotNil(t, c.ExpiresAt)
				assert.Equal(t, expires, *c.ExpiresAt)
			},
		},
		{
			name: "by slug",
			call: func(r *SharedCollectionRepository) (*models.SharedCollection, error) {
				return r.GetBySlug(context.Background(), "share-a-aaaaaa")
			},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM shared_product_collections WHERE slug`).
					WithArgs("share-a-aaaaaa").
					WillReturnRows(pgxmock.NewRows(collectionCols).
						AddRow(int64(5), "share-a-aaaaaa", "[]", int64(1), (*time.Time)(nil), now, now))
			},
			check: func(t *testing.T, c *models.SharedCollection) {
				assert.Equal(t, int64(5), c.ID)
				assert.Empty(t, c.ProductIDs)
				assert.Nil(t, c.ExpiresAt)
			},
		},
		{
			name: "not found",
			call: func(r *SharedCollectionRepository) (*models.SharedCollection, error) {
				return r.GetByID(context.Background(), 404)
			},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM shared_product_collections`).
					WithArgs(int64(404)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "corrupt product ids",
			call: func(r *SharedCollectionRepository) (*models.SharedCollection, error) {
				return r.GetBySlug(context.Background(), "share-b-bbbbbb")
			},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM shared_product_collections`).
					WithArgs("share-b-bbbbbb").
					WillReturnRows(pgxmock.NewRows(collectionCols).
						AddRow(int64(6), "share-b-bbbbbb", "not json", int64(1), (*time.Time)(nil), now, now))
			},
			wantErr: ErrCorruptRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setup(mock)

			got, err := tt.call(NewSharedCollectionRepository(mock))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				tt.check(t, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
