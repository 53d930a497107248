package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bespokesol/catalog/internal/models"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mediaCols       = []string{"id", "name", "type", "product_id", "is_active", "created_by", "updated_by", "created_at", "updated_at"}
	mediaDetailCols = append(append([]string(nil), mediaCols...), "product_name")
)

func TestMediaRepository_FindByProductIDs(t *testing.T) {
	now := time.Now().UTC()
	mock := newMock(t)

	mock.ExpectQuery(`FROM media WHERE product_id IN \(\$1,\$2\) AND is_active ORDER BY created_at, id`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(pgxmock.NewRows(mediaCols).
			AddRow(int64(10), "desk.jpg", "IMAGE", int64(1), true, int64(3), int64(3), now, now).
			AddRow(int64(11), "lamp.pdf", "PDF", int64(2), true, int64(3), int64(3), now, now))

	media, err := NewMediaRepository(mock).FindByProductIDs(context.Background(), []int64{1, 2}, true)
	require.NoError(t, err)
	require.Len(t, media, 2)
	assert.Equal(t, models.MediaTypePDF, media[1].Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaRepository_GetByID(t *testing.T) {
	now := time.Now().UTC()
	mock := newMock(t)
	productName := "Desk"

	mock.ExpectQuery(`FROM media m LEFT JOIN products p ON p.id = m.product_id WHERE m.is_active AND m.id = \$1`).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows(mediaDetailCols).
			AddRow(int64(10), "desk.jpg", "IMAGE", int64(1), true, int64(3), int64(3), now, now, &productName))

	m, err := NewMediaRepository(mock).GetByID(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, m.ProductName)
	assert.Equal(t, "Desk", *m.ProductName)
	assert.Equal(t, models.MediaTypeImage, m.Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaRepository_SoftDelete(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`UPDATE media SET is_active = FALSE`).
		WithArgs(int64(10), int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := NewMediaRepository(mock).SoftDelete(context.Background(), 10, 3)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
