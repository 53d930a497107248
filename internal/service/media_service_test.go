package service

import (
	"context"
	"testing"

	"github.com/bespokesol/catalog/internal/apperrors"
	"github.com/bespokesol/catalog/internal/models"
	"github.com/bespokesol/catalog/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMediaRepo struct {
	createFn     func(ctx context.Context, req *models.CreateMediaRequest) (*models.Media, error)
	getByIDFn    func(ctx context.Context, id int64) (*models.MediaDetail, error)
	updateFn     func(ctx context.Context, req *models.UpdateMediaRequest) (*models.Media, error)
	softDeleteFn func(ctx context.Context, id, deletedBy int64) error
	listFn       func(ctx context.Context, page models.PageParams) ([]*models.MediaDetail, int, error)
}

func (m *mockMediaRepo) Create(ctx context.Context, req *models.CreateMediaRequest) (*models.Media, error) {
	return m.createFn(ctx, req)
}

func (m *mockMediaRepo) GetByID(ctx context.Context, id int64) (*models.MediaDetail, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockMediaRepo) Update(ctx context.Context, req *models.UpdateMediaRequest) (*models.Media, error) {
	return m.updateFn(ctx, req)
}

func (m *mockMediaRepo) SoftDelete(ctx context.Context, id, deletedBy int64) error {
	return m.softDeleteFn(ctx, id, deletedBy)
}

func (m *mockMediaRepo) List(ctx context.Context, page models.PageParams) ([]*models.MediaDetail, int, error) {
	return m.listFn(ctx, page)
}

type productLookupFunc func(ctx context.Context, id int64, activeOnly bool) (*models.Product, error)

func (f productLookupFunc) GetByID(ctx context.Context, id int64, activeOnly bool) (*models.Product, error) {
	return f(ctx, id, activeOnly)
}

func activeProductsOnly(ids ...int64) productLookupFunc {
	return func(_ context.Context, id int64, activeOnly bool) (*models.Product, error) {
		for _, want := range ids {
			if id == want && activeOnly {
				return &models.Product{ID: id, Status: models.StatusActive}, nil
			}
		}
		return nil, repository.ErrNotFound
	}
}

func TestMediaService_CreateMedia(t *testing.T) {
	repo := &mockMediaRepo{createFn: func(_ context.Context, req *models.CreateMediaRequest) (*models.Media, error) {
		return &models.Media{ID: 1, Name: req.Name, Type: req.Type, ProductID: req.ProductID, Status: models.StatusActive}, nil
	}}
	svc := NewMediaService(repo, activeProductsOnly(5))

	tests := []struct {
		name      string
		req       models.CreateMediaRequest
		wantField string
		wantType  models.MediaType
	}{
		{name: "defaults to image", req: models.CreateMediaRequest{Name: "a.jpg", ProductID: 5}, wantType: models.MediaTypeImage},
		{name: "pdf", req: models.CreateMediaRequest{Name: "a.pdf", Type: models.MediaTypePDF, ProductID: 5}, wantType: models.MediaTypePDF},
		{name: "bad type", req: models.CreateMediaRequest{Name: "a.gif", Type: "GIF", ProductID: 5}, wantField: "type"},
		{name: "blank name", req: models.CreateMediaRequest{Name: " ", ProductID: 5}, wantField: "name"},
		{name: "inactive product", req: models.CreateMediaRequest{Name: "a.jpg", ProductID: 6}, wantField: "product_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			m, err := svc.CreateMedia(context.Background(), &req)
			if tt.wantField != "" {
				var v *apperrors.ValidationError
				require.ErrorAs(t, err, &v)
				assert.Equal(t, tt.wantField, v.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, m.Type)
		})
	}
}

func TestMediaService_UpdateMedia(t *testing.T) {
	repo := &mockMediaRepo{updateFn: func(_ context.Context, req *models.UpdateMediaRequest) (*models.Media, error) {
		if req.ID == 404 {
			return nil, repository.ErrNotFound
		}
		return &models.Media{ID: req.ID}, nil
	}}
	svc := NewMediaService(repo, activeProductsOnly(5))

	_, err := svc.UpdateMedia(context.Background(), &models.UpdateMediaRequest{ID: 1, ProductID: int64Ptr(5)})
	require.NoError(t, err)

	_, err = svc.UpdateMedia(context.Background(), &models.UpdateMediaRequest{ID: 1, ProductID: int64Ptr(6)})
	var v *apperrors.ValidationError
	assert.ErrorAs(t, err, &v)

	_, err = svc.UpdateMedia(context.Background(), &models.UpdateMediaRequest{ID: 404})
	var nf *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestMediaService_ListMedia(t *testing.T) {
	name := "Desk"
	repo := &mockMediaRepo{listFn: func(_ context.Context, page models.PageParams) ([]*models.MediaDetail, int, error) {
		assert.Equal(t, 2, page.Page)
		return []*models.MediaDetail{{Media: &models.Media{ID: 1}, ProductName: &name}}, 11, nil
	}}

	res, err := NewMediaService(repo, activeProductsOnly()).ListMedia(context.Background(), models.PageParams{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page.TotalPages)
	assert.False(t, res.Page.HasMore())
	assert.Equal(t, "Desk", *res.Media[0].ProductName)
}
