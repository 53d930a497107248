package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/bespokesol/catalog/internal/models"
	"github.com/bespokesol/catalog/internal/repository"
)

type memCollectionStore struct {
	mu        sync.Mutex
	nextID    int64
	byID      map[int64]*models.SharedCollection
	bySlug    map[string]*models.SharedCollection
	creates   int
	createErr error
	getErr    error
	slugCalls int
}

func newMemCollectionStore() *memCollectionStore {
	return &memCollectionStore{
		byID:   map[int64]*models.SharedCollection{},
		bySlug: map[string]*models.SharedCollection{},
	}
}

func (m *memCollectionStore) put(c *models.SharedCollection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[c.ID] = c
	m.bySlug[c.Slug] = c
}

func (m *memCollectionStore) Create(_ context.Context, c *models.SharedCollection) (*models.SharedCollection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.createErr != nil {
		return nil, m.createErr
	}
	if _, taken := m.bySlug[c.Slug]; taken {
		return nil, &repository.DuplicateError{Constraint: "shared_product_collections_slug_key"}
	}
	m.nextID++
	out := *c
	out.ID = m.nextID
	out.ProductIDs = append([]int64(nil), c.ProductIDs...)
	m.byID[out.ID] = &out
	m.bySlug[out.Slug] = &out
	return &out, nil
}

func (m *memCollectionStore) GetByID(_ context.Context, id int64) (*models.SharedCollection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if c, ok := m.byID[id]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memCollectionStore) GetBySlug(_ context.Context, slug string) (*models.SharedCollection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slugCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	if c, ok := m.bySlug[slug]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

type memProductStore struct {
	mu             sync.Mutex
	products       map[int64]*models.Product
	countErr       error
	findErr        error
	countArgs      [][]int64
	findActiveOnly []bool
	findCalls      int
}

func newMemProductStore(products ...*models.Product) *memProductStore {
	m := &memProductStore{products: map[int64]*models.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProductStore) CountActive(_ context.Context, ids []int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.countArgs = append(m.countArgs, append([]int64(nil), ids...))
	if m.countErr != nil {
		return 0, m.countErr
	}
	seen := map[int64]bool{}
	n := 0
	for _, id := range ids {
		if p, ok := m.products[id]; ok && p.Status.IsActive() && !seen[id] {
			seen[id] = true
			n++
		}
	}
	return n, nil
}

// FindByIDs returns matches in map order so callers cannot rely on input order.
func (m *memProductStore) FindByIDs(_ context.Context, ids []int64, activeOnly bool) ([]*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++
	m.findActiveOnly = append(m.findActiveOnly, activeOnly)
	if m.findErr != nil {
		return nil, m.findErr
	}
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []*models.Product
	for id, p := range m.products {
		if want[id] && (!activeOnly || p.Status.IsActive()) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeVendorNames struct {
	mu    sync.Mutex
	names map[int64]string
	err   error
	calls int
}

func (f *fakeVendorNames) FindNamesByIDs(_ context.Context, ids []int64) (map[int64]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := map[int64]string{}
	for _, id := range ids {
		if n, ok := f.names[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

type fakeMediaStore struct {
	mu    sync.Mutex
	items []*models.Media
	err   error
	calls int
}

func (f *fakeMediaStore) FindByProductIDs(_ context.Context, productIDs []int64, activeOnly bool) ([]*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	want := map[int64]bool{}
	for _, id := range productIDs {
		want[id] = true
	}
	var out []*models.Media
	for _, m := range f.items {
		if want[m.ProductID] && (!activeOnly || m.Status.IsActive()) {
			out = append(out, m)
		}
	}
	return out, nil
}

type sequenceSlugs struct {
	mu    sync.Mutex
	slugs []string
	calls int
}

func (s *sequenceSlugs) NewSlug() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.slugs) == 0 {
		return "", fmt.Errorf("no slugs left")
	}
	slug := s.slugs[0]
	if len(s.slugs) > 1 {
		s.slugs = s.slugs[1:]
	}
	return slug, nil
}

func product(id int64, vendor *int64, status models.Status) *models.Product {
	return &models.Product{ID: id, Name: fmt.Sprintf("product-%d", id), VendorID: vendor, Status: status}
}

func int64Ptr(v int64) *int64 { return &v }
