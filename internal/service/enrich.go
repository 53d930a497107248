package service

import (
	"context"
	"log/slog"

	"github.com/bespokesol/catalog/internal/metrics"
	"github.com/bespokesol/catalog/internal/models"
	"golang.org/x/sync/errgroup"
)

type VendorNameStore interface {
	FindNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type CollectionMediaStore interface {
	FindByProductIDs(ctx context.Context, productIDs []int64, activeOnly bool) ([]*models.Media, error)
}

// enricher attaches vendor names and media to products. Both lookups are
// secondary: a failure is logged and the affected field is left empty.
type enricher struct {
	vendors VendorNameStore
	media   CollectionMediaStore
	logger  *slog.Logger
}

func (e *enricher) vendorNames(ctx context.Context, products []*models.Product) map[int64]string {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, p := range products {
		if p.VendorID == nil {
			continue
		}
		if _, ok := seen[*p.VendorID]; ok {
			continue
		}
		seen[*p.VendorID] = struct{}{}
		ids = append(ids, *p.VendorID)
	}
	if len(ids) == 0 {
		return nil
	}

	names, err := e.vendors.FindNamesByIDs(ctx, ids)
	if err != nil {
		metrics.EnrichmentDegraded.WithLabelValues("vendor").Inc()
		e.logger.WarnContext(ctx, "vendor name lookup failed, continuing without vendor names",
			"vendor_ids", len(ids), "error", err)
		return nil
	}
	return names
}

func (e *enricher) mediaByProduct(ctx context.Context, productIDs []int64) map[int64][]*models.Media {
	if len(productIDs) == 0 {
		return nil
	}

	items, err := e.media.FindByProductIDs(ctx, productIDs, true)
	if err != nil {
		metrics.EnrichmentDegraded.WithLabelValues("media").Inc()
		e.logger.WarnContext(ctx, "media lookup failed, continuing without media",
			"product_ids", len(productIDs), "error", err)
		return nil
	}

	byProduct := make(map[int64][]*models.Media, len(productIDs))
	for _, m := range items {
		byProduct[m.ProductID] = append(byProduct[m.ProductID], m)
	}
	return byProduct
}

// enrich runs the vendor and media lookups concurrently and assembles the result.
func (e *enricher) enrich(ctx context.Context, products []*models.Product) []*models.ProductDetail {
	var (
		names map[int64]string
		media map[int64][]*models.Media
	)

	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	var g errgroup.Group
	g.Go(func() error {
		names = e.vendorNames(ctx, products)
		return nil
	})
	g.Go(func() error {
		media = e.mediaByProduct(ctx, ids)
		return nil
	})
	_ = g.Wait()

	return assemble(products, names, media)
}

func assemble(products []*models.Product, names map[int64]string, media map[int64][]*models.Media) []*models.ProductDetail {
	out := make([]*models.ProductDetail, 0, len(products))
	for _, p := range products {
		d := &models.ProductDetail{Product: p, Media: media[p.ID]}
		if d.Media == nil {
			d.Media = []*models.Media{}
		}
		if p.VendorID != nil {
			if name, ok := names[*p.VendorID]; ok {
				d.VendorName = &name
			}
		}
		out = append(out, d)
	}
	return out
}
