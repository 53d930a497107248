package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                   int64
	Name                 string
	Description          string
	Price                decimal.Decimal
	GSTPercentage        decimal.Decimal
	MinimumOrderQuantity int
	AvailableStock       int
	VendorID             *int64
	Status               Status
	CreatedBy            int64
	UpdatedBy            int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ProductDetail is a product joined with its vendor display name and attached media.
type ProductDetail struct {
	*Product
	VendorName *string
	Media      []*Media
}

type CreateProductRequest struct {
	Name                 string
	Description          string
	Price                decimal.Decimal
	GSTPercentage        decimal.Decimal
	MinimumOrderQuantity int
	AvailableStock       int
	VendorID             int64
	CreatedBy            int64
}

type UpdateProductRequest struct {
	ID                   int64
	Name                 *string
	Description          *string
	Price                *decimal.Decimal
	GSTPercentage        *decimal.Decimal
	MinimumOrderQuantity *int
	AvailableStock       *int
	VendorID             *int64
	UpdatedBy            int64
}

type ListProductsResult struct {
	Products []*ProductDetail
	Page     PageInfo
}
