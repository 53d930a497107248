package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/bespokesol/catalog/internal/auth"
	"github.com/bespokesol/catalog/internal/models"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents the request body for creating a product.
// @Description Request payload for creating a product
type CreateProductRequest struct {
	Name                 string           `json:"name" validate:"required,max=255"`
	Description          string           `json:"description" validate:"required,max=2000"`
	Price                *decimal.Decimal `json:"price" validate:"required" swaggertype:"string" example:"1499.50"`
	GSTPercentage        *decimal.Decimal `json:"gst_percentage" validate:"required" swaggertype:"string" example:"18"`
	MinimumOrderQuantity *int             `json:"minimum_order_quantity" validate:"required,min=1"`
	AvailableStock       *int             `json:"available_stock" validate:"required,min=0"`
	VendorID             int64            `json:"vendor_id" validate:"required,gt=0"`
}

// UpdateProductRequest represents the request body for updating a product.
// @Description Request payload for updating a product
type UpdateProductRequest struct {
	Name                 *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description          *string          `json:"description" validate:"omitempty,max=2000"`
	Price                *decimal.Decimal `json:"price" swaggertype:"string"`
	GSTPercentage        *decimal.Decimal `json:"gst_percentage" swaggertype:"string"`
	MinimumOrderQuantity *int             `json:"minimum_order_quantity" validate:"omitempty,min=1"`
	AvailableStock       *int             `json:"available_stock" validate:"omitempty,min=0"`
	VendorID             *int64           `json:"vendor_id" validate:"omitempty,gt=0"`
}

// ProductResponse represents a product resource in API responses.
// @Description Product resource
type ProductResponse struct {
	ID                   int64           `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Price                string          `json:"price"`
	GSTPercentage        string          `json:"gst_percentage"`
	MinimumOrderQuantity int             `json:"minimum_order_quantity"`
	AvailableStock       int             `json:"available_stock"`
	VendorID             *int64          `json:"vendor_id"`
	VendorName           *string         `json:"vendor_name"`
	Status               string          `json:"status"`
	CreatedBy            int64           `json:"created_by"`
	UpdatedBy            int64           `json:"updated_by"`
	CreatedAt            string          `json:"created_at"`
	UpdatedAt            string          `json:"updated_at"`
	Media                []MediaResponse `json:"media"`
}

// CreateCategoryRequest represents the request body for creating a category.
// @Description Request payload for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// UpdateCategoryRequest represents the request body for updating a category.
// @Description Request payload for updating a category
type UpdateCategoryRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=255"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CategoryResponse represents a category resource in API responses.
// @Description Category resource
type CategoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateMediaRequest represents the request body for registering a media item.
// @Description Request payload for creating media metadata
type CreateMediaRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required,max=500"`
	Type      string `json:"type" validate:"omitempty,oneof=IMAGE VIDEO PDF"`
}

// UpdateMediaRequest represents the request body for updating media metadata.
// @Description Request payload for updating media metadata
type UpdateMediaRequest struct {
	ProductID *int64  `json:"product_id" validate:"omitempty,gt=0"`
	Name      *string `json:"name" validate:"omitempty,min=1,max=500"`
	Type      *string `json:"type" validate:"omitempty,oneof=IMAGE VIDEO PDF"`
	Status    *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// MediaResponse represents a media resource in API responses.
// @Description Media resource
type MediaResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	ProductID   int64   `json:"product_id"`
	ProductName *string `json:"product_name,omitempty"`
	Status      string  `json:"status"`
	CreatedBy   int64   `json:"created_by"`
	UpdatedBy   int64   `json:"updated_by"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// CreateUserRequest represents the registration payload.
// @Description Request payload for registering a user or vendor
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Mobile   string `json:"mobile" validate:"required,numeric,min=10,max=15"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=USER VENDOR"`
}

// UserResponse represents a user resource. The password hash is never exposed.
// @Description User resource
type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Mobile    string `json:"mobile"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// LoginRequest represents the login payload.
// @Description Request payload for logging in
type LoginRequest struct {
	Mobile   string `json:"mobile" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents the token refresh payload.
// @Description Request payload for refreshing tokens
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse represents an issued token pair.
// @Description Access and refresh tokens
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// CreateSharedCollectionRequest represents the request body for sharing products.
// @Description Request payload for creating a shared collection
type CreateSharedCollectionRequest struct {
	ProductIDs []int64 `json:"product_ids" validate:"max=500"`
}

// SharedCollectionCreatedResponse is returned after a collection is created.
// @Description Handle of a newly created shared collection
type SharedCollectionCreatedResponse struct {
	ID           int64   `json:"id"`
	Slug         string  `json:"slug"`
	ExpiresAt    *string `json:"expires_at"`
	ProductCount int     `json:"product_count"`
}

// ResolveSharedCollectionRequest identifies a collection by numeric id or slug.
// @Description Request payload for resolving a shared collection
type ResolveSharedCollectionRequest struct {
	ID CollectionIdentifier `json:"id" swaggertype:"string" example:"share-lq2x7k9a-4fz8qp"`
}

// ResolvedCollectionResponse is a collection together with its products.
// @Description Shared collection with enriched products
type ResolvedCollectionResponse struct {
	ID         int64             `json:"id"`
	Slug       string            `json:"slug"`
	ProductIDs []int64           `json:"product_ids"`
	CreatedBy  int64             `json:"created_by"`
	ExpiresAt  *string           `json:"expires_at"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
	Products   []ProductResponse `json:"products"`
}

var errIdentifierType = errors.New("id must be a string or an integer")

// CollectionIdentifier accepts either a JSON string or a JSON integer.
type CollectionIdentifier string

func (c *CollectionIdentifier) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CollectionIdentifier(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return errIdentifierType
	}
	*c = CollectionIdentifier(strconv.FormatInt(n, 10))
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func convertToProductResponse(p *models.ProductDetail) ProductResponse {
	media := make([]MediaResponse, 0, len(p.Media))
	for _, m := range p.Media {
		media = append(media, convertToMediaResponse(m, nil))
	}

	return ProductResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Description:          p.Description,
		Price:                p.Price.StringFixed(2),
		GSTPercentage:        p.GSTPercentage.StringFixed(2),
		MinimumOrderQuantity: p.MinimumOrderQuantity,
		AvailableStock:       p.AvailableStock,
		VendorID:             p.VendorID,
		VendorName:           p.VendorName,
		Status:               string(p.Status),
		CreatedBy:            p.CreatedBy,
		UpdatedBy:            p.UpdatedBy,
		CreatedAt:            formatTime(p.CreatedAt),
		UpdatedAt:            formatTime(p.UpdatedAt),
		Media:                media,
	}
}

func convertToMediaResponse(m *models.Media, productName *string) MediaResponse {
	return MediaResponse{
		ID:          m.ID,
		Name:        m.Name,
		Type:        string(m.Type),
		ProductID:   m.ProductID,
		ProductName: productName,
		Status:      string(m.Status),
		CreatedBy:   m.CreatedBy,
		UpdatedBy:   m.UpdatedBy,
		CreatedAt:   formatTime(m.CreatedAt),
		UpdatedAt:   formatTime(m.UpdatedAt),
	}
}

func convertToCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Status:    string(c.Status),
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func convertToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Mobile:    u.Mobile,
		Email:     u.Email,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
}

func convertToTokenResponse(p *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(p.ExpiresIn.Seconds()),
	}
}

func convertToResolvedCollectionResponse(rc *models.ResolvedCollection) ResolvedCollectionResponse {
	products := make([]ProductResponse, 0, len(rc.Products))
	for _, p := range rc.Products {
		products = append(products, convertToProductResponse(p))
	}

	return ResolvedCollectionResponse{
		ID:         rc.ID,
		Slug:       rc.Slug,
		ProductIDs: rc.ProductIDs,
		CreatedBy:  rc.CreatedBy,
		ExpiresAt:  formatTimePtr(rc.ExpiresAt),
		CreatedAt:  formatTime(rc.CreatedAt),
		UpdatedAt:  formatTime(rc.UpdatedAt),
		Products:   products,
	}
}
