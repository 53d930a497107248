package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bespokesol/catalog/internal/auth"
	"github.com/bespokesol/catalog/internal/models"
	"github.com/go-chi/chi/v5"
)

// ProductService defines only the methods the API layer needs from the product service.
type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.ProductDetail, error)
	GetProduct(ctx context.Context, id int64) (*models.ProductDetail, error)
	UpdateProduct(ctx context.Context, req *models.UpdateProductRequest) (*models.ProductDetail, error)
	DeleteProduct(ctx context.Context, id, deletedBy int64) error
	ListProducts(ctx context.Context, page models.PageParams) (*models.ListProductsResult, error)
}

type CategoryService interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	UpdateCategory(ctx context.Context, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context, filter models.ListCategoriesFilter) (*models.ListCategoriesResult, error)
}

type MediaService interface {
	CreateMedia(ctx context.Context, req *models.CreateMediaRequest) (*models.Media, error)
	GetMedia(ctx context.Context, id int64) (*models.MediaDetail, error)
	UpdateMedia(ctx context.Context, req *models.UpdateMediaRequest) (*models.Media, error)
	DeleteMedia(ctx context.Context, id, deletedBy int64) error
	ListMedia(ctx context.Context, page models.PageParams) (*models.ListMediaResult, error)
}

type UserService interface {
	Register(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, mobile, password string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	ListVendors(ctx context.Context, page models.PageParams) (*models.ListUsersResult, error)
}

type SharedCollectionService interface {
	Create(ctx context.Context, productIDs []int64, createdBy int64) (*models.CreateSharedCollectionResult, error)
	Resolve(ctx context.Context, identifier string) (*models.ResolvedCollection, error)
}

// TokenVerifier checks bearer tokens for RequireAuth.
type TokenVerifier interface {
	Verify(token string, want auth.TokenType) (auth.Claims, error)
}

// Services bundles the dependencies of Handler.
type Services struct {
	Products    ProductService
	Categories  CategoryService
	Media       MediaService
	Users       UserService
	Collections SharedCollectionService
	Tokens      TokenVerifier
}

type Handler struct {
	productSvc    ProductService
	categorySvc   CategoryService
	mediaSvc      MediaService
	userSvc       UserService
	collectionSvc SharedCollectionService
	tokens        TokenVerifier
}

func NewHandler(svcs Services) *Handler {
	return &Handler{
		productSvc:    svcs.Products,
		categorySvc:   svcs.Categories,
		mediaSvc:      svcs.Media,
		userSvc:       svcs.Users,
		collectionSvc: svcs.Collections,
		tokens:        svcs.Tokens,
	}
}

var errInvalidID = errors.New("invalid id")

// decodeAndValidate reads the JSON body into dst and runs struct validation,
// writing a 400 and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		BadRequest(w, r, err, "invalid request body", "")
		return false
	}

	if err := ValidateStruct(dst); err != nil {
		var vf *ValidationFailure
		if errors.As(err, &vf) {
			BadRequest(w, r, err, vf.Message, vf.Field)
			return false
		}
		BadRequest(w, r, err, err.Error(), "")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		BadRequest(w, r, errInvalidID, "id must be a positive integer", "id")
		return 0, false
	}
	return id, true
}

func pageParams(r *http.Request) models.PageParams {
	var p models.PageParams
	if v := r.URL.Query().Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			p.Page = parsed
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			p.Limit = parsed
		}
	}
	return p.Normalize()
}

// currentUserID returns the authenticated caller or 0 when the request is anonymous.
func currentUserID(r *http.Request) int64 {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		return 0
	}
	return identity.UserID
}
