package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bespokesol/catalog/internal/apperrors"
	"github.com/bespokesol/catalog/internal/auth"
	"github.com/bespokesol/catalog/internal/models"
	"github.com/bespokesol/catalog/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	Create(ctx context.Context, p models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByMobile(ctx context.Context, mobile string) (*models.User, error)
	ListVendors(ctx context.Context, page models.PageParams) ([]*models.User, int, error)
}

type TokenIssuer interface {
	IssuePair(userID int64, role string) (*auth.TokenPair, error)
	Verify(token string, want auth.TokenType) (auth.Claims, error)
}

type UserService struct {
	repo     UserRepository
	tokens   TokenIssuer
	hashCost int
}

func NewUserService(repo UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{repo: repo, tokens: tokens, hashCost: bcrypt.DefaultCost}
}

func (s *UserService) Register(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role", "must be USER or VENDOR")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, apperrors.NewValidationError("password", "could not be hashed")
	}

	user, err := s.repo.Create(ctx, models.CreateUserParams{
		Name:         strings.TrimSpace(req.Name),
		Mobile:       strings.TrimSpace(req.Mobile),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Role:         role,
		PasswordHash: string(hash),
	})
	if err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return nil, apperrors.NewConflictError("user", duplicateUserReason(dup.Constraint))
		}
		return nil, storeError("create user", err)
	}
	return user, nil
}

func duplicateUserReason(constraint string) string {
	switch constraint {
	case "users_email_key":
		return "email is already registered"
	case "users_mobile_key":
		return "mobile number is already registered"
	default:
		return "user already exists"
	}
}

// Login checks a mobile/password pair and issues tokens. Every credential
// failure returns the same message.
func (s *UserService) Login(ctx context.Context, mobile, password string) (*auth.TokenPair, error) {
	user, err := s.repo.GetByMobile(ctx, strings.TrimSpace(mobile))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewUnauthorizedError("invalid mobile or password")
	}
	if err != nil {
		return nil, storeError("get user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid mobile or password")
	}
	if !user.Status.IsActive() {
		return nil, apperrors.NewUnauthorizedError("account is inactive")
	}

	return s.issue(user)
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}
	if err != nil {
		return nil, storeError("get user", err)
	}
	if !user.Status.IsActive() {
		return nil, apperrors.NewUnauthorizedError("account is inactive")
	}

	return s.issue(user)
}

func (s *UserService) issue(user *models.User) (*auth.TokenPair, error) {
	pair, err := s.tokens.IssuePair(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.NewDependencyError("token service", err)
	}
	return pair, nil
}

func (s *UserService) ListVendors(ctx context.Context, page models.PageParams) (*models.ListUsersResult, error) {
	page = page.Normalize()

	vendors, total, err := s.repo.ListVendors(ctx, page)
	if err != nil {
		return nil, storeError("list vendors", err)
	}
	return &models.ListUsersResult{Users: vendors, Page: models.NewPageInfo(page, total)}, nil
}
