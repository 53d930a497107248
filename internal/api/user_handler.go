package api

import (
	"net/http"
	"strings"

	"github.com/bespokesol/catalog/internal/models"
	"github.com/nhalm/canonlog"
)

// RegisterUser godoc
// @Summary Register a user or vendor
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "Registration details"
// @Success 201 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users [post]
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	role := models.RoleUser
	if req.Role != "" {
		role = models.Role(req.Role)
	}

	canonlog.AddRequestFields(r.Context(), map[string]any{"role": string(role)})

	user, err := h.userSvc.Register(r.Context(), &models.CreateUserRequest{
		Name:     strings.TrimSpace(req.Name),
		Mobile:   req.Mobile,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Created(w, convertToUserResponse(user))
}

// Login godoc
// @Summary Exchange credentials for tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Mobile and password"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.userSvc.Login(r.Context(), req.Mobile, req.Password)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, convertToTokenResponse(pair))
}

// RefreshToken godoc
// @Summary Rotate a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshRequest true "Refresh token"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.userSvc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	Success(w, convertToTokenResponse(pair))
}

// ListVendors godoc
// @Summary List active vendors
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} ListResponse{data=[]UserResponse}
// @Router /vendors [get]
func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	result, err := h.userSvc.ListVendors(r.Context(), pageParams(r))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	responses := make([]UserResponse, len(result.Users))
	for i, u := range result.Users {
		responses[i] = convertToUserResponse(u)
	}

	List(w, responses, result.Page)
}
