package api

import "github.com/bespokesol/catalog/internal/models"

// ListResponse wraps collection responses with pagination metadata.
// @Description Collection response with pagination
type ListResponse struct {
	Data       any  `json:"data"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// ErrorResponse represents all API error responses.
// @Description Standard error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the specifics of an API error.
// @Description Error details
type ErrorDetail struct {
	Type    string         `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Param   string         `json:"param,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

const (
	CodeInvalidInput      = "invalid_input"
	CodeUnauthorized      = "unauthorized"
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeExpired           = "expired"
	CodeDependencyFailure = "dependency_failure"
	CodeTimeout           = "timeout"
	CodeInternal          = "internal_error"
)

func NewListResponse(data any, page models.PageInfo) *ListResponse {
	return &ListResponse{
		Data:       data,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		HasMore:    page.HasMore(),
	}
}

func NewErrorResponse(httpStatusCode int, code, message, param string, meta map[string]any) *ErrorResponse {
	errorType := "api_error"
	if httpStatusCode >= 400 && httpStatusCode < 500 {
		errorType = "invalid_request_error"
	}

	if code == "" {
		code = CodeInternal
	}

	return &ErrorResponse{
		Error: ErrorDetail{
			Type:    errorType,
			Code:    code,
			Message: message,
			Param:   param,
			Meta:    meta,
		},
	}
}
