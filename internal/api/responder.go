package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bespokesol/catalog/internal/models"
	"github.com/nhalm/canonlog"
)

func renderJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func renderError(w http.ResponseWriter, r *http.Request, statusCode int, err error, code, message, param string, meta map[string]any) {
	canonlog.AddRequestError(r.Context(), err)
	sanitizedMessage := sanitizeErrorMessage(message, statusCode)
	renderJSON(w, statusCode, NewErrorResponse(statusCode, code, sanitizedMessage, param, meta))
}

func sanitizeErrorMessage(message string, statusCode int) string {
	lowerMsg := strings.ToLower(message)

	if strings.Contains(lowerMsg, "sql") ||
		strings.Contains(lowerMsg, "database") ||
		strings.Contains(lowerMsg, "postgres") {
		if statusCode >= 500 {
			return "An internal error occurred"
		}
		return "Invalid request"
	}

	if statusCode >= 500 && statusCode != http.StatusGatewayTimeout {
		return "An internal error occurred"
	}

	return message
}

func Success(w http.ResponseWriter, data any) {
	renderJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	renderJSON(w, http.StatusCreated, data)
}

func List(w http.ResponseWriter, data any, page models.PageInfo) {
	renderJSON(w, http.StatusOK, NewListResponse(data, page))
}

func BadRequest(w http.ResponseWriter, r *http.Request, err error, message, param string) {
	renderError(w, r, http.StatusBadRequest, err, CodeInvalidInput, message, param, nil)
}

func Unauthorized(w http.ResponseWriter, r *http.Request, err error, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="catalog"`)
	renderError(w, r, http.StatusUnauthorized, err, CodeUnauthorized, message, "", nil)
}

func NotFound(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusNotFound, err, CodeNotFound, message, "", nil)
}

func ConflictError(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusConflict, err, CodeConflict, message, "", nil)
}

// Gone reports a resource that existed but is no longer available; meta
// carries the timestamps that explain why.
func Gone(w http.ResponseWriter, r *http.Request, err error, message string, meta map[string]any) {
	renderError(w, r, http.StatusGone, err, CodeExpired, message, "", meta)
}

func InternalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusInternalServerError, err, CodeInternal, message, "", nil)
}

func DependencyFailure(w http.ResponseWriter, r *http.Request, err error) {
	renderError(w, r, http.StatusInternalServerError, err, CodeDependencyFailure, "", "", nil)
}

func GatewayTimeout(w http.ResponseWriter, r *http.Request, err error) {
	renderError(w, r, http.StatusGatewayTimeout, err, CodeTimeout, "the request timed out, please retry", "", nil)
}
