package errorx

import (
	"fmt"
	"net/http"
)

// APIError represents a typed failure that the HTTP boundary translates
// into a transport status and a user-safe message. Internal detail never
// reaches the client through this type.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// WithMessage returns a copy of the error carrying a caller-supplied message.
// The copy still matches the original under errors.Is.
func (e *APIError) WithMessage(msg string) *APIError {
	return &APIError{Code: e.Code, Message: msg, HTTPStatus: e.HTTPStatus}
}

// Is matches errors by code so WithMessage copies compare equal to their sentinel.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

var (
	// Authentication
	ErrUnauthenticated    = &APIError{Code: "UNAUTHENTICATED", Message: "authentication required", HTTPStatus: http.StatusUnauthorized}
	ErrInvalidCredentials = &APIError{Code: "INVALID_CREDENTIALS", Message: "invalid email or password", HTTPStatus: http.StatusUnauthorized}
	ErrUserDisabled       = &APIError{Code: "USER_DISABLED", Message: "user is disabled", HTTPStatus: http.StatusForbidden}

	// Company context resolution
	ErrCompanyNotFound       = &APIError{Code: "COMPANY_NOT_FOUND", Message: "company not found", HTTPStatus: http.StatusNotFound}
	ErrCompanyInactive       = &APIError{Code: "COMPANY_INACTIVE", Message: "company is not active", HTTPStatus: http.StatusForbidden}
	ErrCompanyAccessDenied   = &APIError{Code: "COMPANY_ACCESS_DENIED", Message: "you do not have access to this company", HTTPStatus: http.StatusForbidden}
	ErrCompanyContextMissing = &APIError{Code: "COMPANY_CONTEXT_MISSING", Message: "company context is required: provide x-company-id header or companyId query parameter", HTTPStatus: http.StatusBadRequest}

	// Authorization
	ErrPermissionDenied = &APIError{Code: "PERMISSION_DENIED", Message: "permission denied", HTTPStatus: http.StatusForbidden}

	// Identity store
	ErrNotFound             = &APIError{Code: "NOT_FOUND", Message: "resource not found", HTTPStatus: http.StatusNotFound}
	ErrUserNotFound         = &APIError{Code: "USER_NOT_FOUND", Message: "user not found", HTTPStatus: http.StatusNotFound}
	ErrDuplicateCompanyCode = &APIError{Code: "DUPLICATE_COMPANY_CODE", Message: "company code already exists", HTTPStatus: http.StatusBadRequest}
	ErrDuplicateSKU         = &APIError{Code: "DUPLICATE_SKU", Message: "product SKU already exists for this company", HTTPStatus: http.StatusBadRequest}
	ErrDuplicateEmail       = &APIError{Code: "DUPLICATE_EMAIL", Message: "email or username already exists", HTTPStatus: http.StatusBadRequest}

	// Validation
	ErrInvalidRequest = &APIError{Code: "INVALID_REQUEST", Message: "invalid request", HTTPStatus: http.StatusBadRequest}
)
