package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"procura/internal/binding"
	"procura/internal/domain"
	"procura/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response. Field and Line identify the
// offending input for validation failures; Allowed carries the contract
// quantity ceiling when a line exceeds it.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Line    *int   `json:"line,omitempty"`
	Allowed *int64 `json:"allowed,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, "INVALID_QUANTITY", "quantity must be a positive integer"
	case errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest, "INVALID_PRICE", "amounts and rates must be non-negative"
	case errors.Is(err, domain.ErrDiscountExceedsTotal):
		return http.StatusBadRequest, "DISCOUNT_EXCEEDS_TOTAL", "discount exceeds the line total"
	case errors.Is(err, domain.ErrQuantityExceedsContract):
		return http.StatusBadRequest, "QUANTITY_EXCEEDS_CONTRACT", "quantity exceeds the contracted quantity"
	case errors.Is(err, domain.ErrProductNotOnContract):
		return http.StatusBadRequest, "PRODUCT_NOT_ON_CONTRACT", "product is not on the bound contract"
	case errors.Is(err, domain.ErrDocumentNotEditable):
		return http.StatusConflict, "DOCUMENT_NOT_EDITABLE", "document is not editable in its current status"
	case errors.Is(err, domain.ErrInvalidDateOrdering):
		return http.StatusBadRequest, "INVALID_DATE_ORDERING", "dates must satisfy start <= sign <= end"
	case errors.Is(err, domain.ErrMissingRequiredField):
		return http.StatusBadRequest, "MISSING_REQUIRED_FIELD", "a required field is missing"
	case errors.Is(err, domain.ErrIllegalTransition):
		return http.StatusConflict, "ILLEGAL_TRANSITION", "status transition is not allowed"
	case errors.Is(err, domain.ErrPaymentExceedsDebt):
		return http.StatusBadRequest, "PAYMENT_EXCEEDS_DEBT", "payment exceeds the remaining debt"
	case errors.Is(err, domain.ErrDebtCancelled):
		return http.StatusConflict, "DEBT_CANCELLED", "debt has been cancelled"
	case errors.Is(err, domain.ErrDebtLimitExceeded):
		return http.StatusConflict, "DEBT_LIMIT_EXCEEDED", "supplier debt ceiling would be exceeded"
	case errors.Is(err, domain.ErrReceiptExceedsOrdered):
		return http.StatusBadRequest, "RECEIPT_EXCEEDS_ORDERED", "received quantity exceeds the ordered quantity"
	case errors.Is(err, domain.ErrSupplierInactive):
		return http.StatusConflict, "SUPPLIER_INACTIVE", "supplier is inactive"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractAuthContext extracts the user ID and role from the request context.
// Returns false if auth context is missing (error response already written).
func extractAuthContext(c *gin.Context) (userID uuid.UUID, role domain.UserRole, ok bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, "", false
	}
	role = domain.UserRole(middleware.GetRole(c))
	return userID, role, true
}

// HandleError maps a domain error and sends the appropriate error response,
// attaching field and line detail from validation errors.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}

	apiErr := &APIError{Code: code, Message: msg}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		apiErr.Field = verr.Field
		if verr.Line >= 0 {
			line := verr.Line
			apiErr.Line = &line
		}
	}
	var qerr *binding.QuantityError
	if errors.As(err, &qerr) {
		apiErr.Field = "quantity"
		line := qerr.Line
		allowed := qerr.Allowed
		apiErr.Line = &line
		apiErr.Allowed = &allowed
	}

	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}
