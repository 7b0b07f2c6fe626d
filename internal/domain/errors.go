package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already exists")

	ErrInvalidQuantity         = errors.New("quantity must be a positive integer")
	ErrInvalidPrice            = errors.New("unit price cannot be negative")
	ErrDiscountExceedsTotal    = errors.New("discount exceeds line total")
	ErrQuantityExceedsContract = errors.New("quantity exceeds contracted quantity")
	ErrDocumentNotEditable     = errors.New("document is not in an editable state")
	ErrInvalidDateOrdering     = errors.New("contract dates must satisfy start <= sign <= end")
	ErrMissingRequiredField    = errors.New("required field is missing")
	ErrIllegalTransition       = errors.New("illegal status transition")

	ErrPaymentExceedsDebt    = errors.New("payment exceeds remaining debt")
	ErrDebtCancelled         = errors.New("debt has been cancelled")
	ErrDebtLimitExceeded     = errors.New("supplier debt limit exceeded")
	ErrReceiptExceedsOrdered = errors.New("received quantity exceeds ordered quantity")

	ErrSupplierInactive     = errors.New("supplier is inactive")
	ErrProductNotOnContract = errors.New("product is not available on the bound contract")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)

// ValidationError wraps a validation sentinel with the offending field and,
// for per-line failures, the zero-based line index (-1 when not applicable).
// The presentation layer uses Field/Line to highlight the exact input.
type ValidationError struct {
	Field string
	Line  int
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Line >= 0 {
		return fmt.Sprintf("line %d, field %s: %v", e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError builds a document-level validation error.
func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Line: -1, Err: err}
}

// NewLineValidationError builds a line-scoped validation error.
func NewLineValidationError(line int, field string, err error) *ValidationError {
	return &ValidationError{Field: field, Line: line, Err: err}
}
