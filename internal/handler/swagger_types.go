package handler

import (
	"time"

	"procura/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ops@procura.app"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// RegisterUserRequest represents the create user request body.
type RegisterUserRequest struct {
	Email    string          `json:"email" binding:"required" example:"jane.doe@procura.app"`
	Password string          `json:"password" binding:"required" example:"securepassword123"`
	FullName string          `json:"full_name" binding:"required" example:"Jane Doe"`
	Role     domain.UserRole `json:"role" binding:"required" example:"staff"`
}

// UpdateUserRequest represents the update user request body.
type UpdateUserRequest struct {
	FullName *string          `json:"full_name" example:"Jane Doe"`
	Role     *domain.UserRole `json:"role" example:"manager"`
	IsActive *bool            `json:"is_active" example:"true"`
}

// CreateSupplierRequest represents the create supplier request body.
type CreateSupplierRequest struct {
	Name                string                     `json:"name" binding:"required" example:"Norte Distribuciones SA"`
	TaxID               string                     `json:"tax_id" example:"30-71234567-8"`
	Email               string                     `json:"email" example:"ventas@norte.example"`
	Phone               string                     `json:"phone" example:"+54 11 4000 0000"`
	Address             string                     `json:"address" example:"Av. Libertador 1234, Buenos Aires"`
	DebtRecognitionMode domain.DebtRecognitionMode `json:"debt_recognition_mode" binding:"required" example:"IMMEDIATE"`
	PaymentTermDays     int                        `json:"payment_term_days" example:"30"`
	MaxDebt             string                     `json:"max_debt" example:"500000.00"`
}

// UpdateSupplierRequest represents the update supplier request body.
type UpdateSupplierRequest struct {
	Name            *string `json:"name" example:"Norte Distribuciones SA"`
	PaymentTermDays *int    `json:"payment_term_days" example:"45"`
	MaxDebt         *string `json:"max_debt" example:"750000.00"`
	IsActive        *bool   `json:"is_active" example:"true"`
}

// CreateProductRequest represents the create product request body.
type CreateProductRequest struct {
	SKU       string `json:"sku" binding:"required" example:"FLR-0001"`
	Name      string `json:"name" binding:"required" example:"Harina 000 25kg"`
	Unit      string `json:"unit" example:"bag"`
	ListPrice string `json:"list_price" example:"18500.00"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2026-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
