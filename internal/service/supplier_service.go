package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procura/internal/domain"
	"procura/internal/port"
)

// CreateSupplierInput is the DTO for creating a supplier.
type CreateSupplierInput struct {
	Name                string                     `json:"name" binding:"required"`
	TaxID               string                     `json:"tax_id"`
	Email               string                     `json:"email"`
	Phone               string                     `json:"phone"`
	Address             string                     `json:"address"`
	DebtRecognitionMode domain.DebtRecognitionMode `json:"debt_recognition_mode" binding:"required"`
	PaymentTermDays     int                        `json:"payment_term_days"`
	MaxDebt             decimal.Decimal            `json:"max_debt"`
}

// UpdateSupplierInput is the DTO for updating a supplier.
type UpdateSupplierInput struct {
	Name                *string                     `json:"name"`
	TaxID               *string                     `json:"tax_id"`
	Email               *string                     `json:"email"`
	Phone               *string                     `json:"phone"`
	Address             *string                     `json:"address"`
	DebtRecognitionMode *domain.DebtRecognitionMode `json:"debt_recognition_mode"`
	PaymentTermDays     *int                        `json:"payment_term_days"`
	MaxDebt             *decimal.Decimal            `json:"max_debt"`
	IsActive            *bool                       `json:"is_active"`
}

// SupplierService defines the supplier management contract.
type SupplierService interface {
	Create(ctx context.Context, input CreateSupplierInput) (*domain.Supplier, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	List(ctx context.Context, filter port.SupplierFilter) ([]domain.Supplier, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateSupplierInput) (*domain.Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type supplierService struct {
	repo port.SupplierRepository
}

// NewSupplierService creates a new SupplierService implementation.
func NewSupplierService(repo port.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) Create(ctx context.Context, input CreateSupplierInput) (*domain.Supplier, error) {
	if !input.DebtRecognitionMode.IsValid() {
		return nil, domain.NewValidationError("debt_recognition_mode", domain.ErrMissingRequiredField)
	}
	if input.PaymentTermDays < 0 {
		return nil, domain.NewValidationError("payment_term_days", domain.ErrInvalidQuantity)
	}
	if input.MaxDebt.IsNegative() {
		return nil, domain.NewValidationError("max_debt", domain.ErrInvalidPrice)
	}

	supplier := &domain.Supplier{
		Name:                input.Name,
		TaxID:               input.TaxID,
		Email:               input.Email,
		Phone:               input.Phone,
		Address:             input.Address,
		DebtRecognitionMode: input.DebtRecognitionMode,
		PaymentTermDays:     input.PaymentTermDays,
		MaxDebt:             input.MaxDebt,
		IsActive:            true,
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *supplierService) List(ctx context.Context, filter port.SupplierFilter) ([]domain.Supplier, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, input UpdateSupplierInput) (*domain.Supplier, error) {
	supplier, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.TaxID != nil {
		supplier.TaxID = *input.TaxID
	}
	if input.Email != nil {
		supplier.Email = *input.Email
	}
	if input.Phone != nil {
		supplier.Phone = *input.Phone
	}
	if input.Address != nil {
		supplier.Address = *input.Address
	}
	if input.DebtRecognitionMode != nil {
		if !input.DebtRecognitionMode.IsValid() {
			return nil, domain.NewValidationError("debt_recognition_mode", domain.ErrMissingRequiredField)
		}
		supplier.DebtRecognitionMode = *input.DebtRecognitionMode
	}
	if input.PaymentTermDays != nil {
		if *input.PaymentTermDays < 0 {
			return nil, domain.NewValidationError("payment_term_days", domain.ErrInvalidQuantity)
		}
		supplier.PaymentTermDays = *input.PaymentTermDays
	}
	if input.MaxDebt != nil {
		if input.MaxDebt.IsNegative() {
			return nil, domain.NewValidationError("max_debt", domain.ErrInvalidPrice)
		}
		supplier.MaxDebt = *input.MaxDebt
	}
	if input.IsActive != nil {
		supplier.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
