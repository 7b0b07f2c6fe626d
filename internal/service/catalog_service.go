package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procura/internal/binding"
	"procura/internal/domain"
	"procura/internal/port"
)

// CreateProductInput is the DTO for creating a catalog product.
type CreateProductInput struct {
	SKU       string          `json:"sku" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Unit      string          `json:"unit"`
	ListPrice decimal.Decimal `json:"list_price"`
}

// UpdateProductInput is the DTO for updating a catalog product.
type UpdateProductInput struct {
	SKU       *string          `json:"sku"`
	Name      *string          `json:"name"`
	Unit      *string          `json:"unit"`
	ListPrice *decimal.Decimal `json:"list_price"`
	IsActive  *bool            `json:"is_active"`
}

// ProductOption is a selectable product for an order form, optionally
// pre-filled from a bound contract line.
type ProductOption struct {
	Product    domain.Product   `json:"product"`
	Prefill    *domain.LineItem `json:"prefill,omitempty"`
	OnContract bool             `json:"on_contract"`
}

// CatalogService defines the product catalog contract.
type CatalogService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter port.ProductFilter) ([]domain.Product, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// OptionsForContract returns the products selectable on an order bound
	// to the given contract, with contract-line prefills. A nil contract ID
	// returns the full active catalog without prefills.
	OptionsForContract(ctx context.Context, contractID *uuid.UUID) ([]ProductOption, error)
}

type catalogService struct {
	productRepo  port.ProductRepository
	contractRepo port.ContractRepository
}

// NewCatalogService creates a new CatalogService implementation.
func NewCatalogService(productRepo port.ProductRepository, contractRepo port.ContractRepository) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		contractRepo: contractRepo,
	}
}

func (s *catalogService) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if input.ListPrice.IsNegative() {
		return nil, domain.NewValidationError("list_price", domain.ErrInvalidPrice)
	}

	product := &domain.Product{
		SKU:       input.SKU,
		Name:      input.Name,
		Unit:      input.Unit,
		ListPrice: input.ListPrice,
		IsActive:  true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *catalogService) List(ctx context.Context, filter port.ProductFilter) ([]domain.Product, int, error) {
	return s.productRepo.List(ctx, filter)
}

func (s *catalogService) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.ListPrice != nil {
		if input.ListPrice.IsNegative() {
			return nil, domain.NewValidationError("list_price", domain.ErrInvalidPrice)
		}
		product.ListPrice = *input.ListPrice
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *catalogService) OptionsForContract(ctx context.Context, contractID *uuid.UUID) ([]ProductOption, error) {
	var contract *domain.Contract
	if contractID != nil {
		c, err := s.contractRepo.GetByID(ctx, *contractID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		contract = c
	}

	catalog, _, err := s.productRepo.List(ctx, port.ProductFilter{ActiveOnly: true, Limit: 1000})
	if err != nil {
		return nil, err
	}

	resolver := binding.NewResolver(contract)
	selectable := resolver.Options(catalog)

	options := make([]ProductOption, 0, len(selectable))
	for i := range selectable {
		opt := ProductOption{Product: selectable[i]}
		if prefill, ok := resolver.Prefill(selectable[i].ID); ok {
			p := prefill
			opt.Prefill = &p
			opt.OnContract = true
		}
		options = append(options, opt)
	}
	return options, nil
}
