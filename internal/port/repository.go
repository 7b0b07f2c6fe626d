package port

import (
	"context"

	"github.com/google/uuid"

	"procura/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// SupplierRepository defines the contract for supplier persistence.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, supplierID uuid.UUID) (*domain.Supplier, error)
	List(ctx context.Context, filter SupplierFilter) ([]domain.Supplier, int, error)
	Update(ctx context.Context, supplier *domain.Supplier) error
	Delete(ctx context.Context, supplierID uuid.UUID) error
}

// SupplierFilter narrows supplier listings.
type SupplierFilter struct {
	Search     string
	ActiveOnly bool
	Offset     int
	Limit      int
}

// ProductRepository defines the contract for catalog product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, productID uuid.UUID) (*domain.Product, error)
	GetByIDs(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, productID uuid.UUID) error
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Search     string
	Unit       string
	ActiveOnly bool
	Offset     int
	Limit      int
}
