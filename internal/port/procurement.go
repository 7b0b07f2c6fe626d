package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procura/internal/domain"
)

// ContractRepository defines the contract for supply contract persistence.
// Create and Update persist the document header together with its line items
// and payment terms in one transaction.
type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) error
	GetByID(ctx context.Context, contractID uuid.UUID) (*domain.Contract, error)
	List(ctx context.Context, filter ContractFilter) ([]domain.Contract, int, error)
	Update(ctx context.Context, contract *domain.Contract) error
	UpdateStatus(ctx context.Context, contractID uuid.UUID, status domain.ContractStatus) error
	Delete(ctx context.Context, contractID uuid.UUID) error

	CreateAttachment(ctx context.Context, attachment *domain.ContractAttachment) error
	GetAttachment(ctx context.Context, attachmentID uuid.UUID) (*domain.ContractAttachment, error)
	ListAttachments(ctx context.Context, contractID uuid.UUID) ([]domain.ContractAttachment, error)
	DeleteAttachment(ctx context.Context, attachmentID uuid.UUID) error
}

// ContractFilter narrows contract listings.
type ContractFilter struct {
	SupplierID *uuid.UUID
	Status     domain.ContractStatus
	Search     string
	Offset     int
	Limit      int
}

// OrderRepository defines the contract for purchase order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.PurchaseOrder) error
	GetByID(ctx context.Context, orderID uuid.UUID) (*domain.PurchaseOrder, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.PurchaseOrder, int, error)
	Update(ctx context.Context, order *domain.PurchaseOrder) error
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus, approvedAt, completedAt *time.Time) error
	Delete(ctx context.Context, orderID uuid.UUID) error

	CreateReceipt(ctx context.Context, receipt *domain.GoodsReceipt) error
	ListReceipts(ctx context.Context, orderID uuid.UUID) ([]domain.GoodsReceipt, error)
	ReceivedQuantity(ctx context.Context, lineItemID uuid.UUID) (int64, error)
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	SupplierID *uuid.UUID
	ContractID *uuid.UUID
	Status     domain.OrderStatus
	Search     string
	Offset     int
	Limit      int
}

// DebtRepository defines the contract for supplier debt persistence.
type DebtRepository interface {
	Create(ctx context.Context, debt *domain.Debt) error
	GetByID(ctx context.Context, debtID uuid.UUID) (*domain.Debt, error)
	GetByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Debt, error)
	List(ctx context.Context, filter DebtFilter) ([]domain.Debt, int, error)
	Update(ctx context.Context, debt *domain.Debt) error

	CreatePayment(ctx context.Context, payment *domain.DebtPayment) error
	ListPayments(ctx context.Context, debtID uuid.UUID) ([]domain.DebtPayment, error)

	// OutstandingBySupplier sums remaining amounts of the supplier's
	// non-terminal debts.
	OutstandingBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error)
	// ListOverdue returns unpaid debts whose due date is before the cutoff.
	ListOverdue(ctx context.Context, cutoff time.Time, limit int) ([]domain.Debt, error)
}

// DebtFilter narrows debt listings.
type DebtFilter struct {
	SupplierID *uuid.UUID
	Status     domain.DebtStatus
	Offset     int
	Limit      int
}
