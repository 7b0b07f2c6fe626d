package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procura/internal/binding"
	"procura/internal/debt"
	"procura/internal/docstate"
	"procura/internal/domain"
	"procura/internal/port"
	"procura/internal/pricing"
)

// CreateOrderInput is the DTO for creating a purchase order draft. A non-nil
// ContractID binds the order; the supplier then comes from the contract and
// SupplierID is ignored.
type CreateOrderInput struct {
	OrderNumber string          `json:"order_number" binding:"required"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	ContractID  *uuid.UUID      `json:"contract_id"`
	OrderDate   time.Time       `json:"order_date" binding:"required"`
	Note        string          `json:"note"`
	Items       []LineItemInput `json:"items"`
}

// UpdateOrderInput is the DTO for editing an order draft. The full document
// is resubmitted; rebinding revalidates every line against the new contract.
type UpdateOrderInput struct {
	OrderNumber string          `json:"order_number" binding:"required"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	ContractID  *uuid.UUID      `json:"contract_id"`
	OrderDate   time.Time       `json:"order_date" binding:"required"`
	Note        string          `json:"note"`
	Items       []LineItemInput `json:"items"`
}

// RecordReceiptInput is the DTO for recording a goods receipt against an
// approved order line.
type RecordReceiptInput struct {
	LineItemID uuid.UUID `json:"line_item_id" binding:"required"`
	Quantity   int64     `json:"quantity" binding:"required"`
}

// OrderService defines the purchase order management contract.
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput, createdBy uuid.UUID) (*domain.PurchaseOrder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
	List(ctx context.Context, filter port.OrderFilter) ([]domain.PurchaseOrder, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*domain.PurchaseOrder, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Approve(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
	Complete(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
	Cancel(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)

	RecordReceipt(ctx context.Context, orderID uuid.UUID, input RecordReceiptInput, receivedBy uuid.UUID) (*domain.GoodsReceipt, error)
	ListReceipts(ctx context.Context, orderID uuid.UUID) ([]domain.GoodsReceipt, error)
}

type orderService struct {
	orderRepo    port.OrderRepository
	contractRepo port.ContractRepository
	supplierRepo port.SupplierRepository
	productRepo  port.ProductRepository
	debtRepo     port.DebtRepository
}

// NewOrderService creates a new OrderService implementation.
func NewOrderService(
	orderRepo port.OrderRepository,
	contractRepo port.ContractRepository,
	supplierRepo port.SupplierRepository,
	productRepo port.ProductRepository,
	debtRepo port.DebtRepository,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		contractRepo: contractRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		debtRepo:     debtRepo,
	}
}

func (s *orderService) Create(ctx context.Context, input CreateOrderInput, createdBy uuid.UUID) (*domain.PurchaseOrder, error) {
	resolver, err := s.resolverFor(ctx, input.ContractID)
	if err != nil {
		return nil, err
	}

	supplierID := resolver.SupplierID(input.SupplierID)
	supplier, err := s.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive {
		return nil, domain.ErrSupplierInactive
	}

	items, err := buildLineItems(ctx, s.productRepo, input.Items)
	if err != nil {
		return nil, err
	}
	if err := resolver.ValidateAll(items); err != nil {
		return nil, err
	}

	order := &domain.PurchaseOrder{
		OrderNumber: input.OrderNumber,
		SupplierID:  supplierID,
		ContractID:  input.ContractID,
		Status:      domain.OrderStatusDraft,
		OrderDate:   input.OrderDate,
		Note:        input.Note,
		CreatedBy:   createdBy,
		Items:       items,
	}
	pricing.ApplyToOrder(order)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *orderService) List(ctx context.Context, filter port.OrderFilter) ([]domain.PurchaseOrder, int, error) {
	return s.orderRepo.List(ctx, filter)
}

func (s *orderService) Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*domain.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := docstate.EnsureOrderEditable(order); err != nil {
		return nil, err
	}

	resolver, err := s.resolverFor(ctx, input.ContractID)
	if err != nil {
		return nil, err
	}

	supplierID := resolver.SupplierID(input.SupplierID)
	supplier, err := s.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive {
		return nil, domain.ErrSupplierInactive
	}

	items, err := buildLineItems(ctx, s.productRepo, input.Items)
	if err != nil {
		return nil, err
	}
	if err := resolver.ValidateAll(items); err != nil {
		return nil, err
	}

	order.OrderNumber = input.OrderNumber
	order.SupplierID = supplierID
	order.ContractID = input.ContractID
	order.OrderDate = input.OrderDate
	order.Note = input.Note
	order.Items = items
	pricing.ApplyToOrder(order)

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := docstate.EnsureOrderEditable(order); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, id)
}

// Approve moves a draft order to APPROVED. For suppliers with immediate debt
// recognition this also creates the debt, after checking the supplier's debt
// ceiling.
func (s *orderService) Approve(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	supplier, err := s.supplierRepo.GetByID(ctx, order.SupplierID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := docstate.ApproveOrder(order, now); err != nil {
		return nil, err
	}

	newDebt := debt.RecognizeOnApproval(supplier, order, now)
	if newDebt != nil {
		if err := s.checkDebtLimit(ctx, supplier, newDebt.OriginalAmount); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, order.Status, order.ApprovedAt, nil); err != nil {
		return nil, err
	}
	if newDebt != nil {
		if err := s.debtRepo.Create(ctx, newDebt); err != nil {
			log.Printf("orderService.Approve: debt creation failed for order %s: %v", id, err)
			return nil, err
		}
	}
	return order, nil
}

// Complete moves an approved order to COMPLETED. For suppliers recognizing
// debt on completion this creates the debt for the full order amount.
func (s *orderService) Complete(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	supplier, err := s.supplierRepo.GetByID(ctx, order.SupplierID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := docstate.CompleteOrder(order, now); err != nil {
		return nil, err
	}

	newDebt := debt.RecognizeOnCompletion(supplier, order, now)
	if newDebt != nil {
		if err := s.checkDebtLimit(ctx, supplier, newDebt.OriginalAmount); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, order.Status, nil, order.CompletedAt); err != nil {
		return nil, err
	}
	if newDebt != nil {
		if err := s.debtRepo.Create(ctx, newDebt); err != nil {
			log.Printf("orderService.Complete: debt creation failed for order %s: %v", id, err)
			return nil, err
		}
	}
	return order, nil
}

func (s *orderService) Cancel(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := docstate.CancelOrder(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, id, order.Status, nil, nil); err != nil {
		return nil, err
	}
	return order, nil
}

// RecordReceipt records a partial delivery against one order line. Received
// quantity may never exceed the ordered quantity. Suppliers with per-receipt
// debt recognition get a debt increment valued at the line's unit price.
func (s *orderService) RecordReceipt(ctx context.Context, orderID uuid.UUID, input RecordReceiptInput, receivedBy uuid.UUID) (*domain.GoodsReceipt, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanReceive() {
		return nil, domain.ErrDocumentNotEditable
	}
	if input.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", domain.ErrInvalidQuantity)
	}

	var line *domain.LineItem
	for i := range order.Items {
		if order.Items[i].ID == input.LineItemID {
			line = &order.Items[i]
			break
		}
	}
	if line == nil {
		return nil, domain.NewValidationError("line_item_id", domain.ErrNotFound)
	}

	received, err := s.orderRepo.ReceivedQuantity(ctx, input.LineItemID)
	if err != nil {
		return nil, err
	}
	if received+input.Quantity > line.Quantity {
		return nil, domain.NewValidationError("quantity", domain.ErrReceiptExceedsOrdered)
	}

	now := time.Now().UTC()
	receipt := &domain.GoodsReceipt{
		OrderID:    orderID,
		LineItemID: input.LineItemID,
		Quantity:   input.Quantity,
		UnitPrice:  line.UnitPrice,
		Amount:     decimal.NewFromInt(input.Quantity).Mul(line.UnitPrice),
		ReceivedBy: receivedBy,
		ReceivedAt: now,
	}

	supplier, err := s.supplierRepo.GetByID(ctx, order.SupplierID)
	if err != nil {
		return nil, err
	}
	newDebt := debt.RecognizeOnReceipt(supplier, order, receipt, now)
	if newDebt != nil {
		if err := s.checkDebtLimit(ctx, supplier, newDebt.OriginalAmount); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.CreateReceipt(ctx, receipt); err != nil {
		return nil, err
	}
	if newDebt != nil {
		if err := s.debtRepo.Create(ctx, newDebt); err != nil {
			log.Printf("orderService.RecordReceipt: debt creation failed for order %s: %v", orderID, err)
			return nil, err
		}
	}
	return receipt, nil
}

func (s *orderService) ListReceipts(ctx context.Context, orderID uuid.UUID) ([]domain.GoodsReceipt, error) {
	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.orderRepo.ListReceipts(ctx, orderID)
}

// resolverFor loads the bound contract (when any) and builds a line
// resolver. Only active contracts accept new orders.
func (s *orderService) resolverFor(ctx context.Context, contractID *uuid.UUID) (*binding.Resolver, error) {
	if contractID == nil {
		return binding.NewResolver(nil), nil
	}
	contract, err := s.contractRepo.GetByID(ctx, *contractID)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractStatusActive {
		return nil, domain.NewValidationError("contract_id", domain.ErrDocumentNotEditable)
	}
	return binding.NewResolver(contract), nil
}

func (s *orderService) checkDebtLimit(ctx context.Context, supplier *domain.Supplier, amount decimal.Decimal) error {
	outstanding, err := s.debtRepo.OutstandingBySupplier(ctx, supplier.ID)
	if err != nil {
		return err
	}
	if !debt.WithinLimit(supplier, outstanding, amount) {
		return domain.ErrDebtLimitExceeded
	}
	return nil
}
