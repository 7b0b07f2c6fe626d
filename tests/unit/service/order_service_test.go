package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"procura/internal/domain"
	"procura/internal/service"
	"procura/mocks"
)

func setupOrderService() (
	service.OrderService,
	*mocks.MockOrderRepo,
	*mocks.MockContractRepo,
	*mocks.MockSupplierRepo,
	*mocks.MockProductRepo,
	*mocks.MockDebtRepo,
) {
	orderRepo := new(mocks.MockOrderRepo)
	contractRepo := new(mocks.MockContractRepo)
	supplierRepo := new(mocks.MockSupplierRepo)
	productRepo := new(mocks.MockProductRepo)
	debtRepo := new(mocks.MockDebtRepo)
	svc := service.NewOrderService(orderRepo, contractRepo, supplierRepo, productRepo, debtRepo)
	return svc, orderRepo, contractRepo, supplierRepo, productRepo, debtRepo
}

func draftOrderFor(sup *domain.Supplier, total string) *domain.PurchaseOrder {
	return &domain.PurchaseOrder{
		ID:          uuid.New(),
		OrderNumber: "PO-2025-0001",
		SupplierID:  sup.ID,
		Status:      domain.OrderStatusDraft,
		OrderDate:   date("2025-06-01"),
		TotalAmount: d(total),
		Items: []domain.LineItem{
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: 10, UnitPrice: d("100"), FinalPrice: d(total)},
		},
	}
}

func TestOrderService_Create_Unbound(t *testing.T) {
	svc, orderRepo, _, supplierRepo, productRepo, _ := setupOrderService()

	sup := activeSupplier()
	prod := flourProduct()
	supplierRepo.On("GetByID", mock.Anything, sup.ID).Return(sup, nil)
	productRepo.On("GetByID", mock.Anything, prod.ID).Return(prod, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PurchaseOrder")).Return(nil)

	order, err := svc.Create(context.Background(), service.CreateOrderInput{
		OrderNumber: "PO-2025-0001",
		SupplierID:  sup.ID,
		OrderDate:   date("2025-06-01"),
		Items: []service.LineItemInput{
			{ProductID: prod.ID, Quantity: 4, UnitPrice: d("250")},
		},
	}, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDraft, order.Status)
	assert.Nil(t, order.ContractID)
	assert.True(t, order.TotalAmount.Equal(d("1000")))
	orderRepo.AssertExpectations(t)
}

func TestOrderService_Create_BoundForcesContractSupplier(t *testing.T) {
	svc, orderRepo, contractRepo, supplierRepo, productRepo, _ := setupOrderService()

	sup := activeSupplier()
	prod := flourProduct()
	contract := &domain.Contract{
		ID:         uuid.New(),
		SupplierID: sup.ID,
		Status:     domain.ContractStatusActive,
		Items: []domain.LineItem{
			{ProductID: prod.ID, Quantity: 10, UnitPrice: d("250")},
		},
	}
	contractRepo.On("GetByID", mock.Anything, contract.ID).Return(contract, nil)
	supplierRepo.On("GetByID", mock.Anything, sup.ID).Return(sup, nil)
	productRepo.On("GetByID", mock.Anything, prod.ID).Return(prod, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PurchaseOrder")).Return(nil)

	// SupplierID in the input points elsewhere; the contract wins.
	order, err := svc.Create(context.Background(), service.CreateOrderInput{
		OrderNumber: "PO-2025-0002",
		SupplierID:  uuid.New(),
		ContractID:  &contract.ID,
		OrderDate:   date("2025-06-01"),
		Items: []service.LineItemInput{
			{ProductID: prod.ID, Quantity: 5, UnitPrice: d("250")},
		},
	}, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, sup.ID, order.SupplierID)
}

func TestOrderService_Create_BoundQuantityExceedsContract(t *testing.T) {
	svc, orderRepo, contractRepo, supplierRepo, productRepo, _ := setupOrderService()

	sup := activeSupplier()
	prod := flourProduct()
	contract := &domain.Contract{
		ID:         uuid.New(),
		SupplierID: sup.ID,
		Status:     domain.ContractStatusActive,
		Items: []domain.LineItem{
			{ProductID: prod.ID, Quantity: 10, UnitPrice: d("250")},
		},
	}
	contractRepo.On("GetByID", mock.Anything, contract.ID).Return(contract, nil)
	supplierRepo.On("GetByID", mock.Anything, sup.ID).Return(sup, nil)
	productRepo.On("GetByID", mock.Anything, prod.ID).Return(prod, nil)

	_, err := svc.Create(context.Background(), service.CreateOrderInput{
		OrderNumber: "PO-2025-0003",
		ContractID:  &contract.ID,
		OrderDate:   date("2025-06-01"),
		Items: []service.LineItemInput{
			{ProductID: prod.ID, Quantity: 11, UnitPrice: d("250")},
		},
	}, uuid.New())

	assert.ErrorIs(t, err, domain.ErrQuantityExceedsContract)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_Create_BoundToInactiveContract(t *testing.T) {
	svc, _, contractRepo, _, _, _ := setupOrderService()

	contractID := uuid.New()
	contractRepo.On("GetByID", mock.Anything, contractID).Return(&domain.Contract{
		ID:     contractID,
		Status: domain.ContractStatusDraft,
	}, nil)

	_, err := svc.Create(context.Background(), service.CreateOrderInput{
		OrderNumber: "PO-2025-0004",
		ContractID:  &contractID,
		OrderDate:   date("2025-06-01"),
	}, uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentNotEditable)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "contract_id", verr.Field)
}

func TestOrderService_Create_InactiveSupplier(t *testing.T) {
	svc, _, _, supplierRepo, _, _ := setupOrderService()

	sup := activeSupplier()
	sup.IsActive = false
	supplierRepo.On("GetByID", mock.Anything, sup.ID).Return(sup, nil)

	_, err := svc.Create(context.Background(), service.CreateOrderInput{
		OrderNumber: "PO-2025-0005",
		SupplierID:  sup.ID,
		OrderDate:   date("2025-06-01"),
	}, uuid.New())

	assert.ErrorIs(t, err, domain.ErrSupplierInactive)
}

func TestOrderService_Approve_ImmediateRecognitionCreatesDebt(t *testing.T) {
	svc, orderRepo, _, supplierRepo, _, debtRepo := setupOrderService()

	sup := activeSupplier() // immediate mode, 30 day terms
	order := draftOrderFor(sup, "1000")
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	supplierRepo.On("GetByID", mock.Anything, sup.ID).Return(sup, nil)
	debtRepo.On("OutstandingBySupplier", mock.Anything, sup.ID).Return(decimal.Zero, nil)
	orderRepo.On("UpdateStatus", mock.Anything, order.ID, domain.OrderStatusApproved,
		mock.AnythingOfType("*time.Time"), (*time.Time)(nil)).Return(nil)
	debtRepo.On("Create", mock.Anything, mock.MatchedBy(func(dd *domain.Debt) bool {
		return dd.OrderID == order.ID && dd.OriginalAmount.Equal(d("1000"))
	})).Return(nil)

	approved, err := svc.Approve(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)
	debtRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_Approve_DeferredRecognitionCreatesNoDebt(t *testing.T) {
	svc, orderRepo, _, supplierRepo, _, debtRepo := setupOrderService()

	sup := activeSupplier()
	sup.DebtRecognitionMode = domain.DebtRecognitionByCompletion
	order := draftOrderFor(sup, "1000")
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	supplierRepo.On("GetByID", mock.Anything, sup.ID).Return(sup, nil)
	orderRepo.On("UpdateStatus", mock.Anything, order.ID, domain.OrderStatusApproved,
		mock.AnythingOfType("*time.Time"), (*time.Time)(nil)).Return(nil)

	_, err := svc.Approve(context.Background(), order.ID)

	require.NoError(t, err)
	debtRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	debtRepo.AssertNotCalled(t, "OutstandingBySupplier", mock.Anything, mock.Anything)
}

func TestOrderService_Approve_DebtLimitExceeded(t *testing.T) {
	svc, orderRepo, _, supplierRepo, _, debtRepo := setupOrderService()

	sup := activeSupplier()
	sup.MaxDebt = d("5000")
	order := draftOrderFor(sup, "1000")
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	supplierRepo.On("GetByID", mock.Anything, sup.ID).Return(sup, nil)
	debtRepo.On("OutstandingBySupplier", mock.Anything, sup.ID).Return(d("4500"), nil)

	_, err := svc.Approve(context.Background(), order.ID)

	assert.ErrorIs(t, err, domain.ErrDebtLimitExceeded)
	orderRepo.AssertNotCalled(t, "UpdateStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	debtRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_Approve_AlreadyApproved(t *testing.T) {
	svc, orderRepo, _, supplierRepo, _, _ := setupOrderService()

	sup := activeSupplier()
	order := draftOrderFor(sup, "1000")
	order.Status = domain.OrderStatusApproved
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	supplierRepo.On("GetByID", mock.Anything, sup.ID).Return(sup, nil)

	_, err := svc.Approve(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotEditable)
}

func TestOrderService_Complete_ByCompletionRecognitionCreatesDebt(t *testing.T) {
	svc, orderRepo, _, supplierRepo, _, debtRepo := setupOrderService()

	sup := activeSupplier()
	sup.DebtRecognitionMode = domain.DebtRecognitionByCompletion
	order := draftOrderFor(sup, "1000")
	order.Status = domain.OrderStatusApproved
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	supplierRepo.On("GetByID", mock.Anything, sup.ID).Return(sup, nil)
	debtRepo.On("OutstandingBySupplier", mock.Anything, sup.ID).Return(decimal.Zero, nil)
	orderRepo.On("UpdateStatus", mock.Anything, order.ID, domain.OrderStatusCompleted,
		(*time.Time)(nil), mock.AnythingOfType("*time.Time")).Return(nil)
	debtRepo.On("Create", mock.Anything, mock.MatchedBy(func(dd *domain.Debt) bool {
		return dd.OriginalAmount.Equal(d("1000"))
	})).Return(nil)

	completed, err := svc.Complete(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)
	debtRepo.AssertExpectations(t)
}

func TestOrderService_Cancel(t *testing.T) {
	svc, orderRepo, _, _, _, _ := setupOrderService()

	sup := activeSupplier()
	order := draftOrderFor(sup, "1000")
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("UpdateStatus", mock.Anything, order.ID, domain.OrderStatusCancelled,
		(*time.Time)(nil), (*time.Time)(nil)).Return(nil)

	cancelled, err := svc.Cancel(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
}

func TestOrderService_RecordReceipt_PerReceiptDebtIncrement(t *testing.T) {
	svc, orderRepo, _, supplierRepo, _, debtRepo := setupOrderService()

	sup := activeSupplier()
	sup.DebtRecognitionMode = domain.DebtRecognitionByReceiptPartial
	order := draftOrderFor(sup, "1000")
	order.Status = domain.OrderStatusApproved
	line := order.Items[0]

	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("ReceivedQuantity", mock.Anything, line.ID).Return(int64(3), nil)
	supplierRepo.On("GetByID", mock.Anything, sup.ID).Return(sup, nil)
	debtRepo.On("OutstandingBySupplier", mock.Anything, sup.ID).Return(decimal.Zero, nil)
	orderRepo.On("CreateReceipt", mock.Anything, mock.AnythingOfType("*domain.GoodsReceipt")).Return(nil)
	debtRepo.On("Create", mock.Anything, mock.MatchedBy(func(dd *domain.Debt) bool {
		// 4 units at 100 each, not the order total.
		return dd.OriginalAmount.Equal(d("400"))
	})).Return(nil)

	receipt, err := svc.RecordReceipt(context.Background(), order.ID, service.RecordReceiptInput{
		LineItemID: line.ID,
		Quantity:   4,
	}, uuid.New())

	require.NoError(t, err)
	assert.True(t, receipt.Amount.Equal(d("400")))
	assert.True(t, receipt.UnitPrice.Equal(d("100")))
	debtRepo.AssertExpectations(t)
}

func TestOrderService_RecordReceipt_ExceedsOrdered(t *testing.T) {
	svc, orderRepo, _, _, _, _ := setupOrderService()

	sup := activeSupplier()
	order := draftOrderFor(sup, "1000")
	order.Status = domain.OrderStatusApproved
	line := order.Items[0]

	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("ReceivedQuantity", mock.Anything, line.ID).Return(int64(8), nil)

	_, err := svc.RecordReceipt(context.Background(), order.ID, service.RecordReceiptInput{
		LineItemID: line.ID,
		Quantity:   3,
	}, uuid.New())

	assert.ErrorIs(t, err, domain.ErrReceiptExceedsOrdered)
	orderRepo.AssertNotCalled(t, "CreateReceipt", mock.Anything, mock.Anything)
}

func TestOrderService_RecordReceipt_DraftOrder(t *testing.T) {
	svc, orderRepo, _, _, _, _ := setupOrderService()

	sup := activeSupplier()
	order := draftOrderFor(sup, "1000")
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.RecordReceipt(context.Background(), order.ID, service.RecordReceiptInput{
		LineItemID: order.Items[0].ID,
		Quantity:   1,
	}, uuid.New())

	assert.ErrorIs(t, err, domain.ErrDocumentNotEditable)
}

func TestOrderService_RecordReceipt_UnknownLine(t *testing.T) {
	svc, orderRepo, _, _, _, _ := setupOrderService()

	sup := activeSupplier()
	order := draftOrderFor(sup, "1000")
	order.Status = domain.OrderStatusApproved
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.RecordReceipt(context.Background(), order.ID, service.RecordReceiptInput{
		LineItemID: uuid.New(),
		Quantity:   1,
	}, uuid.New())

	require.Error(t, err)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "line_item_id", verr.Field)
}

func TestOrderService_Delete_OnlyDrafts(t *testing.T) {
	svc, orderRepo, _, _, _, _ := setupOrderService()

	sup := activeSupplier()
	order := draftOrderFor(sup, "1000")
	order.Status = domain.OrderStatusApproved
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	err := svc.Delete(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotEditable)
	orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
