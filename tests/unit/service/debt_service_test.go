package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"procura/internal/domain"
	"procura/internal/port"
	"procura/internal/service"
	"procura/mocks"
)

func setupDebtService() (
	service.DebtService,
	*mocks.MockDebtRepo,
	*mocks.MockSupplierRepo,
	*mocks.MockOrderRepo,
	*mocks.MockUserRepo,
	*mocks.MockEmailSender,
) {
	debtRepo := new(mocks.MockDebtRepo)
	supplierRepo := new(mocks.MockSupplierRepo)
	orderRepo := new(mocks.MockOrderRepo)
	userRepo := new(mocks.MockUserRepo)
	emailSender := new(mocks.MockEmailSender)
	svc := service.NewDebtService(debtRepo, supplierRepo, orderRepo, userRepo, emailSender)
	return svc, debtRepo, supplierRepo, orderRepo, userRepo, emailSender
}

func pendingDebt(original, paid string) *domain.Debt {
	return &domain.Debt{
		ID:              uuid.New(),
		SupplierID:      uuid.New(),
		OrderID:         uuid.New(),
		OriginalAmount:  d(original),
		PaidAmount:      d(paid),
		RemainingAmount: d(original).Sub(d(paid)),
		Status:          domain.DebtStatusPending,
		DueDate:         time.Now().UTC().AddDate(0, 0, 30),
	}
}

func TestDebtService_GetByID_BuildsView(t *testing.T) {
	svc, debtRepo, _, _, _, _ := setupDebtService()

	dd := pendingDebt("1000", "400")
	debtRepo.On("GetByID", mock.Anything, dd.ID).Return(dd, nil)

	view, err := svc.GetByID(context.Background(), dd.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.DebtStatusPartial, view.DerivedStatus)
	assert.True(t, view.Progress.Equal(d("40")))
	// Stored status says PENDING, derivation says PARTIAL.
	assert.True(t, view.StatusDivergent)
}

func TestDebtService_RecordPayment_Partial(t *testing.T) {
	svc, debtRepo, _, _, _, _ := setupDebtService()

	dd := pendingDebt("1000", "0")
	debtRepo.On("GetByID", mock.Anything, dd.ID).Return(dd, nil)
	debtRepo.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p *domain.DebtPayment) bool {
		return p.DebtID == dd.ID && p.Amount.Equal(d("300"))
	})).Return(nil)
	debtRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *domain.Debt) bool {
		return updated.PaidAmount.Equal(d("300")) &&
			updated.RemainingAmount.Equal(d("700")) &&
			updated.Status == domain.DebtStatusPartial
	})).Return(nil)

	view, err := svc.RecordPayment(context.Background(), dd.ID, service.RecordPaymentInput{
		Amount:    d("300"),
		Reference: "TRF-991",
	}, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, domain.DebtStatusPartial, view.Status)
	assert.True(t, view.RemainingAmount.Equal(d("700")))
	debtRepo.AssertExpectations(t)
}

func TestDebtService_RecordPayment_SettlesInFull(t *testing.T) {
	svc, debtRepo, _, _, _, _ := setupDebtService()

	dd := pendingDebt("1000", "400")
	debtRepo.On("GetByID", mock.Anything, dd.ID).Return(dd, nil)
	debtRepo.On("CreatePayment", mock.Anything, mock.AnythingOfType("*domain.DebtPayment")).Return(nil)
	debtRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *domain.Debt) bool {
		return updated.RemainingAmount.IsZero() && updated.Status == domain.DebtStatusPaid
	})).Return(nil)

	view, err := svc.RecordPayment(context.Background(), dd.ID, service.RecordPaymentInput{
		Amount: d("600"),
	}, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, domain.DebtStatusPaid, view.Status)
	assert.True(t, view.Progress.Equal(d("100")))
}

func TestDebtService_RecordPayment_Overpayment(t *testing.T) {
	svc, debtRepo, _, _, _, _ := setupDebtService()

	dd := pendingDebt("1000", "400")
	debtRepo.On("GetByID", mock.Anything, dd.ID).Return(dd, nil)

	_, err := svc.RecordPayment(context.Background(), dd.ID, service.RecordPaymentInput{
		Amount: d("600.01"),
	}, uuid.New())

	assert.ErrorIs(t, err, domain.ErrPaymentExceedsDebt)
	debtRepo.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
}

func TestDebtService_RecordPayment_NonPositiveAmount(t *testing.T) {
	svc, debtRepo, _, _, _, _ := setupDebtService()

	dd := pendingDebt("1000", "0")
	debtRepo.On("GetByID", mock.Anything, dd.ID).Return(dd, nil)

	_, err := svc.RecordPayment(context.Background(), dd.ID, service.RecordPaymentInput{
		Amount: d("0"),
	}, uuid.New())

	require.Error(t, err)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "amount", verr.Field)
}

func TestDebtService_RecordPayment_CancelledDebt(t *testing.T) {
	svc, debtRepo, _, _, _, _ := setupDebtService()

	dd := pendingDebt("1000", "0")
	dd.Status = domain.DebtStatusCancelled
	debtRepo.On("GetByID", mock.Anything, dd.ID).Return(dd, nil)

	_, err := svc.RecordPayment(context.Background(), dd.ID, service.RecordPaymentInput{
		Amount: d("100"),
	}, uuid.New())

	assert.ErrorIs(t, err, domain.ErrDebtCancelled)
}

func TestDebtService_Cancel(t *testing.T) {
	svc, debtRepo, _, _, _, _ := setupDebtService()

	dd := pendingDebt("1000", "400")
	debtRepo.On("GetByID", mock.Anything, dd.ID).Return(dd, nil)
	debtRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *domain.Debt) bool {
		return updated.Status == domain.DebtStatusCancelled
	})).Return(nil)

	view, err := svc.Cancel(context.Background(), dd.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.DebtStatusCancelled, view.Status)
	assert.Equal(t, domain.DebtStatusCancelled, view.DerivedStatus)
}

func TestDebtService_Cancel_PaidDebt(t *testing.T) {
	svc, debtRepo, _, _, _, _ := setupDebtService()

	dd := pendingDebt("1000", "1000")
	dd.Status = domain.DebtStatusPaid
	debtRepo.On("GetByID", mock.Anything, dd.ID).Return(dd, nil)

	_, err := svc.Cancel(context.Background(), dd.ID)

	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	debtRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDebtService_SendOverdueReminders_ContinuesOnFailure(t *testing.T) {
	svc, debtRepo, supplierRepo, orderRepo, userRepo, emailSender := setupDebtService()

	good := pendingDebt("1000", "0")
	broken := pendingDebt("2000", "0")
	debtRepo.On("ListOverdue", mock.Anything, mock.AnythingOfType("time.Time"), 100).
		Return([]domain.Debt{*good, *broken}, nil)

	creator := uuid.New()
	supplierRepo.On("GetByID", mock.Anything, good.SupplierID).
		Return(&domain.Supplier{ID: good.SupplierID, Name: "Norte Distribuciones"}, nil)
	orderRepo.On("GetByID", mock.Anything, good.OrderID).
		Return(&domain.PurchaseOrder{ID: good.OrderID, CreatedBy: creator}, nil)
	userRepo.On("GetByID", mock.Anything, creator).
		Return(&domain.User{ID: creator, Email: "ops@procura.test", FullName: "Ana Ops"}, nil)
	emailSender.On("SendDebtReminder", mock.Anything, "ops@procura.test", "Ana Ops",
		mock.AnythingOfType("*domain.Debt"), "Norte Distribuciones").Return(nil)

	// The second debt's supplier lookup fails; the loop logs and moves on.
	supplierRepo.On("GetByID", mock.Anything, broken.SupplierID).
		Return(nil, domain.ErrNotFound)

	sent, err := svc.SendOverdueReminders(context.Background(), 100)

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	emailSender.AssertNumberOfCalls(t, "SendDebtReminder", 1)
}

func TestDebtService_ExportAging_SkipsSettledDebts(t *testing.T) {
	svc, debtRepo, supplierRepo, _, _, _ := setupDebtService()

	open := pendingDebt("1000", "400")
	settled := pendingDebt("500", "500")
	debtRepo.On("List", mock.Anything, port.DebtFilter{Offset: 0, Limit: 500}).
		Return([]domain.Debt{*open, *settled}, 2, nil)
	supplierRepo.On("GetByID", mock.Anything, open.SupplierID).
		Return(&domain.Supplier{ID: open.SupplierID, Name: "Norte Distribuciones"}, nil)

	data, err := svc.ExportAging(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// The settled debt's supplier is never looked up.
	supplierRepo.AssertNumberOfCalls(t, "GetByID", 1)
}
