package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"procura/internal/domain"
	"procura/internal/port"
)

// MockDebtRepo is a mock implementation of port.DebtRepository.
type MockDebtRepo struct {
	mock.Mock
}

func (m *MockDebtRepo) Create(ctx context.Context, debt *domain.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepo) GetByID(ctx context.Context, debtID uuid.UUID) (*domain.Debt, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepo) GetByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Debt, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepo) List(ctx context.Context, filter port.DebtFilter) ([]domain.Debt, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Debt), args.Int(1), args.Error(2)
}

func (m *MockDebtRepo) Update(ctx context.Context, debt *domain.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepo) CreatePayment(ctx context.Context, payment *domain.DebtPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockDebtRepo) ListPayments(ctx context.Context, debtID uuid.UUID) ([]domain.DebtPayment, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebtPayment), args.Error(1)
}

func (m *MockDebtRepo) OutstandingBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDebtRepo) ListOverdue(ctx context.Context, cutoff time.Time, limit int) ([]domain.Debt, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}
