package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"procura/internal/domain"
	"procura/internal/port"
)

// MockOrderRepo is a mock implementation of port.OrderRepository.
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepo) GetByID(ctx context.Context, orderID uuid.UUID) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockOrderRepo) List(ctx context.Context, filter port.OrderFilter) ([]domain.PurchaseOrder, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PurchaseOrder), args.Int(1), args.Error(2)
}

func (m *MockOrderRepo) Update(ctx context.Context, order *domain.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus, approvedAt, completedAt *time.Time) error {
	args := m.Called(ctx, orderID, status, approvedAt, completedAt)
	return args.Error(0)
}

func (m *MockOrderRepo) Delete(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderRepo) CreateReceipt(ctx context.Context, receipt *domain.GoodsReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockOrderRepo) ListReceipts(ctx context.Context, orderID uuid.UUID) ([]domain.GoodsReceipt, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GoodsReceipt), args.Error(1)
}

func (m *MockOrderRepo) ReceivedQuantity(ctx context.Context, lineItemID uuid.UUID) (int64, error) {
	args := m.Called(ctx, lineItemID)
	return args.Get(0).(int64), args.Error(1)
}
