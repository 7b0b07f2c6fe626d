package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"procura/internal/domain"
	"procura/internal/port"
)

// MockContractRepo is a mock implementation of port.ContractRepository.
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) Create(ctx context.Context, contract *domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepo) GetByID(ctx context.Context, contractID uuid.UUID) (*domain.Contract, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepo) List(ctx context.Context, filter port.ContractFilter) ([]domain.Contract, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Contract), args.Int(1), args.Error(2)
}

func (m *MockContractRepo) Update(ctx context.Context, contract *domain.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepo) UpdateStatus(ctx context.Context, contractID uuid.UUID, status domain.ContractStatus) error {
	args := m.Called(ctx, contractID, status)
	return args.Error(0)
}

func (m *MockContractRepo) Delete(ctx context.Context, contractID uuid.UUID) error {
	args := m.Called(ctx, contractID)
	return args.Error(0)
}

func (m *MockContractRepo) CreateAttachment(ctx context.Context, attachment *domain.ContractAttachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockContractRepo) GetAttachment(ctx context.Context, attachmentID uuid.UUID) (*domain.ContractAttachment, error) {
	args := m.Called(ctx, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractAttachment), args.Error(1)
}

func (m *MockContractRepo) ListAttachments(ctx context.Context, contractID uuid.UUID) ([]domain.ContractAttachment, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContractAttachment), args.Error(1)
}

func (m *MockContractRepo) DeleteAttachment(ctx context.Context, attachmentID uuid.UUID) error {
	args := m.Called(ctx, attachmentID)
	return args.Error(0)
}
