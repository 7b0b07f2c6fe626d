package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"procura/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendDebtReminder(ctx context.Context, toEmail, toName string, debt *domain.Debt, supplierName string) error {
	args := m.Called(ctx, toEmail, toName, debt, supplierName)
	return args.Error(0)
}
