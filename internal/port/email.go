package port

import (
	"context"

	"procura/internal/domain"
)

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	// SendDebtReminder notifies the responsible user that a supplier debt
	// is overdue.
	SendDebtReminder(ctx context.Context, toEmail, toName string, debt *domain.Debt, supplierName string) error
}
