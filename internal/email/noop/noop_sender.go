package noop

import (
	"context"
	"log"

	"procura/internal/domain"
	"procura/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs reminders to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendDebtReminder(_ context.Context, toEmail, toName string, debt *domain.Debt, supplierName string) error {
	log.Printf("[NOOP EMAIL] Debt reminder for %s (%s): %s outstanding to %s, due %s",
		toName, toEmail, debt.RemainingAmount.StringFixed(2), supplierName, debt.DueDate.Format("2006-01-02"))
	return nil
}
