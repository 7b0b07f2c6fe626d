// Package debt derives purchase debt status and payment progress, and
// decides when a debt is recognized from an order according to the
// supplier's debt recognition mode. All derivations are pure functions of
// amounts and dates; nothing here touches storage.
package debt

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procura/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// DeriveStatus computes the display status of a debt from its amounts and
// due date. An explicit CANCELLED status is an operator override and always
// wins over the derived value.
func DeriveStatus(d *domain.Debt, now time.Time) domain.DebtStatus {
	if d.Status == domain.DebtStatusCancelled {
		return domain.DebtStatusCancelled
	}
	switch {
	case d.PaidAmount.LessThanOrEqual(decimal.Zero):
		if now.After(d.DueDate) {
			return domain.DebtStatusOverdue
		}
		return domain.DebtStatusPending
	case d.PaidAmount.LessThan(d.OriginalAmount):
		if now.After(d.DueDate) {
			return domain.DebtStatusOverdue
		}
		return domain.DebtStatusPartial
	default:
		return domain.DebtStatusPaid
	}
}

// Progress returns the payment progress percentage, clamped to [0, 100].
// A zero original amount yields 0.
func Progress(d *domain.Debt) decimal.Decimal {
	if d.OriginalAmount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	p := d.PaidAmount.Div(d.OriginalAmount).Mul(oneHundred)
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(oneHundred) {
		return oneHundred
	}
	return p
}

// Remaining computes originalAmount - paidAmount, floored at zero.
func Remaining(original, paid decimal.Decimal) decimal.Decimal {
	r := original.Sub(paid)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Diverged reports whether a stored status disagrees with the derived one.
// The stored status stays authoritative for persistence; the caller surfaces
// the divergence as a data-integrity warning.
func Diverged(stored domain.DebtStatus, derived domain.DebtStatus) bool {
	return stored != derived
}

// DueDate computes the debt due date from the recognition time and the
// supplier's payment term.
func DueDate(recognizedAt time.Time, sup *domain.Supplier) time.Time {
	return recognizedAt.AddDate(0, 0, sup.PaymentTermDays)
}

// RecognizeOnApproval returns the debt to create when an order is approved,
// or nil when the supplier's mode defers recognition.
func RecognizeOnApproval(sup *domain.Supplier, o *domain.PurchaseOrder, now time.Time) *domain.Debt {
	if sup.DebtRecognitionMode != domain.DebtRecognitionImmediate {
		return nil
	}
	return newDebt(sup, o, o.TotalAmount, now)
}

// RecognizeOnCompletion returns the debt to create when an order reaches its
// terminal completed state, or nil when the mode does not recognize there.
func RecognizeOnCompletion(sup *domain.Supplier, o *domain.PurchaseOrder, now time.Time) *domain.Debt {
	if sup.DebtRecognitionMode != domain.DebtRecognitionByCompletion {
		return nil
	}
	return newDebt(sup, o, o.TotalAmount, now)
}

// RecognizeOnReceipt returns the debt increment for one partial receipt, or
// nil when the mode does not recognize per receipt. Each increment carries
// the received quantity's monetary value.
func RecognizeOnReceipt(sup *domain.Supplier, o *domain.PurchaseOrder, receipt *domain.GoodsReceipt, now time.Time) *domain.Debt {
	if sup.DebtRecognitionMode != domain.DebtRecognitionByReceiptPartial {
		return nil
	}
	return newDebt(sup, o, receipt.Amount, now)
}

// WithinLimit checks that adding amount to the supplier's outstanding debt
// stays within its configured ceiling. A non-positive MaxDebt disables the
// check.
func WithinLimit(sup *domain.Supplier, outstanding, amount decimal.Decimal) bool {
	if sup.MaxDebt.LessThanOrEqual(decimal.Zero) {
		return true
	}
	return outstanding.Add(amount).LessThanOrEqual(sup.MaxDebt)
}

func newDebt(sup *domain.Supplier, o *domain.PurchaseOrder, amount decimal.Decimal, now time.Time) *domain.Debt {
	return &domain.Debt{
		ID:              uuid.New(),
		SupplierID:      sup.ID,
		OrderID:         o.ID,
		OriginalAmount:  amount,
		PaidAmount:      decimal.Zero,
		RemainingAmount: amount,
		DueDate:         DueDate(now, sup),
		Status:          domain.DebtStatusPending,
	}
}
