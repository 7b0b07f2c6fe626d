package debt_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procura/internal/debt"
	"procura/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func debtOf(original, paid string, due time.Time) *domain.Debt {
	return &domain.Debt{
		OriginalAmount: d(original),
		PaidAmount:     d(paid),
		DueDate:        due,
		Status:         domain.DebtStatusPending,
	}
}

// --- DeriveStatus ---

func TestDeriveStatus_UnpaidBeforeDue(t *testing.T) {
	dd := debtOf("1000", "0", now.AddDate(0, 0, 10))
	assert.Equal(t, domain.DebtStatusPending, debt.DeriveStatus(dd, now))
}

func TestDeriveStatus_UnpaidPastDue(t *testing.T) {
	dd := debtOf("1000", "0", now.AddDate(0, 0, -1))
	assert.Equal(t, domain.DebtStatusOverdue, debt.DeriveStatus(dd, now))
}

func TestDeriveStatus_PartialBeforeDue(t *testing.T) {
	dd := debtOf("1000", "400", now.AddDate(0, 0, 10))
	assert.Equal(t, domain.DebtStatusPartial, debt.DeriveStatus(dd, now))
}

func TestDeriveStatus_PartialPastDue(t *testing.T) {
	dd := debtOf("1000", "400", now.AddDate(0, 0, -1))
	assert.Equal(t, domain.DebtStatusOverdue, debt.DeriveStatus(dd, now))
}

func TestDeriveStatus_FullyPaid(t *testing.T) {
	dd := debtOf("1000", "1000", now.AddDate(0, 0, -30))
	assert.Equal(t, domain.DebtStatusPaid, debt.DeriveStatus(dd, now))
}

func TestDeriveStatus_OverpaidStillPaid(t *testing.T) {
	dd := debtOf("1000", "1200", now)
	assert.Equal(t, domain.DebtStatusPaid, debt.DeriveStatus(dd, now))
}

func TestDeriveStatus_CancelledOverridesEverything(t *testing.T) {
	dd := debtOf("1000", "400", now.AddDate(0, 0, -10))
	dd.Status = domain.DebtStatusCancelled
	assert.Equal(t, domain.DebtStatusCancelled, debt.DeriveStatus(dd, now))
}

func TestDeriveStatus_DueDateBoundary(t *testing.T) {
	// Exactly at the due instant is not yet overdue.
	dd := debtOf("1000", "0", now)
	assert.Equal(t, domain.DebtStatusPending, debt.DeriveStatus(dd, now))
}

// --- Progress ---

func TestProgress(t *testing.T) {
	assert.True(t, debt.Progress(debtOf("1000", "0", now)).IsZero())
	assert.True(t, debt.Progress(debtOf("1000", "400", now)).Equal(d("40")))
	assert.True(t, debt.Progress(debtOf("1000", "1000", now)).Equal(d("100")))
}

func TestProgress_ClampedAt100(t *testing.T) {
	assert.True(t, debt.Progress(debtOf("1000", "1500", now)).Equal(d("100")))
}

func TestProgress_ZeroOriginal(t *testing.T) {
	assert.True(t, debt.Progress(debtOf("0", "100", now)).IsZero())
}

func TestProgress_NegativePaidClampedAtZero(t *testing.T) {
	assert.True(t, debt.Progress(debtOf("1000", "-50", now)).IsZero())
}

// --- Remaining ---

func TestRemaining(t *testing.T) {
	assert.True(t, debt.Remaining(d("1000"), d("400")).Equal(d("600")))
	assert.True(t, debt.Remaining(d("1000"), d("1000")).IsZero())
	assert.True(t, debt.Remaining(d("1000"), d("1200")).IsZero(), "floored at zero")
}

// --- Diverged ---

func TestDiverged(t *testing.T) {
	assert.False(t, debt.Diverged(domain.DebtStatusPending, domain.DebtStatusPending))
	assert.True(t, debt.Diverged(domain.DebtStatusPending, domain.DebtStatusOverdue))
}

// --- Recognition ---

func supplier(mode domain.DebtRecognitionMode, termDays int) *domain.Supplier {
	return &domain.Supplier{
		ID:                  uuid.New(),
		DebtRecognitionMode: mode,
		PaymentTermDays:     termDays,
	}
}

func order(total string) *domain.PurchaseOrder {
	return &domain.PurchaseOrder{ID: uuid.New(), TotalAmount: d(total)}
}

func TestRecognizeOnApproval_Immediate(t *testing.T) {
	sup := supplier(domain.DebtRecognitionImmediate, 30)
	o := order("5000")

	dd := debt.RecognizeOnApproval(sup, o, now)
	require.NotNil(t, dd)
	assert.Equal(t, sup.ID, dd.SupplierID)
	assert.Equal(t, o.ID, dd.OrderID)
	assert.True(t, dd.OriginalAmount.Equal(d("5000")))
	assert.True(t, dd.RemainingAmount.Equal(d("5000")))
	assert.True(t, dd.PaidAmount.IsZero())
	assert.Equal(t, domain.DebtStatusPending, dd.Status)
	assert.Equal(t, now.AddDate(0, 0, 30), dd.DueDate)
}

func TestRecognizeOnApproval_DeferredModes(t *testing.T) {
	o := order("5000")
	assert.Nil(t, debt.RecognizeOnApproval(supplier(domain.DebtRecognitionByCompletion, 30), o, now))
	assert.Nil(t, debt.RecognizeOnApproval(supplier(domain.DebtRecognitionByReceiptPartial, 30), o, now))
}

func TestRecognizeOnCompletion(t *testing.T) {
	o := order("5000")

	dd := debt.RecognizeOnCompletion(supplier(domain.DebtRecognitionByCompletion, 15), o, now)
	require.NotNil(t, dd)
	assert.True(t, dd.OriginalAmount.Equal(d("5000")))
	assert.Equal(t, now.AddDate(0, 0, 15), dd.DueDate)

	assert.Nil(t, debt.RecognizeOnCompletion(supplier(domain.DebtRecognitionImmediate, 15), o, now))
}

func TestRecognizeOnReceipt_IncrementPerReceipt(t *testing.T) {
	sup := supplier(domain.DebtRecognitionByReceiptPartial, 7)
	o := order("5000")
	receipt := &domain.GoodsReceipt{
		OrderID:  o.ID,
		Quantity: 4,
		Amount:   d("1000"),
	}

	dd := debt.RecognizeOnReceipt(sup, o, receipt, now)
	require.NotNil(t, dd)
	assert.True(t, dd.OriginalAmount.Equal(d("1000")), "increment carries the received value, not the order total")
	assert.Equal(t, now.AddDate(0, 0, 7), dd.DueDate)

	assert.Nil(t, debt.RecognizeOnReceipt(supplier(domain.DebtRecognitionImmediate, 7), o, receipt, now))
}

func TestDueDate_ZeroTermDays(t *testing.T) {
	sup := supplier(domain.DebtRecognitionImmediate, 0)
	assert.Equal(t, now, debt.DueDate(now, sup))
}

// --- WithinLimit ---

func TestWithinLimit(t *testing.T) {
	sup := supplier(domain.DebtRecognitionImmediate, 30)
	sup.MaxDebt = d("10000")

	assert.True(t, debt.WithinLimit(sup, d("4000"), d("6000")), "exactly at the ceiling is allowed")
	assert.False(t, debt.WithinLimit(sup, d("4000"), d("6001")))
}

func TestWithinLimit_DisabledWhenZero(t *testing.T) {
	sup := supplier(domain.DebtRecognitionImmediate, 30)
	sup.MaxDebt = decimal.Zero

	assert.True(t, debt.WithinLimit(sup, d("1000000"), d("1000000")))
}
