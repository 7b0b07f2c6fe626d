package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"procura/internal/debt"
	"procura/internal/domain"
	"procura/internal/port"
	"procura/internal/xlsxexport"
)

// DebtView decorates a stored debt with display-time derivations. The stored
// status stays authoritative; StatusDivergent flags disagreement for the
// client to surface.
type DebtView struct {
	domain.Debt
	DerivedStatus   domain.DebtStatus `json:"derived_status"`
	Progress        decimal.Decimal   `json:"progress"`
	StatusDivergent bool              `json:"status_divergent"`
}

// RecordPaymentInput is the DTO for applying a payment to a debt.
type RecordPaymentInput struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Reference string          `json:"reference"`
}

// DebtService defines the supplier debt management contract.
type DebtService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*DebtView, error)
	List(ctx context.Context, filter port.DebtFilter) ([]DebtView, int, error)
	RecordPayment(ctx context.Context, debtID uuid.UUID, input RecordPaymentInput, paidBy uuid.UUID) (*DebtView, error)
	ListPayments(ctx context.Context, debtID uuid.UUID) ([]domain.DebtPayment, error)
	Cancel(ctx context.Context, debtID uuid.UUID) (*DebtView, error)

	// SendOverdueReminders emails the creator of each overdue order's debt.
	// Returns the number of reminders sent.
	SendOverdueReminders(ctx context.Context, limit int) (int, error)
	// ExportAging produces an xlsx workbook of outstanding debts grouped by
	// supplier.
	ExportAging(ctx context.Context) ([]byte, error)
}

type debtService struct {
	debtRepo     port.DebtRepository
	supplierRepo port.SupplierRepository
	orderRepo    port.OrderRepository
	userRepo     port.UserRepository
	emailSender  port.EmailSender
}

// NewDebtService creates a new DebtService implementation.
func NewDebtService(
	debtRepo port.DebtRepository,
	supplierRepo port.SupplierRepository,
	orderRepo port.OrderRepository,
	userRepo port.UserRepository,
	emailSender port.EmailSender,
) DebtService {
	return &debtService{
		debtRepo:     debtRepo,
		supplierRepo: supplierRepo,
		orderRepo:    orderRepo,
		userRepo:     userRepo,
		emailSender:  emailSender,
	}
}

func (s *debtService) GetByID(ctx context.Context, id uuid.UUID) (*DebtView, error) {
	d, err := s.debtRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := buildDebtView(d, time.Now().UTC())
	return &view, nil
}

func (s *debtService) List(ctx context.Context, filter port.DebtFilter) ([]DebtView, int, error) {
	debts, total, err := s.debtRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now().UTC()
	views := make([]DebtView, 0, len(debts))
	for i := range debts {
		views = append(views, buildDebtView(&debts[i], now))
	}
	return views, total, nil
}

func (s *debtService) RecordPayment(ctx context.Context, debtID uuid.UUID, input RecordPaymentInput, paidBy uuid.UUID) (*DebtView, error) {
	d, err := s.debtRepo.GetByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if d.Status == domain.DebtStatusCancelled {
		return nil, domain.ErrDebtCancelled
	}
	if !input.Amount.IsPositive() {
		return nil, domain.NewValidationError("amount", domain.ErrInvalidPrice)
	}
	if input.Amount.GreaterThan(d.RemainingAmount) {
		return nil, domain.ErrPaymentExceedsDebt
	}

	now := time.Now().UTC()
	payment := &domain.DebtPayment{
		DebtID:    debtID,
		Amount:    input.Amount,
		PaidBy:    paidBy,
		Reference: input.Reference,
		PaidAt:    now,
	}
	if err := s.debtRepo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	d.PaidAmount = d.PaidAmount.Add(input.Amount)
	d.RemainingAmount = debt.Remaining(d.OriginalAmount, d.PaidAmount)
	d.Status = debt.DeriveStatus(d, now)
	if err := s.debtRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	view := buildDebtView(d, now)
	return &view, nil
}

func (s *debtService) ListPayments(ctx context.Context, debtID uuid.UUID) ([]domain.DebtPayment, error) {
	if _, err := s.debtRepo.GetByID(ctx, debtID); err != nil {
		return nil, err
	}
	return s.debtRepo.ListPayments(ctx, debtID)
}

func (s *debtService) Cancel(ctx context.Context, debtID uuid.UUID) (*DebtView, error) {
	d, err := s.debtRepo.GetByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if d.Status == domain.DebtStatusPaid {
		return nil, domain.ErrIllegalTransition
	}
	d.Status = domain.DebtStatusCancelled
	if err := s.debtRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	view := buildDebtView(d, time.Now().UTC())
	return &view, nil
}

func (s *debtService) SendOverdueReminders(ctx context.Context, limit int) (int, error) {
	now := time.Now().UTC()
	overdue, err := s.debtRepo.ListOverdue(ctx, now, limit)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range overdue {
		d := &overdue[i]
		supplier, err := s.supplierRepo.GetByID(ctx, d.SupplierID)
		if err != nil {
			log.Printf("debtService.SendOverdueReminders: supplier lookup for debt %s: %v", d.ID, err)
			continue
		}
		order, err := s.orderRepo.GetByID(ctx, d.OrderID)
		if err != nil {
			log.Printf("debtService.SendOverdueReminders: order lookup for debt %s: %v", d.ID, err)
			continue
		}
		user, err := s.userRepo.GetByID(ctx, order.CreatedBy)
		if err != nil {
			log.Printf("debtService.SendOverdueReminders: user lookup for debt %s: %v", d.ID, err)
			continue
		}
		if err := s.emailSender.SendDebtReminder(ctx, user.Email, user.FullName, d, supplier.Name); err != nil {
			log.Printf("debtService.SendOverdueReminders: send to %s failed: %v", user.Email, err)
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *debtService) ExportAging(ctx context.Context) ([]byte, error) {
	// Fetch all non-terminal debts in pages.
	var all []domain.Debt
	offset := 0
	const page = 500
	for {
		debts, total, err := s.debtRepo.List(ctx, port.DebtFilter{Offset: offset, Limit: page})
		if err != nil {
			return nil, err
		}
		all = append(all, debts...)
		offset += len(debts)
		if offset >= total || len(debts) == 0 {
			break
		}
	}

	now := time.Now().UTC()
	rows := make([]xlsxexport.AgingRow, 0, len(all))
	supplierNames := map[uuid.UUID]string{}
	for i := range all {
		d := &all[i]
		derived := debt.DeriveStatus(d, now)
		if derived == domain.DebtStatusPaid || derived == domain.DebtStatusCancelled {
			continue
		}
		name, ok := supplierNames[d.SupplierID]
		if !ok {
			supplier, err := s.supplierRepo.GetByID(ctx, d.SupplierID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					name = d.SupplierID.String()
				} else {
					return nil, err
				}
			} else {
				name = supplier.Name
			}
			supplierNames[d.SupplierID] = name
		}

		daysOverdue := 0
		if now.After(d.DueDate) {
			daysOverdue = int(now.Sub(d.DueDate).Hours() / 24)
		}
		rows = append(rows, xlsxexport.AgingRow{
			SupplierName:    name,
			OriginalAmount:  d.OriginalAmount,
			PaidAmount:      d.PaidAmount,
			RemainingAmount: d.RemainingAmount,
			DueDate:         d.DueDate,
			Status:          string(derived),
			DaysOverdue:     daysOverdue,
		})
	}

	return xlsxexport.DebtAgingWorkbook(rows)
}

func buildDebtView(d *domain.Debt, now time.Time) DebtView {
	derived := debt.DeriveStatus(d, now)
	return DebtView{
		Debt:            *d,
		DerivedStatus:   derived,
		Progress:        debt.Progress(d),
		StatusDivergent: debt.Diverged(d.Status, derived),
	}
}
