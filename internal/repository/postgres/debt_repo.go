package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"procura/internal/domain"
	"procura/internal/port"
)

type debtRepo struct {
	db *sqlx.DB
}

// NewDebtRepo creates a new PostgreSQL-backed DebtRepository.
func NewDebtRepo(db *sqlx.DB) port.DebtRepository {
	return &debtRepo{db: db}
}

func (r *debtRepo) Create(ctx context.Context, debt *domain.Debt) error {
	if debt.ID == uuid.Nil {
		debt.ID = uuid.New()
	}
	now := time.Now().UTC()
	debt.CreatedAt = now
	debt.UpdatedAt = now

	query := `INSERT INTO debts (id, supplier_id, order_id, original_amount, paid_amount,
		remaining_amount, due_date, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		debt.ID, debt.SupplierID, debt.OrderID, debt.OriginalAmount, debt.PaidAmount,
		debt.RemainingAmount, debt.DueDate, debt.Status, debt.Note,
		debt.CreatedAt, debt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("debtRepo.Create: %w", err)
	}
	return nil
}

func (r *debtRepo) GetByID(ctx context.Context, debtID uuid.UUID) (*domain.Debt, error) {
	var debt domain.Debt
	err := r.db.GetContext(ctx, &debt, "SELECT * FROM debts WHERE id = $1", debtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("debtRepo.GetByID: %w", err)
	}
	return &debt, nil
}

func (r *debtRepo) GetByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Debt, error) {
	var debts []domain.Debt
	err := r.db.SelectContext(ctx, &debts,
		"SELECT * FROM debts WHERE order_id = $1 ORDER BY created_at ASC", orderID)
	if err != nil {
		return nil, fmt.Errorf("debtRepo.GetByOrder: %w", err)
	}
	return debts, nil
}

func (r *debtRepo) List(ctx context.Context, filter port.DebtFilter) ([]domain.Debt, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	i := 1
	if filter.SupplierID != nil {
		where += fmt.Sprintf(" AND supplier_id = $%d", i)
		args = append(args, *filter.SupplierID)
		i++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, filter.Status)
		i++
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM debts "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("debtRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM debts %s ORDER BY due_date ASC LIMIT $%d OFFSET $%d", where, i, i+1)
	args = append(args, filter.Limit, filter.Offset)

	var debts []domain.Debt
	err = r.db.SelectContext(ctx, &debts, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("debtRepo.List: %w", err)
	}
	return debts, total, nil
}

func (r *debtRepo) Update(ctx context.Context, debt *domain.Debt) error {
	debt.UpdatedAt = time.Now().UTC()
	query := `UPDATE debts SET paid_amount = $1, remaining_amount = $2, due_date = $3,
		status = $4, note = $5, updated_at = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		debt.PaidAmount, debt.RemainingAmount, debt.DueDate,
		debt.Status, debt.Note, debt.UpdatedAt, debt.ID)
	if err != nil {
		return fmt.Errorf("debtRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *debtRepo) CreatePayment(ctx context.Context, payment *domain.DebtPayment) error {
	payment.ID = uuid.New()
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now().UTC()
	}

	query := `INSERT INTO debt_payments (id, debt_id, amount, paid_by, reference, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID, payment.DebtID, payment.Amount, payment.PaidBy,
		payment.Reference, payment.PaidAt)
	if err != nil {
		return fmt.Errorf("debtRepo.CreatePayment: %w", err)
	}
	return nil
}

func (r *debtRepo) ListPayments(ctx context.Context, debtID uuid.UUID) ([]domain.DebtPayment, error) {
	var payments []domain.DebtPayment
	err := r.db.SelectContext(ctx, &payments,
		"SELECT * FROM debt_payments WHERE debt_id = $1 ORDER BY paid_at ASC", debtID)
	if err != nil {
		return nil, fmt.Errorf("debtRepo.ListPayments: %w", err)
	}
	return payments, nil
}

func (r *debtRepo) OutstandingBySupplier(ctx context.Context, supplierID uuid.UUID) (decimal.Decimal, error) {
	var outstanding decimal.Decimal
	err := r.db.GetContext(ctx, &outstanding,
		`SELECT COALESCE(SUM(remaining_amount), 0) FROM debts
		 WHERE supplier_id = $1 AND status NOT IN ($2, $3)`,
		supplierID, domain.DebtStatusPaid, domain.DebtStatusCancelled)
	if err != nil {
		return decimal.Zero, fmt.Errorf("debtRepo.OutstandingBySupplier: %w", err)
	}
	return outstanding, nil
}

func (r *debtRepo) ListOverdue(ctx context.Context, cutoff time.Time, limit int) ([]domain.Debt, error) {
	var debts []domain.Debt
	err := r.db.SelectContext(ctx, &debts,
		`SELECT * FROM debts
		 WHERE due_date < $1 AND status NOT IN ($2, $3)
		 ORDER BY due_date ASC LIMIT $4`,
		cutoff, domain.DebtStatusPaid, domain.DebtStatusCancelled, limit)
	if err != nil {
		return nil, fmt.Errorf("debtRepo.ListOverdue: %w", err)
	}
	return debts, nil
}
