package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"procura/internal/domain"
	"procura/internal/port"
)

type supplierRepo struct {
	db *sqlx.DB
}

// NewSupplierRepo creates a new PostgreSQL-backed SupplierRepository.
func NewSupplierRepo(db *sqlx.DB) port.SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *domain.Supplier) error {
	supplier.ID = uuid.New()
	now := time.Now().UTC()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now

	query := `INSERT INTO suppliers (id, name, tax_id, email, phone, address,
		debt_recognition_mode, payment_term_days, max_debt, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		supplier.ID, supplier.Name, supplier.TaxID, supplier.Email, supplier.Phone,
		supplier.Address, supplier.DebtRecognitionMode, supplier.PaymentTermDays,
		supplier.MaxDebt, supplier.IsActive, supplier.CreatedAt, supplier.UpdatedAt)
	if err != nil {
		return fmt.Errorf("supplierRepo.Create: %w", err)
	}
	return nil
}

func (r *supplierRepo) GetByID(ctx context.Context, supplierID uuid.UUID) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := r.db.GetContext(ctx, &supplier, "SELECT * FROM suppliers WHERE id = $1", supplierID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("supplierRepo.GetByID: %w", err)
	}
	return &supplier, nil
}

func (r *supplierRepo) List(ctx context.Context, filter port.SupplierFilter) ([]domain.Supplier, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	i := 1
	if filter.ActiveOnly {
		where += " AND is_active = true"
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR tax_id ILIKE $%d)", i, i)
		args = append(args, "%"+filter.Search+"%")
		i++
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM suppliers "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("supplierRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM suppliers %s ORDER BY name ASC LIMIT $%d OFFSET $%d", where, i, i+1)
	args = append(args, filter.Limit, filter.Offset)

	var suppliers []domain.Supplier
	err = r.db.SelectContext(ctx, &suppliers, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("supplierRepo.List: %w", err)
	}
	return suppliers, total, nil
}

func (r *supplierRepo) Update(ctx context.Context, supplier *domain.Supplier) error {
	supplier.UpdatedAt = time.Now().UTC()
	query := `UPDATE suppliers SET name = $1, tax_id = $2, email = $3, phone = $4, address = $5,
		debt_recognition_mode = $6, payment_term_days = $7, max_debt = $8, is_active = $9, updated_at = $10
		WHERE id = $11`
	result, err := r.db.ExecContext(ctx, query,
		supplier.Name, supplier.TaxID, supplier.Email, supplier.Phone, supplier.Address,
		supplier.DebtRecognitionMode, supplier.PaymentTermDays, supplier.MaxDebt,
		supplier.IsActive, supplier.UpdatedAt, supplier.ID)
	if err != nil {
		return fmt.Errorf("supplierRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *supplierRepo) Delete(ctx context.Context, supplierID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM suppliers WHERE id = $1", supplierID)
	if err != nil {
		return fmt.Errorf("supplierRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
