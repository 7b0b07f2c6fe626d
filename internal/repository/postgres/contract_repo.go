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

type contractRepo struct {
	db *sqlx.DB
}

// NewContractRepo creates a new PostgreSQL-backed ContractRepository.
func NewContractRepo(db *sqlx.DB) port.ContractRepository {
	return &contractRepo{db: db}
}

func (r *contractRepo) Create(ctx context.Context, contract *domain.Contract) error {
	contract.ID = uuid.New()
	now := time.Now().UTC()
	contract.CreatedAt = now
	contract.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("contractRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO contracts (id, contract_number, title, supplier_id, status,
		start_date, sign_date, end_date, sub_total, discount_amount, tax_amount, total_amount,
		note, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err = tx.ExecContext(ctx, query,
		contract.ID, contract.ContractNumber, contract.Title, contract.SupplierID,
		contract.Status, contract.StartDate, contract.SignDate, contract.EndDate,
		contract.SubTotal, contract.DiscountAmount, contract.TaxAmount, contract.TotalAmount,
		contract.Note, contract.CreatedBy, contract.CreatedAt, contract.UpdatedAt)
	if err != nil {
		return fmt.Errorf("contractRepo.Create: %w", err)
	}

	if err := insertContractItems(ctx, tx, contract.ID, contract.Items); err != nil {
		return err
	}
	if err := insertPaymentTerms(ctx, tx, contract.ID, contract.Terms); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("contractRepo.Create commit: %w", err)
	}
	return nil
}

func (r *contractRepo) GetByID(ctx context.Context, contractID uuid.UUID) (*domain.Contract, error) {
	var contract domain.Contract
	err := r.db.GetContext(ctx, &contract, "SELECT * FROM contracts WHERE id = $1", contractID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("contractRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &contract.Items,
		"SELECT * FROM contract_items WHERE document_id = $1 ORDER BY sort_order ASC", contractID)
	if err != nil {
		return nil, fmt.Errorf("contractRepo.GetByID items: %w", err)
	}
	err = r.db.SelectContext(ctx, &contract.Terms,
		"SELECT * FROM payment_terms WHERE contract_id = $1 ORDER BY sort_order ASC", contractID)
	if err != nil {
		return nil, fmt.Errorf("contractRepo.GetByID terms: %w", err)
	}
	return &contract, nil
}

func (r *contractRepo) List(ctx context.Context, filter port.ContractFilter) ([]domain.Contract, int, error) {
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
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (contract_number ILIKE $%d OR title ILIKE $%d)", i, i)
		args = append(args, "%"+filter.Search+"%")
		i++
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM contracts "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("contractRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM contracts %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", where, i, i+1)
	args = append(args, filter.Limit, filter.Offset)

	var contracts []domain.Contract
	err = r.db.SelectContext(ctx, &contracts, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("contractRepo.List: %w", err)
	}
	return contracts, total, nil
}

// Update rewrites the contract header, line items, and payment terms in one
// transaction. Items and terms are replaced wholesale; a draft edit always
// submits the full document.
func (r *contractRepo) Update(ctx context.Context, contract *domain.Contract) error {
	contract.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("contractRepo.Update begin: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE contracts SET contract_number = $1, title = $2, supplier_id = $3,
		start_date = $4, sign_date = $5, end_date = $6, sub_total = $7, discount_amount = $8,
		tax_amount = $9, total_amount = $10, note = $11, updated_at = $12
		WHERE id = $13`
	result, err := tx.ExecContext(ctx, query,
		contract.ContractNumber, contract.Title, contract.SupplierID,
		contract.StartDate, contract.SignDate, contract.EndDate,
		contract.SubTotal, contract.DiscountAmount, contract.TaxAmount, contract.TotalAmount,
		contract.Note, contract.UpdatedAt, contract.ID)
	if err != nil {
		return fmt.Errorf("contractRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM contract_items WHERE document_id = $1", contract.ID); err != nil {
		return fmt.Errorf("contractRepo.Update clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM payment_terms WHERE contract_id = $1", contract.ID); err != nil {
		return fmt.Errorf("contractRepo.Update clear terms: %w", err)
	}
	if err := insertContractItems(ctx, tx, contract.ID, contract.Items); err != nil {
		return err
	}
	if err := insertPaymentTerms(ctx, tx, contract.ID, contract.Terms); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("contractRepo.Update commit: %w", err)
	}
	return nil
}

func (r *contractRepo) UpdateStatus(ctx context.Context, contractID uuid.UUID, status domain.ContractStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE contracts SET status = $1, updated_at = NOW() WHERE id = $2", status, contractID)
	if err != nil {
		return fmt.Errorf("contractRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *contractRepo) Delete(ctx context.Context, contractID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM contracts WHERE id = $1", contractID)
	if err != nil {
		return fmt.Errorf("contractRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func insertContractItems(ctx context.Context, tx *sqlx.Tx, contractID uuid.UUID, items []domain.LineItem) error {
	for i := range items {
		item := &items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.DocumentID = contractID
		item.SortOrder = i

		_, err := tx.ExecContext(ctx, `INSERT INTO contract_items (id, document_id, product_id,
			product_name, quantity, unit_price, discount_rate, discount_amount, tax_rate, tax_amount,
			total_price, final_price, note, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			item.ID, item.DocumentID, item.ProductID, item.ProductName, item.Quantity,
			item.UnitPrice, item.DiscountRate, item.DiscountAmount, item.TaxRate, item.TaxAmount,
			item.TotalPrice, item.FinalPrice, item.Note, item.SortOrder)
		if err != nil {
			return fmt.Errorf("contractRepo insert item %d: %w", i, err)
		}
	}
	return nil
}

func insertPaymentTerms(ctx context.Context, tx *sqlx.Tx, contractID uuid.UUID, terms []domain.PaymentTerm) error {
	for i := range terms {
		term := &terms[i]
		if term.ID == uuid.Nil {
			term.ID = uuid.New()
		}
		term.ContractID = contractID
		term.SortOrder = i

		_, err := tx.ExecContext(ctx, `INSERT INTO payment_terms (id, contract_id, title,
			payment_date, due_date, amount, status, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			term.ID, term.ContractID, term.Title, term.PaymentDate, term.DueDate,
			term.Amount, term.Status, term.SortOrder)
		if err != nil {
			return fmt.Errorf("contractRepo insert term %d: %w", i, err)
		}
	}
	return nil
}

func (r *contractRepo) CreateAttachment(ctx context.Context, attachment *domain.ContractAttachment) error {
	attachment.ID = uuid.New()
	attachment.CreatedAt = time.Now().UTC()

	query := `INSERT INTO contract_attachments (id, contract_id, uploaded_by, file_name,
		original_name, file_type, file_size, s3_bucket, s3_key, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		attachment.ID, attachment.ContractID, attachment.UploadedBy, attachment.FileName,
		attachment.OriginalName, attachment.FileType, attachment.FileSize,
		attachment.S3Bucket, attachment.S3Key, attachment.ContentType, attachment.CreatedAt)
	if err != nil {
		return fmt.Errorf("contractRepo.CreateAttachment: %w", err)
	}
	return nil
}

func (r *contractRepo) GetAttachment(ctx context.Context, attachmentID uuid.UUID) (*domain.ContractAttachment, error) {
	var attachment domain.ContractAttachment
	err := r.db.GetContext(ctx, &attachment,
		"SELECT * FROM contract_attachments WHERE id = $1", attachmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("contractRepo.GetAttachment: %w", err)
	}
	return &attachment, nil
}

func (r *contractRepo) ListAttachments(ctx context.Context, contractID uuid.UUID) ([]domain.ContractAttachment, error) {
	var attachments []domain.ContractAttachment
	err := r.db.SelectContext(ctx, &attachments,
		"SELECT * FROM contract_attachments WHERE contract_id = $1 ORDER BY created_at DESC", contractID)
	if err != nil {
		return nil, fmt.Errorf("contractRepo.ListAttachments: %w", err)
	}
	return attachments, nil
}

func (r *contractRepo) DeleteAttachment(ctx context.Context, attachmentID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM contract_attachments WHERE id = $1", attachmentID)
	if err != nil {
		return fmt.Errorf("contractRepo.DeleteAttachment: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
