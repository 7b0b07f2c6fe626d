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

type orderRepo struct {
	db *sqlx.DB
}

// NewOrderRepo creates a new PostgreSQL-backed OrderRepository.
func NewOrderRepo(db *sqlx.DB) port.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *domain.PurchaseOrder) error {
	order.ID = uuid.New()
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("orderRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO purchase_orders (id, order_number, supplier_id, contract_id, status,
		order_date, approved_at, completed_at, sub_total, discount_amount, tax_amount, total_amount,
		note, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err = tx.ExecContext(ctx, query,
		order.ID, order.OrderNumber, order.SupplierID, order.ContractID, order.Status,
		order.OrderDate, order.ApprovedAt, order.CompletedAt,
		order.SubTotal, order.DiscountAmount, order.TaxAmount, order.TotalAmount,
		order.Note, order.CreatedBy, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("orderRepo.Create: %w", err)
	}

	if err := insertOrderItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("orderRepo.Create commit: %w", err)
	}
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, orderID uuid.UUID) (*domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	err := r.db.GetContext(ctx, &order, "SELECT * FROM purchase_orders WHERE id = $1", orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("orderRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &order.Items,
		"SELECT * FROM order_items WHERE document_id = $1 ORDER BY sort_order ASC", orderID)
	if err != nil {
		return nil, fmt.Errorf("orderRepo.GetByID items: %w", err)
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, filter port.OrderFilter) ([]domain.PurchaseOrder, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	i := 1
	if filter.SupplierID != nil {
		where += fmt.Sprintf(" AND supplier_id = $%d", i)
		args = append(args, *filter.SupplierID)
		i++
	}
	if filter.ContractID != nil {
		where += fmt.Sprintf(" AND contract_id = $%d", i)
		args = append(args, *filter.ContractID)
		i++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, filter.Status)
		i++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND order_number ILIKE $%d", i)
		args = append(args, "%"+filter.Search+"%")
		i++
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM purchase_orders "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("orderRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM purchase_orders %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", where, i, i+1)
	args = append(args, filter.Limit, filter.Offset)

	var orders []domain.PurchaseOrder
	err = r.db.SelectContext(ctx, &orders, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("orderRepo.List: %w", err)
	}
	return orders, total, nil
}

// Update rewrites the order header and replaces its line items in one
// transaction. Draft edits always submit the full document.
func (r *orderRepo) Update(ctx context.Context, order *domain.PurchaseOrder) error {
	order.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("orderRepo.Update begin: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE purchase_orders SET order_number = $1, supplier_id = $2, contract_id = $3,
		order_date = $4, sub_total = $5, discount_amount = $6, tax_amount = $7, total_amount = $8,
		note = $9, updated_at = $10
		WHERE id = $11`
	result, err := tx.ExecContext(ctx, query,
		order.OrderNumber, order.SupplierID, order.ContractID, order.OrderDate,
		order.SubTotal, order.DiscountAmount, order.TaxAmount, order.TotalAmount,
		order.Note, order.UpdatedAt, order.ID)
	if err != nil {
		return fmt.Errorf("orderRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM order_items WHERE document_id = $1", order.ID); err != nil {
		return fmt.Errorf("orderRepo.Update clear items: %w", err)
	}
	if err := insertOrderItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("orderRepo.Update commit: %w", err)
	}
	return nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus, approvedAt, completedAt *time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE purchase_orders SET status = $1,
			approved_at = COALESCE($2, approved_at),
			completed_at = COALESCE($3, completed_at),
			updated_at = NOW()
		WHERE id = $4`,
		status, approvedAt, completedAt, orderID)
	if err != nil {
		return fmt.Errorf("orderRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, orderID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM purchase_orders WHERE id = $1", orderID)
	if err != nil {
		return fmt.Errorf("orderRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *orderRepo) CreateReceipt(ctx context.Context, receipt *domain.GoodsReceipt) error {
	receipt.ID = uuid.New()
	if receipt.ReceivedAt.IsZero() {
		receipt.ReceivedAt = time.Now().UTC()
	}

	query := `INSERT INTO goods_receipts (id, order_id, line_item_id, quantity, unit_price,
		amount, received_by, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		receipt.ID, receipt.OrderID, receipt.LineItemID, receipt.Quantity,
		receipt.UnitPrice, receipt.Amount, receipt.ReceivedBy, receipt.ReceivedAt)
	if err != nil {
		return fmt.Errorf("orderRepo.CreateReceipt: %w", err)
	}
	return nil
}

func (r *orderRepo) ListReceipts(ctx context.Context, orderID uuid.UUID) ([]domain.GoodsReceipt, error) {
	var receipts []domain.GoodsReceipt
	err := r.db.SelectContext(ctx, &receipts,
		"SELECT * FROM goods_receipts WHERE order_id = $1 ORDER BY received_at ASC", orderID)
	if err != nil {
		return nil, fmt.Errorf("orderRepo.ListReceipts: %w", err)
	}
	return receipts, nil
}

func (r *orderRepo) ReceivedQuantity(ctx context.Context, lineItemID uuid.UUID) (int64, error) {
	var received int64
	err := r.db.GetContext(ctx, &received,
		"SELECT COALESCE(SUM(quantity), 0) FROM goods_receipts WHERE line_item_id = $1", lineItemID)
	if err != nil {
		return 0, fmt.Errorf("orderRepo.ReceivedQuantity: %w", err)
	}
	return received, nil
}

func insertOrderItems(ctx context.Context, tx *sqlx.Tx, orderID uuid.UUID, items []domain.LineItem) error {
	for i := range items {
		item := &items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.DocumentID = orderID
		item.SortOrder = i

		_, err := tx.ExecContext(ctx, `INSERT INTO order_items (id, document_id, product_id,
			product_name, quantity, unit_price, discount_rate, discount_amount, tax_rate, tax_amount,
			total_price, final_price, note, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			item.ID, item.DocumentID, item.ProductID, item.ProductName, item.Quantity,
			item.UnitPrice, item.DiscountRate, item.DiscountAmount, item.TaxRate, item.TaxAmount,
			item.TotalPrice, item.FinalPrice, item.Note, item.SortOrder)
		if err != nil {
			return fmt.Errorf("orderRepo insert item %d: %w", i, err)
		}
	}
	return nil
}
