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

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed ProductRepository.
func NewProductRepo(db *sqlx.DB) port.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	product.ID = uuid.New()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `INSERT INTO products (id, sku, name, unit, list_price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		product.ID, product.SKU, product.Name, product.Unit,
		product.ListPrice, product.IsActive, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("productRepo.Create: %w", err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	err := r.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("productRepo.GetByID: %w", err)
	}
	return &product, nil
}

func (r *productRepo) GetByIDs(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In("SELECT * FROM products WHERE id IN (?)", productIDs)
	if err != nil {
		return nil, fmt.Errorf("productRepo.GetByIDs: %w", err)
	}
	query = r.db.Rebind(query)

	var products []domain.Product
	err = r.db.SelectContext(ctx, &products, query, args...)
	if err != nil {
		return nil, fmt.Errorf("productRepo.GetByIDs: %w", err)
	}
	return products, nil
}

func (r *productRepo) List(ctx context.Context, filter port.ProductFilter) ([]domain.Product, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	i := 1
	if filter.ActiveOnly {
		where += " AND is_active = true"
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d)", i, i)
		args = append(args, "%"+filter.Search+"%")
		i++
	}
	if filter.Unit != "" {
		where += fmt.Sprintf(" AND unit = $%d", i)
		args = append(args, filter.Unit)
		i++
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM products "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("productRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM products %s ORDER BY name ASC LIMIT $%d OFFSET $%d", where, i, i+1)
	args = append(args, filter.Limit, filter.Offset)

	var products []domain.Product
	err = r.db.SelectContext(ctx, &products, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("productRepo.List: %w", err)
	}
	return products, total, nil
}

func (r *productRepo) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now().UTC()
	query := `UPDATE products SET sku = $1, name = $2, unit = $3, list_price = $4, is_active = $5, updated_at = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		product.SKU, product.Name, product.Unit, product.ListPrice,
		product.IsActive, product.UpdatedAt, product.ID)
	if err != nil {
		return fmt.Errorf("productRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, productID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", productID)
	if err != nil {
		return fmt.Errorf("productRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
