package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/lib/pq"
)

// ProductRepository persists a tenant's product catalogue.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, company_id, name, weight, price)
		VALUES ($1, $2, $3, $4, $5)
	`, product.ID, product.CompanyID, product.Name, product.Weight, product.Price)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check product: %w", err)
	}
	return exists, nil
}

func (r *ProductRepository) GetByIDAndCompany(ctx context.Context, id, companyID string) (*models.Product, error) {
	var product models.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, name, weight, price
		FROM products WHERE id = $1 AND company_id = $2
	`, id, companyID).Scan(&product.ID, &product.CompanyID, &product.Name, &product.Weight, &product.Price)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Product")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *ProductRepository) Find(ctx context.Context, companyID string, filter models.ProductFilter, page, pageSize int) ([]models.Product, int64, error) {
	fb := &filterBuilder{}
	fb.Eq("company_id", companyID)
	if filter.ID != nil {
		fb.Eq("id", *filter.ID)
	}
	if filter.Name != nil {
		fb.EqFold("name", *filter.Name)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE `+fb.Where(), fb.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	paging := fb.pageArgs(page, pageSize)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_id, name, weight, price FROM products WHERE `+fb.Where()+
			` ORDER BY name, id `+paging, fb.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		if err := rows.Scan(&product.ID, &product.CompanyID, &product.Name, &product.Weight, &product.Price); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE products SET name = $2, weight = $3, price = $4 WHERE id = $1
	`, product.ID, product.Name, product.Weight, product.Price)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return requireRow(result, "Product")
}

// Delete is blocked while an invoice item still references the product.
func (r *ProductRepository) Delete(ctx context.Context, id, companyID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return apperr.Conflict("product is referenced by an invoice item")
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireRow(result, "Product")
}
