package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/models"
)

// InvoiceItemRepository persists invoice line items. Items carry no tenant
// column; tenant isolation flows through the owning invoice.
type InvoiceItemRepository struct {
	db *sql.DB
}

func NewInvoiceItemRepository(db *sql.DB) *InvoiceItemRepository {
	return &InvoiceItemRepository{db: db}
}

func (r *InvoiceItemRepository) Create(ctx context.Context, item *models.InvoiceItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invoice_items (id, invoice_id, product_id, unit_price, weight, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, item.ID, item.InvoiceID, item.ProductID, item.UnitPrice, item.Weight, item.Quantity)
	if err != nil {
		return fmt.Errorf("failed to create invoice item: %w", err)
	}
	return nil
}

func (r *InvoiceItemRepository) GetByID(ctx context.Context, id string) (*models.InvoiceItem, error) {
	var item models.InvoiceItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, invoice_id, product_id, unit_price, weight, quantity
		FROM invoice_items WHERE id = $1
	`, id).Scan(&item.ID, &item.InvoiceID, &item.ProductID, &item.UnitPrice, &item.Weight, &item.Quantity)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Invoice item")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice item: %w", err)
	}
	return &item, nil
}

func (r *InvoiceItemRepository) Find(ctx context.Context, filter models.InvoiceItemFilter, page, pageSize int) ([]models.InvoiceItem, int64, error) {
	fb := &filterBuilder{}
	if filter.ID != nil {
		fb.Eq("id", *filter.ID)
	}
	if filter.InvoiceID != nil {
		fb.Eq("invoice_id", *filter.InvoiceID)
	}
	if filter.ProductID != nil {
		fb.Eq("product_id", *filter.ProductID)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM invoice_items WHERE `+fb.Where(), fb.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count invoice items: %w", err)
	}

	paging := fb.pageArgs(page, pageSize)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, invoice_id, product_id, unit_price, weight, quantity FROM invoice_items WHERE `+fb.Where()+
			` ORDER BY id `+paging, fb.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query invoice items: %w", err)
	}
	defer rows.Close()

	var items []models.InvoiceItem
	for rows.Next() {
		var item models.InvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.ProductID, &item.UnitPrice, &item.Weight, &item.Quantity); err != nil {
			return nil, 0, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

func (r *InvoiceItemRepository) Update(ctx context.Context, item *models.InvoiceItem) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE invoice_items SET product_id = $2, unit_price = $3, weight = $4, quantity = $5
		WHERE id = $1
	`, item.ID, item.ProductID, item.UnitPrice, item.Weight, item.Quantity)
	if err != nil {
		return fmt.Errorf("failed to update invoice item: %w", err)
	}
	return requireRow(result, "Invoice item")
}

func (r *InvoiceItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM invoice_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice item: %w", err)
	}
	return requireRow(result, "Invoice item")
}
