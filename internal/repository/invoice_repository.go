package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/models"
)

// InvoiceRepository persists a tenant's invoices. Deleting an invoice
// cascades to its items at the schema level.
type InvoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invoices (id, company_id, client_id, invoice_number, status, parent_invoice_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, invoice.ID, invoice.CompanyID, invoice.ClientID, invoice.InvoiceNumber, invoice.Status, invoice.ParentInvoiceID)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check invoice: %w", err)
	}
	return exists, nil
}

func (r *InvoiceRepository) GetByIDAndCompany(ctx context.Context, id, companyID string) (*models.Invoice, error) {
	var invoice models.Invoice
	var parent sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, client_id, invoice_number, status, parent_invoice_id
		FROM invoices WHERE id = $1 AND company_id = $2
	`, id, companyID).Scan(&invoice.ID, &invoice.CompanyID, &invoice.ClientID, &invoice.InvoiceNumber, &invoice.Status, &parent)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Invoice")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if parent.Valid {
		invoice.ParentInvoiceID = &parent.String
	}
	return &invoice, nil
}

func (r *InvoiceRepository) Find(ctx context.Context, companyID string, filter models.InvoiceFilter, page, pageSize int) ([]models.Invoice, int64, error) {
	fb := &filterBuilder{}
	fb.Eq("company_id", companyID)
	if filter.ID != nil {
		fb.Eq("id", *filter.ID)
	}
	if filter.InvoiceNumber != nil {
		fb.EqFold("invoice_number", *filter.InvoiceNumber)
	}
	if filter.ClientID != nil {
		fb.Eq("client_id", *filter.ClientID)
	}
	if filter.Status != nil {
		fb.EqFold("status", *filter.Status)
	}
	if filter.ParentInvoiceID != nil {
		fb.Eq("parent_invoice_id", *filter.ParentInvoiceID)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM invoices WHERE `+fb.Where(), fb.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	paging := fb.pageArgs(page, pageSize)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_id, client_id, invoice_number, status, parent_invoice_id FROM invoices WHERE `+fb.Where()+
			` ORDER BY invoice_number, id `+paging, fb.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var invoice models.Invoice
		var parent sql.NullString
		if err := rows.Scan(&invoice.ID, &invoice.CompanyID, &invoice.ClientID, &invoice.InvoiceNumber, &invoice.Status, &parent); err != nil {
			return nil, 0, fmt.Errorf("failed to scan invoice: %w", err)
		}
		if parent.Valid {
			invoice.ParentInvoiceID = &parent.String
		}
		invoices = append(invoices, invoice)
	}
	return invoices, total, rows.Err()
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE invoices SET client_id = $2, invoice_number = $3, status = $4, parent_invoice_id = $5
		WHERE id = $1
	`, invoice.ID, invoice.ClientID, invoice.InvoiceNumber, invoice.Status, invoice.ParentInvoiceID)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return requireRow(result, "Invoice")
}

func (r *InvoiceRepository) Delete(ctx context.Context, id, companyID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM invoices WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return requireRow(result, "Invoice")
}
