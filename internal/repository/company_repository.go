package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/models"
)

// CompanyRepository persists tenants. Companies are the one entity without a
// tenant scope of their own.
type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO companies (id, name, slug, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, company.ID, company.Name, company.Slug, company.OwnerID, company.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (r *CompanyRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check company: %w", err)
	}
	return exists, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	var ownerID sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, slug, owner_id, created_at FROM companies WHERE id = $1
	`, id).Scan(&company.ID, &company.Name, &company.Slug, &ownerID, &company.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Company")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	if ownerID.Valid {
		company.OwnerID = &ownerID.String
	}
	return &company, nil
}

func (r *CompanyRepository) Find(ctx context.Context, filter models.CompanyFilter, page, pageSize int) ([]models.Company, int64, error) {
	fb := &filterBuilder{}
	if filter.ID != nil {
		fb.Eq("id", *filter.ID)
	}
	if filter.Name != nil {
		fb.EqFold("name", *filter.Name)
	}
	if filter.Slug != nil {
		fb.EqFold("slug", *filter.Slug)
	}
	if filter.OwnerID != nil {
		fb.Eq("owner_id", *filter.OwnerID)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM companies WHERE `+fb.Where(), fb.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	paging := fb.pageArgs(page, pageSize)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, owner_id, created_at FROM companies WHERE `+fb.Where()+
			` ORDER BY created_at, id `+paging, fb.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var company models.Company
		var ownerID sql.NullString
		if err := rows.Scan(&company.ID, &company.Name, &company.Slug, &ownerID, &company.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan company: %w", err)
		}
		if ownerID.Valid {
			company.OwnerID = &ownerID.String
		}
		companies = append(companies, company)
	}
	return companies, total, rows.Err()
}

func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE companies SET name = $2, slug = $3, owner_id = $4 WHERE id = $1
	`, company.ID, company.Name, company.Slug, company.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	return requireRow(result, "Company")
}

// Delete removes the tenant; clients, products and invoices cascade away and
// member users are detached by the schema's SET NULL.
func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return requireRow(result, "Company")
}
