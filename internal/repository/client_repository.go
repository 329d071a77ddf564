package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/lib/pq"
)

// ClientRepository persists a tenant's clients.
type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, company_id, city, address, postcode, location)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, client.ID, client.CompanyID, client.City, client.Address, client.Postcode, client.Location)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *ClientRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check client: %w", err)
	}
	return exists, nil
}

func (r *ClientRepository) GetByIDAndCompany(ctx context.Context, id, companyID string) (*models.Client, error) {
	var client models.Client
	err := r.db.QueryRowContext(ctx, `
		SELECT id, company_id, city, address, postcode, location
		FROM clients WHERE id = $1 AND company_id = $2
	`, id, companyID).Scan(&client.ID, &client.CompanyID, &client.City, &client.Address, &client.Postcode, &client.Location)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Client")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

func (r *ClientRepository) Find(ctx context.Context, companyID string, filter models.ClientFilter, page, pageSize int) ([]models.Client, int64, error) {
	fb := &filterBuilder{}
	fb.Eq("company_id", companyID)
	if filter.ID != nil {
		fb.Eq("id", *filter.ID)
	}
	if filter.City != nil {
		fb.EqFold("city", *filter.City)
	}
	if filter.Address != nil {
		fb.EqFold("address", *filter.Address)
	}
	if filter.Postcode != nil {
		fb.EqFold("postcode", *filter.Postcode)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clients WHERE `+fb.Where(), fb.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	paging := fb.pageArgs(page, pageSize)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_id, city, address, postcode, location FROM clients WHERE `+fb.Where()+
			` ORDER BY id `+paging, fb.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var client models.Client
		if err := rows.Scan(&client.ID, &client.CompanyID, &client.City, &client.Address, &client.Postcode, &client.Location); err != nil {
			return nil, 0, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}
	return clients, total, rows.Err()
}

func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE clients SET city = $2, address = $3, postcode = $4, location = $5
		WHERE id = $1
	`, client.ID, client.City, client.Address, client.Postcode, client.Location)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return requireRow(result, "Client")
}

// Delete is blocked while an invoice still references the client.
func (r *ClientRepository) Delete(ctx context.Context, id, companyID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM clients WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return apperr.Conflict("client is referenced by an invoice")
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return requireRow(result, "Client")
}
