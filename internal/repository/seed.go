package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Demo tenant fixture: one company with three users, a client, a product and
// an invoice with a single line item. All three users log in with
// DemoPassword. The inserts are keyed on fixed IDs and skip rows that
// already exist, so seeding a populated database is a no-op.
const (
	DemoCompanyID     = "11111111-1111-1111-1111-111111111111"
	DemoClientID      = "22222222-2222-2222-2222-222222222222"
	DemoInvoiceID     = "44444444-4444-4444-4444-444444444444"
	DemoProductID     = "55555555-5555-5555-5555-555555555555"
	DemoInvoiceItemID = "66666666-6666-6666-6666-666666666666"
	DemoAdminID       = "71775555-7777-7777-7777-777555555555"
	DemoManagerID     = "72775555-7777-7777-7777-777555555555"
	DemoEmployeeID    = "73775555-7777-7777-7777-777555555555"

	DemoPassword = "Secret123!"
)

var demoCreatedAt = time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)

// SeedDemo inserts the demo tenant. The password hash is salted per run, so
// it is computed here rather than baked into a migration.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO companies (id, name, slug, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		DemoCompanyID, "Test Dev", "TDev", demoCreatedAt,
	); err != nil {
		return fmt.Errorf("seed company: %w", err)
	}

	users := []struct {
		id, email, firstName, lastName, role string
	}{
		{DemoAdminID, "john@test.test", "John", "Smith", "Admin"},
		{DemoManagerID, "sven@test.test", "Sven", "Sky", "Manager"},
		{DemoEmployeeID, "odin@test.test", "Odin", "Cheese", "Manager"},
	}
	for _, u := range users {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, email, user_name, first_name, last_name, password_hash, company_id, created_at)
			 VALUES ($1, $2, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT DO NOTHING`,
			u.id, u.email, u.firstName, u.lastName, string(hash), DemoCompanyID, demoCreatedAt,
		); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id)
			 SELECT $1, id FROM roles WHERE name = $2
			 ON CONFLICT DO NOTHING`,
			u.id, u.role,
		); err != nil {
			return fmt.Errorf("seed role for %s: %w", u.email, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO clients (id, company_id, city, address, postcode, location)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO NOTHING`,
		DemoClientID, DemoCompanyID, "London", "Baker Street 3", "333-333", "51.5205664,-0.159379",
	); err != nil {
		return fmt.Errorf("seed client: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO products (id, company_id, name, weight, price)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO NOTHING`,
		DemoProductID, DemoCompanyID, "screwdriver", 10, 150.00,
	); err != nil {
		return fmt.Errorf("seed product: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO invoices (id, company_id, client_id, invoice_number, status)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO NOTHING`,
		DemoInvoiceID, DemoCompanyID, DemoClientID, "AAA/111/B", "Pending",
	); err != nil {
		return fmt.Errorf("seed invoice: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO invoice_items (id, invoice_id, product_id, unit_price, weight, quantity)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO NOTHING`,
		DemoInvoiceItemID, DemoInvoiceID, DemoProductID, 150.00, 20, 2,
	); err != nil {
		return fmt.Errorf("seed invoice item: %w", err)
	}

	return tx.Commit()
}
