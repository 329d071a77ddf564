package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/lib/pq"
)

// UserRepository persists users and their role assignments.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, user_name, first_name, last_name, phone_number, password_hash, company_id, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	var phone sql.NullString
	var companyID sql.NullString
	err := row.Scan(
		&user.ID, &user.Email, &user.UserName, &user.FirstName, &user.LastName,
		&phone, &user.PasswordHash, &companyID, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		user.PhoneNumber = phone.String
	}
	if companyID.Valid {
		user.CompanyID = &companyID.String
	}
	return &user, nil
}

// CreateWithRole inserts the user and its role assignment in one transaction.
// An unknown role rolls the user insert back so no user exists without a role.
func (r *UserRepository) CreateWithRole(ctx context.Context, user *models.User, roleName string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, email, user_name, first_name, last_name, phone_number, password_hash, company_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, user.ID, user.Email, user.UserName, user.FirstName, user.LastName,
		nullString(user.PhoneNumber), user.PasswordHash, user.CompanyID, user.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperr.Validation(map[string][]string{"Email": {"Email is already taken"}})
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
	`, user.ID, roleName)
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.Validation(map[string][]string{"Role": {"The specified role does not exist"}})
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByIDAndCompany conflates missing and cross-tenant rows into NotFound.
func (r *UserRepository) GetByIDAndCompany(ctx context.Context, id, companyID string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND company_id = $2`, id, companyID)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetRoles returns the role names assigned to a user.
func (r *UserRepository) GetRoles(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.name FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, name)
	}
	return roles, rows.Err()
}

// Find applies the conjunctive filter and returns one page plus the total.
func (r *UserRepository) Find(ctx context.Context, filter models.UserFilter, page, pageSize int) ([]models.User, int64, error) {
	fb := &filterBuilder{}
	if filter.ID != nil {
		fb.Eq("u.id", *filter.ID)
	}
	if filter.CompanyID != nil {
		fb.Eq("u.company_id", *filter.CompanyID)
	}
	if filter.Email != nil {
		fb.EqFold("u.email", *filter.Email)
	}
	if filter.UserName != nil {
		fb.EqFold("u.user_name", *filter.UserName)
	}
	if filter.FirstName != nil {
		fb.EqFold("u.first_name", *filter.FirstName)
	}
	if filter.LastName != nil {
		fb.EqFold("u.last_name", *filter.LastName)
	}
	if filter.PhoneNumber != nil {
		fb.Eq("u.phone_number", *filter.PhoneNumber)
	}
	if filter.CreatedAt != nil {
		fb.DateEq("u.created_at", *filter.CreatedAt)
	}
	if filter.RoleName != nil {
		fb.Raw(fmt.Sprintf(
			"u.id IN (SELECT ur.user_id FROM user_roles ur JOIN roles r ON r.id = ur.role_id WHERE LOWER(r.name) = LOWER($%d))",
			fb.nextArg()), *filter.RoleName)
	}
	if filter.ClientID != nil {
		fb.Raw(fmt.Sprintf(
			"u.id IN (SELECT cu.user_id FROM client_users cu WHERE cu.client_id = $%d)",
			fb.nextArg()), *filter.ClientID)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM users u WHERE ` + fb.Where()
	if err := r.db.QueryRowContext(ctx, countQuery, fb.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	paging := fb.pageArgs(page, pageSize)
	query := `SELECT u.id, u.email, u.user_name, u.first_name, u.last_name, u.phone_number, u.password_hash, u.company_id, u.created_at
		FROM users u WHERE ` + fb.Where() + ` ORDER BY u.created_at, u.id ` + paging
	rows, err := r.db.QueryContext(ctx, query, fb.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, total, rows.Err()
}

// Update writes all mutable columns of the row.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET user_name = $2, first_name = $3, last_name = $4, phone_number = $5, company_id = $6
		WHERE id = $1
	`, user.ID, user.UserName, user.FirstName, user.LastName, nullString(user.PhoneNumber), user.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRow(result, "User")
}

func (r *UserRepository) Delete(ctx context.Context, id, companyID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireRow(result, "User")
}

// SetCompany attaches or detaches a user from a company; nil clears it.
func (r *UserRepository) SetCompany(ctx context.Context, userID string, companyID *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET company_id = $2 WHERE id = $1`, userID, companyID)
	if err != nil {
		return fmt.Errorf("failed to set user company: %w", err)
	}
	return requireRow(result, "User")
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// requireRow converts a zero-rows-affected result into NotFound.
func requireRow(result sql.Result, entity string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound(entity)
	}
	return nil
}
