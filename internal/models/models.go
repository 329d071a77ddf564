package models

import "time"

// Role names seeded at migration time.
const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

// User is an authenticated principal scoped to at most one company.
// CompanyID is nil for users not attached to any tenant.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	UserName     string    `json:"userName"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	PasswordHash string    `json:"-"`
	CompanyID    *string   `json:"companyId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RefreshToken is an opaque lookup key for re-authentication. The row is
// rotated in place on each successful refresh; Token changes, ID does not.
type RefreshToken struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Company is the tenant boundary. Deleting a company cascades to its
// clients, products and invoices; its users are detached, not deleted.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   *string   `json:"ownerId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Client struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	City      string `json:"city"`
	Address   string `json:"address"`
	Postcode  string `json:"postcode"`
	Location  string `json:"location"`
}

type Product struct {
	ID        string  `json:"id"`
	CompanyID string  `json:"companyId"`
	Name      string  `json:"name"`
	Weight    int     `json:"weight"`
	Price     float64 `json:"price"`
}

type Invoice struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"companyId"`
	ClientID        string  `json:"clientId"`
	InvoiceNumber   string  `json:"invoiceNumber"`
	Status          string  `json:"status"`
	ParentInvoiceID *string `json:"parentInvoiceId,omitempty"`
}

type InvoiceItem struct {
	ID        string  `json:"id"`
	InvoiceID string  `json:"invoiceId"`
	ProductID string  `json:"productId"`
	UnitPrice float64 `json:"unitPrice"`
	Weight    int     `json:"weight"`
	Quantity  int     `json:"quantity"`
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
