package models

import "time"

// Filters are conjunctive: every non-nil field narrows the result with
// exact-match semantics, case-insensitive for strings. Tenant scoping is
// applied on top by the service layer where the entity carries a company id.

type CompanyFilter struct {
	ID      *string
	Name    *string
	Slug    *string
	OwnerID *string
}

type ClientFilter struct {
	ID       *string
	City     *string
	Address  *string
	Postcode *string
}

type ProductFilter struct {
	ID   *string
	Name *string
}

type InvoiceFilter struct {
	ID              *string
	InvoiceNumber   *string
	ClientID        *string
	Status          *string
	ParentInvoiceID *string
}

type InvoiceItemFilter struct {
	ID        *string
	InvoiceID *string
	ProductID *string
}

type UserFilter struct {
	ID          *string
	CompanyID   *string
	Email       *string
	UserName    *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	RoleName    *string
	ClientID    *string
	CreatedAt   *time.Time
}
