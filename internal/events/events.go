package events

import "time"

// Event types
const (
	UserRegistered = "user.registered"
	UserUpdated    = "user.updated"
	UserDeleted    = "user.deleted"

	CompanyCreated = "company.created"
	CompanyDeleted = "company.deleted"

	InvoiceCreated = "invoice.created"
	InvoiceUpdated = "invoice.updated"
	InvoiceDeleted = "invoice.deleted"
)

// Stream names
const (
	UserEventsStream    = "user.events"
	CompanyEventsStream = "company.events"
	InvoiceEventsStream = "invoice.events"
)

type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type UserRegisteredEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type CompanyCreatedEvent struct {
	CompanyID string `json:"companyId"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
}

type CompanyDeletedEvent struct {
	CompanyID string `json:"companyId"`
}

type InvoiceEvent struct {
	InvoiceID string `json:"invoiceId"`
	CompanyID string `json:"companyId"`
	ClientID  string `json:"clientId,omitempty"`
	Status    string `json:"status,omitempty"`
}
