package service

import (
	"context"

	"github.com/ledgerhawk/invoicing-api/internal/models"
)

// Storage capabilities the services depend on. The repository package
// implements all of them.

type CompanyStore interface {
	Create(ctx context.Context, company *models.Company) error
	Exists(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Company, error)
	Find(ctx context.Context, filter models.CompanyFilter, page, pageSize int) ([]models.Company, int64, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id string) error
}

type ClientStore interface {
	Create(ctx context.Context, client *models.Client) error
	Exists(ctx context.Context, id string) (bool, error)
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*models.Client, error)
	Find(ctx context.Context, companyID string, filter models.ClientFilter, page, pageSize int) ([]models.Client, int64, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id, companyID string) error
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	Exists(ctx context.Context, id string) (bool, error)
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*models.Product, error)
	Find(ctx context.Context, companyID string, filter models.ProductFilter, page, pageSize int) ([]models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id, companyID string) error
}

type InvoiceStore interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	Exists(ctx context.Context, id string) (bool, error)
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*models.Invoice, error)
	Find(ctx context.Context, companyID string, filter models.InvoiceFilter, page, pageSize int) ([]models.Invoice, int64, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id, companyID string) error
}

type InvoiceItemStore interface {
	Create(ctx context.Context, item *models.InvoiceItem) error
	GetByID(ctx context.Context, id string) (*models.InvoiceItem, error)
	Find(ctx context.Context, filter models.InvoiceItemFilter, page, pageSize int) ([]models.InvoiceItem, int64, error)
	Update(ctx context.Context, item *models.InvoiceItem) error
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*models.User, error)
	Find(ctx context.Context, filter models.UserFilter, page, pageSize int) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id, companyID string) error
	SetCompany(ctx context.Context, userID string, companyID *string) error
}
