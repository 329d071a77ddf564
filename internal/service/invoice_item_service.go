package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/ledgerhawk/invoicing-api/internal/validation"
)

type CreateInvoiceItemRequest struct {
	InvoiceID string  `json:"invoiceId"`
	ProductID string  `json:"productId"`
	UnitPrice float64 `json:"unitPrice"`
	Weight    int     `json:"weight"`
	Quantity  int     `json:"quantity"`
}

type UpdateInvoiceItemRequest struct {
	ProductID *string  `json:"productId,omitempty"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
	Weight    *int     `json:"weight,omitempty"`
	Quantity  *int     `json:"quantity,omitempty"`
}

// InvoiceItemService manages invoice line items. Items have no tenant column
// of their own; isolation comes from the owning invoice.
type InvoiceItemService struct {
	items    InvoiceItemStore
	invoices InvoiceStore
	products ProductStore
}

func NewInvoiceItemService(
	items InvoiceItemStore,
	invoices InvoiceStore,
	products ProductStore,
) *InvoiceItemService {
	return &InvoiceItemService{items: items, invoices: invoices, products: products}
}

func (s *InvoiceItemService) Create(ctx context.Context, req CreateInvoiceItemRequest) (*models.InvoiceItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.ErrCancelled
	}

	errs := validation.Errors{}
	validation.NonNegative(errs, "UnitPrice", req.UnitPrice, "UnitPrice must be greater or equal to 0")
	validation.NonNegative(errs, "Weight", float64(req.Weight), "Weight must be greater or equal to 0")
	validation.NonNegative(errs, "Quantity", float64(req.Quantity), "Quantity must be greater or equal to 0")
	if req.InvoiceID == "" {
		errs.Add("InvoiceId", "InvoiceId cannot be empty")
	} else {
		exists, err := s.invoices.Exists(ctx, req.InvoiceID)
		if err != nil {
			return nil, err
		}
		if !exists {
			errs.Add("InvoiceId", "The specified Invoice does not exist.")
		}
	}
	if req.ProductID == "" {
		errs.Add("ProductId", "ProductId cannot be empty")
	} else {
		exists, err := s.products.Exists(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}
		if !exists {
			errs.Add("ProductId", "The specified Product does not exist.")
		}
	}
	if !errs.Empty() {
		return nil, apperr.Validation(errs)
	}

	item := &models.InvoiceItem{
		ID:        uuid.NewString(),
		InvoiceID: req.InvoiceID,
		ProductID: req.ProductID,
		UnitPrice: req.UnitPrice,
		Weight:    req.Weight,
		Quantity:  req.Quantity,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *InvoiceItemService) Get(ctx context.Context, filter models.InvoiceItemFilter, pagination *models.PaginationRequest) (*models.PagedList[models.InvoiceItem], error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.ErrCancelled
	}
	page, pageSize := pagination.Resolve()
	items, total, err := s.items.Find(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &models.PagedList[models.InvoiceItem]{Items: items, Page: page, PageSize: pageSize, TotalCount: total}, nil
}

func (s *InvoiceItemService) Update(ctx context.Context, id string, req UpdateInvoiceItemRequest) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}

	errs := validation.Errors{}
	if req.UnitPrice != nil {
		validation.NonNegative(errs, "UnitPrice", *req.UnitPrice, "UnitPrice must be greater or equal to 0")
	}
	if req.Weight != nil {
		validation.NonNegative(errs, "Weight", float64(*req.Weight), "Weight must be greater or equal to 0")
	}
	if req.Quantity != nil {
		validation.NonNegative(errs, "Quantity", float64(*req.Quantity), "Quantity must be greater or equal to 0")
	}
	if req.ProductID != nil {
		exists, err := s.products.Exists(ctx, *req.ProductID)
		if err != nil {
			return err
		}
		if !exists {
			errs.Add("ProductId", "The specified Product does not exist.")
		}
	}
	if !errs.Empty() {
		return apperr.Validation(errs)
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req.ProductID != nil {
		item.ProductID = *req.ProductID
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.Weight != nil {
		item.Weight = *req.Weight
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	return s.items.Update(ctx, item)
}

func (s *InvoiceItemService) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}
	return s.items.Delete(ctx, id)
}
