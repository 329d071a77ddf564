package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/events"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/ledgerhawk/invoicing-api/internal/validation"
	"go.uber.org/zap"
)

type CreateInvoiceRequest struct {
	InvoiceNumber   string  `json:"invoiceNumber"`
	ClientID        string  `json:"clientId"`
	Status          string  `json:"status"`
	ParentInvoiceID *string `json:"parentInvoiceId,omitempty"`
}

type UpdateInvoiceRequest struct {
	InvoiceNumber   *string `json:"invoiceNumber,omitempty"`
	ClientID        *string `json:"clientId,omitempty"`
	Status          *string `json:"status,omitempty"`
	ParentInvoiceID *string `json:"parentInvoiceId,omitempty"`
}

// InvoiceService manages a tenant's invoices.
type InvoiceService struct {
	invoices  InvoiceStore
	clients   ClientStore
	companies CompanyStore
	publisher *events.Publisher
	logger    *zap.Logger
}

func NewInvoiceService(
	invoices InvoiceStore,
	clients ClientStore,
	companies CompanyStore,
	publisher *events.Publisher,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		clients:   clients,
		companies: companies,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *InvoiceService) Create(ctx context.Context, companyID string, req CreateInvoiceRequest) (*models.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.ErrCancelled
	}

	errs := validation.Errors{}
	validation.MinLength(errs, "InvoiceNumber", req.InvoiceNumber, 2, "InvoiceNumber must contain at least 2 characters")
	validation.MinLength(errs, "Status", req.Status, 2, "Status must contain at least 2 characters")
	if companyID == "" {
		errs.Add("CompanyId", "CompanyId cannot be empty")
	} else {
		exists, err := s.companies.Exists(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if !exists {
			errs.Add("CompanyId", "The specified Company does not exist.")
		}
	}
	if req.ClientID == "" {
		errs.Add("ClientId", "ClientId cannot be empty")
	} else {
		exists, err := s.clients.Exists(ctx, req.ClientID)
		if err != nil {
			return nil, err
		}
		if !exists {
			errs.Add("ClientId", "The specified Client does not exist.")
		}
	}
	if !errs.Empty() {
		return nil, apperr.Validation(errs)
	}

	invoice := &models.Invoice{
		ID:              uuid.NewString(),
		CompanyID:       companyID,
		ClientID:        req.ClientID,
		InvoiceNumber:   req.InvoiceNumber,
		Status:          req.Status,
		ParentInvoiceID: req.ParentInvoiceID,
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.InvoiceEventsStream, events.InvoiceCreated, events.InvoiceEvent{
		InvoiceID: invoice.ID,
		CompanyID: invoice.CompanyID,
		ClientID:  invoice.ClientID,
		Status:    invoice.Status,
	}); err != nil {
		s.logger.Warn("failed to publish invoice.created event", zap.Error(err))
	}
	return invoice, nil
}

func (s *InvoiceService) Get(ctx context.Context, companyID string, filter models.InvoiceFilter, pagination *models.PaginationRequest) (*models.PagedList[models.Invoice], error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.ErrCancelled
	}

	errs := validation.Errors{}
	if filter.InvoiceNumber != nil {
		validation.MinLength(errs, "InvoiceNumber", *filter.InvoiceNumber, 2, "InvoiceNumber must contain at least 2 characters")
	}
	if filter.Status != nil {
		validation.MinLength(errs, "Status", *filter.Status, 2, "Status must contain at least 2 characters")
	}
	if !errs.Empty() {
		return nil, apperr.Validation(errs)
	}

	page, pageSize := pagination.Resolve()
	if companyID == "" {
		return &models.PagedList[models.Invoice]{Items: []models.Invoice{}, Page: page, PageSize: pageSize}, nil
	}
	items, total, err := s.invoices.Find(ctx, companyID, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &models.PagedList[models.Invoice]{Items: items, Page: page, PageSize: pageSize, TotalCount: total}, nil
}

func (s *InvoiceService) Update(ctx context.Context, id, companyID string, req UpdateInvoiceRequest) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}

	errs := validation.Errors{}
	if req.InvoiceNumber != nil {
		validation.MinLength(errs, "InvoiceNumber", *req.InvoiceNumber, 2, "InvoiceNumber must contain at least 2 characters")
	}
	if req.Status != nil {
		validation.MinLength(errs, "Status", *req.Status, 2, "Status must contain at least 2 characters")
	}
	if req.ClientID != nil {
		exists, err := s.clients.Exists(ctx, *req.ClientID)
		if err != nil {
			return err
		}
		if !exists {
			errs.Add("ClientId", "The specified Client does not exist.")
		}
	}
	if !errs.Empty() {
		return apperr.Validation(errs)
	}
	if companyID == "" {
		return apperr.NotFound("Invoice")
	}

	invoice, err := s.invoices.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return err
	}
	if req.InvoiceNumber != nil {
		invoice.InvoiceNumber = *req.InvoiceNumber
	}
	if req.ClientID != nil {
		invoice.ClientID = *req.ClientID
	}
	if req.Status != nil {
		invoice.Status = *req.Status
	}
	if req.ParentInvoiceID != nil {
		invoice.ParentInvoiceID = req.ParentInvoiceID
	}
	if err := s.invoices.Update(ctx, invoice); err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, events.InvoiceEventsStream, events.InvoiceUpdated, events.InvoiceEvent{
		InvoiceID: invoice.ID,
		CompanyID: invoice.CompanyID,
		ClientID:  invoice.ClientID,
		Status:    invoice.Status,
	}); err != nil {
		s.logger.Warn("failed to publish invoice.updated event", zap.Error(err))
	}
	return nil
}

// Delete removes the invoice; its line items cascade away.
func (s *InvoiceService) Delete(ctx context.Context, id, companyID string) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}
	if companyID == "" {
		return apperr.NotFound("Invoice")
	}
	if err := s.invoices.Delete(ctx, id, companyID); err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, events.InvoiceEventsStream, events.InvoiceDeleted, events.InvoiceEvent{
		InvoiceID: id,
		CompanyID: companyID,
	}); err != nil {
		s.logger.Warn("failed to publish invoice.deleted event", zap.Error(err))
	}
	return nil
}
