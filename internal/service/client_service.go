package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/ledgerhawk/invoicing-api/internal/validation"
)

type CreateClientRequest struct {
	City     string `json:"city"`
	Address  string `json:"address"`
	Postcode string `json:"postcode"`
	Location string `json:"location"`
}

type UpdateClientRequest struct {
	City     *string `json:"city,omitempty"`
	Address  *string `json:"address,omitempty"`
	Postcode *string `json:"postcode,omitempty"`
	Location *string `json:"location,omitempty"`
}

// ClientService manages a tenant's clients.
type ClientService struct {
	clients   ClientStore
	companies CompanyStore
}

func NewClientService(clients ClientStore, companies CompanyStore) *ClientService {
	return &ClientService{clients: clients, companies: companies}
}

func (s *ClientService) Create(ctx context.Context, companyID string, req CreateClientRequest) (*models.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.ErrCancelled
	}

	errs := validation.Errors{}
	validation.Required(errs, "City", req.City, "City is empty")
	validation.Required(errs, "Address", req.Address, "Address is empty")
	validation.MaxLength(errs, "Address", req.Address, 255, "Address must contain at most 255 characters")
	validation.Required(errs, "Postcode", req.Postcode, "Postcode is empty")
	validation.MaxLength(errs, "Postcode", req.Postcode, 50, "Postcode must contain at most 50 characters")
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
	if !errs.Empty() {
		return nil, apperr.Validation(errs)
	}

	client := &models.Client{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		City:      req.City,
		Address:   req.Address,
		Postcode:  req.Postcode,
		Location:  req.Location,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Get(ctx context.Context, companyID string, filter models.ClientFilter, pagination *models.PaginationRequest) (*models.PagedList[models.Client], error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.ErrCancelled
	}
	page, pageSize := pagination.Resolve()
	if companyID == "" {
		return &models.PagedList[models.Client]{Items: []models.Client{}, Page: page, PageSize: pageSize}, nil
	}
	items, total, err := s.clients.Find(ctx, companyID, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &models.PagedList[models.Client]{Items: items, Page: page, PageSize: pageSize, TotalCount: total}, nil
}

func (s *ClientService) Update(ctx context.Context, id, companyID string, req UpdateClientRequest) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}

	errs := validation.Errors{}
	if req.Address != nil {
		validation.MaxLength(errs, "Address", *req.Address, 255, "Address must contain at most 255 characters")
	}
	if req.Postcode != nil {
		validation.MaxLength(errs, "Postcode", *req.Postcode, 50, "Postcode must contain at most 50 characters")
	}
	if !errs.Empty() {
		return apperr.Validation(errs)
	}
	if companyID == "" {
		return apperr.NotFound("Client")
	}

	client, err := s.clients.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return err
	}
	if req.City != nil {
		client.City = *req.City
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Postcode != nil {
		client.Postcode = *req.Postcode
	}
	if req.Location != nil {
		client.Location = *req.Location
	}
	return s.clients.Update(ctx, client)
}

func (s *ClientService) Delete(ctx context.Context, id, companyID string) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}
	if companyID == "" {
		return apperr.NotFound("Client")
	}
	return s.clients.Delete(ctx, id, companyID)
}
