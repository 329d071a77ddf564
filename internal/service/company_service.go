// Package service implements the tenant-scoped business operations behind
// each HTTP resource: request validation, company scoping, persistence and
// read-model upkeep.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/cache"
	"github.com/ledgerhawk/invoicing-api/internal/events"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/ledgerhawk/invoicing-api/internal/validation"
	"go.uber.org/zap"
)

const companyViewKeyPrefix = "company:view:"

type CreateCompanyRequest struct {
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	OwnerID *string `json:"ownerId,omitempty"`
}

// UpdateCompanyRequest applies only its non-nil fields.
type UpdateCompanyRequest struct {
	Name    *string `json:"name,omitempty"`
	Slug    *string `json:"slug,omitempty"`
	OwnerID *string `json:"ownerId,omitempty"`
}

// CompanyService manages tenants and tenant membership.
type CompanyService struct {
	companies CompanyStore
	users     UserStore
	viewCache *cache.ViewCache[models.Company]
	publisher *events.Publisher
	logger    *zap.Logger
}

func NewCompanyService(
	companies CompanyStore,
	users UserStore,
	viewCache *cache.ViewCache[models.Company],
	publisher *events.Publisher,
	logger *zap.Logger,
) *CompanyService {
	return &CompanyService{
		companies: companies,
		users:     users,
		viewCache: viewCache,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *CompanyService) Create(ctx context.Context, req CreateCompanyRequest) (*models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.ErrCancelled
	}

	errs := validation.Errors{}
	validation.Required(errs, "Name", req.Name, "Name is empty")
	validation.MaxLength(errs, "Name", req.Name, 100, "Name must contain at most 100 characters")
	validation.Required(errs, "Slug", req.Slug, "Slug is empty")
	validation.MaxLength(errs, "Slug", req.Slug, 50, "Slug must contain at most 50 characters")
	if !errs.Empty() {
		return nil, apperr.Validation(errs)
	}

	company := &models.Company{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Slug:      req.Slug,
		OwnerID:   req.OwnerID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	s.viewCache.Set(ctx, companyViewKeyPrefix+company.ID, company)

	if err := s.publisher.Publish(ctx, events.CompanyEventsStream, events.CompanyCreated, events.CompanyCreatedEvent{
		CompanyID: company.ID,
		Name:      company.Name,
		Slug:      company.Slug,
	}); err != nil {
		s.logger.Warn("failed to publish company.created event", zap.Error(err))
	}
	return company, nil
}

func (s *CompanyService) Get(ctx context.Context, filter models.CompanyFilter, pagination *models.PaginationRequest) (*models.PagedList[models.Company], error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.ErrCancelled
	}

	errs := validation.Errors{}
	if filter.Name != nil {
		validation.MaxLength(errs, "Name", *filter.Name, 100, "Name must contain at most 100 characters")
	}
	if filter.Slug != nil {
		validation.MaxLength(errs, "Slug", *filter.Slug, 50, "Slug must contain at most 50 characters")
	}
	if !errs.Empty() {
		return nil, apperr.Validation(errs)
	}

	page, pageSize := pagination.Resolve()
	items, total, err := s.companies.Find(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &models.PagedList[models.Company]{Items: items, Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Update applies the non-nil fields. Only members of the company or its
// owner may update it; anyone else gets NotFound.
func (s *CompanyService) Update(ctx context.Context, id string, req UpdateCompanyRequest, callerID string, callerCompanyID string) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}

	errs := validation.Errors{}
	if req.Name != nil {
		validation.Required(errs, "Name", *req.Name, "Name is empty")
		validation.MaxLength(errs, "Name", *req.Name, 100, "Name must contain at most 100 characters")
	}
	if req.Slug != nil {
		validation.Required(errs, "Slug", *req.Slug, "Slug is empty")
		validation.MaxLength(errs, "Slug", *req.Slug, 50, "Slug must contain at most 50 characters")
	}
	if !errs.Empty() {
		return apperr.Validation(errs)
	}

	company, err := s.getForCaller(ctx, id, callerID, callerCompanyID)
	if err != nil {
		return err
	}
	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Slug != nil {
		company.Slug = *req.Slug
	}
	if req.OwnerID != nil {
		company.OwnerID = req.OwnerID
	}
	if err := s.companies.Update(ctx, company); err != nil {
		return err
	}
	s.viewCache.Set(ctx, companyViewKeyPrefix+company.ID, company)
	return nil
}

// Delete removes the tenant with all its clients, products and invoices;
// member users are detached rather than deleted.
func (s *CompanyService) Delete(ctx context.Context, id, callerID, callerCompanyID string) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}
	if _, err := s.getForCaller(ctx, id, callerID, callerCompanyID); err != nil {
		return err
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		return err
	}
	s.viewCache.Delete(ctx, companyViewKeyPrefix+id)

	if err := s.publisher.Publish(ctx, events.CompanyEventsStream, events.CompanyDeleted, events.CompanyDeletedEvent{
		CompanyID: id,
	}); err != nil {
		s.logger.Warn("failed to publish company.deleted event", zap.Error(err))
	}
	return nil
}

// AddUser attaches a user to the company.
func (s *CompanyService) AddUser(ctx context.Context, companyID, userID string) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}
	if _, err := s.getByID(ctx, companyID); err != nil {
		return err
	}
	return s.users.SetCompany(ctx, userID, &companyID)
}

// RemoveUser detaches a user from the company. The user row is kept; only
// its company reference is cleared.
func (s *CompanyService) RemoveUser(ctx context.Context, companyID, userID string) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}
	user, err := s.users.GetByIDAndCompany(ctx, userID, companyID)
	if err != nil {
		return err
	}
	return s.users.SetCompany(ctx, user.ID, nil)
}

// getByID serves reads from the view cache, falling back to PostgreSQL.
func (s *CompanyService) getByID(ctx context.Context, id string) (*models.Company, error) {
	if view, ok := s.viewCache.Get(ctx, companyViewKeyPrefix+id); ok {
		return view, nil
	}
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.viewCache.Set(ctx, companyViewKeyPrefix+id, company)
	return company, nil
}

// getForCaller loads the company when the caller is a member or the owner.
// Everyone else sees NotFound so tenant existence never leaks.
func (s *CompanyService) getForCaller(ctx context.Context, id, callerID, callerCompanyID string) (*models.Company, error) {
	company, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if callerCompanyID == id {
		return company, nil
	}
	if company.OwnerID != nil && *company.OwnerID == callerID {
		return company, nil
	}
	return nil, apperr.NotFound("Company")
}
