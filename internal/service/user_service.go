package service

import (
	"context"

	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/ledgerhawk/invoicing-api/internal/validation"
)

type UpdateUserRequest struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	UserName    *string `json:"userName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// UserService manages user listing, profile updates and removal within the
// caller's tenant. Registration and credentials live in the auth package.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Get lists users in the caller's company only; the CompanyID filter field
// is forced to the caller's tenant.
func (s *UserService) Get(ctx context.Context, callerCompanyID string, filter models.UserFilter, pagination *models.PaginationRequest) (*models.PagedList[models.User], error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.ErrCancelled
	}
	filter.CompanyID = &callerCompanyID
	page, pageSize := pagination.Resolve()
	if callerCompanyID == "" {
		return &models.PagedList[models.User]{Items: []models.User{}, Page: page, PageSize: pageSize}, nil
	}
	items, total, err := s.users.Find(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &models.PagedList[models.User]{Items: items, Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Update applies non-nil fields to a user of the caller's company.
func (s *UserService) Update(ctx context.Context, id, companyID string, req UpdateUserRequest) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}

	errs := validation.Errors{}
	if req.FirstName != nil {
		validation.MinLength(errs, "FirstName", *req.FirstName, 2, "FirstName must contain at least 2 characters")
	}
	if req.LastName != nil {
		validation.MinLength(errs, "LastName", *req.LastName, 2, "LastName must contain at least 2 characters")
	}
	if req.UserName != nil {
		validation.MinLength(errs, "UserName", *req.UserName, 2, "UserName must contain at least 2 characters")
	}
	if req.PhoneNumber != nil {
		validation.MinLength(errs, "PhoneNumber", *req.PhoneNumber, 9, "Phone number must contain at least 9 digits")
	}
	if !errs.Empty() {
		return apperr.Validation(errs)
	}
	if companyID == "" {
		return apperr.NotFound("User")
	}

	user, err := s.users.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return err
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.UserName != nil {
		user.UserName = *req.UserName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	return s.users.Update(ctx, user)
}

// Delete removes a user of the caller's company.
func (s *UserService) Delete(ctx context.Context, id, companyID string) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}
	if companyID == "" {
		return apperr.NotFound("User")
	}
	return s.users.Delete(ctx, id, companyID)
}
