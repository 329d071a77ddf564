package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/ledgerhawk/invoicing-api/internal/validation"
)

type CreateProductRequest struct {
	Name   string  `json:"name"`
	Weight int     `json:"weight"`
	Price  float64 `json:"price"`
}

type UpdateProductRequest struct {
	Name   *string  `json:"name,omitempty"`
	Weight *int     `json:"weight,omitempty"`
	Price  *float64 `json:"price,omitempty"`
}

// ProductService manages a tenant's product catalogue.
type ProductService struct {
	products  ProductStore
	companies CompanyStore
}

func NewProductService(products ProductStore, companies CompanyStore) *ProductService {
	return &ProductService{products: products, companies: companies}
}

func validateProductFields(errs validation.Errors, name string, weight int, price float64) {
	validation.MinLength(errs, "Name", name, 2, "Name must contain at least 2 characters")
	validation.MaxLength(errs, "Name", name, 200, "Name must contain at most 200 characters")
	validation.NonNegative(errs, "Weight", float64(weight), "Weight must be greater or equal to 0")
	validation.NonNegative(errs, "Price", price, "Price must be greater or equal to 0")
}

func (s *ProductService) Create(ctx context.Context, companyID string, req CreateProductRequest) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.ErrCancelled
	}

	errs := validation.Errors{}
	validation.Required(errs, "Name", req.Name, "Name is empty")
	validateProductFields(errs, req.Name, req.Weight, req.Price)
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

	product := &models.Product{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Name:      req.Name,
		Weight:    req.Weight,
		Price:     req.Price,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, companyID string, filter models.ProductFilter, pagination *models.PaginationRequest) (*models.PagedList[models.Product], error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.ErrCancelled
	}
	page, pageSize := pagination.Resolve()
	if companyID == "" {
		return &models.PagedList[models.Product]{Items: []models.Product{}, Page: page, PageSize: pageSize}, nil
	}
	items, total, err := s.products.Find(ctx, companyID, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &models.PagedList[models.Product]{Items: items, Page: page, PageSize: pageSize, TotalCount: total}, nil
}

func (s *ProductService) Update(ctx context.Context, id, companyID string, req UpdateProductRequest) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}

	errs := validation.Errors{}
	if req.Name != nil {
		validation.MinLength(errs, "Name", *req.Name, 2, "Name must contain at least 2 characters")
		validation.MaxLength(errs, "Name", *req.Name, 200, "Name must contain at most 200 characters")
	}
	if req.Weight != nil {
		validation.NonNegative(errs, "Weight", float64(*req.Weight), "Weight must be greater or equal to 0")
	}
	if req.Price != nil {
		validation.NonNegative(errs, "Price", *req.Price, "Price must be greater or equal to 0")
	}
	if !errs.Empty() {
		return apperr.Validation(errs)
	}
	if companyID == "" {
		return apperr.NotFound("Product")
	}

	product, err := s.products.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return err
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Weight != nil {
		product.Weight = *req.Weight
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	return s.products.Update(ctx, product)
}

// Delete fails with a conflict while any invoice item references the product.
func (s *ProductService) Delete(ctx context.Context, id, companyID string) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}
	if companyID == "" {
		return apperr.NotFound("Product")
	}
	return s.products.Delete(ctx, id, companyID)
}
