package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/models"
)

const (
	companyA = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	companyB = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	rowID    = "cccccccc-cccc-cccc-cccc-cccccccccccc"
)

// ---- mock stores ----

type mockClientStore struct {
	createFn            func(client *models.Client) error
	existsFn            func(id string) (bool, error)
	getByIDAndCompanyFn func(id, companyID string) (*models.Client, error)
	findFn              func(companyID string, filter models.ClientFilter, page, pageSize int) ([]models.Client, int64, error)
	updateFn            func(client *models.Client) error
	deleteFn            func(id, companyID string) error
}

func (m *mockClientStore) Create(_ context.Context, client *models.Client) error {
	if m.createFn != nil {
		return m.createFn(client)
	}
	return fmt.Errorf("not configured")
}
func (m *mockClientStore) Exists(_ context.Context, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(id)
	}
	return false, fmt.Errorf("not configured")
}
func (m *mockClientStore) GetByIDAndCompany(_ context.Context, id, companyID string) (*models.Client, error) {
	if m.getByIDAndCompanyFn != nil {
		return m.getByIDAndCompanyFn(id, companyID)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockClientStore) Find(_ context.Context, companyID string, filter models.ClientFilter, page, pageSize int) ([]models.Client, int64, error) {
	if m.findFn != nil {
		return m.findFn(companyID, filter, page, pageSize)
	}
	return nil, 0, fmt.Errorf("not configured")
}
func (m *mockClientStore) Update(_ context.Context, client *models.Client) error {
	if m.updateFn != nil {
		return m.updateFn(client)
	}
	return fmt.Errorf("not configured")
}
func (m *mockClientStore) Delete(_ context.Context, id, companyID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id, companyID)
	}
	return fmt.Errorf("not configured")
}

type mockProductStore struct {
	createFn            func(product *models.Product) error
	existsFn            func(id string) (bool, error)
	getByIDAndCompanyFn func(id, companyID string) (*models.Product, error)
	findFn              func(companyID string, filter models.ProductFilter, page, pageSize int) ([]models.Product, int64, error)
	updateFn            func(product *models.Product) error
	deleteFn            func(id, companyID string) error
}

func (m *mockProductStore) Create(_ context.Context, product *models.Product) error {
	if m.createFn != nil {
		return m.createFn(product)
	}
	return fmt.Errorf("not configured")
}
func (m *mockProductStore) Exists(_ context.Context, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(id)
	}
	return false, fmt.Errorf("not configured")
}
func (m *mockProductStore) GetByIDAndCompany(_ context.Context, id, companyID string) (*models.Product, error) {
	if m.getByIDAndCompanyFn != nil {
		return m.getByIDAndCompanyFn(id, companyID)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockProductStore) Find(_ context.Context, companyID string, filter models.ProductFilter, page, pageSize int) ([]models.Product, int64, error) {
	if m.findFn != nil {
		return m.findFn(companyID, filter, page, pageSize)
	}
	return nil, 0, fmt.Errorf("not configured")
}
func (m *mockProductStore) Update(_ context.Context, product *models.Product) error {
	if m.updateFn != nil {
		return m.updateFn(product)
	}
	return fmt.Errorf("not configured")
}
func (m *mockProductStore) Delete(_ context.Context, id, companyID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id, companyID)
	}
	return fmt.Errorf("not configured")
}

type mockInvoiceStore struct {
	createFn            func(invoice *models.Invoice) error
	existsFn            func(id string) (bool, error)
	getByIDAndCompanyFn func(id, companyID string) (*models.Invoice, error)
	findFn              func(companyID string, filter models.InvoiceFilter, page, pageSize int) ([]models.Invoice, int64, error)
	updateFn            func(invoice *models.Invoice) error
	deleteFn            func(id, companyID string) error
}

func (m *mockInvoiceStore) Create(_ context.Context, invoice *models.Invoice) error {
	if m.createFn != nil {
		return m.createFn(invoice)
	}
	return fmt.Errorf("not configured")
}
func (m *mockInvoiceStore) Exists(_ context.Context, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(id)
	}
	return false, fmt.Errorf("not configured")
}
func (m *mockInvoiceStore) GetByIDAndCompany(_ context.Context, id, companyID string) (*models.Invoice, error) {
	if m.getByIDAndCompanyFn != nil {
		return m.getByIDAndCompanyFn(id, companyID)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockInvoiceStore) Find(_ context.Context, companyID string, filter models.InvoiceFilter, page, pageSize int) ([]models.Invoice, int64, error) {
	if m.findFn != nil {
		return m.findFn(companyID, filter, page, pageSize)
	}
	return nil, 0, fmt.Errorf("not configured")
}
func (m *mockInvoiceStore) Update(_ context.Context, invoice *models.Invoice) error {
	if m.updateFn != nil {
		return m.updateFn(invoice)
	}
	return fmt.Errorf("not configured")
}
func (m *mockInvoiceStore) Delete(_ context.Context, id, companyID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id, companyID)
	}
	return fmt.Errorf("not configured")
}

type mockCompanyStore struct {
	createFn  func(company *models.Company) error
	existsFn  func(id string) (bool, error)
	getByIDFn func(id string) (*models.Company, error)
	findFn    func(filter models.CompanyFilter, page, pageSize int) ([]models.Company, int64, error)
	updateFn  func(company *models.Company) error
	deleteFn  func(id string) error
}

func (m *mockCompanyStore) Create(_ context.Context, company *models.Company) error {
	if m.createFn != nil {
		return m.createFn(company)
	}
	return fmt.Errorf("not configured")
}
func (m *mockCompanyStore) Exists(_ context.Context, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(id)
	}
	return false, fmt.Errorf("not configured")
}
func (m *mockCompanyStore) GetByID(_ context.Context, id string) (*models.Company, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockCompanyStore) Find(_ context.Context, filter models.CompanyFilter, page, pageSize int) ([]models.Company, int64, error) {
	if m.findFn != nil {
		return m.findFn(filter, page, pageSize)
	}
	return nil, 0, fmt.Errorf("not configured")
}
func (m *mockCompanyStore) Update(_ context.Context, company *models.Company) error {
	if m.updateFn != nil {
		return m.updateFn(company)
	}
	return fmt.Errorf("not configured")
}
func (m *mockCompanyStore) Delete(_ context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return fmt.Errorf("not configured")
}

type mockUserStore struct {
	getByIDAndCompanyFn func(id, companyID string) (*models.User, error)
	findFn              func(filter models.UserFilter, page, pageSize int) ([]models.User, int64, error)
	updateFn            func(user *models.User) error
	deleteFn            func(id, companyID string) error
	setCompanyFn        func(userID string, companyID *string) error
}

func (m *mockUserStore) GetByIDAndCompany(_ context.Context, id, companyID string) (*models.User, error) {
	if m.getByIDAndCompanyFn != nil {
		return m.getByIDAndCompanyFn(id, companyID)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockUserStore) Find(_ context.Context, filter models.UserFilter, page, pageSize int) ([]models.User, int64, error) {
	if m.findFn != nil {
		return m.findFn(filter, page, pageSize)
	}
	return nil, 0, fmt.Errorf("not configured")
}
func (m *mockUserStore) Update(_ context.Context, user *models.User) error {
	if m.updateFn != nil {
		return m.updateFn(user)
	}
	return fmt.Errorf("not configured")
}
func (m *mockUserStore) Delete(_ context.Context, id, companyID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id, companyID)
	}
	return fmt.Errorf("not configured")
}
func (m *mockUserStore) SetCompany(_ context.Context, userID string, companyID *string) error {
	if m.setCompanyFn != nil {
		return m.setCompanyFn(userID, companyID)
	}
	return fmt.Errorf("not configured")
}

// scopedClientStore rejects any id/company pair other than the one row it
// holds, the way the SQL layer reports zero affected rows.
func scopedClientStore(t *testing.T) *mockClientStore {
	t.Helper()
	return &mockClientStore{
		getByIDAndCompanyFn: func(id, companyID string) (*models.Client, error) {
			if id == rowID && companyID == companyA {
				return &models.Client{ID: rowID, CompanyID: companyA, City: "London", Address: "Baker Street 3", Postcode: "333-333"}, nil
			}
			return nil, apperr.NotFound("Client")
		},
		deleteFn: func(id, companyID string) error {
			if id == rowID && companyID == companyA {
				return nil
			}
			return apperr.NotFound("Client")
		},
	}
}

func TestClientServiceUpdateScopedToCallerCompany(t *testing.T) {
	city := "Paris"
	store := scopedClientStore(t)
	store.updateFn = func(client *models.Client) error { return nil }
	svc := NewClientService(store, &mockCompanyStore{})

	err := svc.Update(context.Background(), rowID, companyB, UpdateClientRequest{City: &city})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "Client not found or you do not have access", err.Error())

	require.NoError(t, svc.Update(context.Background(), rowID, companyA, UpdateClientRequest{City: &city}))
}

func TestClientServiceDeleteScopedToCallerCompany(t *testing.T) {
	svc := NewClientService(scopedClientStore(t), &mockCompanyStore{})

	err := svc.Delete(context.Background(), rowID, companyB)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), rowID, companyA))
}

func TestClientServiceGetWithoutCompanyReturnsEmptyPage(t *testing.T) {
	store := &mockClientStore{
		findFn: func(companyID string, filter models.ClientFilter, page, pageSize int) ([]models.Client, int64, error) {
			t.Errorf("unexpected query for company %q", companyID)
			return nil, 0, nil
		},
	}
	svc := NewClientService(store, &mockCompanyStore{})

	page, err := svc.Get(context.Background(), "", models.ClientFilter{}, nil)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.TotalCount)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PageSize)
}

func TestClientServiceUpdateWithoutCompanyNotFound(t *testing.T) {
	city := "Paris"
	svc := NewClientService(&mockClientStore{}, &mockCompanyStore{})

	err := svc.Update(context.Background(), rowID, "", UpdateClientRequest{City: &city})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = svc.Delete(context.Background(), rowID, "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestProductServiceDeleteConflictWhenReferenced(t *testing.T) {
	store := &mockProductStore{
		deleteFn: func(id, companyID string) error {
			return apperr.Conflict("product is referenced by an invoice item")
		},
	}
	svc := NewProductService(store, &mockCompanyStore{})

	err := svc.Delete(context.Background(), rowID, companyA)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "product is referenced by an invoice item", err.Error())
}

func TestProductServiceUpdateScopedToCallerCompany(t *testing.T) {
	name := "hammer"
	store := &mockProductStore{
		getByIDAndCompanyFn: func(id, companyID string) (*models.Product, error) {
			if companyID == companyA {
				return &models.Product{ID: rowID, CompanyID: companyA, Name: "screwdriver"}, nil
			}
			return nil, apperr.NotFound("Product")
		},
		updateFn: func(product *models.Product) error { return nil },
	}
	svc := NewProductService(store, &mockCompanyStore{})

	err := svc.Update(context.Background(), rowID, companyB, UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, svc.Update(context.Background(), rowID, companyA, UpdateProductRequest{Name: &name}))
}

func TestInvoiceServiceDeleteRemovesOwnInvoice(t *testing.T) {
	var deletedID, deletedCompany string
	store := &mockInvoiceStore{
		deleteFn: func(id, companyID string) error {
			if companyID != companyA {
				return apperr.NotFound("Invoice")
			}
			deletedID, deletedCompany = id, companyID
			return nil
		},
	}
	svc := NewInvoiceService(store, &mockClientStore{}, &mockCompanyStore{}, nil, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), rowID, companyA))
	assert.Equal(t, rowID, deletedID)
	assert.Equal(t, companyA, deletedCompany)

	err := svc.Delete(context.Background(), rowID, companyB)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestInvoiceServiceGetWithoutCompanyReturnsEmptyPage(t *testing.T) {
	store := &mockInvoiceStore{
		findFn: func(companyID string, filter models.InvoiceFilter, page, pageSize int) ([]models.Invoice, int64, error) {
			t.Errorf("unexpected query for company %q", companyID)
			return nil, 0, nil
		},
	}
	svc := NewInvoiceService(store, &mockClientStore{}, &mockCompanyStore{}, nil, zap.NewNop())

	page, err := svc.Get(context.Background(), "", models.InvoiceFilter{}, nil)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.TotalCount)
}

func TestUserServiceGetWithoutCompanyReturnsEmptyPage(t *testing.T) {
	store := &mockUserStore{
		findFn: func(filter models.UserFilter, page, pageSize int) ([]models.User, int64, error) {
			t.Errorf("unexpected query with company filter %v", filter.CompanyID)
			return nil, 0, nil
		},
	}
	svc := NewUserService(store)

	page, err := svc.Get(context.Background(), "", models.UserFilter{}, nil)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.TotalCount)
}

func TestUserServiceUpdateScopedToCallerCompany(t *testing.T) {
	first := "Johan"
	store := &mockUserStore{
		getByIDAndCompanyFn: func(id, companyID string) (*models.User, error) {
			if companyID == companyA {
				return &models.User{ID: rowID, FirstName: "John", LastName: "Smith", UserName: "john@test.test"}, nil
			}
			return nil, apperr.NotFound("User")
		},
		updateFn: func(user *models.User) error { return nil },
	}
	svc := NewUserService(store)

	err := svc.Update(context.Background(), rowID, companyB, UpdateUserRequest{FirstName: &first})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, svc.Update(context.Background(), rowID, companyA, UpdateUserRequest{FirstName: &first}))
}
