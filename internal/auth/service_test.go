package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/models"
)

// ---- mock stores ----

type mockUserStore struct {
	getByEmailFn     func(email string) (*models.User, error)
	getByIDFn        func(id string) (*models.User, error)
	getRolesFn       func(userID string) ([]string, error)
	createWithRoleFn func(user *models.User, roleName string) error
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(email)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockUserStore) GetRoles(_ context.Context, userID string) ([]string, error) {
	if m.getRolesFn != nil {
		return m.getRolesFn(userID)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockUserStore) CreateWithRole(_ context.Context, user *models.User, roleName string) error {
	if m.createWithRoleFn != nil {
		return m.createWithRoleFn(user, roleName)
	}
	return fmt.Errorf("not configured")
}

type mockTokenStore struct {
	createFn           func(token *models.RefreshToken) error
	getByTokenFn       func(value string) (*models.RefreshToken, error)
	rotateFn           func(token *models.RefreshToken) error
	deleteAllForUserFn func(userID string) error
}

func (m *mockTokenStore) Create(_ context.Context, token *models.RefreshToken) error {
	if m.createFn != nil {
		return m.createFn(token)
	}
	return fmt.Errorf("not configured")
}
func (m *mockTokenStore) GetByToken(_ context.Context, value string) (*models.RefreshToken, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(value)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockTokenStore) Rotate(_ context.Context, token *models.RefreshToken) error {
	if m.rotateFn != nil {
		return m.rotateFn(token)
	}
	return fmt.Errorf("not configured")
}
func (m *mockTokenStore) DeleteAllForUser(_ context.Context, userID string) error {
	if m.deleteAllForUserFn != nil {
		return m.deleteAllForUserFn(userID)
	}
	return fmt.Errorf("not configured")
}

// ---- helpers ----

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(users *mockUserStore, tokens *mockTokenStore) *Service {
	svc := NewService(users, tokens, NewTokenIssuer(testJWTConfig()), nil, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func johnUser(t *testing.T) *models.User {
	t.Helper()
	hash, err := HashPassword("Str0ng!pass")
	require.NoError(t, err)
	companyID := "comp-1"
	return &models.User{
		ID:           "usr-1",
		Email:        "john@test.test",
		UserName:     "john@test.test",
		FirstName:    "John",
		LastName:     "Doe",
		CompanyID:    &companyID,
		PasswordHash: hash,
	}
}

// ---- tests ----

func TestLoginIssuesAdminClaimAndSevenDayRefresh(t *testing.T) {
	user := johnUser(t)
	var created *models.RefreshToken
	users := &mockUserStore{
		getByEmailFn: func(email string) (*models.User, error) {
			assert.Equal(t, "john@test.test", email)
			return user, nil
		},
		getRolesFn: func(string) ([]string, error) { return []string{"Admin"}, nil },
	}
	tokens := &mockTokenStore{
		createFn: func(token *models.RefreshToken) error {
			created = token
			return nil
		},
	}
	svc := newTestService(users, tokens)

	pair, err := svc.Login(context.Background(), "john@test.test", "Str0ng!pass")
	require.NoError(t, err)
	require.NotNil(t, created)

	claims, err := ParseAccessToken(pair.AccessToken, testJWTConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"Admin"}, claims.Roles)
	assert.Equal(t, "comp-1", claims.CompanyID)

	assert.Equal(t, pair.RefreshToken, created.Token)
	assert.Equal(t, "usr-1", created.UserID)
	assert.Equal(t, fixedNow.Add(7*24*time.Hour), created.ExpiresAt)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := &mockUserStore{
		getByEmailFn: func(string) (*models.User, error) { return nil, apperr.NotFound("User") },
	}
	svc := newTestService(users, &mockTokenStore{})

	_, err := svc.Login(context.Background(), "nobody@test.test", "Str0ng!pass")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestLoginWrongPassword(t *testing.T) {
	user := johnUser(t)
	users := &mockUserStore{
		getByEmailFn: func(string) (*models.User, error) { return user, nil },
	}
	svc := newTestService(users, &mockTokenStore{})

	_, err := svc.Login(context.Background(), "john@test.test", "Wr0ng!pass")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestLoginValidatesInput(t *testing.T) {
	svc := newTestService(&mockUserStore{}, &mockTokenStore{})

	_, err := svc.Login(context.Background(), "not-an-email", "")
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "Email")
	assert.Contains(t, ve.Fields, "Password")
}

func TestRefreshLoginRotatesInPlace(t *testing.T) {
	user := johnUser(t)
	record := &models.RefreshToken{
		ID:        "rt-1",
		Token:     "old-value",
		UserID:    "usr-1",
		ExpiresAt: fixedNow.Add(time.Hour),
	}
	var rotated *models.RefreshToken
	users := &mockUserStore{
		getByIDFn:  func(string) (*models.User, error) { return user, nil },
		getRolesFn: func(string) ([]string, error) { return []string{"Manager"}, nil },
	}
	tokens := &mockTokenStore{
		getByTokenFn: func(value string) (*models.RefreshToken, error) {
			assert.Equal(t, "old-value", value)
			return record, nil
		},
		rotateFn: func(token *models.RefreshToken) error {
			rotated = token
			return nil
		},
	}
	svc := newTestService(users, tokens)

	pair, err := svc.RefreshLogin(context.Background(), "old-value")
	require.NoError(t, err)
	require.NotNil(t, rotated)

	assert.Equal(t, "rt-1", rotated.ID)
	assert.NotEqual(t, "old-value", rotated.Token)
	assert.Equal(t, pair.RefreshToken, rotated.Token)
	assert.Equal(t, fixedNow.Add(7*24*time.Hour), rotated.ExpiresAt)

	claims, err := ParseAccessToken(pair.AccessToken, testJWTConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"Manager"}, claims.Roles)
}

func TestRefreshLoginExpiredRecord(t *testing.T) {
	tokens := &mockTokenStore{
		getByTokenFn: func(string) (*models.RefreshToken, error) {
			return &models.RefreshToken{ID: "rt-1", Token: "stale", UserID: "usr-1", ExpiresAt: fixedNow.Add(-time.Second)}, nil
		},
	}
	svc := newTestService(&mockUserStore{}, tokens)

	_, err := svc.RefreshLogin(context.Background(), "stale")
	assert.ErrorIs(t, err, apperr.ErrRefreshTokenExpired)
	assert.EqualError(t, err, "The refresh token has expired")
}

func TestRefreshLoginUnknownValue(t *testing.T) {
	tokens := &mockTokenStore{
		getByTokenFn: func(string) (*models.RefreshToken, error) { return nil, apperr.ErrRefreshTokenExpired },
	}
	svc := newTestService(&mockUserStore{}, tokens)

	_, err := svc.RefreshLogin(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperr.ErrRefreshTokenExpired)
}

func TestRevokeAllForUser(t *testing.T) {
	var deletedFor string
	tokens := &mockTokenStore{
		deleteAllForUserFn: func(userID string) error {
			deletedFor = userID
			return nil
		},
	}
	svc := newTestService(&mockUserStore{}, tokens)

	err := svc.RevokeAllForUser(context.Background(), "usr-1", "usr-1")
	require.NoError(t, err)
	assert.Equal(t, "usr-1", deletedFor)
}

func TestRevokeAllForUserForbidden(t *testing.T) {
	svc := newTestService(&mockUserStore{}, &mockTokenStore{})

	err := svc.RevokeAllForUser(context.Background(), "usr-1", "usr-2")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestRegisterCreatesUserWithRole(t *testing.T) {
	var created *models.User
	var role string
	users := &mockUserStore{
		createWithRoleFn: func(user *models.User, roleName string) error {
			created = user
			role = roleName
			return nil
		},
	}
	svc := newTestService(users, &mockTokenStore{})

	err := svc.Register(context.Background(), RegisterRequest{
		Email:     "jane@test.test",
		Password:  "Str0ng!pass",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      "Employee",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "Employee", role)
	assert.Equal(t, "jane@test.test", created.Email)
	assert.Equal(t, "jane@test.test", created.UserName)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "Str0ng!pass", created.PasswordHash)
	assert.True(t, CheckPassword("Str0ng!pass", created.PasswordHash))
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newTestService(&mockUserStore{}, &mockTokenStore{})

	err := svc.Register(context.Background(), RegisterRequest{
		Email:     "jane@test.test",
		Password:  "weak",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      "Employee",
	})
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{
		"Password must contain at least 6 characters",
		"Password must contain an uppercase letter",
		"Password must contain a digit",
		"Password must contain one or more special characters.",
	}, ve.Fields["Password"])
}

func TestOperationsRejectCancelledContext(t *testing.T) {
	svc := newTestService(&mockUserStore{}, &mockTokenStore{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Login(ctx, "john@test.test", "Str0ng!pass")
	assert.ErrorIs(t, err, apperr.ErrCancelled)

	_, err = svc.RefreshLogin(ctx, "value")
	assert.ErrorIs(t, err, apperr.ErrCancelled)

	assert.ErrorIs(t, svc.RevokeAllForUser(ctx, "u", "u"), apperr.ErrCancelled)
	assert.ErrorIs(t, svc.Register(ctx, RegisterRequest{}), apperr.ErrCancelled)
}
