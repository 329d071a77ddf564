package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/events"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/ledgerhawk/invoicing-api/internal/validation"
	"go.uber.org/zap"
)

// RefreshTokenTTL is how long a refresh token stays usable after issuance
// or rotation.
const RefreshTokenTTL = 7 * 24 * time.Hour

// UserStore is the credential/identity capability the auth flow needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetRoles(ctx context.Context, userID string) ([]string, error)
	CreateWithRole(ctx context.Context, user *models.User, roleName string) error
}

// TokenStore persists refresh-token records keyed by token value.
type TokenStore interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByToken(ctx context.Context, value string) (*models.RefreshToken, error)
	Rotate(ctx context.Context, token *models.RefreshToken) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

// RegisterRequest carries a new account's fields.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// Service orchestrates registration, login, refresh and revocation.
type Service struct {
	users     UserStore
	tokens    TokenStore
	issuer    *TokenIssuer
	publisher *events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(users UserStore, tokens TokenStore, issuer *TokenIssuer, publisher *events.Publisher, logger *zap.Logger) *Service {
	return &Service{
		users:     users,
		tokens:    tokens,
		issuer:    issuer,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register validates the request and creates the user together with its role
// assignment in one transaction; a failed role assignment leaves no user behind.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}

	errs := validation.Errors{}
	validation.Email(errs, "Email", req.Email)
	validation.Password(errs, "Password", req.Password)
	validation.Required(errs, "FirstName", req.FirstName, "FirstName is empty")
	validation.MinLength(errs, "FirstName", req.FirstName, 2, "FirstName must contain at least 2 characters")
	validation.Required(errs, "LastName", req.LastName, "LastName is empty")
	validation.MinLength(errs, "LastName", req.LastName, 2, "LastName must contain at least 2 characters")
	validation.Required(errs, "Role", req.Role, "Role is empty")
	if !errs.Empty() {
		return apperr.Validation(errs)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return err
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		UserName:     req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.CreateWithRole(ctx, user, req.Role); err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserRegistered, events.UserRegisteredEvent{
		UserID: user.ID,
		Email:  user.Email,
		Role:   req.Role,
	}); err != nil {
		s.logger.Warn("failed to publish user.registered event", zap.Error(err))
	}
	return nil
}

// Login verifies credentials and returns an access token plus a brand-new
// refresh-token record valid for RefreshTokenTTL.
func (s *Service) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.ErrCancelled
	}

	errs := validation.Errors{}
	validation.Email(errs, "Email", email)
	validation.Required(errs, "Password", password, "Password is empty")
	if !errs.Empty() {
		return nil, apperr.Validation(errs)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, err
	}
	if !CheckPassword(password, user.PasswordHash) {
		return nil, apperr.ErrUnauthorized
	}

	roles, err := s.users.GetRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	accessToken, err := s.issuer.IssueAccessToken(user, roles)
	if err != nil {
		return nil, err
	}
	refreshValue, err := s.issuer.IssueRefreshToken()
	if err != nil {
		return nil, err
	}
	record := &models.RefreshToken{
		ID:        uuid.NewString(),
		Token:     refreshValue,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(RefreshTokenTTL),
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return nil, err
	}

	return &models.TokenPair{AccessToken: accessToken, RefreshToken: refreshValue}, nil
}

// RefreshLogin exchanges a stored refresh token for a new token pair,
// rotating the record in place. The presented value is permanently invalid
// afterwards, whatever its remaining lifetime.
func (s *Service) RefreshLogin(ctx context.Context, refreshTokenValue string) (*models.TokenPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.ErrCancelled
	}

	record, err := s.tokens.GetByToken(ctx, refreshTokenValue)
	if err != nil {
		return nil, err
	}
	if !s.now().Before(record.ExpiresAt) {
		return nil, apperr.ErrRefreshTokenExpired
	}

	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		return nil, err
	}
	roles, err := s.users.GetRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	accessToken, err := s.issuer.IssueAccessToken(user, roles)
	if err != nil {
		return nil, err
	}
	newValue, err := s.issuer.IssueRefreshToken()
	if err != nil {
		return nil, err
	}

	record.Token = newValue
	record.ExpiresAt = s.now().Add(RefreshTokenTTL)
	if err := s.tokens.Rotate(ctx, record); err != nil {
		return nil, err
	}

	return &models.TokenPair{AccessToken: accessToken, RefreshToken: newValue}, nil
}

// RevokeAllForUser deletes every refresh token of userID. Callers may only
// revoke their own tokens.
func (s *Service) RevokeAllForUser(ctx context.Context, userID, callerID string) error {
	if err := ctx.Err(); err != nil {
		return apperr.ErrCancelled
	}
	if userID != callerID {
		return apperr.ErrForbidden
	}
	return s.tokens.DeleteAllForUser(ctx, userID)
}
