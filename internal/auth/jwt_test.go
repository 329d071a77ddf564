package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerhawk/invoicing-api/internal/config"
	"github.com/ledgerhawk/invoicing-api/internal/models"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:           "test-secret",
		Issuer:              "invoicing-api",
		Audience:            "invoicing-api",
		ExpirationInMinutes: 15,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	companyID := "comp-1"
	user := &models.User{
		ID:        "usr-1",
		Email:     "john@test.test",
		FirstName: "John",
		LastName:  "Doe",
		CompanyID: &companyID,
	}
	issuer := NewTokenIssuer(testJWTConfig())

	signed, err := issuer.IssueAccessToken(user, []string{"Admin"})
	require.NoError(t, err)

	claims, err := ParseAccessToken(signed, testJWTConfig())
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, "john@test.test", claims.Email)
	assert.Equal(t, "John", claims.Name)
	assert.Equal(t, "Doe", claims.GivenName)
	assert.Equal(t, "comp-1", claims.CompanyID)
	assert.Equal(t, []string{"Admin"}, claims.Roles)
}

func TestAccessTokenWithoutCompany(t *testing.T) {
	issuer := NewTokenIssuer(testJWTConfig())
	signed, err := issuer.IssueAccessToken(&models.User{ID: "usr-2", Email: "a@b.test"}, nil)
	require.NoError(t, err)

	claims, err := ParseAccessToken(signed, testJWTConfig())
	require.NoError(t, err)
	assert.Empty(t, claims.CompanyID)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testJWTConfig())
	signed, err := issuer.IssueAccessToken(&models.User{ID: "usr-1", Email: "a@b.test"}, nil)
	require.NoError(t, err)

	other := testJWTConfig()
	other.SecretKey = "different-secret"
	_, err = ParseAccessToken(signed, other)
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Issuer = "someone-else"
	issuer := NewTokenIssuer(cfg)
	signed, err := issuer.IssueAccessToken(&models.User{ID: "usr-1", Email: "a@b.test"}, nil)
	require.NoError(t, err)

	_, err = ParseAccessToken(signed, testJWTConfig())
	assert.Error(t, err)
}

func TestIssueRefreshTokenIsOpaqueAndUnique(t *testing.T) {
	issuer := NewTokenIssuer(testJWTConfig())
	a, err := issuer.IssueRefreshToken()
	require.NoError(t, err)
	b, err := issuer.IssueRefreshToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 44)
}
