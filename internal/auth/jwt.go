// Package auth issues access and refresh tokens and orchestrates the
// login / refresh / revoke flows.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ledgerhawk/invoicing-api/internal/config"
	"github.com/ledgerhawk/invoicing-api/internal/models"
)

// Claims is the access-token payload. CompanyID is empty for users not
// attached to any tenant.
type Claims struct {
	UserID    string   `json:"userId"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	GivenName string   `json:"givenName"`
	CompanyID string   `json:"companyId"`
	Roles     []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenIssuer creates signed access tokens and opaque refresh tokens.
type TokenIssuer struct {
	cfg config.JWTConfig
}

func NewTokenIssuer(cfg config.JWTConfig) *TokenIssuer {
	return &TokenIssuer{cfg: cfg}
}

// IssueAccessToken signs an HS256 token carrying the user's identity and one
// role entry per role, expiring ExpirationInMinutes from now.
func (t *TokenIssuer) IssueAccessToken(user *models.User, roles []string) (string, error) {
	companyID := ""
	if user.CompanyID != nil {
		companyID = *user.CompanyID
	}
	now := time.Now().UTC()
	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.FirstName,
		GivenName: user.LastName,
		CompanyID: companyID,
		Roles:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(t.cfg.ExpirationInMinutes) * time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(t.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// IssueRefreshToken returns 32 random bytes, base64-encoded. The value is a
// pure lookup key and carries no claims.
func (t *TokenIssuer) IssueRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// ParseAccessToken validates the signature, issuer and audience of a token
// and returns its claims. Used by the auth middleware.
func ParseAccessToken(tokenString string, cfg config.JWTConfig) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(cfg.SecretKey), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithAudience(cfg.Audience))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
