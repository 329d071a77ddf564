// Package middleware provides the gin middleware stack and the shared
// response helpers for the API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledgerhawk/invoicing-api/internal/auth"
	"github.com/ledgerhawk/invoicing-api/internal/config"
)

const (
	ctxUserID    = "userId"
	ctxEmail     = "email"
	ctxCompanyID = "companyId"
	ctxRoles     = "roles"
)

// RequireAuth validates the bearer access token and stores its claims on the
// request context.
func RequireAuth(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			RespondWithError(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			RespondWithError(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := auth.ParseAccessToken(parts[1], cfg)
		if err != nil {
			RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxCompanyID, claims.CompanyID)
		c.Set(ctxRoles, claims.Roles)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id.
func CurrentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return "", false
	}
	return userID.(string), true
}

// CurrentCompanyID returns the caller's tenant, empty for users without one.
func CurrentCompanyID(c *gin.Context) string {
	companyID, exists := c.Get(ctxCompanyID)
	if !exists {
		return ""
	}
	return companyID.(string)
}

// CurrentRoles returns the caller's role claims.
func CurrentRoles(c *gin.Context) []string {
	roles, exists := c.Get(ctxRoles)
	if !exists {
		return nil
	}
	return roles.([]string)
}
