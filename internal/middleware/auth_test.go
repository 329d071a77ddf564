package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerhawk/invoicing-api/internal/auth"
	"github.com/ledgerhawk/invoicing-api/internal/config"
	"github.com/ledgerhawk/invoicing-api/internal/models"
)

func authTestConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:           "test-secret",
		Issuer:              "invoicing-api",
		Audience:            "invoicing-api",
		ExpirationInMinutes: 15,
	}
}

func newAuthTestRouter(cfg config.JWTConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(cfg), func(c *gin.Context) {
		userID, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{
			"userId":    userID,
			"companyId": CurrentCompanyID(c),
			"roles":     CurrentRoles(c),
		})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	cfg := authTestConfig()
	companyID := "comp-1"
	issuer := auth.NewTokenIssuer(cfg)
	token, err := issuer.IssueAccessToken(&models.User{
		ID:        "usr-1",
		Email:     "john@test.test",
		CompanyID: &companyID,
	}, []string{"Admin"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthTestRouter(cfg)
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireAuthRejectsForeignSignature(t *testing.T) {
	otherCfg := authTestConfig()
	otherCfg.SecretKey = "different-secret"
	token, err := auth.NewTokenIssuer(otherCfg).IssueAccessToken(&models.User{ID: "usr-1"}, nil)
	require.NoError(t, err)

	r := newAuthTestRouter(authTestConfig())
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
