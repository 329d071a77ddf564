package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerhawk/invoicing-api/internal/auth"
	"github.com/ledgerhawk/invoicing-api/internal/middleware"
)

// AuthHandler handles registration, login, token refresh and revocation.
type AuthHandler struct {
	auth *auth.Service
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{auth: service}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshLoginRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.auth.Register(c.Request.Context(), req); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) RefreshLogin(c *gin.Context) {
	var req RefreshLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair, err := h.auth.RefreshLogin(c.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) RevokeAll(c *gin.Context) {
	id, ok := uuidParam(c, "id", "User")
	if !ok {
		return
	}
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.auth.RevokeAllForUser(c.Request.Context(), id, callerID); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
