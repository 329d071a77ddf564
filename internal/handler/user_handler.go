package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerhawk/invoicing-api/internal/middleware"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/ledgerhawk/invoicing-api/internal/service"
)

// UserHandler handles user listing, profile updates and removal. Listing is
// always scoped to the caller's company.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Get(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	createdAt, err := dateQuery(c, "createdAt")
	if err != nil {
		middleware.RespondWithValidationProblem(c, map[string][]string{
			"CreatedAt": {"CreatedAt must be a date in yyyy-mm-dd format"},
		})
		return
	}
	id, ok := uuidQuery(c, "id", "Id")
	if !ok {
		return
	}
	clientID, ok := uuidQuery(c, "clientId", "ClientId")
	if !ok {
		return
	}
	filter := models.UserFilter{
		ID:          id,
		Email:       queryPtr(c, "email"),
		UserName:    queryPtr(c, "userName"),
		FirstName:   queryPtr(c, "firstName"),
		LastName:    queryPtr(c, "lastName"),
		PhoneNumber: queryPtr(c, "phoneNumber"),
		RoleName:    queryPtr(c, "roleName"),
		ClientID:    clientID,
		CreatedAt:   createdAt,
	}

	page, err := h.users.Get(c.Request.Context(), middleware.CurrentCompanyID(c), filter, p)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id", "User")
	if !ok {
		return
	}
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.users.Update(c.Request.Context(), id, middleware.CurrentCompanyID(c), req); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id", "User")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id, middleware.CurrentCompanyID(c)); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
