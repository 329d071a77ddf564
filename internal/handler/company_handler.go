package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerhawk/invoicing-api/internal/middleware"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/ledgerhawk/invoicing-api/internal/service"
)

// CompanyHandler handles tenant CRUD and membership.
type CompanyHandler struct {
	companies *service.CompanyService
}

func NewCompanyHandler(companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req service.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OwnerID == nil {
		if callerID, ok := middleware.CurrentUserID(c); ok {
			req.OwnerID = &callerID
		}
	}

	company, err := h.companies.Create(c.Request.Context(), req)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	id, ok := uuidQuery(c, "id", "Id")
	if !ok {
		return
	}
	ownerID, ok := uuidQuery(c, "ownerId", "OwnerId")
	if !ok {
		return
	}
	filter := models.CompanyFilter{
		ID:      id,
		Name:    queryPtr(c, "name"),
		Slug:    queryPtr(c, "slug"),
		OwnerID: ownerID,
	}

	page, err := h.companies.Get(c.Request.Context(), filter, p)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id", "Company")
	if !ok {
		return
	}
	var req service.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	callerID, _ := middleware.CurrentUserID(c)

	if err := h.companies.Update(c.Request.Context(), id, req, callerID, middleware.CurrentCompanyID(c)); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id", "Company")
	if !ok {
		return
	}
	callerID, _ := middleware.CurrentUserID(c)

	if err := h.companies.Delete(c.Request.Context(), id, callerID, middleware.CurrentCompanyID(c)); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CompanyHandler) AddUser(c *gin.Context) {
	companyID, ok := uuidParam(c, "id", "Company")
	if !ok {
		return
	}
	userID, ok := uuidParam(c, "userId", "User")
	if !ok {
		return
	}

	if err := h.companies.AddUser(c.Request.Context(), companyID, userID); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CompanyHandler) RemoveUser(c *gin.Context) {
	companyID, ok := uuidParam(c, "id", "Company")
	if !ok {
		return
	}
	userID, ok := uuidParam(c, "userId", "User")
	if !ok {
		return
	}

	if err := h.companies.RemoveUser(c.Request.Context(), companyID, userID); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
