package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerhawk/invoicing-api/internal/middleware"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/ledgerhawk/invoicing-api/internal/service"
)

// ClientHandler handles client CRUD within the caller's company.
type ClientHandler struct {
	clients *service.ClientService
}

func NewClientHandler(clients *service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req service.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	client, err := h.clients.Create(c.Request.Context(), middleware.CurrentCompanyID(c), req)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Get(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	id, ok := uuidQuery(c, "id", "Id")
	if !ok {
		return
	}
	filter := models.ClientFilter{
		ID:       id,
		City:     queryPtr(c, "city"),
		Address:  queryPtr(c, "address"),
		Postcode: queryPtr(c, "postcode"),
	}

	page, err := h.clients.Get(c.Request.Context(), middleware.CurrentCompanyID(c), filter, p)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id", "Client")
	if !ok {
		return
	}
	var req service.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.clients.Update(c.Request.Context(), id, middleware.CurrentCompanyID(c), req); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id", "Client")
	if !ok {
		return
	}

	if err := h.clients.Delete(c.Request.Context(), id, middleware.CurrentCompanyID(c)); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
