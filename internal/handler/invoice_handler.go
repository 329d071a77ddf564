package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerhawk/invoicing-api/internal/middleware"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/ledgerhawk/invoicing-api/internal/service"
)

// InvoiceHandler handles invoice CRUD within the caller's company.
type InvoiceHandler struct {
	invoices *service.InvoiceService
}

func NewInvoiceHandler(invoices *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	invoice, err := h.invoices.Create(c.Request.Context(), middleware.CurrentCompanyID(c), req)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
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
	parentInvoiceID, ok := uuidQuery(c, "parentInvoiceId", "ParentInvoiceId")
	if !ok {
		return
	}
	filter := models.InvoiceFilter{
		ID:              id,
		InvoiceNumber:   queryPtr(c, "invoiceNumber"),
		ClientID:        clientID,
		Status:          queryPtr(c, "status"),
		ParentInvoiceID: parentInvoiceID,
	}

	page, err := h.invoices.Get(c.Request.Context(), middleware.CurrentCompanyID(c), filter, p)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id", "Invoice")
	if !ok {
		return
	}
	var req service.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.invoices.Update(c.Request.Context(), id, middleware.CurrentCompanyID(c), req); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id", "Invoice")
	if !ok {
		return
	}

	if err := h.invoices.Delete(c.Request.Context(), id, middleware.CurrentCompanyID(c)); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
