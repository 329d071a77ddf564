package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerhawk/invoicing-api/internal/middleware"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/ledgerhawk/invoicing-api/internal/service"
)

// InvoiceItemHandler handles invoice line item CRUD.
type InvoiceItemHandler struct {
	items *service.InvoiceItemService
}

func NewInvoiceItemHandler(items *service.InvoiceItemService) *InvoiceItemHandler {
	return &InvoiceItemHandler{items: items}
}

func (h *InvoiceItemHandler) Create(c *gin.Context) {
	var req service.CreateInvoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.items.Create(c.Request.Context(), req)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *InvoiceItemHandler) Get(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	id, ok := uuidQuery(c, "id", "Id")
	if !ok {
		return
	}
	invoiceID, ok := uuidQuery(c, "invoiceId", "InvoiceId")
	if !ok {
		return
	}
	productID, ok := uuidQuery(c, "productId", "ProductId")
	if !ok {
		return
	}
	filter := models.InvoiceItemFilter{
		ID:        id,
		InvoiceID: invoiceID,
		ProductID: productID,
	}

	page, err := h.items.Get(c.Request.Context(), filter, p)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *InvoiceItemHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id", "Invoice item")
	if !ok {
		return
	}
	var req service.UpdateInvoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.items.Update(c.Request.Context(), id, req); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *InvoiceItemHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id", "Invoice item")
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
