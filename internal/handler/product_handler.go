package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerhawk/invoicing-api/internal/middleware"
	"github.com/ledgerhawk/invoicing-api/internal/models"
	"github.com/ledgerhawk/invoicing-api/internal/service"
)

// ProductHandler handles product CRUD within the caller's company.
type ProductHandler struct {
	products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.products.Create(c.Request.Context(), middleware.CurrentCompanyID(c), req)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	id, ok := uuidQuery(c, "id", "Id")
	if !ok {
		return
	}
	filter := models.ProductFilter{
		ID:   id,
		Name: queryPtr(c, "name"),
	}

	page, err := h.products.Get(c.Request.Context(), middleware.CurrentCompanyID(c), filter, p)
	if err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id", "Product")
	if !ok {
		return
	}
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.products.Update(c.Request.Context(), id, middleware.CurrentCompanyID(c), req); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id", "Product")
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), id, middleware.CurrentCompanyID(c)); err != nil {
		middleware.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
