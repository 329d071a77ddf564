// Package handler contains the gin HTTP handlers. Handlers bind and sanity
// check the request, pull the caller's identity from the bearer claims, and
// delegate to the service layer; field-level validation lives there.
package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ledgerhawk/invoicing-api/internal/apperr"
	"github.com/ledgerhawk/invoicing-api/internal/middleware"
	"github.com/ledgerhawk/invoicing-api/internal/models"
)

var validate = validator.New()

// uuidParam reads a path parameter that must be a UUID. A malformed value can
// never match a row, so it reports the same not-found outcome as a missing one.
func uuidParam(c *gin.Context, name, entity string) (string, bool) {
	v := c.Param(name)
	if validate.Var(v, "uuid") != nil {
		middleware.WriteError(c, apperr.NotFound(entity))
		return "", false
	}
	return v, true
}

// uuidQuery reads an optional query parameter that must be a UUID when
// present. On a malformed value it writes the validation problem and
// reports false, so the garbage never reaches a uuid column.
func uuidQuery(c *gin.Context, name, field string) (*string, bool) {
	v, ok := c.GetQuery(name)
	if !ok {
		return nil, true
	}
	if validate.Var(v, "uuid") != nil {
		middleware.RespondWithValidationProblem(c, map[string][]string{
			field: {field + " must be a valid uuid"},
		})
		return nil, false
	}
	return &v, true
}

// queryPtr returns the query parameter's value, or nil when it is absent.
// Present-but-empty still filters, matching rows with an empty column.
func queryPtr(c *gin.Context, name string) *string {
	if v, ok := c.GetQuery(name); ok {
		return &v
	}
	return nil
}

// dateQuery parses an optional yyyy-mm-dd query parameter.
func dateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// pagination parses the page and pageSize query parameters. On malformed
// input it writes the validation problem and reports false.
func pagination(c *gin.Context) (*models.PaginationRequest, bool) {
	p := &models.PaginationRequest{}
	errs := map[string][]string{}
	if raw, ok := c.GetQuery("page"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs["Page"] = append(errs["Page"], "Page must be an integer")
		} else {
			p.Page = &n
		}
	}
	if raw, ok := c.GetQuery("pageSize"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs["PageSize"] = append(errs["PageSize"], "PageSize must be an integer")
		} else {
			p.PageSize = &n
		}
	}
	if len(errs) > 0 {
		middleware.RespondWithValidationProblem(c, errs)
		return nil, false
	}
	return p, true
}
