package models

// Pagination defaults applied when the caller omits page or pageSize.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PaginationRequest carries optional paging parameters. Nil fields fall back
// to the defaults above.
type PaginationRequest struct {
	Page     *int
	PageSize *int
}

// Resolve returns the effective page and pageSize, clamping pageSize to
// MaxPageSize and rejecting non-positive values in favour of the defaults.
func (p *PaginationRequest) Resolve() (page, pageSize int) {
	page = DefaultPage
	pageSize = DefaultPageSize
	if p == nil {
		return page, pageSize
	}
	if p.Page != nil && *p.Page > 0 {
		page = *p.Page
	}
	if p.PageSize != nil && *p.PageSize > 0 {
		pageSize = *p.PageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// PagedList is one page of results plus the unpaged total.
type PagedList[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
}
