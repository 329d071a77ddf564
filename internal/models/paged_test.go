package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestPaginationResolve(t *testing.T) {
	tests := []struct {
		name         string
		req          *PaginationRequest
		wantPage     int
		wantPageSize int
	}{
		{"nil request", nil, 1, 10},
		{"empty request", &PaginationRequest{}, 1, 10},
		{"explicit values", &PaginationRequest{Page: intPtr(3), PageSize: intPtr(25)}, 3, 25},
		{"non-positive falls back", &PaginationRequest{Page: intPtr(0), PageSize: intPtr(-5)}, 1, 10},
		{"page size clamped", &PaginationRequest{PageSize: intPtr(500)}, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := tt.req.Resolve()
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}
