package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterBuilderEmpty(t *testing.T) {
	fb := &filterBuilder{}
	assert.Equal(t, "TRUE", fb.Where())
	assert.Empty(t, fb.Args())
}

func TestFilterBuilderConjunctive(t *testing.T) {
	fb := &filterBuilder{}
	fb.Eq("company_id", "c1")
	fb.EqFold("city", "London")
	fb.DateEq("created_at", "2024-01-02")

	assert.Equal(t,
		"company_id = $1 AND LOWER(city) = LOWER($2) AND created_at::date = $3::date",
		fb.Where())
	assert.Equal(t, []any{"c1", "London", "2024-01-02"}, fb.Args())
}

func TestFilterBuilderRaw(t *testing.T) {
	fb := &filterBuilder{}
	fb.Eq("id", "x")
	n := fb.nextArg()
	assert.Equal(t, 2, n)
	fb.Raw("user_id IN (SELECT user_id FROM client_users WHERE client_id = $2)", "cl1")

	assert.Equal(t, "id = $1 AND user_id IN (SELECT user_id FROM client_users WHERE client_id = $2)", fb.Where())
	assert.Equal(t, []any{"x", "cl1"}, fb.Args())
}

func TestFilterBuilderPageArgs(t *testing.T) {
	fb := &filterBuilder{}
	fb.Eq("company_id", "c1")

	suffix := fb.pageArgs(3, 10)
	assert.Equal(t, "LIMIT $2 OFFSET $3", suffix)
	assert.Equal(t, []any{"c1", 10, 20}, fb.Args())
}
