package repository

import (
	"fmt"
	"strings"
)

// filterBuilder accumulates WHERE conditions and their positional arguments.
// Conditions are always conjunctive.
type filterBuilder struct {
	conds []string
	args  []any
}

// Eq adds an exact-match condition.
func (f *filterBuilder) Eq(column string, value any) {
	f.args = append(f.args, value)
	f.conds = append(f.conds, fmt.Sprintf("%s = $%d", column, len(f.args)))
}

// EqFold adds a case-insensitive exact-match condition.
func (f *filterBuilder) EqFold(column, value string) {
	f.args = append(f.args, value)
	f.conds = append(f.conds, fmt.Sprintf("LOWER(%s) = LOWER($%d)", column, len(f.args)))
}

// DateEq matches a timestamp column on calendar date only.
func (f *filterBuilder) DateEq(column string, value any) {
	f.args = append(f.args, value)
	f.conds = append(f.conds, fmt.Sprintf("%s::date = $%d::date", column, len(f.args)))
}

// Raw adds a preformatted condition; placeholders must use nextArg.
func (f *filterBuilder) Raw(cond string, args ...any) {
	f.args = append(f.args, args...)
	f.conds = append(f.conds, cond)
}

// nextArg returns the placeholder index the next argument will receive.
func (f *filterBuilder) nextArg() int {
	return len(f.args) + 1
}

// Where renders the accumulated conditions, or an always-true clause when
// none were added so queries can unconditionally append it.
func (f *filterBuilder) Where() string {
	if len(f.conds) == 0 {
		return "TRUE"
	}
	return strings.Join(f.conds, " AND ")
}

// Args returns the positional arguments in placeholder order.
func (f *filterBuilder) Args() []any {
	return f.args
}

// pageArgs appends LIMIT/OFFSET arguments and returns the paging suffix.
func (f *filterBuilder) pageArgs(page, pageSize int) string {
	f.args = append(f.args, pageSize, (page-1)*pageSize)
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", len(f.args)-1, len(f.args))
}
