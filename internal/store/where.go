package store

import (
	"fmt"
	"strings"
)

// WhereBuilder accumulates parameterized SQL conditions joined with AND. It
// keeps the filter semantics out of string concatenation: every value goes
// through a numbered placeholder.
type WhereBuilder struct {
	conditions []string
	args       []any
	argIndex   int
}

// NewWhereBuilder returns an empty builder whose first placeholder is $1.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{argIndex: 1}
}

// Add appends an equality condition on column.
func (wb *WhereBuilder) Add(column string, value any) {
	wb.conditions = append(wb.conditions, fmt.Sprintf("%s = $%d", column, wb.argIndex))
	wb.args = append(wb.args, value)
	wb.argIndex++
}

// AddClause appends a raw condition whose %d verbs are replaced with
// consecutive placeholder numbers, one per value.
func (wb *WhereBuilder) AddClause(clause string, values ...any) {
	nums := make([]any, len(values))
	for i := range values {
		nums[i] = wb.argIndex + i
	}
	wb.conditions = append(wb.conditions, fmt.Sprintf(clause, nums...))
	wb.args = append(wb.args, values...)
	wb.argIndex += len(values)
}

// NextArgIndex returns the placeholder number the next condition will use.
func (wb *WhereBuilder) NextArgIndex() int {
	return wb.argIndex
}

// Build renders the WHERE clause (with a leading space) and its arguments.
// Both are empty when no conditions were added.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(wb.conditions, " AND "), wb.args
}
