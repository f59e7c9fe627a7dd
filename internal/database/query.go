package database

import (
	"gorm.io/gorm"
)

// cond is one accumulated WHERE clause with its bind arguments.
type cond struct {
	expr string
	args []any
}

// Query builds WHERE clauses, ordering, and pagination for tables that have
// no GORM model, like the per-collection vector tables whose names are only
// known at runtime. Methods return a copy, so a partially built Query can be
// reused as a base.
type Query struct {
	conds  []cond
	orders []string
	limit  int
	offset int
}

// NewQuery creates an empty Query.
func NewQuery() Query {
	return Query{}
}

func (q Query) where(expr string, args ...any) Query {
	conds := make([]cond, len(q.conds), len(q.conds)+1)
	copy(conds, q.conds)
	q.conds = append(conds, cond{expr: expr, args: args})
	return q
}

// Equal adds an equality condition.
func (q Query) Equal(field string, value any) Query {
	return q.where(field+" = ?", value)
}

// NotEqual adds a not-equal condition.
func (q Query) NotEqual(field string, value any) Query {
	return q.where(field+" != ?", value)
}

// GreaterThan adds a greater-than condition.
func (q Query) GreaterThan(field string, value any) Query {
	return q.where(field+" > ?", value)
}

// GreaterThanOrEqual adds a greater-than-or-equal condition.
func (q Query) GreaterThanOrEqual(field string, value any) Query {
	return q.where(field+" >= ?", value)
}

// LessThan adds a less-than condition.
func (q Query) LessThan(field string, value any) Query {
	return q.where(field+" < ?", value)
}

// LessThanOrEqual adds a less-than-or-equal condition.
func (q Query) LessThanOrEqual(field string, value any) Query {
	return q.where(field+" <= ?", value)
}

// Like adds a LIKE condition.
func (q Query) Like(field, pattern string) Query {
	return q.where(field+" LIKE ?", pattern)
}

// In adds an IN condition. values is a slice.
func (q Query) In(field string, values any) Query {
	return q.where(field+" IN ?", values)
}

// IsNull adds an IS NULL condition.
func (q Query) IsNull(field string) Query {
	return q.where(field + " IS NULL")
}

func (q Query) order(field, direction string) Query {
	orders := make([]string, len(q.orders), len(q.orders)+1)
	copy(orders, q.orders)
	q.orders = append(orders, field+" "+direction)
	return q
}

// OrderAsc adds ascending ordering on the field.
func (q Query) OrderAsc(field string) Query {
	return q.order(field, "ASC")
}

// OrderDesc adds descending ordering on the field.
func (q Query) OrderDesc(field string) Query {
	return q.order(field, "DESC")
}

// Limit caps the number of results. Zero means no limit.
func (q Query) Limit(limit int) Query {
	q.limit = limit
	return q
}

// Offset skips the first offset results.
func (q Query) Offset(offset int) Query {
	q.offset = offset
	return q
}

// Apply attaches the accumulated conditions to a GORM session.
func (q Query) Apply(db *gorm.DB) *gorm.DB {
	result := db

	for _, c := range q.conds {
		result = result.Where(c.expr, c.args...)
	}
	for _, o := range q.orders {
		result = result.Order(o)
	}
	if q.limit > 0 {
		result = result.Limit(q.limit)
	}
	if q.offset > 0 {
		result = result.Offset(q.offset)
	}

	return result
}
