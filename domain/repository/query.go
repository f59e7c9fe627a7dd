// Package repository defines a small store-agnostic query description.
// Domain services build queries from options; the database layer in
// internal/database translates them into SQL.
package repository

import "fmt"

// Condition matches a column against a value, either by equality or by
// membership when the value is a slice.
type Condition struct {
	column  string
	operand any
	many    bool
}

func (c Condition) Field() string { return c.column }
func (c Condition) Value() any    { return c.operand }

// In reports whether the condition is a set-membership test.
func (c Condition) In() bool { return c.many }

func (c Condition) String() string {
	op := "="
	if c.many {
		op = "IN"
	}
	return fmt.Sprintf("%s %s %v", c.column, op, c.operand)
}

// Order sorts results by a column, ascending unless desc is set.
type Order struct {
	column string
	desc   bool
}

func (o Order) Field() string   { return o.column }
func (o Order) Ascending() bool { return !o.desc }

// Query is the accumulated result of applying options. A limit of zero
// means unbounded.
type Query struct {
	conditions []Condition
	orders     []Order
	limit      int
	offset     int
}

// Option mutates a Query under construction.
type Option func(*Query)

// Build runs the options over an empty query.
func Build(options ...Option) Query {
	var q Query
	for _, apply := range options {
		apply(&q)
	}
	return q
}

func (q Query) Conditions() []Condition {
	out := make([]Condition, len(q.conditions))
	copy(out, q.conditions)
	return out
}

func (q Query) Orders() []Order {
	out := make([]Order, len(q.orders))
	copy(out, q.orders)
	return out
}

func (q Query) LimitValue() int  { return q.limit }
func (q Query) OffsetValue() int { return q.offset }

// WithCondition requires column = value. The typed column filters in
// options.go are all built on this.
func WithCondition(column string, value any) Option {
	return func(q *Query) {
		q.conditions = append(q.conditions, Condition{column: column, operand: value})
	}
}

// WithConditionIn requires column IN (values). values must be a slice.
func WithConditionIn(column string, values any) Option {
	return func(q *Query) {
		q.conditions = append(q.conditions, Condition{column: column, operand: values, many: true})
	}
}

// WithOrderAsc sorts ascending by column.
func WithOrderAsc(column string) Option {
	return func(q *Query) {
		q.orders = append(q.orders, Order{column: column})
	}
}

// WithOrderDesc sorts descending by column.
func WithOrderDesc(column string) Option {
	return func(q *Query) {
		q.orders = append(q.orders, Order{column: column, desc: true})
	}
}

// WithLimit caps the number of results.
func WithLimit(n int) Option {
	return func(q *Query) { q.limit = n }
}

// WithOffset skips the first n results.
func WithOffset(n int) Option {
	return func(q *Query) { q.offset = n }
}

// WithPagination expands a page request into limit and offset options.
func WithPagination(limit, offset int) []Option {
	return []Option{WithLimit(limit), WithOffset(offset)}
}
