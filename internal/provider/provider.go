// Package provider defines the narrow record interfaces the board consumes
// (fetch, update, create, invalidate) together with a SQL-backed
// implementation, a read cache and an in-process invalidation bus.
package provider

import (
	"context"
	"fmt"
)

// MaxPageSize is the largest page a Fetch may request. Bulk joins in the
// aggregator rely on it.
const MaxPageSize = 10000

// DefaultPageSize is used when a query leaves the page size unset.
const DefaultPageSize = 25

// Op is a filter comparison operator.
type Op string

const (
	OpEq  Op = "eq"
	OpIn  Op = "in"
	OpGte Op = "gte"
	OpLte Op = "lte"
)

// Filter is one (field, operator, value) predicate. Filters in a query are ANDed.
type Filter struct {
	Field string
	Op    Op
	Value any
}

func Eq(field string, v any) Filter  { return Filter{Field: field, Op: OpEq, Value: v} }
func In(field string, v any) Filter  { return Filter{Field: field, Op: OpIn, Value: v} }
func Gte(field string, v any) Filter { return Filter{Field: field, Op: OpGte, Value: v} }
func Lte(field string, v any) Filter { return Filter{Field: field, Op: OpLte, Value: v} }

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort orders results by one field.
type Sort struct {
	Field string
	Dir   Direction
}

func SortAsc(field string) Sort  { return Sort{Field: field, Dir: Asc} }
func SortDesc(field string) Sort { return Sort{Field: field, Dir: Desc} }

// Pagination selects one zero-based page of Size records.
type Pagination struct {
	Index int
	Size  int
}

// Query is the full set of list parameters of a Fetch call.
type Query struct {
	Filters    []Filter
	Sort       []Sort
	Pagination Pagination
}

// Record is one fetched row keyed by column name.
type Record map[string]any

// Page is one page of fetched records and the total count of matching rows.
type Page struct {
	Records []Record
	Total   int
}

// Fetcher reads a page of records from a resource.
type Fetcher interface {
	Fetch(ctx context.Context, resource string, q Query) (Page, error)
}

// Updater applies a partial update: only the named fields are modified.
type Updater interface {
	Update(ctx context.Context, resource string, id int64, fields map[string]any) error
}

// Creator appends a record to a resource.
type Creator interface {
	Create(ctx context.Context, resource string, fields map[string]any) error
}

// Invalidator discards cached list results of a resource so the next read
// refetches from the backend.
type Invalidator interface {
	Invalidate(resource string)
}

// DataProvider is the full backend surface used by the board.
type DataProvider interface {
	Fetcher
	Updater
	Creator
}

// validate checks query bounds shared by every Fetcher implementation.
func (q Query) validate() error {
	if q.Pagination.Index < 0 {
		return fmt.Errorf("page index must be >= 0, got %d", q.Pagination.Index)
	}
	if q.Pagination.Size < 0 || q.Pagination.Size > MaxPageSize {
		return fmt.Errorf("page size must be within [0, %d], got %d", MaxPageSize, q.Pagination.Size)
	}
	for _, f := range q.Filters {
		switch f.Op {
		case OpEq, OpIn, OpGte, OpLte:
		default:
			return fmt.Errorf("unsupported filter operator %q on %s", f.Op, f.Field)
		}
	}
	for _, s := range q.Sort {
		if s.Dir != Asc && s.Dir != Desc {
			return fmt.Errorf("unsupported sort direction %q on %s", s.Dir, s.Field)
		}
	}
	return nil
}

func (q Query) pageSize() int {
	if q.Pagination.Size == 0 {
		return DefaultPageSize
	}
	return q.Pagination.Size
}
