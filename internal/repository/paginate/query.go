package paginate

import (
	"math"
	"strconv"
	"strings"
)

// Placeholders selects how positional bind parameters are spelled in SQL text.
type Placeholders int

const (
	// Dollar renders $1, $2, ... (PostgreSQL).
	Dollar Placeholders = iota
	// Question renders ? for every parameter (SQLite).
	Question
)

// Format returns the placeholder for the n-th (1-based) argument.
func (p Placeholders) Format(n int) string {
	if p == Question {
		return "?"
	}
	return "$" + strconv.Itoa(n)
}

// Query is a base query: a SELECT over the resource with its filter already applied.
// OrderBy names columns of the SELECT list and is applied on the outside of any decoration,
// so it must reference output column names only.
type Query struct {
	SQL          string
	Args         []any
	OrderBy      string
	Placeholders Placeholders
}

// Render returns the base query as a single ordered statement.
func (q Query) Render() (string, []any) {
	if q.OrderBy == "" {
		return q.SQL, q.Args
	}
	return q.SQL + " ORDER BY " + q.OrderBy, q.Args
}

// Paginated decorates a base query with a synthetic total-count column and a LIMIT/OFFSET
// window. It is a pure descriptor; nothing is executed until LoadPage.
type Paginated struct {
	base     Query
	page     int64
	pageSize int64
	offset   int64
}

// Paginate builds the page descriptor for the given 1-based page. Arguments are not validated,
// but an offset that would overflow int64 saturates at math.MaxInt64 so the window stays empty.
func Paginate(base Query, page, pageSize int64) Paginated {
	return Paginated{
		base:     base,
		page:     page,
		pageSize: pageSize,
		offset:   offset(page, pageSize),
	}
}

func offset(page, pageSize int64) int64 {
	if page <= 1 || pageSize <= 0 {
		return 0
	}
	if page-1 > math.MaxInt64/pageSize {
		return math.MaxInt64
	}
	return (page - 1) * pageSize
}

func (p Paginated) Page() int64     { return p.page }
func (p Paginated) PageSize() int64 { return p.pageSize }
func (p Paginated) Offset() int64   { return p.offset }

// Render returns the windowed statement. Its result rows are the base query's columns followed
// by one BIGINT column holding the number of rows the base query matches before LIMIT/OFFSET.
func (p Paginated) Render() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT *, COUNT(*) OVER () FROM (")
	b.WriteString(p.base.SQL)
	b.WriteString(") AS paged")
	if p.base.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(p.base.OrderBy)
	}
	n := len(p.base.Args)
	b.WriteString(" LIMIT ")
	b.WriteString(p.base.Placeholders.Format(n + 1))
	b.WriteString(" OFFSET ")
	b.WriteString(p.base.Placeholders.Format(n + 2))

	args := make([]any, 0, n+2)
	args = append(args, p.base.Args...)
	args = append(args, p.pageSize, p.offset)
	return b.String(), args
}

// CountSQL returns a plain COUNT(*) over the unbounded base query.
func (p Paginated) CountSQL() (string, []any) {
	return "SELECT COUNT(*) FROM (" + p.base.SQL + ") AS counted", p.base.Args
}
