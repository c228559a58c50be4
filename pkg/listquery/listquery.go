// Package listquery holds the paging, sorting and row-selection rules shared
// by every admin list endpoint.
package listquery

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrInvalidSort  = errors.New("invalid sort")
	ErrNoSelection  = errors.New("no ids selected")
	ErrTooManyItems = errors.New("too many ids selected")
)

// Page is a normalized page request.
type Page struct {
	Number int
	Limit  int
}

// Metadata is the pagination block returned with every list response.
type Metadata struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
	Limit       int `json:"limit"`
}

// ParsePage reads raw page/limit query values. Missing or malformed values
// fall back to page 1 and DefaultLimit; limit is clamped to MaxLimit.
func ParsePage(rawPage, rawLimit string) Page {
	p := Page{Number: 1, Limit: DefaultLimit}

	if n, err := strconv.Atoi(strings.TrimSpace(rawPage)); err == nil && n >= 1 {
		p.Number = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && n >= 1 {
		p.Limit = min(n, MaxLimit)
	}
	return p
}

// Offset is the SQL OFFSET for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Meta builds the response metadata for a result set of total rows.
func (p Page) Meta(total int) Metadata {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return Metadata{
		CurrentPage: p.Number,
		TotalPages:  totalPages,
		Total:       total,
		Limit:       p.Limit,
	}
}

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Sort is a column plus direction.
type Sort struct {
	Column string
	Order  Order
}

// Toggle applies a header click: the same column flips direction, another
// column starts descending.
func (s Sort) Toggle(column string) Sort {
	if s.Column == column {
		if s.Order == Asc {
			return Sort{Column: column, Order: Desc}
		}
		return Sort{Column: column, Order: Asc}
	}
	return Sort{Column: column, Order: Desc}
}

// Columns whitelists sortable API column names and maps them to SQL.
// IDColumn is the tie-breaker, "id" when empty; set it when the query joins
// tables that share the column name.
type Columns struct {
	Default  string
	SQL      map[string]string
	IDColumn string
}

// Parse resolves sortBy/sortOrder and then applies toggle if present.
func (c Columns) Parse(sortBy, sortOrder, toggle string) (Sort, error) {
	s := Sort{Column: c.Default, Order: Desc}

	if sortBy != "" {
		if _, ok := c.SQL[sortBy]; !ok {
			return Sort{}, fmt.Errorf("%w: unknown column %q", ErrInvalidSort, sortBy)
		}
		s.Column = sortBy
	}

	switch Order(strings.ToLower(sortOrder)) {
	case "":
	case Asc:
		s.Order = Asc
	case Desc:
		s.Order = Desc
	default:
		return Sort{}, fmt.Errorf("%w: unknown order %q", ErrInvalidSort, sortOrder)
	}

	if toggle != "" {
		if _, ok := c.SQL[toggle]; !ok {
			return Sort{}, fmt.Errorf("%w: unknown column %q", ErrInvalidSort, toggle)
		}
		s = s.Toggle(toggle)
	}

	return s, nil
}

// OrderBy renders an ORDER BY clause body. Only whitelisted expressions are
// emitted, so the result is safe to splice into SQL. The id column breaks
// ties.
func (c Columns) OrderBy(s Sort) string {
	expr, ok := c.SQL[s.Column]
	if !ok {
		expr = c.SQL[c.Default]
	}
	dir := "DESC"
	if s.Order == Asc {
		dir = "ASC"
	}
	id := c.IDColumn
	if id == "" {
		id = "id"
	}
	return expr + " " + dir + ", " + id + " " + dir
}
