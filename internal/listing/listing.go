// Package listing implements the shared pagination, sorting and filtering
// contract of the list endpoints: every paginated query is exactly two round
// trips to the store (data, then count over the same filters) and every
// response uses the same envelope.
package listing

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

type Page struct {
	Number int
	Limit  int
	Offset int
}

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ResolvePage never yields a zero or negative offset: absent or non-numeric
// values fall back to page 1 and the entity default limit.
func ResolvePage(pageRaw, limitRaw string, defaultLimit int) Page {
	page := ParseIntDefault(pageRaw, 1)
	if page < 1 {
		page = 1
	}
	limit := ParseIntDefault(limitRaw, defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	return Page{Number: page, Limit: limit, Offset: (page - 1) * limit}
}

type Sort struct {
	Column    string
	Direction string
}

// ResolveSort maps caller-supplied sort keys through an allow-list of safe
// column fragments. Ordering applies only when both sortBy and sortOrder are
// present and valid; anything else means no ordering at all.
func ResolveSort(allowed map[string]string, sortBy, sortOrder string) (Sort, bool) {
	if sortBy == "" || sortOrder == "" {
		return Sort{}, false
	}
	column, ok := allowed[sortBy]
	if !ok {
		return Sort{}, false
	}
	switch strings.ToLower(sortOrder) {
	case "asc":
		return Sort{Column: column, Direction: "ASC"}, true
	case "desc":
		return Sort{Column: column, Direction: "DESC"}, true
	}
	return Sort{}, false
}

func (s Sort) OrderClause() string {
	return s.Column + " " + s.Direction
}

type Filter struct {
	Column string
	Value  string
}

// ApplyFilters appends a substring predicate per non-empty filter, combined
// with AND. An empty value is treated as an absent filter.
func ApplyFilters(q *gorm.DB, filters []Filter) *gorm.DB {
	for _, f := range filters {
		if f.Value == "" {
			continue
		}
		q = q.Where(f.Column+" LIKE ?", "%"+f.Value+"%")
	}
	return q
}

type Envelope struct {
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Data       any   `json:"data"`
}

func NewEnvelope(total int64, p Page, data any) Envelope {
	return Envelope{
		Total:      total,
		TotalPages: (total + int64(p.Limit) - 1) / int64(p.Limit),
		Page:       p.Number,
		Limit:      p.Limit,
		Data:       data,
	}
}
