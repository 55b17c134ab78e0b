package listing

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPerPage is the page size used when none was requested.
	DefaultPerPage = 10

	// SupersetCap bounds how many records the local filtering fallback
	// may fetch before filtering, sorting and paginating in memory.
	SupersetCap = 1000
)

// AllowedPageSizes are the page sizes a list screen may request.
var AllowedPageSizes = []int{5, 10, 25, 50, 100}

// SortDirection of a list sort pass.
type SortDirection string

const (
	// Ascending sort direction.
	Ascending SortDirection = "asc"
	// Descending sort direction.
	Descending SortDirection = "desc"
)

// Params holds the interactive state of one list request.
type Params struct {
	Page    int
	PerPage int
	Sort    string
	Dir     SortDirection
	Search  string
	Filters map[string]string
}

// ParseValues extracts list parameters from a query string, clamping page
// to >= 1 and the page size to the allowed set. Unknown query keys are
// collected as entity specific filters.
func ParseValues(values url.Values) Params {
	p := Params{
		Page:    1,
		PerPage: DefaultPerPage,
		Dir:     Ascending,
		Filters: map[string]string{},
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		p.Page = page
	}

	size := values.Get("per_page")
	if size == "" {
		size = values.Get("size")
	}

	if perPage, err := strconv.Atoi(size); err == nil {
		p.PerPage = ClampPageSize(perPage)
	}

	p.Search = values.Get("search")
	p.Sort = values.Get("sort")

	if values.Get("dir") == string(Descending) {
		p.Dir = Descending
	}

	for key, vals := range values {
		switch key {
		case "page", "per_page", "size", "search", "sort", "dir":
			continue
		}

		if len(vals) > 0 && vals[0] != "" {
			p.Filters[key] = vals[0]
		}
	}

	return p
}

// ClampPageSize snaps a requested page size to the allowed set,
// falling back to the default for sizes not in the set.
func ClampPageSize(size int) int {
	for _, allowed := range AllowedPageSizes {
		if size == allowed {
			return size
		}
	}

	return DefaultPerPage
}

// Offset returns the record offset of the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Filter returns the named filter value, empty when not set.
func (p Params) Filter(name string) string {
	return p.Filters[name]
}

// HasFilters reports whether any non-search filter is active.
func (p Params) HasFilters() bool {
	return len(p.Filters) > 0
}
