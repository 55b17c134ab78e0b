// Package resource implements the shared list query used by every
// paginated API collection. The query runs in the database when all
// requested filters map to columns, and falls back to fetching a capped
// superset and filtering in memory when they do not.
package resource

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/silsila-idreesia/portal/listing"
)

// ListSpec describes how one entity collection answers list requests.
type ListSpec[T any] struct {
	// Searchable are the columns matched (case insensitive, substring)
	// against the search term.
	Searchable []string
	// Sortable maps the exposed sort keys onto database columns.
	Sortable map[string]string
	// DefaultSort is the sort key used when the request names none.
	DefaultSort string
	// Filterable maps the exposed filter keys onto columns compared for
	// exact equality.
	Filterable map[string]string
	// Preloads are GORM associations loaded with every row.
	Preloads []string
	// LocalMatch decides whether a record passes filters that have no
	// column mapping. Required for specs whose screens filter on derived
	// values; nil means unknown filters are ignored.
	LocalMatch func(item T, filters map[string]string) bool
	// LocalKey produces the in-memory sort key per sort name for the
	// fallback path. Only consulted when LocalMatch runs.
	LocalKey func(item T, sort string) listing.Key
}

// List answers one paginated list request.
func (spec ListSpec[T]) List(db *gorm.DB, p listing.Params) (listing.Envelope[T], error) {
	var zero listing.Envelope[T]

	query := db.Model(new(T))
	for _, preload := range spec.Preloads {
		query = query.Preload(preload)
	}

	query = spec.applySearch(query, p.Search)

	local := false

	for key, val := range p.Filters {
		col, ok := spec.Filterable[key]
		if !ok {
			if spec.LocalMatch != nil {
				local = true
			}

			continue
		}

		query = query.Where(fmt.Sprintf("%s = ?", col), val)
	}

	if local {
		return spec.listLocal(query, p)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return zero, fmt.Errorf("failed to count records: %w", err)
	}

	query = spec.applyOrder(query, p)

	var items []T
	err := query.
		Limit(p.PerPage).
		Offset(p.Offset()).
		Find(&items).Error
	if err != nil {
		return zero, fmt.Errorf("failed to list records: %w", err)
	}

	return listing.NewEnvelope(items, p.Page, p.PerPage, int(total)), nil
}

// listLocal fetches a capped superset and delegates filtering, sorting and
// pagination to the in-memory path. The page metadata reflects the filtered
// set, not the superset.
func (spec ListSpec[T]) listLocal(query *gorm.DB, p listing.Params) (listing.Envelope[T], error) {
	var zero listing.Envelope[T]

	var superset []T
	err := spec.applyOrder(query, p).
		Limit(listing.SupersetCap).
		Find(&superset).Error
	if err != nil {
		return zero, fmt.Errorf("failed to fetch filter superset: %w", err)
	}

	match := func(item T) bool {
		return spec.LocalMatch(item, p.Filters)
	}

	key := func(item T) listing.Key {
		if spec.LocalKey == nil {
			return listing.StringKey("")
		}

		return spec.LocalKey(item, spec.sortName(p))
	}

	return listing.ApplyLocal(superset, p, match, key), nil
}

func (spec ListSpec[T]) applySearch(query *gorm.DB, term string) *gorm.DB {
	if term == "" || len(spec.Searchable) == 0 {
		return query
	}

	parts := make([]string, 0, len(spec.Searchable))
	args := make([]interface{}, 0, len(spec.Searchable))

	for _, col := range spec.Searchable {
		parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ?", col))
		args = append(args, "%"+strings.ToLower(term)+"%")
	}

	return query.Where(strings.Join(parts, " OR "), args...)
}

func (spec ListSpec[T]) applyOrder(query *gorm.DB, p listing.Params) *gorm.DB {
	col, ok := spec.Sortable[spec.sortName(p)]
	if !ok {
		return query
	}

	dir := "asc"
	if p.Dir == listing.Descending {
		dir = "desc"
	}

	// id as tiebreaker keeps the order stable across pages
	return query.Order(fmt.Sprintf("%s %s", col, dir)).Order("id " + dir)
}

func (spec ListSpec[T]) sortName(p listing.Params) string {
	if p.Sort != "" {
		return p.Sort
	}

	return spec.DefaultSort
}
