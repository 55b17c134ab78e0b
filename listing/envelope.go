// Package listing implements the paginated list envelope shared by every
// list endpoint of the portal API, together with the supporting pieces the
// list screens rely on: parameter clamping, stable sorting, the sliding
// page-number window and the local filtering fallback used when a filter
// combination is not supported server side.
package listing

// Meta carries the pagination metadata of one list page.
// From and To are omitted when the result set is empty; Total is the
// authoritative count from which LastPage is derived.
type Meta struct {
	CurrentPage int  `json:"current_page"`
	LastPage    int  `json:"last_page"`
	PerPage     int  `json:"per_page"`
	Total       int  `json:"total"`
	From        *int `json:"from"`
	To          *int `json:"to"`
}

// Envelope is the response body of a list endpoint.
type Envelope[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// NewMeta computes pagination metadata for the given page, page size and
// total count. Invariants: from <= to whenever total > 0, and
// to - from + 1 equals the number of records on a full or final page.
func NewMeta(page, perPage, total int) Meta {
	if page < 1 {
		page = 1
	}

	if perPage < 1 {
		perPage = DefaultPerPage
	}

	meta := Meta{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    (total + perPage - 1) / perPage,
	}

	if meta.LastPage == 0 {
		meta.LastPage = 1
	}

	if total > 0 {
		from := (page-1)*perPage + 1

		to := page * perPage
		if to > total {
			to = total
		}

		// past-the-end pages report no range
		if from <= total {
			meta.From = &from
			meta.To = &to
		}
	}

	return meta
}

// NewEnvelope pairs a page of records with its computed metadata.
func NewEnvelope[T any](data []T, page, perPage, total int) Envelope[T] {
	if data == nil {
		data = []T{}
	}

	return Envelope[T]{Data: data, Meta: NewMeta(page, perPage, total)}
}
