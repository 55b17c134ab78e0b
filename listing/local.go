package listing

// ApplyLocal runs the local filtering fallback over a superset of records:
// filter, stable sort, then paginate in memory, recomputing the pagination
// metadata from the filtered subset length instead of trusting a server
// envelope. This is the deliberate escape hatch for filter combinations the
// backend does not support; callers must bound the superset by SupersetCap.
func ApplyLocal[T any](items []T, p Params, match func(T) bool, key func(T) Key) Envelope[T] {
	filtered := items
	if match != nil {
		filtered = make([]T, 0, len(items))
		for _, item := range items {
			if match(item) {
				filtered = append(filtered, item)
			}
		}
	}

	if p.Sort != "" && key != nil {
		SortStable(filtered, key, p.Dir)
	}

	total := len(filtered)

	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}

	if p.Page < 1 {
		p.Page = 1
	}

	start := p.Offset()
	if start > total {
		start = total
	}

	end := start + p.PerPage
	if end > total {
		end = total
	}

	page := make([]T, end-start)
	copy(page, filtered[start:end])

	return NewEnvelope(page, p.Page, p.PerPage, total)
}
