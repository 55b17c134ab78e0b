package listing

// windowSize is the maximum number of page buttons shown at once.
const windowSize = 5

// PageWindow returns the page numbers to display in the pagination
// control: all pages when there are at most five, otherwise a window of
// five consecutive numbers centered on the current page and clamped at
// both ends.
func PageWindow(current, totalPages int) []int {
	if totalPages < 1 {
		return nil
	}

	if current < 1 {
		current = 1
	}

	if current > totalPages {
		current = totalPages
	}

	size := windowSize
	if totalPages < size {
		size = totalPages
	}

	start := current - windowSize/2
	if start < 1 {
		start = 1
	}

	if start+size-1 > totalPages {
		start = totalPages - size + 1
	}

	window := make([]int, size)
	for i := range window {
		window[i] = start + i
	}

	return window
}
