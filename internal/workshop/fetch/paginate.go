package fetch

// Page is one display page of an already-loaded list.
type Page[T any] struct {
	Items      []T
	Number     int
	PageSize   int
	TotalPages int
}

// Paginate slices items for display. The requested page is clamped into the
// valid range, so a list that shrinks below the current page's reach falls
// back to the last page that still exists.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{
		Items:      items[start:end],
		Number:     page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
