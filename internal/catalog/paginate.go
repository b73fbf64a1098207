package catalog

// Page is one slice of a filtered view plus enough metadata to draw the
// page controls.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	Total      int
}

// Paginate slices items into fixed-size pages. An out-of-range page
// yields empty Items rather than an error: a stale click after the
// collection shrinks must not fail the render. TotalPages is zero for
// an empty collection, which suppresses page controls entirely.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	// past the last page: empty slice, and the multiplication below would
	// overflow for huge page values
	if page > totalPages {
		return Page[T]{Items: items[total:], Number: page, TotalPages: totalPages, Total: total}
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	return Page[T]{Items: items[start:end], Number: page, TotalPages: totalPages, Total: total}
}
