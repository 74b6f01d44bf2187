package dto

type Pagination[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
}

// NewPagination converts items while carrying the paging counters over.
func NewPagination[S, T any](items []S, total, page, size int, convert func(*S) T) *Pagination[T] {
	out := make([]T, len(items))
	for i := range items {
		out[i] = convert(&items[i])
	}
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	return &Pagination[T]{
		Items:      out,
		TotalItems: total,
		TotalPages: totalPages,
		PageNumber: page,
		PageSize:   size,
	}
}
