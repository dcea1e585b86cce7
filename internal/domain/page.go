package domain

// Page is the list shape handed to clients for every paged backend resource.
type Page[T any] struct {
	Data          []T   `json:"data"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	TotalRecords  int64 `json:"totalRecords"`
}

// NewPage fills the derived counters from a total.
func NewPage[T any](data []T, page, size int, total int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Data:          data,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
		TotalRecords:  total,
	}
}
