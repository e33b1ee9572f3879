package goviewset

// PagedResponse is the envelope the list route returns. It is intended for
// API payloads.
type PagedResponse[T any] struct {
	// Items holds the records of the requested page.
	Items []T `json:"items"`
	// Page is the 1-based number of the returned page.
	Page int `json:"page"`
	// PerPage is the configured page size. NoPagination when slicing is off.
	PerPage int `json:"perPage"`
	// TotalItems is the total number of records in the dataset.
	TotalItems int64 `json:"totalItems"`
	// TotalPages is the total number of pages in the dataset.
	TotalPages int `json:"totalPages"`
	// HasMore reports whether pages beyond this one exist.
	HasMore bool `json:"hasMore"`
}

// NewPagedResponse builds the response envelope for a fetched page.
func NewPagedResponse[T any](page *Page[T], perPage int) PagedResponse[T] {
	items := page.ObjectList
	if items == nil {
		items = []T{}
	}

	return PagedResponse[T]{
		Items:      items,
		Page:       page.Number,
		PerPage:    perPage,
		TotalItems: page.Total(),
		TotalPages: page.NumPages(),
		HasMore:    page.HasNext(),
	}
}
