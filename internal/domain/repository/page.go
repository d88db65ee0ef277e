package repository

// PageRequest describes the slice of a filtered result set a caller wants.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps the request to page >= 1 and 1 <= limit <= maxLimit,
// substituting defaultLimit when no limit was given.
func (r PageRequest) Normalize(defaultLimit, maxLimit int) PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = defaultLimit
	}
	if r.Limit > maxLimit {
		r.Limit = maxLimit
	}
	return r
}

// Offset is the number of documents skipped before this page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// Page is the uniform page-result shape. Docs is empty, not nil-checked
// into an error, when the requested page lies past the end.
type Page[T any] struct {
	Docs       []T
	Page       int
	Limit      int
	TotalDocs  int
	TotalPages int
}

// NewPage assembles a Page from the scanned docs and the pre-skip total.
func NewPage[T any](docs []T, req PageRequest, totalDocs int) *Page[T] {
	if docs == nil {
		docs = []T{}
	}
	totalPages := 0
	if totalDocs > 0 {
		totalPages = (totalDocs + req.Limit - 1) / req.Limit
	}
	return &Page[T]{
		Docs:       docs,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalDocs:  totalDocs,
		TotalPages: totalPages,
	}
}
