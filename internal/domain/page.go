package domain

// PaginationParams carries page/limit/sort values from the HTTP layer to the repo layer.
// Page is 1-indexed. Limit is capped at 100 by NewPaginationParams.
// Sort is an opaque "field" or "field,desc" string; the repo layer maps it onto
// a whitelisted column and falls back to its default ordering when empty or unknown.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
	// Sort is the raw sort expression from the query string, e.g. "purchaseDate,desc".
	Sort string
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to sane defaults (page=1, limit=20, repo-default sort).
// The limit is capped at 100 to prevent runaway queries.
func NewPaginationParams(page, limit *int, sort *string) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	if sort != nil {
		p.Sort = *sort
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
