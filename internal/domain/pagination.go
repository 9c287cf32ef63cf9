package domain

type Pagination struct {
	Total       int64   `json:"total"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
	Limit       int     `json:"limit"`
	Next        *string `json:"next,omitempty"`
	Previous    *string `json:"previous,omitempty"`
}

// NewPagination computes page counts. A non-positive limit means "everything on one page".
func NewPagination(total int64, page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	p := Pagination{Total: total, CurrentPage: page, Limit: limit}
	if limit <= 0 {
		if total > 0 {
			p.TotalPages = 1
		}
		return p
	}
	p.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	return p
}

func (p Pagination) HasNext() bool { return p.CurrentPage < p.TotalPages }

func (p Pagination) HasPrevious() bool { return p.CurrentPage > 1 && p.TotalPages > 0 }

// Offset is the row offset for the current page.
func (p Pagination) Offset() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.CurrentPage - 1) * p.Limit
}
