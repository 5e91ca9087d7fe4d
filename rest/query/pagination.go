package query

// Page describes one window of a paginated result set.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination is the envelope returned alongside every list response.
// Next is present iff another full or partial window follows the
// current one; Prev is present iff the current page is not the first.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
	Total       int   `json:"total"`
	Next        *Page `json:"next,omitempty"`
	Prev        *Page `json:"prev,omitempty"`
}

// NewPagination builds the envelope for the given window against a
// total count obtained from a separate count query over the same
// predicate.
func NewPagination(page, limit, total int) Pagination {
	p := Pagination{
		CurrentPage: page,
		Limit:       limit,
		Total:       total,
	}

	if page*limit < total {
		p.Next = &Page{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &Page{Page: page - 1, Limit: limit}
	}

	return p
}

// Envelope builds the pagination envelope for these options once the
// total count is known.
func (o Options) Envelope(total int) Pagination {
	return NewPagination(o.Page, o.Limit, total)
}
