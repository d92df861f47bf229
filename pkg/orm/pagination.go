package orm

// Pagination describes one page of a larger result set.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination normalises page (anything below 1 becomes 1) and derives
// TotalPages as ceil(total/pageSize).
func NewPagination(total int64, page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return Pagination{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}

// Offset is the number of rows skipped before this page. A page past the
// end skips every counted row, so no page number can wrap the product.
func (p Pagination) Offset() int {
	if p.Page > p.TotalPages {
		return int(p.Total)
	}
	return (p.Page - 1) * p.PageSize
}

// GetWithPagination counts the rows matched by the query, then loads the
// requested page into dest. A page beyond the last one yields no rows.
func (q *Query) GetWithPagination(dest interface{}, page, pageSize int) (Pagination, error) {
	p, err := q.Paginate(page, pageSize)
	if err != nil {
		return Pagination{}, err
	}
	return p, q.Page(p).Get(dest)
}

// Paginate counts the matching rows and returns the pagination for page.
// Apply Preload clauses after calling it, on the query passed to Page.
func (q *Query) Paginate(page, pageSize int) (Pagination, error) {
	total, err := q.Count()
	if err != nil {
		return Pagination{}, err
	}
	return NewPagination(total, page, pageSize), nil
}
