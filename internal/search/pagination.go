package search

// Pagination состояние переключателя страниц
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// NewPagination рассчитывает пагинацию на клиенте по total и page_size
func NewPagination(total, page, pageSize int) Pagination {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	if total < 0 {
		total = 0
	}
	totalPages := (total + pageSize - 1) / pageSize
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// Visible сообщает, нужно ли показывать переключатель страниц
func (p Pagination) Visible() bool {
	return p.Total > p.PageSize
}
