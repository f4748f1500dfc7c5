package scraper

// Pagination describes one page of a larger result set.
type Pagination struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	From        int `json:"from"`
	To          int `json:"to"`
	FirstPage   int `json:"first_page"`
	LastPage    int `json:"last_page"`
}

func CalculatePagination(totalItems int, currentPage int, perPage int) Pagination {
	pages := 0
	if perPage > 0 {
		pages = (totalItems + perPage - 1) / perPage
	}
	return Pagination{
		Total:       totalItems,
		Pages:       pages,
		CurrentPage: currentPage,
		PerPage:     perPage,
		From:        (currentPage-1)*perPage + 1,
		To:          min(currentPage*perPage, totalItems),
		FirstPage:   1,
		LastPage:    pages,
	}
}

// BuildPaginationQuery translates a 1-based page into the upstream API's
// half-open [start, end) row window.
func BuildPaginationQuery(page int, perPage int) (start int, end int) {
	if page > 1 {
		start = (page - 1) * perPage
	}
	return start, start + perPage
}
