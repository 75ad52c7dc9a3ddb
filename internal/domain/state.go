package domain

// PageSize is fixed by the catalog API.
const PageSize = 10

// PageCount returns ceil(total/PageSize).
func PageCount(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}

// SearchState is a snapshot of a search session.
type SearchState struct {
	Query        string
	Page         int
	Results      []CatalogItemSummary
	TotalResults int
	Loading      bool
	Err          string
}

func (s SearchState) TotalPages() int {
	return PageCount(s.TotalResults)
}

// ShowPagination is false when there is nothing to page through.
func (s SearchState) ShowPagination() bool {
	return s.TotalPages() > 1
}

// DetailsState is a snapshot of a details session. An empty SelectedID means
// no details view is active.
type DetailsState struct {
	SelectedID string
	Details    *CatalogItemDetails
	Loading    bool
	Err        string
}

func (s DetailsState) Active() bool {
	return s.SelectedID != ""
}
