package domain

// NoPoster is what the catalog returns in place of a poster URL.
const NoPoster = "N/A"

type CatalogItemSummary struct {
	ID     string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Type   string `json:"Type"` // movie, series, episode
}

// HasPoster reports whether the item carries a real poster URL.
func (s CatalogItemSummary) HasPoster() bool {
	return s.Poster != "" && s.Poster != NoPoster
}

func (s CatalogItemSummary) PosterOrPlaceholder() string {
	if s.HasPoster() {
		return s.Poster
	}
	return PlaceholderPoster(s.Title)
}

type CatalogItemDetails struct {
	CatalogItemSummary

	Rated      string `json:"Rated,omitempty"`
	Released   string `json:"Released,omitempty"`
	Runtime    string `json:"Runtime,omitempty"`
	Genre      string `json:"Genre,omitempty"`
	Director   string `json:"Director,omitempty"`
	Writer     string `json:"Writer,omitempty"`
	Actors     string `json:"Actors,omitempty"`
	Plot       string `json:"Plot,omitempty"`
	Language   string `json:"Language,omitempty"`
	Country    string `json:"Country,omitempty"`
	Awards     string `json:"Awards,omitempty"`
	IMDBRating string `json:"imdbRating,omitempty"`
	IMDBVotes  string `json:"imdbVotes,omitempty"`
}

// Summary projects the details back onto the fields a search result carries.
func (d *CatalogItemDetails) Summary() CatalogItemSummary {
	return d.CatalogItemSummary
}

// SearchPage is one page of search results as returned by the catalog.
type SearchPage struct {
	Items        []CatalogItemSummary
	TotalResults int
}
