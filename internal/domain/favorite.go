package domain

// FavoriteRecord is the subset of an item kept in the favorites list. Field
// names match the catalog's so stored lists stay readable by other clients.
type FavoriteRecord struct {
	ID     string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Type   string `json:"Type"`
}

func NewFavoriteRecord(s CatalogItemSummary) FavoriteRecord {
	return FavoriteRecord{
		ID:     s.ID,
		Title:  s.Title,
		Year:   s.Year,
		Poster: s.Poster,
		Type:   s.Type,
	}
}

func (f FavoriteRecord) PosterOrPlaceholder() string {
	if f.Poster != "" && f.Poster != NoPoster {
		return f.Poster
	}
	return PlaceholderPoster(f.Title)
}
