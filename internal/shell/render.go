package shell

import (
	"fmt"
)

func (s *Shell) renderSearch() {
	st := s.svc.SearchState()

	if st.Loading {
		fmt.Fprintln(s.out, "Loading...")
		return
	}
	if st.Err != "" {
		fmt.Fprintf(s.out, "Error: %s\n", st.Err)
		return
	}
	if len(st.Results) == 0 {
		return
	}

	for i, item := range st.Results {
		fmt.Fprintf(s.out, "%3d. %s %s (%s) [%s] %s\n",
			i+1, s.star(item.ID), item.Title, item.Year, item.Type, item.ID)
	}

	if st.ShowPagination() {
		fmt.Fprintf(s.out, "Page %d / %d\n", st.Page, st.TotalPages())
	}
}

func (s *Shell) renderDetails() {
	st := s.svc.DetailsState()

	if st.Loading {
		fmt.Fprintln(s.out, "Loading details...")
		return
	}
	if st.Err != "" {
		fmt.Fprintf(s.out, "Error: %s\n", st.Err)
		return
	}
	if st.Details == nil {
		return
	}

	d := st.Details
	fmt.Fprintf(s.out, "%s %s\n", s.star(d.ID), d.Title)
	fmt.Fprintf(s.out, "  Year:     %s\n", d.Year)
	fmt.Fprintf(s.out, "  Director: %s\n", d.Director)
	fmt.Fprintf(s.out, "  Cast:     %s\n", d.Actors)
	fmt.Fprintf(s.out, "  Genre:    %s\n", d.Genre)
	fmt.Fprintf(s.out, "  Runtime:  %s\n", d.Runtime)
	fmt.Fprintf(s.out, "  IMDb:     %s (%s votes)\n", d.IMDBRating, d.IMDBVotes)
	fmt.Fprintf(s.out, "  Poster:   %s\n", d.PosterOrPlaceholder())
	fmt.Fprintf(s.out, "  Plot:     %s\n", d.Plot)
}

func (s *Shell) renderFavorites() {
	favs := s.svc.Favorites()
	if len(favs) == 0 {
		fmt.Fprintln(s.out, "No favorites yet.")
		return
	}

	for _, f := range favs {
		fmt.Fprintf(s.out, "  %s %s (%s) [%s]\n", f.ID, f.Title, f.Year, f.Type)
	}
}

func (s *Shell) star(id string) string {
	if s.svc.IsFavorite(id) {
		return "★"
	}
	return "☆"
}
