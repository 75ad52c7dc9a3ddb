package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"omdb/finder/internal/domain"
	"omdb/finder/internal/favorites"
	"omdb/finder/internal/session"
	"omdb/finder/internal/translate"

	log "github.com/sirupsen/logrus"
)

var (
	ErrNoSuchResult = errors.New("no such result on this page")
	ErrNoSelection  = errors.New("no details loaded")
)

// Service is the state machine behind the UI: user actions go in, the two
// fetch sessions and the favorites controller hold the resulting state.
type Service struct {
	search     *session.SearchSession
	details    *session.DetailsSession
	favorites  *favorites.Controller
	translator translate.Translator
}

func NewService(
	search *session.SearchSession,
	details *session.DetailsSession,
	favorites *favorites.Controller,
	translator translate.Translator,
) *Service {
	if translator == nil {
		translator = translate.Noop{}
	}
	return &Service{
		search:     search,
		details:    details,
		favorites:  favorites,
		translator: translator,
	}
}

// Search submits a new query, always starting at page 1.
func (s *Service) Search(ctx context.Context, query string) <-chan struct{} {
	query = strings.TrimSpace(query)
	log.Debugf("🔎 Searching for %q", query)
	return s.search.Search(ctx, query, 1)
}

// SetPage moves the current query to page, clamped to the known page range.
func (s *Service) SetPage(ctx context.Context, page int) <-chan struct{} {
	st := s.search.State()
	if st.Query == "" {
		ch := make(chan struct{})
		close(ch)
		return ch
	}

	if total := st.TotalPages(); total > 0 {
		page = min(page, total)
	}
	page = max(page, 1)

	return s.search.Search(ctx, st.Query, page)
}

func (s *Service) NextPage(ctx context.Context) <-chan struct{} {
	return s.SetPage(ctx, s.search.State().Page+1)
}

func (s *Service) PrevPage(ctx context.Context) <-chan struct{} {
	return s.SetPage(ctx, s.search.State().Page-1)
}

func (s *Service) SearchState() domain.SearchState {
	return s.search.State()
}

func (s *Service) DetailsState() domain.DetailsState {
	return s.details.State()
}

// ResultAt returns the n-th (1-based) result of the current page.
func (s *Service) ResultAt(n int) (domain.CatalogItemSummary, error) {
	results := s.search.State().Results
	if n < 1 || n > len(results) {
		return domain.CatalogItemSummary{}, fmt.Errorf("%w: %d", ErrNoSuchResult, n)
	}
	return results[n-1], nil
}

// Open shows the details of id.
func (s *Service) Open(ctx context.Context, id string) <-chan struct{} {
	return s.details.Select(ctx, id)
}

func (s *Service) CloseDetails(ctx context.Context) {
	s.details.Close(ctx)
}

func (s *Service) ToggleFavorite(ctx context.Context, item domain.CatalogItemSummary) bool {
	added := s.favorites.Toggle(ctx, domain.NewFavoriteRecord(item))
	if added {
		log.Infof("⭐ Added %s (%s) to favorites", item.Title, item.ID)
	} else {
		log.Infof("🗑️ Removed %s (%s) from favorites", item.Title, item.ID)
	}
	return added
}

// ToggleResult toggles the n-th (1-based) result of the current page.
func (s *Service) ToggleResult(ctx context.Context, n int) (domain.CatalogItemSummary, bool, error) {
	item, err := s.ResultAt(n)
	if err != nil {
		return item, false, err
	}
	return item, s.ToggleFavorite(ctx, item), nil
}

// ToggleSelected toggles the item whose details are on screen.
func (s *Service) ToggleSelected(ctx context.Context) (domain.CatalogItemSummary, bool, error) {
	st := s.details.State()
	if st.Details == nil {
		return domain.CatalogItemSummary{}, false, ErrNoSelection
	}
	item := st.Details.Summary()
	return item, s.ToggleFavorite(ctx, item), nil
}

func (s *Service) RemoveFavorite(ctx context.Context, id string) bool {
	return s.favorites.Remove(ctx, id)
}

func (s *Service) IsFavorite(id string) bool {
	return s.favorites.IsFavorite(id)
}

func (s *Service) Favorites() []domain.FavoriteRecord {
	return s.favorites.List()
}

// TranslatedPlot returns the plot of the open item run through the translator.
func (s *Service) TranslatedPlot(ctx context.Context) (string, error) {
	st := s.details.State()
	if st.Details == nil {
		return "", ErrNoSelection
	}
	return s.translator.Translate(ctx, st.Details.Plot), nil
}

// Stop drops every pending request.
func (s *Service) Stop(ctx context.Context) {
	s.search.Cancel()
	s.details.Close(ctx)
}
