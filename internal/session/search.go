package session

import (
	"context"
	"slices"
	"strings"
	"sync"

	"omdb/finder/internal/client"
	"omdb/finder/internal/domain"
	"omdb/finder/internal/generation"
	"omdb/finder/internal/metrics"

	log "github.com/sirupsen/logrus"
)

type SearchSession struct {
	client client.CatalogClient

	mu       sync.Mutex
	gen      generation.Tracker
	cancel   context.CancelFunc
	state    domain.SearchState
	onChange func(domain.SearchState)
}

func NewSearchSession(c client.CatalogClient) *SearchSession {
	return &SearchSession{
		client: c,
		state:  domain.SearchState{Page: 1, Results: []domain.CatalogItemSummary{}},
	}
}

// OnChange registers fn to be called with a snapshot after every state change
// the session applies. Stale responses never trigger it.
func (s *SearchSession) OnChange(fn func(domain.SearchState)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// State returns a snapshot of the session.
func (s *SearchSession) State() domain.SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Search fetches the given page of results for query. It returns immediately;
// the returned channel is closed once this request has settled, whether its
// result was applied or dropped as stale. A blank query clears the session
// without a request.
func (s *SearchSession) Search(ctx context.Context, query string, page int) <-chan struct{} {
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	tok := s.gen.Next()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.state.Query = query
	s.state.Page = page

	if strings.TrimSpace(query) == "" {
		s.state.Results = []domain.CatalogItemSummary{}
		s.state.TotalResults = 0
		s.state.Loading = false
		s.state.Err = ""
		snap, fn := s.snapshot(), s.onChange
		s.mu.Unlock()

		notify(fn, snap)
		return closedChan()
	}

	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state.Loading = true
	s.state.Err = ""
	snap, fn := s.snapshot(), s.onChange
	s.mu.Unlock()

	notify(fn, snap)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()

		result, err := s.client.Search(reqCtx, query, page)
		s.settle(tok, query, page, result, err)
	}()

	return done
}

// Cancel drops whatever request is in flight, as when the view goes away.
func (s *SearchSession) Cancel() {
	s.mu.Lock()
	s.gen.Invalidate()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state.Loading = false
	snap, fn := s.snapshot(), s.onChange
	s.mu.Unlock()

	notify(fn, snap)
}

func (s *SearchSession) settle(tok generation.Token, query string, page int, result *domain.SearchPage, err error) {
	s.mu.Lock()
	if !s.gen.Current(tok) {
		s.mu.Unlock()
		metrics.StaleResponsesTotal.WithLabelValues("search").Inc()
		log.Debugf("Dropping stale search response for %q page %d", query, page)
		return
	}

	s.state.Loading = false
	if err != nil {
		s.state.Results = []domain.CatalogItemSummary{}
		s.state.TotalResults = 0
		s.state.Err = errorMessage(err, DefaultSearchError)
		log.Debugf("Search %q page %d failed: %v", query, page, err)
	} else {
		s.state.Results = result.Items
		if s.state.Results == nil {
			s.state.Results = []domain.CatalogItemSummary{}
		}
		s.state.TotalResults = result.TotalResults
		s.state.Err = ""
	}
	snap, fn := s.snapshot(), s.onChange
	s.mu.Unlock()

	notify(fn, snap)
}

func (s *SearchSession) snapshot() domain.SearchState {
	snap := s.state
	snap.Results = slices.Clone(s.state.Results)
	return snap
}

func notify[T any](fn func(T), v T) {
	if fn != nil {
		fn(v)
	}
}
