package session

import (
	"context"
	"strings"
	"sync"

	"omdb/finder/internal/client"
	"omdb/finder/internal/domain"
	"omdb/finder/internal/generation"
	"omdb/finder/internal/metrics"

	log "github.com/sirupsen/logrus"
)

type DetailsSession struct {
	client client.CatalogClient

	mu       sync.Mutex
	gen      generation.Tracker
	cancel   context.CancelFunc
	state    domain.DetailsState
	onChange func(domain.DetailsState)
}

func NewDetailsSession(c client.CatalogClient) *DetailsSession {
	return &DetailsSession{client: c}
}

func (s *DetailsSession) OnChange(fn func(domain.DetailsState)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *DetailsSession) State() domain.DetailsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Select fetches full details for id. An empty id closes the details view
// without a request. Like SearchSession.Search, the returned channel is
// closed when this request has settled.
func (s *DetailsSession) Select(ctx context.Context, id string) <-chan struct{} {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	tok := s.gen.Next()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.state = domain.DetailsState{SelectedID: id}
	if id == "" {
		snap, fn := s.snapshot(), s.onChange
		s.mu.Unlock()

		notify(fn, snap)
		return closedChan()
	}

	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state.Loading = true
	snap, fn := s.snapshot(), s.onChange
	s.mu.Unlock()

	notify(fn, snap)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()

		details, err := s.client.GetDetails(reqCtx, id)
		s.settle(tok, id, details, err)
	}()

	return done
}

// Close is Select with no id.
func (s *DetailsSession) Close(ctx context.Context) {
	<-s.Select(ctx, "")
}

func (s *DetailsSession) settle(tok generation.Token, id string, details *domain.CatalogItemDetails, err error) {
	s.mu.Lock()
	if !s.gen.Current(tok) {
		s.mu.Unlock()
		metrics.StaleResponsesTotal.WithLabelValues("details").Inc()
		log.Debugf("Dropping stale details response for %s", id)
		return
	}

	s.state.Loading = false
	if err != nil {
		s.state.Details = nil
		s.state.Err = errorMessage(err, DefaultDetailsError)
		log.Debugf("Details for %s failed: %v", id, err)
	} else {
		s.state.Details = details
		s.state.Err = ""
	}
	snap, fn := s.snapshot(), s.onChange
	s.mu.Unlock()

	notify(fn, snap)
}

func (s *DetailsSession) snapshot() domain.DetailsState {
	snap := s.state
	if s.state.Details != nil {
		d := *s.state.Details
		snap.Details = &d
	}
	return snap
}
