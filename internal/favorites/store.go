package favorites

import (
	"context"
	"encoding/json"

	"omdb/finder/internal/domain"
	"omdb/finder/internal/metrics"

	log "github.com/sirupsen/logrus"
)

// Slot is a single key/value cell holding the raw serialized list.
type Slot interface {
	// Get returns the raw value and whether the slot holds anything.
	Get(ctx context.Context) ([]byte, bool, error)
	Set(ctx context.Context, value []byte) error
}

// Store persists the whole favorites list. It never fails: reads fall back to
// the caller's initial value and failed writes are dropped.
type Store interface {
	Load(ctx context.Context, initial []domain.FavoriteRecord) []domain.FavoriteRecord
	Save(ctx context.Context, list []domain.FavoriteRecord)
}

type jsonStore struct {
	slot Slot
	name string
}

// NewStore serializes favorites as a JSON array into slot. name is only used
// in log messages.
func NewStore(slot Slot, name string) Store {
	return &jsonStore{slot: slot, name: name}
}

func (s *jsonStore) Load(ctx context.Context, initial []domain.FavoriteRecord) []domain.FavoriteRecord {
	raw, ok, err := s.slot.Get(ctx)
	if err != nil {
		metrics.FavoritesStoreErrorsTotal.WithLabelValues("read").Inc()
		log.Warnf("⚠️ Failed to read favorites from %s, starting with defaults: %v", s.name, err)
		return initial
	}
	if !ok {
		return initial
	}

	var list []domain.FavoriteRecord
	if err := json.Unmarshal(raw, &list); err != nil {
		metrics.FavoritesStoreErrorsTotal.WithLabelValues("decode").Inc()
		log.Warnf("⚠️ Favorites in %s are unreadable, starting with defaults: %v", s.name, err)
		return initial
	}
	if list == nil {
		return initial
	}

	return list
}

func (s *jsonStore) Save(ctx context.Context, list []domain.FavoriteRecord) {
	if list == nil {
		list = []domain.FavoriteRecord{}
	}

	raw, err := json.Marshal(list)
	if err != nil {
		metrics.FavoritesStoreErrorsTotal.WithLabelValues("encode").Inc()
		log.Warnf("⚠️ Failed to encode favorites: %v", err)
		return
	}

	if err := s.slot.Set(ctx, raw); err != nil {
		metrics.FavoritesStoreErrorsTotal.WithLabelValues("write").Inc()
		log.Warnf("⚠️ Failed to persist favorites to %s: %v", s.name, err)
		return
	}

	log.Debugf("Saved %d favorites to %s", len(list), s.name)
}
