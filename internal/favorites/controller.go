package favorites

import (
	"context"
	"slices"
	"sync"

	"omdb/finder/internal/domain"
	"omdb/finder/internal/metrics"

	log "github.com/sirupsen/logrus"
)

// Controller owns the in-memory favorites list. Every mutation replaces the
// list and writes the whole of it back to the store before returning.
type Controller struct {
	store Store

	mu    sync.Mutex
	items []domain.FavoriteRecord
}

// NewController loads the persisted list once. Records repeating an earlier
// ID are dropped so the list holds at most one record per ID.
func NewController(ctx context.Context, store Store) *Controller {
	loaded := store.Load(ctx, []domain.FavoriteRecord{})

	items := make([]domain.FavoriteRecord, 0, len(loaded))
	seen := make(map[string]bool, len(loaded))
	for _, f := range loaded {
		if seen[f.ID] {
			log.Warnf("⚠️ Dropping duplicate favorite %s", f.ID)
			continue
		}
		seen[f.ID] = true
		items = append(items, f)
	}

	metrics.FavoritesCount.Set(float64(len(items)))
	log.Infof("⭐ Loaded %d favorites", len(items))

	return &Controller{
		store: store,
		items: items,
	}
}

// Toggle removes the record with item's ID if there is one, otherwise
// appends item. It reports whether item is a favorite afterwards.
func (c *Controller) Toggle(ctx context.Context, item domain.FavoriteRecord) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if slices.ContainsFunc(c.items, byID(item.ID)) {
		c.replace(ctx, without(c.items, item.ID))
		return false
	}

	next := make([]domain.FavoriteRecord, len(c.items), len(c.items)+1)
	copy(next, c.items)
	c.replace(ctx, append(next, item))
	return true
}

// Remove drops the record with id. It reports whether there was one.
func (c *Controller) Remove(ctx context.Context, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !slices.ContainsFunc(c.items, byID(id)) {
		return false
	}
	c.replace(ctx, without(c.items, id))
	return true
}

func (c *Controller) IsFavorite(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.ContainsFunc(c.items, byID(id))
}

// List returns the favorites in insertion order.
func (c *Controller) List() []domain.FavoriteRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Controller) replace(ctx context.Context, next []domain.FavoriteRecord) {
	c.items = next
	metrics.FavoritesCount.Set(float64(len(next)))
	c.store.Save(ctx, next)
}

func byID(id string) func(domain.FavoriteRecord) bool {
	return func(f domain.FavoriteRecord) bool {
		return f.ID == id
	}
}

func without(items []domain.FavoriteRecord, id string) []domain.FavoriteRecord {
	next := make([]domain.FavoriteRecord, 0, len(items))
	for _, f := range items {
		if f.ID != id {
			next = append(next, f)
		}
	}
	return next
}
