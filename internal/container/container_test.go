package container

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"omdb/finder/internal/config"
	"omdb/finder/internal/domain"

	"github.com/alicebob/miniredis/v2"
)

func testConfig(backend string) *config.Config {
	return &config.Config{
		OMDb: config.OMDbConfig{BaseURL: "http://127.0.0.1:1"},
		Favorites: config.FavoritesConfig{
			Backend: backend,
			Key:     "omdb_favorites_v1",
		},
		Shell: config.ShellConfig{Prompt: "omdb> "},
	}
}

func newContainer(t *testing.T, cfg *config.Config) *Container {
	t.Helper()
	c, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	if c.Client == nil || c.Favorites == nil || c.Service == nil || c.Shell == nil {
		t.Fatalf("container is not fully wired: %+v", c)
	}
	return c
}

func TestNewMemoryBackend(t *testing.T) {
	c := newContainer(t, testConfig("memory"))

	if c.Favorites.Len() != 0 {
		t.Fatalf("memory backend should start empty, got %d", c.Favorites.Len())
	}

	ctx := context.Background()
	item := domain.CatalogItemSummary{ID: "tt0133093", Title: "The Matrix", Year: "1999", Type: "movie"}
	if !c.Service.ToggleFavorite(ctx, item) {
		t.Fatal("toggle should add the item")
	}
	if !c.Favorites.IsFavorite("tt0133093") {
		t.Error("service and container must share the favorites controller")
	}
}

func TestNewFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	if err := os.WriteFile(path, []byte(`[{"imdbID":"tt0133093","Title":"The Matrix","Year":"1999","Poster":"N/A","Type":"movie"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig("file")
	cfg.Favorites.Path = path
	c := newContainer(t, cfg)

	if c.Favorites.Len() != 1 || !c.Favorites.IsFavorite("tt0133093") {
		t.Fatalf("expected the stored favorite to be loaded, got %v", c.Favorites.List())
	}

	ctx := context.Background()
	c.Favorites.Remove(ctx, "tt0133093")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("removal should be persisted to the file, got %s", data)
	}
}

func TestNewRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.Set("omdb_favorites_v1", `[{"imdbID":"tt0372784","Title":"Batman Begins"}]`)

	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig("redis")
	cfg.Redis = config.RedisConfig{Host: mr.Host(), Port: port}
	c := newContainer(t, cfg)

	if !c.Favorites.IsFavorite("tt0372784") {
		t.Fatalf("expected the redis favorite to be loaded, got %v", c.Favorites.List())
	}
}

func TestNewRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatal(err)
	}
	mr.Close()

	cfg := testConfig("redis")
	cfg.Redis = config.RedisConfig{Host: mr.Host(), Port: port}
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected an error when redis is unreachable")
	}
}
