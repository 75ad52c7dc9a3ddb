package container

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"omdb/finder/internal/client"
	"omdb/finder/internal/config"
	"omdb/finder/internal/favorites"
	"omdb/finder/internal/metrics"
	"omdb/finder/internal/service"
	"omdb/finder/internal/session"
	"omdb/finder/internal/shell"
	"omdb/finder/internal/translate"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config    *config.Config
	Client    client.CatalogClient
	Favorites *favorites.Controller
	Service   *service.Service
	Shell     *shell.Shell

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	slot, err := container.newSlot(ctx)
	if err != nil {
		container.Close()
		return nil, err
	}
	container.Favorites = favorites.NewController(ctx, favorites.NewStore(slot, cfg.Favorites.Backend))

	catalogClient := client.NewOMDbClient(cfg.OMDb)
	container.Client = catalogClient

	var translator translate.Translator = translate.Noop{}
	if cfg.Translate.Enabled {
		translator = translate.NewLibreTranslator(cfg.Translate)
		log.Infof("🌐 Plot translation enabled (%s → %s)", cfg.Translate.Source, cfg.Translate.Target)
	}

	container.Service = service.NewService(
		session.NewSearchSession(catalogClient),
		session.NewDetailsSession(catalogClient),
		container.Favorites,
		translator,
	)
	container.Shell = shell.New(container.Service, os.Stdout, cfg.Shell)

	return container, nil
}

func (c *Container) newSlot(ctx context.Context) (favorites.Slot, error) {
	cfg := c.Config

	switch cfg.Favorites.Backend {
	case "memory":
		log.Warn("⚠️ Favorites are kept in memory only")
		return favorites.NewMemorySlot(), nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		c.redis = rdb

		// Test connection
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")
		return favorites.NewRedisSlot(rdb, cfg.Favorites.Key), nil

	case "postgres":
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to create database pool: %w", err)
		}
		c.db = db

		slot := favorites.NewPostgresSlot(db, cfg.Favorites.Key)
		if err := slot.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		log.Info("✅ Connected to Postgres successfully")
		return slot, nil

	default:
		log.Infof("💾 Favorites file: %s", cfg.Favorites.Path)
		return favorites.NewFileSlot(cfg.Favorites.Path), nil
	}
}

// Run starts the shell, and the metrics endpoint when configured. It returns
// once the shell exits or ctx is cancelled.
func (c *Container) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		defer c.Service.Stop(context.Background())
		return c.Shell.Run(ctx)
	})

	if addr := c.Config.Metrics.Addr; addr != "" {
		g.Go(func() error {
			return metrics.Serve(ctx, addr)
		})
	}

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warnf("⚠️ Failed to close Redis client: %v", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
