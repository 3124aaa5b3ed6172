package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dfryer1193/wpgallery/gallery/application"
	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/dfryer1193/wpgallery/gallery/persistence"
	"github.com/dfryer1193/wpgallery/shared/config"
	"github.com/dfryer1193/wpgallery/shared/db/sqlite"
	"github.com/dfryer1193/wpgallery/shared/wordpress"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// app holds the long-lived dependencies shared by the commands.
type app struct {
	cfg      *config.Config
	database *sqlite.SQLiteDB
	redis    *redis.Client

	client   *wordpress.Client
	cache    domain.MediaCache
	resolver *application.MediaResolver
	contact  *application.ContactService
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	a.database = sqlite.NewSQLiteDB(sqlite.NewSQLiteConfig(cfg.Database.Path))
	if err := a.database.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	switch cfg.Cache.Driver {
	case config.CacheSQLite:
		a.cache = persistence.NewMediaRepository(a.database.DB())
	case config.CacheRedis:
		client, err := persistence.NewRedisClient(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = client
		a.cache = persistence.NewRedisMediaCache(client, cfg.Cache.KeyPrefix)
	}

	a.client = wordpress.NewClient(nil, cfg.WordPress.BaseURL, cfg.WordPress.Timeout)
	a.resolver = application.NewMediaResolver(a.client, a.cache, cfg.Cache.TTL, cfg.Gallery.FallbackImage)
	a.contact = application.NewContactService(persistence.NewContactRepository(a.database.DB()))

	log.Debug().
		Str("wordpress", a.client.BaseURL()).
		Str("cache", string(cfg.Cache.Driver)).
		Str("database", cfg.Database.Path).
		Msg("Dependencies ready")
	return a, nil
}

func (a *app) galleryOptions() application.Options {
	return application.Options{
		PerPage:           a.cfg.Gallery.PerPage,
		EmptyMessage:      a.cfg.Gallery.EmptyMessage,
		ErrorMessage:      a.cfg.Gallery.ErrorMessage,
		Concurrency:       a.cfg.Gallery.Concurrency,
		RefetchOnNavigate: a.cfg.Gallery.RefetchOnNavigate,
	}
}

// sections renders the static sections from server.content_dir, or from the
// built-in content when it is unset.
func (a *app) sections() (map[string]*application.SectionContent, error) {
	var content fs.FS = application.DefaultContent()
	if dir := a.cfg.Server.ContentDir; dir != "" {
		content = os.DirFS(dir)
	}
	return application.LoadSections(content, application.NewMarkdownRenderer())
}

func (a *app) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.database != nil {
		errs = append(errs, a.database.Close())
	}
	return errors.Join(errs...)
}
