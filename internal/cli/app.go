package cli

import (
	"context"
	"fmt"

	"github.com/qualcanal/qualcanal/internal/cache"
	"github.com/qualcanal/qualcanal/internal/config"
	"github.com/qualcanal/qualcanal/internal/feed"
	"github.com/qualcanal/qualcanal/internal/logger"
	"github.com/qualcanal/qualcanal/internal/scraper"
	"github.com/qualcanal/qualcanal/internal/storage"
)

// app holds the components built from one configuration.
type app struct {
	cfg     *config.Config
	scraper *scraper.Scraper
	cache   cache.Cache
	sink    storage.Sink
	closers []func() error
}

func loadConfig(path, logLevel, logFormat string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger.Configure(cfg.Logger())
	return cfg, nil
}

func newApp(cfg *config.Config) *app {
	return &app{
		cfg: cfg,
		scraper: scraper.New(
			scraper.WithURL(cfg.Source.URL),
			scraper.WithTimeout(cfg.Source.Timeout),
			scraper.WithHeaders(cfg.Source.Headers),
		),
		cache: cache.Noop{},
	}
}

// openCache connects Redis when an address is configured, else uses memory.
func (a *app) openCache(ctx context.Context) error {
	if a.cfg.Cache.TTL <= 0 {
		return nil
	}
	if a.cfg.Cache.Redis.Addr == "" {
		a.cache = cache.NewMemory()
		return nil
	}

	rc, err := cache.NewRedis(ctx, cache.RedisConfig{
		Addr:     a.cfg.Cache.Redis.Addr,
		Password: a.cfg.Cache.Redis.Password,
		DB:       a.cfg.Cache.Redis.DB,
	}, logger.WithComponent("cache"))
	if err != nil {
		return err
	}
	a.cache = rc
	a.closers = append(a.closers, rc.Close)
	return nil
}

func (a *app) openSink(ctx context.Context) error {
	sink, err := storage.Open(ctx, a.cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	a.sink = sink
	a.closers = append(a.closers, sink.Close)
	return nil
}

func (a *app) feed() *feed.Service {
	opts := []feed.Option{
		feed.WithCache(a.cache),
		feed.WithTTL(a.cfg.Cache.TTL),
	}
	if a.sink != nil {
		opts = append(opts, feed.WithSink(a.sink))
	}
	return feed.New(a.scraper, opts...)
}

func (a *app) Close() {
	log := logger.Base()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn().Err(err).Msg("closing resource")
		}
	}
}
