package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/kapu/wildrift-guide-go/internal/api"
	"github.com/kapu/wildrift-guide-go/internal/config"
	"github.com/kapu/wildrift-guide-go/internal/service/cache"
	"github.com/kapu/wildrift-guide-go/internal/service/catalog"
	"github.com/kapu/wildrift-guide-go/internal/service/guide"
	"github.com/kapu/wildrift-guide-go/internal/service/item"
	"github.com/kapu/wildrift-guide-go/internal/service/normalizer"
	"github.com/kapu/wildrift-guide-go/internal/service/patch"
	"go.uber.org/zap"
)

// Container bundles the assembled services shared by the server and the command-line tools.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Champions *catalog.Catalog
	Items     *item.ItemCatalog
	Runes     *item.RuneCatalog
	Guide     *guide.Service

	// Redis is nil unless REDIS_ENABLED is set and the server answered the ping.
	Redis *cache.CacheService

	closers []func()
}

// Build assembles every service from the configuration. Optional collaborators (Redis,
// the patch page) degrade to warnings; only a broken data layer is fatal.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c := &Container{Config: cfg, Logger: logger}
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	patchLabel := cfg.Patch.Label
	if cfg.Patch.FetchEnabled {
		fetcher := patch.NewFetcher(patch.Config{URL: cfg.Patch.SourceURL, Logger: logger})
		patchLabel = fetcher.Current(ctx, cfg.Patch.Label)
	}

	var opts []catalog.Option
	if cfg.Redis.Enabled {
		redisSvc, redisErr := cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if redisErr != nil {
			logger.Warn("Redis unavailable, using in-process cache only", zap.Error(redisErr))
		} else {
			c.Redis = redisSvc
			c.closers = append(c.closers, func() {
				_ = redisSvc.Close()
			})
			opts = append(opts, catalog.WithRemote(redisSvc))
		}
	}

	c.Champions, err = catalog.NewCatalog(catalog.Config{
		FS:          os.DirFS(cfg.Data.Dir),
		IndexPath:   cfg.Data.IndexPath,
		TTL:         cfg.Cache.TTL(),
		Concurrency: cfg.Cache.MaxConcurrentLoads,
		Normalizer:  normalizer.New(normalizer.WithPatch(patchLabel)),
		Logger:      logger.Named("catalog"),
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create champion catalog: %w", err)
	}

	c.Items, err = item.NewItemCatalog(item.Config{
		FS:     os.DirFS(cfg.Data.ItemsDir),
		TTL:    cfg.Cache.TTL(),
		Logger: logger.Named("items"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create item catalog: %w", err)
	}

	c.Runes, err = item.NewRuneCatalog(item.Config{
		FS:     os.DirFS(cfg.Data.RunesDir),
		TTL:    cfg.Cache.TTL(),
		Logger: logger.Named("runes"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rune catalog: %w", err)
	}

	c.Guide = guide.NewService(c.Champions, c.Items, c.Runes, logger.Named("guide"))

	logger.Info("Guide services assembled",
		zap.String("data_dir", cfg.Data.Dir),
		zap.String("patch", patchLabel),
		zap.Duration("ttl", c.Champions.TTL()),
		zap.Bool("redis", c.Redis != nil),
	)
	return c, nil
}

// Router returns the HTTP engine serving the guide API.
func (c *Container) Router() *gin.Engine {
	gin.SetMode(c.Config.Server.GinMode)
	h := api.NewHandler(c.Guide, c.Champions, c.Items, c.Runes, c.Logger.Named("api"))
	return api.NewRouter(h, c.Logger.Named("http"))
}

// Close releases external connections in reverse order of creation.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
