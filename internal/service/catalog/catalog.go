// Package catalog owns the champion slug index and the entity cache in front of the data directory.
package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/kapu/wildrift-guide-go/internal/constants"
	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/kapu/wildrift-guide-go/internal/service/cache"
	"github.com/kapu/wildrift-guide-go/internal/service/normalizer"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RemoteCache is the optional shared tier consulted after the in-process cache.
type RemoteCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DelPattern(ctx context.Context, pattern string) (int64, error)
}

type Config struct {
	// FS is rooted at the champion data directory.
	FS fs.FS
	// IndexPath locates the serialized index on the local disk; empty disables it.
	IndexPath   string
	TTL         time.Duration
	Concurrency int
	Normalizer  *normalizer.Normalizer
	Logger      *zap.Logger
}

type Option func(*Catalog)

func WithClock(clock cache.Clock) Option {
	return func(c *Catalog) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithRemote adds a shared cache tier. A nil remote is ignored.
func WithRemote(remote RemoteCache) Option {
	return func(c *Catalog) {
		if remote != nil {
			c.remote = remote
		}
	}
}

// Catalog is safe for concurrent use. The index is built once on first use and reused
// until Clear; entities are cached for the configured TTL.
type Catalog struct {
	fsys        fs.FS
	indexPath   string
	ttl         time.Duration
	concurrency int
	normalizer  *normalizer.Normalizer
	remote      RemoteCache
	logger      *zap.Logger
	clock       cache.Clock

	indexMu sync.Mutex
	index   map[string]domain.IndexEntry
	order   []string
	built   bool

	// generation advances on Clear and Rebuild; loads started under an older one do not cache.
	genMu      sync.RWMutex
	generation uint64

	entities *cache.TTLCache[string, *domain.Champion]
	loads    singleflight.Group
}

func NewCatalog(cfg Config, opts ...Option) (*Catalog, error) {
	if cfg.FS == nil {
		return nil, fmt.Errorf("catalog: data filesystem is nil")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = constants.CacheTTL.Champion
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = constants.LoaderConfig.MaxConcurrentLoads
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	c := &Catalog{
		fsys:        cfg.FS,
		indexPath:   cfg.IndexPath,
		ttl:         cfg.TTL,
		concurrency: cfg.Concurrency,
		normalizer:  cfg.Normalizer,
		logger:      cfg.Logger,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entities = cache.NewTTLCache[string, *domain.Champion](c.ttl, c.clock)
	return c, nil
}

// AllSlugs lists every indexed slug in directory order.
func (c *Catalog) AllSlugs(ctx context.Context) []string {
	_, order := c.ensureIndex(ctx)
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Index returns a copy of the slug summary index.
func (c *Catalog) Index(ctx context.Context) map[string]domain.IndexEntry {
	index, _ := c.ensureIndex(ctx)
	out := make(map[string]domain.IndexEntry, len(index))
	for slug, entry := range index {
		out[slug] = entry
	}
	return out
}

// Get returns the normalized champion for slug. A slug the index does not know, or a file
// that cannot be read or parsed, is reported as (nil, false).
func (c *Catalog) Get(ctx context.Context, slug string) (*domain.Champion, bool) {
	key := normalizer.DeriveSlug(slug)
	if key == "" {
		return nil, false
	}
	if champion, ok := c.entities.Get(key); ok {
		return champion, true
	}

	gen := c.currentGeneration()
	v, _, _ := c.loads.Do(strconv.FormatUint(gen, 10)+"/"+key, func() (any, error) {
		if champion, ok := c.entities.Get(key); ok {
			return champion, nil
		}
		if champion := c.fromRemote(ctx, key); champion != nil {
			c.store(ctx, gen, key, champion, false)
			return champion, nil
		}

		index, _ := c.ensureIndex(ctx)
		entry, ok := index[key]
		if !ok {
			return nil, nil
		}
		champion, err := c.load(entry, key)
		if err != nil {
			c.logger.Warn("Failed to load champion",
				zap.String("slug", key),
				zap.String("file", entry.Filename),
				zap.Error(err),
			)
			return nil, nil
		}
		c.store(ctx, gen, key, champion, true)
		return champion, nil
	})

	champion, _ := v.(*domain.Champion)
	return champion, champion != nil
}

// Clear drops the index and every cached entity, forcing the next call to rebuild.
// A load already in flight still answers its callers but is not cached.
func (c *Catalog) Clear(ctx context.Context) {
	c.indexMu.Lock()
	c.index = nil
	c.order = nil
	c.built = false
	c.indexMu.Unlock()

	c.genMu.Lock()
	c.generation++
	c.entities.Clear()
	if c.remote != nil {
		pattern := fmt.Sprintf(constants.RedisKeys.Champion, "*")
		if _, err := c.remote.DelPattern(ctx, pattern); err != nil {
			c.logger.Warn("Failed to clear remote champion cache", zap.Error(err))
		}
	}
	c.genMu.Unlock()

	c.logger.Info("Champion catalog cleared")
}

func (c *Catalog) currentGeneration() uint64 {
	c.genMu.RLock()
	defer c.genMu.RUnlock()
	return c.generation
}

// invalidate advances the generation and drops the in-process entities.
func (c *Catalog) invalidate() {
	c.genMu.Lock()
	c.generation++
	c.entities.Clear()
	c.genMu.Unlock()
}

// store caches champion unless the catalog was cleared after the load began.
func (c *Catalog) store(ctx context.Context, gen uint64, key string, champion *domain.Champion, remote bool) {
	c.genMu.RLock()
	defer c.genMu.RUnlock()

	if c.generation != gen {
		c.logger.Debug("Discarding champion loaded before clear", zap.String("slug", key))
		return
	}
	c.entities.Set(key, champion)
	if remote {
		c.toRemote(ctx, key, champion)
	}
}

// TTL reports the entity expiry.
func (c *Catalog) TTL() time.Duration {
	return c.ttl
}

func (c *Catalog) load(entry domain.IndexEntry, slug string) (*domain.Champion, error) {
	data, err := fs.ReadFile(c.fsys, path.Clean(entry.Filename))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", entry.Filename, err)
	}
	return c.normalizer.NormalizeBytes(data, slug)
}

func (c *Catalog) remoteKey(slug string) string {
	return fmt.Sprintf(constants.RedisKeys.Champion, slug)
}

func (c *Catalog) fromRemote(ctx context.Context, slug string) *domain.Champion {
	if c.remote == nil {
		return nil
	}
	var champion domain.Champion
	found, err := c.remote.Get(ctx, c.remoteKey(slug), &champion)
	if err != nil {
		c.logger.Warn("Remote champion cache unavailable", zap.String("slug", slug), zap.Error(err))
		return nil
	}
	if !found || champion.Identity.Slug == "" {
		return nil
	}
	return &champion
}

func (c *Catalog) toRemote(ctx context.Context, slug string, champion *domain.Champion) {
	if c.remote == nil {
		return
	}
	if err := c.remote.Set(ctx, c.remoteKey(slug), champion, c.ttl); err != nil {
		c.logger.Warn("Failed to store champion in remote cache", zap.String("slug", slug), zap.Error(err))
	}
}
