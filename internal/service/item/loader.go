// Package item serves the item and rune reference data used to enrich champion builds.
package item

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/kapu/wildrift-guide-go/internal/constants"
	"github.com/kapu/wildrift-guide-go/internal/service/cache"
	"github.com/kapu/wildrift-guide-go/internal/service/normalizer"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// indexFile is the scraper's own summary file, not a record.
const indexFile = "index.json"

const datasetKey = "all"

type Config struct {
	FS     fs.FS
	TTL    time.Duration
	Logger *zap.Logger
	Clock  cache.Clock
}

func (c Config) withDefaults() Config {
	if c.TTL <= 0 {
		c.TTL = constants.CacheTTL.Items
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

type dataset[T any] struct {
	list   []T
	bySlug map[string]int
}

// parseFunc maps one record onto T and its slug; ok=false skips the record.
type parseFunc[T any] func(raw gjson.Result, filename string) (value T, slug string, ok bool)

// loader reads a directory of JSON records once per TTL window.
type loader[T any] struct {
	fsys   fs.FS
	kind   string
	wrap   string
	parse  parseFunc[T]
	logger *zap.Logger
	cache  *cache.TTLCache[string, *dataset[T]]
	group  singleflight.Group
}

func newLoader[T any](cfg Config, kind, wrap string, parse parseFunc[T]) (*loader[T], error) {
	if cfg.FS == nil {
		return nil, fmt.Errorf("%s: data filesystem is nil", kind)
	}
	cfg = cfg.withDefaults()
	return &loader[T]{
		fsys:   cfg.FS,
		kind:   kind,
		wrap:   wrap,
		parse:  parse,
		logger: cfg.Logger,
		cache:  cache.NewTTLCache[string, *dataset[T]](cfg.TTL, cfg.Clock),
	}, nil
}

func (l *loader[T]) get(ctx context.Context) *dataset[T] {
	if ds, ok := l.cache.Get(datasetKey); ok {
		return ds
	}
	v, _, _ := l.group.Do(datasetKey, func() (any, error) {
		if ds, ok := l.cache.Get(datasetKey); ok {
			return ds, nil
		}
		ds, err := l.read(ctx)
		if err != nil {
			l.logger.Warn("Failed to read data directory", zap.String("kind", l.kind), zap.Error(err))
			return &dataset[T]{bySlug: map[string]int{}}, nil
		}
		l.cache.Set(datasetKey, ds)
		l.logger.Info("Reference data loaded", zap.String("kind", l.kind), zap.Int("count", len(ds.list)))
		return ds, nil
	})
	return v.(*dataset[T])
}

func (l *loader[T]) read(ctx context.Context) (*dataset[T], error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, err
	}

	ds := &dataset[T]{bySlug: map[string]int{}}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".json") || strings.EqualFold(name, indexFile) {
			continue
		}
		data, err := fs.ReadFile(l.fsys, name)
		if err != nil || !gjson.ValidBytes(data) {
			l.logger.Warn("Skipping unreadable record file", zap.String("kind", l.kind), zap.String("file", name), zap.Error(err))
			continue
		}
		for _, raw := range records(gjson.ParseBytes(data), l.wrap) {
			value, slug, ok := l.parse(raw, name)
			if !ok {
				continue
			}
			if _, dup := ds.bySlug[slug]; dup {
				l.logger.Debug("Duplicate record ignored", zap.String("kind", l.kind), zap.String("slug", slug))
				continue
			}
			ds.bySlug[slug] = len(ds.list)
			ds.list = append(ds.list, value)
		}
	}
	return ds, nil
}

func (l *loader[T]) lookup(ctx context.Context, nameOrSlug string) (T, bool) {
	var zero T
	slug := normalizer.DeriveSlug(nameOrSlug)
	if slug == "" {
		return zero, false
	}
	ds := l.get(ctx)
	idx, ok := ds.bySlug[slug]
	if !ok {
		return zero, false
	}
	return ds.list[idx], true
}

func (l *loader[T]) all(ctx context.Context) []T {
	ds := l.get(ctx)
	out := make([]T, len(ds.list))
	copy(out, ds.list)
	return out
}

func (l *loader[T]) clear() {
	l.cache.Clear()
}

// records accepts a single object, an array of objects, or an object wrapping either
// (or a name-keyed map of them) under wrap.
func records(doc gjson.Result, wrap string) []gjson.Result {
	if doc.IsObject() && !doc.Get("name").Exists() {
		if inner := doc.Get(wrap); inner.IsArray() || inner.IsObject() {
			doc = inner
		}
	}

	out := []gjson.Result{}
	switch {
	case doc.IsArray():
		for _, el := range doc.Array() {
			if el.IsObject() {
				out = append(out, el)
			}
		}
	case doc.IsObject() && doc.Get("name").Exists():
		out = append(out, doc)
	case doc.IsObject():
		doc.ForEach(func(_, v gjson.Result) bool {
			if v.IsObject() {
				out = append(out, v)
			}
			return true
		})
	}
	return out
}

func str(raw gjson.Result, paths ...string) string {
	for _, p := range paths {
		r := raw.Get(p)
		if r.Type != gjson.String && r.Type != gjson.Number {
			continue
		}
		if s := strings.TrimSpace(r.String()); s != "" {
			return s
		}
	}
	return ""
}

func strList(r gjson.Result) []string {
	out := []string{}
	switch {
	case r.IsArray():
		for _, el := range r.Array() {
			s := str(el, "name")
			if el.Type == gjson.String {
				s = strings.TrimSpace(el.String())
			}
			if s != "" {
				out = append(out, s)
			}
		}
	case r.Type == gjson.String:
		if s := strings.TrimSpace(r.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}
