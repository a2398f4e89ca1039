package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/kapu/wildrift-guide-go/internal/service/normalizer"
	"github.com/kapu/wildrift-guide-go/internal/util"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ensureIndex builds the index on first use. Concurrent callers wait for the one build.
// The returned map is never mutated afterwards.
func (c *Catalog) ensureIndex(ctx context.Context) (map[string]domain.IndexEntry, []string) {
	c.indexMu.Lock()
	defer c.indexMu.Unlock()

	if c.built {
		return c.index, c.order
	}

	if index, order, ok := c.readIndexFile(); ok {
		c.index, c.order, c.built = index, order, true
		c.logger.Info("Champion index loaded from disk",
			zap.String("path", c.indexPath),
			zap.Int("champions", len(order)),
		)
		return c.index, c.order
	}

	index, order, err := c.scan(ctx)
	if err != nil {
		c.logger.Error("Failed to scan champion directory", zap.Error(err))
		return map[string]domain.IndexEntry{}, []string{}
	}
	c.index, c.order, c.built = index, order, true
	c.logger.Info("Champion index built", zap.Int("champions", len(order)))

	if c.indexPath != "" {
		if err := writeIndexFile(c.indexPath, index); err != nil {
			c.logger.Warn("Failed to persist champion index", zap.String("path", c.indexPath), zap.Error(err))
		}
	}
	return c.index, c.order
}

// scan reads every *.json file in the data directory. A file that cannot be read or is
// not a JSON object is skipped with one warning.
func (c *Catalog) scan(ctx context.Context) (map[string]domain.IndexEntry, []string, error) {
	entries, err := fs.ReadDir(c.fsys, ".")
	if err != nil {
		return nil, nil, fmt.Errorf("list data directory: %w", err)
	}

	index := make(map[string]domain.IndexEntry, len(entries))
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}

		slug, entry, err := c.summarize(e.Name())
		if err != nil {
			c.logger.Warn("Skipping unreadable champion file", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		if prev, dup := index[slug]; dup {
			c.logger.Warn("Duplicate champion slug",
				zap.String("slug", slug),
				zap.String("kept", prev.Filename),
				zap.String("ignored", e.Name()),
			)
			continue
		}
		index[slug] = entry
		order = append(order, slug)
	}
	return index, order, nil
}

func (c *Catalog) summarize(filename string) (string, domain.IndexEntry, error) {
	data, err := fs.ReadFile(c.fsys, filename)
	if err != nil {
		return "", domain.IndexEntry{}, err
	}
	if !gjson.ValidBytes(data) {
		return "", domain.IndexEntry{}, normalizer.ErrInvalidJSON
	}
	raw := gjson.ParseBytes(data)
	if !raw.IsObject() {
		return "", domain.IndexEntry{}, normalizer.ErrNotObject
	}

	name := normalizer.DisplayName(raw)
	slug := util.FirstNonEmpty(normalizer.DeriveSlug(name), normalizer.SlugFromFilename(filename))
	if slug == "" {
		return "", domain.IndexEntry{}, normalizer.ErrNoIdentity
	}
	return slug, domain.IndexEntry{
		Filename: filename,
		Name:     util.FirstNonEmpty(name, slug),
		Tier:     normalizer.RankOf(raw).String(),
		Role:     normalizer.RoleOf(raw),
	}, nil
}

// readIndexFile loads the serialized index. Absent, unreadable or malformed files report false.
func (c *Catalog) readIndexFile() (map[string]domain.IndexEntry, []string, bool) {
	if c.indexPath == "" {
		return nil, nil, false
	}
	data, err := os.ReadFile(c.indexPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("Failed to read champion index", zap.String("path", c.indexPath), zap.Error(err))
		}
		return nil, nil, false
	}

	var stored map[string]domain.IndexEntry
	if err := json.Unmarshal(data, &stored); err != nil || stored == nil {
		c.logger.Warn("Ignoring corrupt champion index", zap.String("path", c.indexPath), zap.Error(err))
		return nil, nil, false
	}

	// Keys are re-derived the way a scan derives them: from the display name, else the
	// filename. Artifacts written by other tools may be keyed by filename stem instead.
	entries := make([]domain.IndexEntry, 0, len(stored))
	for key, entry := range stored {
		if strings.TrimSpace(entry.Filename) == "" {
			c.logger.Warn("Ignoring corrupt champion index", zap.String("path", c.indexPath), zap.String("slug", key))
			return nil, nil, false
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Filename < entries[j].Filename })

	index := make(map[string]domain.IndexEntry, len(entries))
	order := make([]string, 0, len(entries))
	for _, entry := range entries {
		slug := util.FirstNonEmpty(normalizer.DeriveSlug(entry.Name), normalizer.SlugFromFilename(entry.Filename))
		if slug == "" {
			c.logger.Warn("Ignoring corrupt champion index", zap.String("path", c.indexPath), zap.String("file", entry.Filename))
			return nil, nil, false
		}
		if prev, dup := index[slug]; dup {
			c.logger.Warn("Duplicate champion slug",
				zap.String("slug", slug),
				zap.String("kept", prev.Filename),
				zap.String("ignored", entry.Filename),
			)
			continue
		}
		index[slug] = entry
		order = append(order, slug)
	}
	return index, order, true
}

// PersistIndex writes the current index to IndexPath, building it first if needed.
func (c *Catalog) PersistIndex(ctx context.Context) error {
	if c.indexPath == "" {
		return fmt.Errorf("catalog: no index path configured")
	}
	index, _ := c.ensureIndex(ctx)
	return writeIndexFile(c.indexPath, index)
}

// Rebuild rescans the data directory without consulting the artifact on disk, swaps in the
// new index, drops cached entities and persists the result when IndexPath is set.
func (c *Catalog) Rebuild(ctx context.Context) (int, error) {
	index, order, err := c.scan(ctx)
	if err != nil {
		return 0, fmt.Errorf("scan champion directory: %w", err)
	}

	c.indexMu.Lock()
	c.index, c.order, c.built = index, order, true
	c.indexMu.Unlock()
	c.invalidate()

	if c.indexPath == "" {
		return len(order), nil
	}
	if err := writeIndexFile(c.indexPath, index); err != nil {
		return len(order), fmt.Errorf("persist champion index: %w", err)
	}
	return len(order), nil
}

// writeIndexFile replaces path atomically so a concurrent reader never sees a partial file.
func writeIndexFile(path string, index map[string]domain.IndexEntry) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".champion-index-*.json")
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp index: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}
