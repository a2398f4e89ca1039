package item

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/kapu/wildrift-guide-go/internal/service/normalizer"
	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RuneCatalog lists the runes directory. Safe for concurrent use.
type RuneCatalog struct {
	runes *loader[domain.Rune]
}

func NewRuneCatalog(cfg Config) (*RuneCatalog, error) {
	l, err := newLoader(cfg, "runes", "runes", parseRune)
	if err != nil {
		return nil, err
	}
	return &RuneCatalog{runes: l}, nil
}

func (c *RuneCatalog) All(ctx context.Context) []domain.Rune {
	return c.runes.all(ctx)
}

func (c *RuneCatalog) Get(ctx context.Context, nameOrSlug string) (*domain.Rune, bool) {
	r, ok := c.runes.lookup(ctx, nameOrSlug)
	if !ok {
		return nil, false
	}
	return &r, true
}

// ByTree matches the tree name case-insensitively.
func (c *RuneCatalog) ByTree(ctx context.Context, tree string) []domain.Rune {
	tree = strings.TrimSpace(tree)
	out := []domain.Rune{}
	for _, r := range c.runes.all(ctx) {
		if strings.EqualFold(r.Tree, tree) {
			out = append(out, r)
		}
	}
	return out
}

func (c *RuneCatalog) Clear() {
	c.runes.clear()
}

// parseRune falls back to the file name for the tree, since the scraper writes one file per tree.
func parseRune(raw gjson.Result, filename string) (domain.Rune, string, bool) {
	name := str(raw, "name", "title")
	slug := normalizer.DeriveSlug(name)
	if slug == "" {
		return domain.Rune{}, "", false
	}
	tree := str(raw, "tree", "path", "category")
	if tree == "" {
		stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		tree = cases.Title(language.English).String(strings.ReplaceAll(stem, "_", " "))
	}
	return domain.Rune{
		Slug:        slug,
		Name:        name,
		Tree:        tree,
		Image:       str(raw, "image", "icon"),
		Description: str(raw, "description", "desc"),
	}, slug, true
}
