package item

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/kapu/wildrift-guide-go/internal/service/normalizer"
	"github.com/kapu/wildrift-guide-go/internal/util"
	"github.com/tidwall/gjson"
)

var numberPattern = regexp.MustCompile(`[-+]?\d[\d,]*(?:\.\d+)?`)

// ItemCatalog lists the items directory. Safe for concurrent use.
type ItemCatalog struct {
	items *loader[domain.Item]
}

func NewItemCatalog(cfg Config) (*ItemCatalog, error) {
	l, err := newLoader(cfg, "items", "items", parseItem)
	if err != nil {
		return nil, err
	}
	return &ItemCatalog{items: l}, nil
}

// All returns every item in file order.
func (c *ItemCatalog) All(ctx context.Context) []domain.Item {
	return c.items.all(ctx)
}

// Get resolves an item by display name or slug.
func (c *ItemCatalog) Get(ctx context.Context, nameOrSlug string) (*domain.Item, bool) {
	it, ok := c.items.lookup(ctx, nameOrSlug)
	if !ok {
		return nil, false
	}
	return &it, true
}

func (c *ItemCatalog) ByCategory(ctx context.Context, category domain.ItemCategory) []domain.Item {
	return c.filter(ctx, func(it domain.Item) bool { return it.Category == category })
}

func (c *ItemCatalog) ByTier(ctx context.Context, tier domain.ItemTier) []domain.Item {
	return c.filter(ctx, func(it domain.Item) bool { return it.Tier == tier })
}

// Search matches the query against item names and tags.
func (c *ItemCatalog) Search(ctx context.Context, query string) []domain.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.All(ctx)
	}
	return c.filter(ctx, func(it domain.Item) bool {
		if util.ContainsFold(it.Name, query) {
			return true
		}
		for _, tag := range it.Tags {
			if util.ContainsFold(tag, query) {
				return true
			}
		}
		return false
	})
}

func (c *ItemCatalog) Clear() {
	c.items.clear()
}

func (c *ItemCatalog) filter(ctx context.Context, keep func(domain.Item) bool) []domain.Item {
	out := []domain.Item{}
	for _, it := range c.items.all(ctx) {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func parseItem(raw gjson.Result, _ string) (domain.Item, string, bool) {
	name := str(raw, "name", "title")
	slug := normalizer.DeriveSlug(name)
	if slug == "" {
		return domain.Item{}, "", false
	}

	return domain.Item{
		Slug:        slug,
		Name:        name,
		Stats:       itemStats(raw.Get("stats")),
		Cost:        parseCost(raw.Get("cost")),
		Passive:     effectText(raw.Get("passive")),
		Active:      effectText(raw.Get("active")),
		Description: str(raw, "description", "desc"),
		Category:    domain.ParseItemCategory(str(raw, "category", "type")),
		Tier:        domain.ParseItemTier(str(raw, "tier")),
		Image:       str(raw, "image", "icon"),
		BuildPath:   strList(raw.Get("build_path")),
		Tags:        strList(raw.Get("tags")),
		Tips:        strList(raw.Get("tips")),
	}, slug, true
}

// parseCost reads 3000, "3000" or "3,000 gold". Anything else costs 0.
func parseCost(r gjson.Result) int {
	var v float64
	switch r.Type {
	case gjson.Number:
		v = r.Float()
	case gjson.String:
		m := numberPattern.FindString(r.String())
		if m == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		if err != nil {
			return 0
		}
		v = parsed
	default:
		return 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return int(math.Round(v))
}

// itemStats accepts {"ap": 120}, {"ap": "+120"}, {"haste": "15%"} or {"ap": {"value": 120, "type": "flat"}}.
func itemStats(r gjson.Result) map[string]domain.ItemStat {
	out := map[string]domain.ItemStat{}
	if !r.IsObject() {
		return out
	}
	r.ForEach(func(k, v gjson.Result) bool {
		key := normalizer.DeriveSlug(k.String())
		if key == "" {
			return true
		}
		if stat, ok := itemStat(v); ok {
			out[key] = stat
		}
		return true
	})
	return out
}

func itemStat(v gjson.Result) (domain.ItemStat, bool) {
	switch {
	case v.Type == gjson.Number:
		return domain.ItemStat{Value: v.Float(), Type: "flat"}, true
	case v.Type == gjson.String:
		s := v.String()
		m := numberPattern.FindString(s)
		if m == "" {
			return domain.ItemStat{}, false
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		if err != nil {
			return domain.ItemStat{}, false
		}
		return domain.ItemStat{Value: value, Type: statType(s)}, true
	case v.IsObject():
		value := v.Get("value")
		if value.Type != gjson.Number {
			return domain.ItemStat{}, false
		}
		return domain.ItemStat{Value: value.Float(), Type: statType(v.Get("type").String())}, true
	}
	return domain.ItemStat{}, false
}

func statType(s string) string {
	if strings.Contains(s, "%") || strings.EqualFold(strings.TrimSpace(s), "percentage") {
		return "percentage"
	}
	return "flat"
}

// effectText renders a passive or active as plain text; objects become "Name: description".
func effectText(r gjson.Result) string {
	switch {
	case r.Type == gjson.String:
		return strings.TrimSpace(r.String())
	case r.IsObject():
		name := str(r, "name", "title")
		desc := str(r, "description", "desc", "text")
		if name != "" && desc != "" {
			return name + ": " + desc
		}
		return util.FirstNonEmpty(desc, name)
	case r.IsArray():
		parts := []string{}
		for _, el := range r.Array() {
			if text := effectText(el); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

// SortByName orders items alphabetically without touching the input.
func SortByName(items []domain.Item) []domain.Item {
	out := make([]domain.Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
