package normalizer

import (
	"math"
	"strings"

	"github.com/kapu/wildrift-guide-go/internal/constants"
	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/tidwall/gjson"
)

// buildList returns the per-lane builds of the scraper layout, or the single build
// object of the authored layout.
func buildList(raw gjson.Result) []gjson.Result {
	node := first(raw, "builds", "build", "champion.builds")
	switch {
	case node.IsArray():
		out := make([]gjson.Result, 0, len(node.Array()))
		for _, b := range node.Array() {
			if b.IsObject() {
				out = append(out, b)
			}
		}
		return out
	case node.IsObject():
		return []gjson.Result{node}
	}
	return nil
}

func primaryBuild(builds []gjson.Result) domain.BuildRecommendation {
	if len(builds) == 0 {
		return emptyBuild("")
	}
	return buildFrom(builds[0])
}

// laneBuilds keys every build that names its lane; the first build per lane wins.
// The authored layout may instead carry a lane_specific object.
func laneBuilds(builds []gjson.Result) map[string]domain.BuildRecommendation {
	out := make(map[string]domain.BuildRecommendation)
	for _, b := range builds {
		if lane := str(b, "lane"); lane != "" {
			if _, exists := out[lane]; !exists {
				out[lane] = buildFrom(b)
			}
		}
		specific := b.Get("lane_specific")
		if !specific.IsObject() {
			continue
		}
		specific.ForEach(func(k, v gjson.Result) bool {
			lane := strings.TrimSpace(k.String())
			if lane == "" || !v.IsObject() {
				return true
			}
			if _, exists := out[lane]; !exists {
				lb := buildFrom(v)
				lb.Lane = lane
				out[lane] = lb
			}
			return true
		})
	}
	return out
}

func emptyBuild(lane string) domain.BuildRecommendation {
	return domain.BuildRecommendation{
		Lane:             lane,
		StartingItems:    []domain.ItemRef{},
		CoreItems:        []domain.ItemRef{},
		Boots:            []domain.ItemRef{},
		SituationalItems: []domain.ItemRef{},
		ExampleBuild:     []domain.ItemRef{},
		Enchants:         []string{},
	}
}

func buildFrom(b gjson.Result) domain.BuildRecommendation {
	build := emptyBuild(str(b, "lane"))
	build.StartingItems = itemRefs(first(b, "starting_items", "start_items"))
	build.CoreItems = itemRefs(first(b, "core_items", "core"))
	build.ExampleBuild = itemRefs(first(b, "example_build", "full_build"))
	build.SituationalItems = situationalItems(first(b, "situational_items", "situational"))

	// boots_enchants mixes boots with their enchants
	for _, ref := range itemRefs(first(b, "boots", "boots_enchants")) {
		if isEnchant(ref.Name) {
			build.Enchants = append(build.Enchants, ref.Name)
			continue
		}
		build.Boots = append(build.Boots, ref)
	}
	for _, name := range names(b.Get("enchants")) {
		if !containsName(build.Enchants, name) {
			build.Enchants = append(build.Enchants, name)
		}
	}
	return build
}

func isEnchant(name string) bool {
	return strings.Contains(strings.ToLower(name), "enchant")
}

func containsName(list []string, name string) bool {
	for _, n := range list {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// situationalItems flattens [{purpose, items, tips}] categories or takes a plain item list.
func situationalItems(r gjson.Result) []domain.ItemRef {
	if !r.IsArray() {
		return itemRefs(r)
	}
	out := []domain.ItemRef{}
	for _, el := range r.Array() {
		if items := el.Get("items"); el.IsObject() && items.Exists() {
			out = append(out, itemRefs(items)...)
			continue
		}
		if ref, ok := itemRef(el); ok {
			out = append(out, ref)
		}
	}
	return out
}

func itemRefs(r gjson.Result) []domain.ItemRef {
	out := []domain.ItemRef{}
	if r.Type == gjson.String {
		if ref, ok := itemRef(r); ok {
			out = append(out, ref)
		}
		return out
	}
	if !r.IsArray() {
		return out
	}
	for _, el := range r.Array() {
		if ref, ok := itemRef(el); ok {
			out = append(out, ref)
		}
	}
	return out
}

func itemRef(r gjson.Result) (domain.ItemRef, bool) {
	name := nameOf(r)
	if name == "" {
		return domain.ItemRef{}, false
	}
	ref := domain.ItemRef{Name: name}
	if r.IsObject() {
		ref.Image = str(r, "image", "icon", "src")
		ref.Alt = str(r, "alt", "alt_text")
		ref.Description = str(r, "description", "desc")
		if cost, ok := num(r, "cost", "price", "gold"); ok && cost > 0 {
			ref.Cost = int(math.Round(cost))
		}
	}
	return ref, true
}

func runeRef(r gjson.Result) (domain.RuneRef, bool) {
	name := nameOf(r)
	if name == "" {
		return domain.RuneRef{}, false
	}
	ref := domain.RuneRef{Name: name}
	if r.IsObject() {
		ref.Image = str(r, "image", "icon")
		ref.Description = str(r, "description", "desc")
	}
	return ref, true
}

func runeRefs(r gjson.Result) []domain.RuneRef {
	out := []domain.RuneRef{}
	if !r.IsArray() {
		if ref, ok := runeRef(r); ok && r.Type == gjson.String {
			out = append(out, ref)
		}
		return out
	}
	for _, el := range r.Array() {
		if ref, ok := runeRef(el); ok {
			out = append(out, ref)
		}
	}
	return out
}

// runeRecommendation prefers a top-level runes block and falls back to the first build's.
func runeRecommendation(raw gjson.Result, builds []gjson.Result) domain.RuneRecommendation {
	node := first(raw, "runes", "champion.runes")
	if !node.IsObject() && len(builds) > 0 {
		node = builds[0].Get("runes")
	}

	rec := domain.RuneRecommendation{
		Primary: domain.RuneTree{
			Tree:     constants.Placeholders.RuneTree,
			Keystone: &domain.RuneRef{Name: constants.Placeholders.UnknownName},
			Runes:    []domain.RuneRef{},
		},
		Secondary: domain.RuneTree{
			Tree:  constants.Placeholders.RuneTree,
			Runes: []domain.RuneRef{},
		},
		StatShards: names(node.Get("stat_shards")),
	}
	if !node.IsObject() {
		return rec
	}

	primary := node.Get("primary")
	if primary.IsObject() {
		if tree := str(primary, "tree", "name"); tree != "" {
			rec.Primary.Tree = tree
		}
		if ks, ok := runeRef(primary.Get("keystone")); ok {
			rec.Primary.Keystone = &ks
		}
		rec.Primary.Runes = runeRefs(primary.Get("runes"))
	} else {
		if tree := str(node, "primary_tree", "tree"); tree != "" {
			rec.Primary.Tree = tree
		}
		rec.Primary.Runes = runeRefs(primary)
	}
	if ks, ok := runeRef(node.Get("keystone")); ok {
		rec.Primary.Keystone = &ks
	}

	secondary := node.Get("secondary")
	if secondary.IsObject() {
		if tree := str(secondary, "tree", "name"); tree != "" {
			rec.Secondary.Tree = tree
		}
		rec.Secondary.Runes = runeRefs(secondary.Get("runes"))
	} else {
		if tree := str(node, "secondary_tree"); tree != "" {
			rec.Secondary.Tree = tree
		}
		rec.Secondary.Runes = runeRefs(secondary)
	}
	return rec
}
