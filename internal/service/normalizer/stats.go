package normalizer

import (
	"strings"

	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/kapu/wildrift-guide-go/internal/util"
	"github.com/tidwall/gjson"
)

type baseStatSpec struct {
	key     string
	aliases []string
}

// baseStatSpecs lists the canonical base stats every Champion carries.
var baseStatSpecs = []baseStatSpec{
	{key: "attack_damage", aliases: []string{"ad", "attack"}},
	{key: "health", aliases: []string{"hp"}},
	{key: "health_regeneration", aliases: []string{"health_regen", "hp_regen"}},
	{key: "attack_speed", aliases: []string{"as"}},
	{key: "mana", aliases: []string{"mp"}},
	{key: "mana_regeneration", aliases: []string{"mana_regen", "mp_regen"}},
	{key: "movement_speed", aliases: []string{"move_speed", "ms"}},
	{key: "armor", aliases: []string{"armour"}},
	{key: "magic_resistance", aliases: []string{"magic_resist", "mr"}},
	{key: "critical_strike", aliases: []string{"crit", "critical_damage"}},
}

var performanceKeys = map[string]bool{
	"damage": true, "toughness": true, "utility": true, "difficulty": true,
}

func performanceStats(raw gjson.Result) domain.PerformanceStats {
	score := func(key string) float64 {
		v, _ := num(raw, "stats."+key, "stats."+key+".base", "performance."+key, "champion.stats."+key)
		return util.Clamp(v, 0, 100)
	}
	return domain.PerformanceStats{
		Damage:     score("damage"),
		Toughness:  score("toughness"),
		Utility:    score("utility"),
		Difficulty: score("difficulty"),
	}
}

// statValue reads a number, a "600 (+100)" string or a {base, per_level} object.
func statValue(r gjson.Result) (domain.StatValue, bool) {
	switch {
	case r.Type == gjson.Number:
		v, ok := asNumber(r)
		return domain.StatValue{Base: v}, ok
	case r.Type == gjson.String:
		nums := parseNumbers(r.String())
		if len(nums) == 0 {
			return domain.StatValue{}, false
		}
		sv := domain.StatValue{Base: nums[0]}
		if len(nums) > 1 {
			sv.PerLevel = nums[1]
		}
		return sv, true
	case r.IsObject():
		base, okBase := num(r, "base", "value", "flat")
		per, okPer := num(r, "per_level", "perLevel", "growth", "per_lvl")
		if !okBase && !okPer {
			return domain.StatValue{}, false
		}
		return domain.StatValue{Base: base, PerLevel: per}, true
	}
	return domain.StatValue{}, false
}

func baseStats(raw gjson.Result) map[string]domain.StatValue {
	block := first(raw, "base_stats", "champion.base_stats", "baseStats")
	stats := first(raw, "stats")

	known := make(map[string]string, len(baseStatSpecs)*3)
	out := make(map[string]domain.StatValue, len(baseStatSpecs))
	for _, spec := range baseStatSpecs {
		known[spec.key] = spec.key
		for _, alias := range spec.aliases {
			known[alias] = spec.key
		}

		value := domain.StatValue{}
		candidates := append([]string{spec.key}, spec.aliases...)
		found := false
		for _, path := range candidates {
			if sv, ok := statValue(block.Get(path)); ok {
				value, found = sv, true
				break
			}
		}
		if !found {
			// authored layout keeps base stats next to the performance bars
			if sv, ok := statValue(stats.Get(spec.key)); ok && stats.Get(spec.key).IsObject() {
				value = sv
			}
		}
		out[spec.key] = domain.StatValue{Base: util.Finite(value.Base), PerLevel: util.Finite(value.PerLevel)}
	}

	if block.IsObject() {
		block.ForEach(func(k, v gjson.Result) bool {
			key := strings.ToLower(strings.TrimSpace(k.String()))
			if _, ok := known[key]; ok || performanceKeys[key] {
				return true
			}
			slug := DeriveSlug(key)
			if slug == "" {
				return true
			}
			if sv, ok := statValue(v); ok {
				if _, exists := out[slug]; !exists {
					out[slug] = domain.StatValue{Base: util.Finite(sv.Base), PerLevel: util.Finite(sv.PerLevel)}
				}
			}
			return true
		})
	}
	return out
}
