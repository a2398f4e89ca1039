package domain

import "strings"

type ItemCategory string

const (
	ItemLegendary ItemCategory = "legendary"
	ItemMythic    ItemCategory = "mythic"
	ItemBasic     ItemCategory = "basic"
	ItemBoots     ItemCategory = "boots"
	ItemEnchant   ItemCategory = "enchant"
)

var itemCategories = []ItemCategory{ItemLegendary, ItemMythic, ItemBasic, ItemBoots, ItemEnchant}

// ParseItemCategory falls back to basic for anything unrecognised.
func ParseItemCategory(s string) ItemCategory {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range itemCategories {
		if string(c) == s {
			return c
		}
	}
	return ItemBasic
}

type ItemTier string

const (
	ItemTierS ItemTier = "S"
	ItemTierA ItemTier = "A"
	ItemTierB ItemTier = "B"
	ItemTierC ItemTier = "C"
)

var itemTiers = []ItemTier{ItemTierS, ItemTierA, ItemTierB, ItemTierC}

// ParseItemTier falls back to C for anything unrecognised.
func ParseItemTier(s string) ItemTier {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, t := range itemTiers {
		if string(t) == s {
			return t
		}
	}
	return ItemTierC
}

// Order sorts S first; unknown tiers last.
func (t ItemTier) Order() int {
	for i, it := range itemTiers {
		if it == t {
			return i
		}
	}
	return len(itemTiers)
}

type ItemStat struct {
	Value float64 `json:"value"`
	Type  string  `json:"type"`
}

type Item struct {
	Slug        string              `json:"id"`
	Name        string              `json:"name"`
	Stats       map[string]ItemStat `json:"stats"`
	Cost        int                 `json:"cost"`
	Passive     string              `json:"passive"`
	Active      string              `json:"active"`
	Description string              `json:"description"`
	Category    ItemCategory        `json:"category"`
	Tier        ItemTier            `json:"tier"`
	Image       string              `json:"image,omitempty"`
	BuildPath   []string            `json:"build_path"`
	Tags        []string            `json:"tags"`
	Tips        []string            `json:"tips"`
}

type ItemCard struct {
	Slug     string              `json:"id"`
	Name     string              `json:"name"`
	Cost     int                 `json:"cost"`
	Tier     ItemTier            `json:"tier"`
	Category ItemCategory        `json:"category"`
	Image    string              `json:"image,omitempty"`
	Stats    map[string]ItemStat `json:"stats"`
	Passive  string              `json:"passive,omitempty"`
}

type Rune struct {
	Slug        string `json:"id"`
	Name        string `json:"name"`
	Tree        string `json:"tree"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description"`
}
