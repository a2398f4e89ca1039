package guide

import (
	"sort"
	"strconv"
	"strings"

	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/kapu/wildrift-guide-go/internal/util"
)

// Default list sizes for the landing page.
const (
	DefaultTopChampions  = 12
	DefaultFeaturedItems = 8
)

// roleKeywords widens a role filter to the labels the scraper uses for it.
var roleKeywords = map[string][]string{
	"tank":     {"tank", "support"},
	"fighter":  {"fighter", "bruiser"},
	"assassin": {"assassin"},
	"mage":     {"mage", "ap"},
	"marksman": {"marksman", "adc", "ad carry"},
	"support":  {"support", "enchanter"},
}

var statDisplayNames = map[string]string{
	"attack_damage":    "AD",
	"ability_power":    "AP",
	"attack_speed":     "AS",
	"critical_strike":  "Crit",
	"armor":            "Armor",
	"magic_resistance": "MR",
	"health":           "HP",
	"mana":             "Mana",
	"ability_haste":    "AH",
	"movement_speed":   "MS",
	"life_steal":       "Life Steal",
	"omnivamp":         "Omnivamp",
}

func ChampionToCard(c *domain.Champion) domain.ChampionCard {
	return domain.ChampionCard{
		Slug:       c.Identity.Slug,
		Name:       c.Identity.DisplayName,
		Role:       util.StripTags(c.Classification.Role),
		Tier:       c.Classification.Rank,
		Image:      c.Identity.Image,
		Lanes:      append([]string{}, c.Classification.Lanes...),
		Difficulty: c.Classification.Difficulty,
		WinRate:    c.Meta.WinRate,
		PickRate:   c.Meta.PickRate,
	}
}

func ChampionsToCards(champions []*domain.Champion) []domain.ChampionCard {
	cards := make([]domain.ChampionCard, 0, len(champions))
	for _, c := range champions {
		if c != nil {
			cards = append(cards, ChampionToCard(c))
		}
	}
	return cards
}

// SortChampionsByTier orders by rank, then name. The input is left untouched.
func SortChampionsByTier(cards []domain.ChampionCard) []domain.ChampionCard {
	out := append([]domain.ChampionCard{}, cards...)
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := out[i].Tier.Order(), out[j].Tier.Order()
		if oi != oj {
			return oi < oj
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// FilterChampionsByRole keeps cards whose role mentions any keyword of the filter.
// An empty filter or "all" keeps everything.
func FilterChampionsByRole(cards []domain.ChampionCard, role string) []domain.ChampionCard {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" || role == "all" {
		return cards
	}
	keywords, ok := roleKeywords[role]
	if !ok {
		keywords = []string{role}
	}

	out := []domain.ChampionCard{}
	for _, card := range cards {
		for _, kw := range keywords {
			if util.ContainsFold(card.Role, kw) {
				out = append(out, card)
				break
			}
		}
	}
	return out
}

// FilterChampionsByTier keeps cards of one rank tier.
func FilterChampionsByTier(cards []domain.ChampionCard, tier domain.RankTier) []domain.ChampionCard {
	out := []domain.ChampionCard{}
	for _, card := range cards {
		if card.Tier == tier {
			out = append(out, card)
		}
	}
	return out
}

func TopChampions(cards []domain.ChampionCard, limit int) []domain.ChampionCard {
	if limit <= 0 {
		limit = DefaultTopChampions
	}
	sorted := SortChampionsByTier(cards)
	return sorted[:util.Min(limit, len(sorted))]
}

func ItemToCard(it domain.Item) domain.ItemCard {
	return domain.ItemCard{
		Slug:     it.Slug,
		Name:     it.Name,
		Cost:     it.Cost,
		Tier:     it.Tier,
		Category: it.Category,
		Image:    it.Image,
		Stats:    it.Stats,
		Passive:  it.Passive,
	}
}

func ItemsToCards(items []domain.Item) []domain.ItemCard {
	cards := make([]domain.ItemCard, 0, len(items))
	for _, it := range items {
		cards = append(cards, ItemToCard(it))
	}
	return cards
}

// SortItemsByTier orders by tier, then the more expensive item first.
func SortItemsByTier(cards []domain.ItemCard) []domain.ItemCard {
	out := append([]domain.ItemCard{}, cards...)
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := out[i].Tier.Order(), out[j].Tier.Order()
		if oi != oj {
			return oi < oj
		}
		return out[i].Cost > out[j].Cost
	})
	return out
}

func FeaturedItems(cards []domain.ItemCard, limit int) []domain.ItemCard {
	if limit <= 0 {
		limit = DefaultFeaturedItems
	}
	sorted := SortItemsByTier(cards)
	return sorted[:util.Min(limit, len(sorted))]
}

// StatDisplayName abbreviates well-known stat keys and spaces out the rest.
func StatDisplayName(key string) string {
	if name, ok := statDisplayNames[key]; ok {
		return name
	}
	return strings.ReplaceAll(key, "_", " ")
}

func FormatStatValue(stat domain.ItemStat) string {
	value := strconv.FormatFloat(stat.Value, 'f', -1, 64)
	if stat.Type == "percentage" {
		return value + "%"
	}
	return value
}
