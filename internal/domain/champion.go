package domain

// Champion is the normalized view model consumed by page generation and the API.
type Champion struct {
	Identity       Identity                       `json:"champion"`
	Classification Classification                 `json:"classification"`
	Stats          Stats                          `json:"stats"`
	Abilities      AbilitySet                     `json:"abilities"`
	Builds         BuildRecommendation            `json:"builds"`
	LaneBuilds     map[string]BuildRecommendation `json:"lane_specific"`
	Runes          RuneRecommendation             `json:"runes"`
	SummonerSpells []string                       `json:"summoner_spells"`
	Counters       Counters                       `json:"counters"`
	Tips           []string                       `json:"tips"`
	Meta           MetaSnapshot                   `json:"meta"`
}

type Identity struct {
	Slug        string `json:"id"`
	DisplayName string `json:"name"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	SplashArt   string `json:"splash_art"`
}

type Classification struct {
	Role       string         `json:"role"`
	Lanes      []string       `json:"lanes"`
	Difficulty DifficultyTier `json:"difficulty"`
	Rank       RankTier       `json:"tier"`
}

type StatValue struct {
	Base     float64 `json:"base"`
	PerLevel float64 `json:"per_level"`
}

// PerformanceStats are the four 0..100 bars shown on the champion page.
type PerformanceStats struct {
	Damage     float64 `json:"damage"`
	Toughness  float64 `json:"toughness"`
	Utility    float64 `json:"utility"`
	Difficulty float64 `json:"difficulty"`
}

type Stats struct {
	Performance PerformanceStats     `json:"performance"`
	Base        map[string]StatValue `json:"base"`
}

type AbilityKind string

const (
	AbilityPassive  AbilityKind = "Passive"
	AbilityActive   AbilityKind = "Active"
	AbilityUltimate AbilityKind = "Ultimate"
)

type Ability struct {
	Name        string      `json:"name"`
	Key         string      `json:"key"`
	Kind        AbilityKind `json:"type"`
	Description string      `json:"description"`
	Damage      []float64   `json:"damage"`
	Scaling     string      `json:"scaling"`
	DamageType  string      `json:"damage_type"`
	Image       string      `json:"image"`
	Notes       []string    `json:"notes"`
	Placeholder bool        `json:"placeholder,omitempty"`
}

// AbilitySet always carries all five slots.
type AbilitySet struct {
	Passive Ability `json:"passive"`
	Q       Ability `json:"q"`
	W       Ability `json:"w"`
	E       Ability `json:"e"`
	R       Ability `json:"r"`
}

// AbilitySlotNames is the fixed slot order of an AbilitySet.
var AbilitySlotNames = []string{"passive", "q", "w", "e", "r"}

// Slots returns the abilities keyed by slot name.
func (s AbilitySet) Slots() map[string]Ability {
	return map[string]Ability{
		"passive": s.Passive,
		"q":       s.Q,
		"w":       s.W,
		"e":       s.E,
		"r":       s.R,
	}
}

// Slot returns a pointer to the named slot so callers can fill it in place.
func (s *AbilitySet) Slot(name string) *Ability {
	switch name {
	case "passive":
		return &s.Passive
	case "q":
		return &s.Q
	case "w":
		return &s.W
	case "e":
		return &s.E
	case "r":
		return &s.R
	}
	return nil
}

type ItemRef struct {
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	Alt         string `json:"alt,omitempty"`
	Description string `json:"description,omitempty"`
	Cost        int    `json:"cost,omitempty"`
}

type RuneRef struct {
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

type BuildRecommendation struct {
	Lane             string    `json:"lane,omitempty"`
	StartingItems    []ItemRef `json:"starting_items"`
	CoreItems        []ItemRef `json:"core_items"`
	Boots            []ItemRef `json:"boots"`
	SituationalItems []ItemRef `json:"situational_items"`
	ExampleBuild     []ItemRef `json:"example_build"`
	Enchants         []string  `json:"enchants"`
}

type RuneTree struct {
	Tree     string    `json:"tree"`
	Keystone *RuneRef  `json:"keystone,omitempty"`
	Runes    []RuneRef `json:"runes"`
}

type RuneRecommendation struct {
	Primary    RuneTree `json:"primary"`
	Secondary  RuneTree `json:"secondary"`
	StatShards []string `json:"stat_shards"`
}

type Counters struct {
	StrongAgainst []string `json:"strong_against"`
	WeakAgainst   []string `json:"weak_against"`
}

// MetaSnapshot holds display-only figures; every field is always a non-empty string.
type MetaSnapshot struct {
	Tier        string `json:"tier"`
	WinRate     string `json:"win_rate"`
	PickRate    string `json:"pick_rate"`
	BanRate     string `json:"ban_rate"`
	Patch       string `json:"patch"`
	LastUpdated string `json:"last_updated"`
	Views       string `json:"views"`
}

// IndexEntry is the cheap per-file summary kept in the slug index.
type IndexEntry struct {
	Filename string `json:"filename"`
	Name     string `json:"name"`
	Tier     string `json:"tier"`
	Role     string `json:"role"`
}

// ChampionCard is the trimmed listing shape used by search and tier lists.
type ChampionCard struct {
	Slug       string         `json:"id"`
	Name       string         `json:"name"`
	Role       string         `json:"role"`
	Tier       RankTier       `json:"tier"`
	Image      string         `json:"image"`
	Lanes      []string       `json:"lanes"`
	Difficulty DifficultyTier `json:"difficulty"`
	WinRate    string         `json:"win_rate,omitempty"`
	PickRate   string         `json:"pick_rate,omitempty"`
}
