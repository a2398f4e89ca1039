// Package normalizer maps scraped champion records of any shape onto domain.Champion.
package normalizer

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/kapu/wildrift-guide-go/internal/constants"
	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/kapu/wildrift-guide-go/internal/util"
	guideerrors "github.com/kapu/wildrift-guide-go/pkg/errors"
	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON = errors.New("record is not valid JSON")
	ErrNotObject   = errors.New("record is not a JSON object")
	ErrNoIdentity  = errors.New("record has no usable name or slug")
)

// Normalizer is stateless apart from its defaults and safe for concurrent use.
type Normalizer struct {
	patch string
}

type Option func(*Normalizer)

// WithPatch sets the patch label used when a record carries none.
func WithPatch(label string) Option {
	return func(n *Normalizer) {
		if label = strings.TrimSpace(label); label != "" {
			n.patch = label
		}
	}
}

func New(opts ...Option) *Normalizer {
	n := &Normalizer{patch: constants.MetaDefaults.Patch}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Patch returns the default patch label.
func (n *Normalizer) Patch() string {
	return n.patch
}

var defaultNormalizer = New()

// Normalize runs the default Normalizer.
func Normalize(raw gjson.Result, slug string) *domain.Champion {
	return defaultNormalizer.Normalize(raw, slug)
}

// NormalizeBytes parses data and normalizes it. Only input that is not a JSON object,
// or that yields no slug at all, is rejected.
func (n *Normalizer) NormalizeBytes(data []byte, slug string) (*domain.Champion, error) {
	if !gjson.ValidBytes(data) {
		return nil, guideerrors.NewParseError("invalid champion record", slug, ErrInvalidJSON)
	}
	raw := gjson.ParseBytes(data)
	if !raw.IsObject() {
		return nil, guideerrors.NewParseError("invalid champion record", slug, ErrNotObject)
	}
	champion := n.Normalize(raw, slug)
	if champion.Identity.Slug == "" {
		return nil, guideerrors.NewParseError("invalid champion record", slug, ErrNoIdentity)
	}
	return champion, nil
}

// Normalize maps one raw record onto a Champion. Every missing or malformed field
// degrades to its documented default; the result is fully populated.
func (n *Normalizer) Normalize(raw gjson.Result, slug string) *domain.Champion {
	name := DisplayName(raw)
	canonical := DeriveSlug(slug)
	if canonical == "" {
		canonical = DeriveSlug(name)
	}
	if name == "" {
		name = util.FirstNonEmpty(canonical, constants.Placeholders.UnknownName)
	}

	rank := RankOf(raw)
	perf := performanceStats(raw)
	image := util.FirstNonEmpty(str(raw, "image", "champion.image", "icon"), constants.Placeholders.ChampionImage)

	builds := buildList(raw)
	primary := primaryBuild(builds)

	champion := &domain.Champion{
		Identity: domain.Identity{
			Slug:        canonical,
			DisplayName: name,
			Title:       util.FirstNonEmpty(str(raw, "title", "champion.title"), name),
			Image:       image,
			SplashArt:   util.FirstNonEmpty(str(raw, "splash_art", "champion.splash_art", "splash"), image),
		},
		Classification: domain.Classification{
			Role:       RoleOf(raw),
			Lanes:      lanes(raw, builds),
			Difficulty: domain.ClassifyDifficulty(perf.Difficulty),
			Rank:       rank,
		},
		Stats: domain.Stats{
			Performance: perf,
			Base:        baseStats(raw),
		},
		Abilities:      abilitySet(raw),
		Builds:         primary,
		LaneBuilds:     laneBuilds(builds),
		Runes:          runeRecommendation(raw, builds),
		SummonerSpells: summonerSpells(raw, builds),
		Counters: domain.Counters{
			StrongAgainst: names(first(raw, "counters.strong_against", "strong_against")),
			WeakAgainst:   names(first(raw, "counters.weak_against", "weak_against")),
		},
		Tips: names(first(raw, "tips", "champion.tips")),
		Meta: n.meta(raw, rank),
	}
	return champion
}

// DisplayName resolves the record's name through the known layouts.
func DisplayName(raw gjson.Result) string {
	return str(raw, "name", "champion.name", "champion_name", "title")
}

// RoleOf returns the first role with scraper markup removed, or "Unknown".
func RoleOf(raw gjson.Result) string {
	for _, candidate := range []string{
		nameOf(raw.Get("roles.0")),
		str(raw, "roles", "role", "champion.role"),
	} {
		if role := util.StripTags(candidate); role != "" {
			return role
		}
	}
	return constants.Placeholders.UnknownRole
}

// RankOf accepts a 1..5 number, a numeric string or an already classified label.
func RankOf(raw gjson.Result) domain.RankTier {
	r := first(raw, "tier", "champion.tier", "meta.tier")
	switch r.Type {
	case gjson.Number:
		return rankFromNumber(r.Float())
	case gjson.String:
		s := strings.TrimSpace(r.String())
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return rankFromNumber(v)
		}
		if tier, ok := domain.ParseRankTier(s); ok {
			return tier
		}
	}
	return domain.FallbackRankTier
}

func rankFromNumber(v float64) domain.RankTier {
	if math.IsNaN(v) || v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return domain.FallbackRankTier
	}
	return domain.ClassifyRank(int(v))
}

func lanes(raw gjson.Result, builds []gjson.Result) []string {
	if out := names(first(raw, "lanes", "champion.lanes")); len(out) > 0 {
		return out
	}
	out := []string{}
	for _, b := range builds {
		lane := str(b, "lane")
		if lane != "" && !util.Contains(out, lane) {
			out = append(out, lane)
		}
	}
	return out
}

func summonerSpells(raw gjson.Result, builds []gjson.Result) []string {
	if spells := names(raw.Get("summoner_spells")); len(spells) > 0 {
		return spells
	}
	if len(builds) > 0 {
		return names(builds[0].Get("summoner_spells"))
	}
	return []string{}
}

func (n *Normalizer) meta(raw gjson.Result, rank domain.RankTier) domain.MetaSnapshot {
	d := constants.MetaDefaults
	return domain.MetaSnapshot{
		Tier:        rank.String(),
		WinRate:     percent(raw, d.WinRate, "meta.win_rate", "win_rate", "stats.win_rate"),
		PickRate:    percent(raw, d.PickRate, "meta.pick_rate", "pick_rate", "stats.pick_rate"),
		BanRate:     percent(raw, d.BanRate, "meta.ban_rate", "ban_rate", "stats.ban_rate"),
		Patch:       util.FirstNonEmpty(str(raw, "meta.patch", "patch"), n.patch),
		LastUpdated: util.FirstNonEmpty(str(raw, "meta.last_updated", "last_updated", "updated_at"), d.LastUpdated),
		Views:       views(raw, d.Views),
	}
}

func percent(raw gjson.Result, fallback string, paths ...string) string {
	r := first(raw, paths...)
	switch r.Type {
	case gjson.Number:
		if v, ok := asNumber(r); ok {
			return formatNumber(v) + "%"
		}
	case gjson.String:
		if s := strings.TrimSpace(r.String()); s != "" {
			return s
		}
	}
	return fallback
}

func views(raw gjson.Result, fallback string) string {
	r := first(raw, "meta.views", "views")
	switch r.Type {
	case gjson.Number:
		if v, ok := asNumber(r); ok {
			return groupThousands(v)
		}
	case gjson.String:
		if s := strings.TrimSpace(r.String()); s != "" {
			return s
		}
	}
	return fallback
}
