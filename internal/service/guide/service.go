// Package guide assembles the views served to readers: enriched champion pages, cards and tier lists.
package guide

import (
	"context"

	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/kapu/wildrift-guide-go/internal/util"
	"go.uber.org/zap"
)

type ChampionSource interface {
	Get(ctx context.Context, slug string) (*domain.Champion, bool)
	LoadAll(ctx context.Context) []*domain.Champion
}

type ItemSource interface {
	Get(ctx context.Context, nameOrSlug string) (*domain.Item, bool)
	All(ctx context.Context) []domain.Item
}

type RuneSource interface {
	Get(ctx context.Context, nameOrSlug string) (*domain.Rune, bool)
}

// TierGroup is one row of the tier list.
type TierGroup struct {
	Tier      domain.RankTier       `json:"tier"`
	Champions []domain.ChampionCard `json:"champions"`
}

// ChampionFilter narrows a card listing; zero values match everything.
type ChampionFilter struct {
	Query string
	Role  string
	Tier  domain.RankTier
}

type Service struct {
	champions ChampionSource
	items     ItemSource
	runes     RuneSource
	logger    *zap.Logger
}

// NewService wires the guide views. items and runes may be nil, in which case pages are
// served without enrichment.
func NewService(champions ChampionSource, items ItemSource, runes RuneSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{champions: champions, items: items, runes: runes, logger: logger}
}

// ChampionWithDetails returns a copy of the champion whose build items and runes carry the
// image, cost and description from the reference data. The cached champion is not modified.
func (s *Service) ChampionWithDetails(ctx context.Context, slug string) (*domain.Champion, bool) {
	champion, ok := s.champions.Get(ctx, slug)
	if !ok {
		return nil, false
	}
	detailed := champion.Clone()

	missing := 0
	detailed.Builds, missing = s.enrichBuild(ctx, detailed.Builds)
	for lane, b := range detailed.LaneBuilds {
		enriched, n := s.enrichBuild(ctx, b)
		detailed.LaneBuilds[lane] = enriched
		missing += n
	}
	missing += s.enrichRunes(ctx, &detailed.Runes)

	if missing > 0 {
		s.logger.Debug("Reference data missing for some build entries",
			zap.String("slug", detailed.Identity.Slug),
			zap.Int("missing", missing),
		)
	}
	return detailed, true
}

func (s *Service) enrichBuild(ctx context.Context, b domain.BuildRecommendation) (domain.BuildRecommendation, int) {
	missing := 0
	for _, list := range [][]domain.ItemRef{b.StartingItems, b.CoreItems, b.Boots, b.SituationalItems, b.ExampleBuild} {
		for i := range list {
			if !s.enrichItem(ctx, &list[i]) {
				missing++
			}
		}
	}
	return b, missing
}

func (s *Service) enrichItem(ctx context.Context, ref *domain.ItemRef) bool {
	if s.items == nil {
		return false
	}
	it, ok := s.items.Get(ctx, ref.Name)
	if !ok {
		return false
	}
	ref.Image = util.FirstNonEmpty(ref.Image, it.Image)
	ref.Description = util.FirstNonEmpty(ref.Description, it.Description, it.Passive)
	if ref.Cost == 0 {
		ref.Cost = it.Cost
	}
	return true
}

func (s *Service) enrichRunes(ctx context.Context, r *domain.RuneRecommendation) int {
	missing := 0
	if r.Primary.Keystone != nil && !s.enrichRune(ctx, r.Primary.Keystone) {
		missing++
	}
	for _, tree := range []*domain.RuneTree{&r.Primary, &r.Secondary} {
		for i := range tree.Runes {
			if !s.enrichRune(ctx, &tree.Runes[i]) {
				missing++
			}
		}
	}
	return missing
}

func (s *Service) enrichRune(ctx context.Context, ref *domain.RuneRef) bool {
	if s.runes == nil {
		return false
	}
	rn, ok := s.runes.Get(ctx, ref.Name)
	if !ok {
		return false
	}
	ref.Image = util.FirstNonEmpty(ref.Image, rn.Image)
	ref.Description = util.FirstNonEmpty(ref.Description, rn.Description)
	return true
}

// Cards lists every loadable champion as a card, filtered and sorted by tier.
func (s *Service) Cards(ctx context.Context, f ChampionFilter) []domain.ChampionCard {
	cards := ChampionsToCards(s.champions.LoadAll(ctx))
	if f.Query != "" {
		matched := []domain.ChampionCard{}
		for _, c := range cards {
			if util.ContainsFold(c.Name, f.Query) || util.ContainsFold(c.Role, f.Query) || util.ContainsFold(c.Slug, f.Query) {
				matched = append(matched, c)
			}
		}
		cards = matched
	}
	cards = FilterChampionsByRole(cards, f.Role)
	if f.Tier != "" {
		cards = FilterChampionsByTier(cards, f.Tier)
	}
	return SortChampionsByTier(cards)
}

// TierList groups every champion by rank in tier order. Empty tiers are kept so the
// table always shows every row.
func (s *Service) TierList(ctx context.Context) []TierGroup {
	cards := SortChampionsByTier(ChampionsToCards(s.champions.LoadAll(ctx)))
	groups := make([]TierGroup, len(domain.RankTiers))
	for i, tier := range domain.RankTiers {
		groups[i] = TierGroup{Tier: tier, Champions: []domain.ChampionCard{}}
	}
	for _, card := range cards {
		if idx := card.Tier.Order(); idx < len(groups) {
			groups[idx].Champions = append(groups[idx].Champions, card)
		}
	}
	return groups
}

// FeaturedItems returns the best items by tier and cost.
func (s *Service) FeaturedItems(ctx context.Context, limit int) []domain.ItemCard {
	if s.items == nil {
		return []domain.ItemCard{}
	}
	return FeaturedItems(ItemsToCards(s.items.All(ctx)), limit)
}
