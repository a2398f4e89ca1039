package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/kapu/wildrift-guide-go/internal/util"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// LoadAll returns every champion that could be normalized, in index order.
// Files that fail are logged by Get and left out.
func (c *Catalog) LoadAll(ctx context.Context) []*domain.Champion {
	slugs := c.AllSlugs(ctx)
	if len(slugs) == 0 {
		return []*domain.Champion{}
	}

	p := pool.New().WithMaxGoroutines(c.concurrency)
	results := make([]*domain.Champion, len(slugs))
	resultsMu := sync.Mutex{}

	for idx, slug := range slugs {
		idx, slug := idx, slug
		p.Go(func() {
			if ctx.Err() != nil {
				return
			}
			champion, ok := c.Get(ctx, slug)
			if !ok {
				return
			}
			resultsMu.Lock()
			results[idx] = champion
			resultsMu.Unlock()
		})
	}

	p.Wait()

	champions := make([]*domain.Champion, 0, len(results))
	for _, champion := range results {
		if champion != nil {
			champions = append(champions, champion)
		}
	}
	if dropped := len(slugs) - len(champions); dropped > 0 {
		c.logger.Warn("Some champions could not be loaded",
			zap.Int("loaded", len(champions)),
			zap.Int("dropped", dropped),
		)
	}
	return champions
}

// ByTier keeps champions whose rank matches tier.
func (c *Catalog) ByTier(ctx context.Context, tier domain.RankTier) []*domain.Champion {
	return c.filter(ctx, func(ch *domain.Champion) bool {
		return ch.Classification.Rank == tier
	})
}

// ByRole matches the primary role case-insensitively.
func (c *Catalog) ByRole(ctx context.Context, role string) []*domain.Champion {
	role = strings.TrimSpace(role)
	return c.filter(ctx, func(ch *domain.Champion) bool {
		return strings.EqualFold(ch.Classification.Role, role)
	})
}

// Search matches the query against name, title, role and lanes. An empty query returns everything.
func (c *Catalog) Search(ctx context.Context, query string) []*domain.Champion {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.LoadAll(ctx)
	}
	return c.filter(ctx, func(ch *domain.Champion) bool {
		if util.ContainsFold(ch.Identity.DisplayName, query) ||
			util.ContainsFold(ch.Identity.Title, query) ||
			util.ContainsFold(ch.Classification.Role, query) {
			return true
		}
		for _, lane := range ch.Classification.Lanes {
			if util.ContainsFold(lane, query) {
				return true
			}
		}
		return false
	})
}

func (c *Catalog) filter(ctx context.Context, keep func(*domain.Champion) bool) []*domain.Champion {
	out := []*domain.Champion{}
	for _, ch := range c.LoadAll(ctx) {
		if keep(ch) {
			out = append(out, ch)
		}
	}
	return out
}
