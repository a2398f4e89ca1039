// Package api exposes the guide data over HTTP for the listing and search pages.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/kapu/wildrift-guide-go/internal/service/guide"
	"go.uber.org/zap"
)

type ChampionStore interface {
	AllSlugs(ctx context.Context) []string
	Clear(ctx context.Context)
}

type ItemStore interface {
	Search(ctx context.Context, query string) []domain.Item
	Clear()
}

type RuneStore interface {
	All(ctx context.Context) []domain.Rune
	ByTree(ctx context.Context, tree string) []domain.Rune
	Clear()
}

type Handler struct {
	guide     *guide.Service
	champions ChampionStore
	items     ItemStore
	runes     RuneStore
	logger    *zap.Logger
}

// NewHandler wires the routes. items and runes may be nil; their endpoints then return empty lists.
func NewHandler(g *guide.Service, champions ChampionStore, items ItemStore, runes RuneStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{guide: g, champions: champions, items: items, runes: runes, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/champions", h.listChampions)     // GET /api/champions
	rg.GET("/champions/:slug", h.getChampion) // GET /api/champions/:slug
	rg.GET("/slugs", h.listSlugs)
	rg.GET("/tierlist", h.tierList)
	rg.GET("/items", h.listItems)
	rg.GET("/items/featured", h.featuredItems)
	rg.GET("/runes", h.listRunes)
	rg.POST("/cache/clear", h.clearCache)
}

func (h *Handler) listChampions(c *gin.Context) {
	filter := guide.ChampionFilter{
		Query: strings.TrimSpace(c.Query("q")),
		Role:  strings.TrimSpace(c.Query("role")),
	}
	if raw := c.Query("tier"); raw != "" {
		tier, ok := domain.ParseRankTier(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown tier"})
			return
		}
		filter.Tier = tier
	}

	cards := h.guide.Cards(c.Request.Context(), filter)
	if limit := parseInt(c.Query("limit"), 0); limit > 0 {
		cards = guide.TopChampions(cards, limit)
	}
	c.JSON(http.StatusOK, gin.H{
		"total": len(cards),
		"items": cards,
	})
}

func (h *Handler) getChampion(c *gin.Context) {
	slug := c.Param("slug")
	champion, ok := h.guide.ChampionWithDetails(c.Request.Context(), slug)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "slug": slug})
		return
	}
	c.JSON(http.StatusOK, champion)
}

func (h *Handler) listSlugs(c *gin.Context) {
	slugs := h.champions.AllSlugs(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"total": len(slugs),
		"slugs": slugs,
	})
}

func (h *Handler) tierList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tiers": h.guide.TierList(c.Request.Context())})
}

func (h *Handler) listItems(c *gin.Context) {
	var (
		category domain.ItemCategory
		tier     domain.ItemTier
	)
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		category = domain.ParseItemCategory(raw)
		if !strings.EqualFold(string(category), raw) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
			return
		}
	}
	if raw := strings.TrimSpace(c.Query("tier")); raw != "" {
		tier = domain.ParseItemTier(raw)
		if !strings.EqualFold(string(tier), raw) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown tier"})
			return
		}
	}

	items := []domain.Item{}
	if h.items != nil {
		items = h.items.Search(c.Request.Context(), c.Query("q"))
	}
	kept := []domain.Item{}
	for _, it := range items {
		if category != "" && it.Category != category {
			continue
		}
		if tier != "" && it.Tier != tier {
			continue
		}
		kept = append(kept, it)
	}

	cards := guide.SortItemsByTier(guide.ItemsToCards(kept))
	c.JSON(http.StatusOK, gin.H{
		"total": len(cards),
		"items": cards,
	})
}

func (h *Handler) featuredItems(c *gin.Context) {
	limit := parseInt(c.Query("limit"), guide.DefaultFeaturedItems)
	c.JSON(http.StatusOK, gin.H{"items": h.guide.FeaturedItems(c.Request.Context(), limit)})
}

func (h *Handler) listRunes(c *gin.Context) {
	runes := []domain.Rune{}
	if h.runes != nil {
		if tree := strings.TrimSpace(c.Query("tree")); tree != "" {
			runes = h.runes.ByTree(c.Request.Context(), tree)
		} else {
			runes = h.runes.All(c.Request.Context())
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"total": len(runes),
		"runes": runes,
	})
}

func (h *Handler) clearCache(c *gin.Context) {
	h.champions.Clear(c.Request.Context())
	if h.items != nil {
		h.items.Clear()
	}
	if h.runes != nil {
		h.runes.Clear()
	}
	h.logger.Info("Guide caches cleared over HTTP", zap.String("client_ip", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
