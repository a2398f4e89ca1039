package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/kapu/wildrift-guide-go/internal/service/catalog"
	"github.com/kapu/wildrift-guide-go/internal/service/guide"
	"github.com/kapu/wildrift-guide-go/internal/service/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func championFiles() fstest.MapFS {
	return fstest.MapFS{
		"ahri.json": {Data: []byte(`{
			"name": "Ahri", "roles": ["Mage"], "tier": 1, "lanes": ["Mid"],
			"builds": [{"lane": "Mid", "core_items": ["Rabadon's Deathcap"]}]
		}`)},
		"garen.json":  {Data: []byte(`{"name": "Garen", "roles": ["Fighter"], "tier": 3, "lanes": ["Baron"]}`)},
		"kaisa.json":  {Data: []byte(`{"name": "Kai'Sa", "roles": ["Marksman"], "tier": 2}`)},
		"broken.json": {Data: []byte(`{"name":`)},
	}
}

func itemFiles() fstest.MapFS {
	return fstest.MapFS{
		"items.json": {Data: []byte(`[
			{"name": "Rabadon's Deathcap", "cost": 3400, "category": "legendary", "tier": "S", "image": "rabadon.png", "tags": ["mage"]},
			{"name": "Ionian Boots", "cost": 950, "category": "boots", "tier": "B"},
			{"name": "Long Sword", "cost": 350, "category": "basic"}
		]`)},
	}
}

func runeFiles() fstest.MapFS {
	return fstest.MapFS{
		"precision.json": {Data: []byte(`{"runes": [{"name": "Conqueror"}, {"name": "Legend: Tenacity"}]}`)},
		"resolve.json":   {Data: []byte(`[{"name": "Grasp of the Undying", "tree": "Resolve"}]`)},
	}
}

type fixture struct {
	router    *gin.Engine
	champions *catalog.Catalog
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	champions, err := catalog.NewCatalog(catalog.Config{FS: championFiles(), TTL: time.Hour})
	require.NoError(t, err)
	items, err := item.NewItemCatalog(item.Config{FS: itemFiles()})
	require.NoError(t, err)
	runes, err := item.NewRuneCatalog(item.Config{FS: runeFiles()})
	require.NoError(t, err)

	svc := guide.NewService(champions, items, runes, nil)
	h := NewHandler(svc, champions, items, runes, nil)
	return fixture{router: NewRouter(h, nil), champions: champions}
}

func (f fixture) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

type cardList struct {
	Total int                   `json:"total"`
	Items []domain.ChampionCard `json:"items"`
}

func TestHealth(t *testing.T) {
	rec := newFixture(t).do(t, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListChampionsSortedByTier(t *testing.T) {
	rec := newFixture(t).do(t, http.MethodGet, "/api/champions")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[cardList](t, rec)
	require.Equal(t, 3, body.Total)
	names := []string{body.Items[0].Name, body.Items[1].Name, body.Items[2].Name}
	assert.Equal(t, []string{"Ahri", "Kai'Sa", "Garen"}, names)
	assert.Equal(t, domain.RankSPlus, body.Items[0].Tier)
}

func TestListChampionsFilters(t *testing.T) {
	f := newFixture(t)

	body := decode[cardList](t, f.do(t, http.MethodGet, "/api/champions?role=mage"))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "ahri", body.Items[0].Slug)

	body = decode[cardList](t, f.do(t, http.MethodGet, "/api/champions?tier=a"))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Garen", body.Items[0].Name)

	body = decode[cardList](t, f.do(t, http.MethodGet, "/api/champions?q=kai"))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "kai_sa", body.Items[0].Slug)

	body = decode[cardList](t, f.do(t, http.MethodGet, "/api/champions?limit=2"))
	assert.Len(t, body.Items, 2)

	rec := f.do(t, http.MethodGet, "/api/champions?tier=Z")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetChampionEnrichesBuild(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/champions/ahri")
	require.Equal(t, http.StatusOK, rec.Code)

	champion := decode[domain.Champion](t, rec)
	assert.Equal(t, "Ahri", champion.Identity.DisplayName)
	require.Len(t, champion.Builds.CoreItems, 1)
	assert.Equal(t, 3400, champion.Builds.CoreItems[0].Cost)
	assert.Equal(t, "rabadon.png", champion.Builds.CoreItems[0].Image)
}

func TestGetChampionNotFound(t *testing.T) {
	rec := newFixture(t).do(t, http.MethodGet, "/api/champions/teemo")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found","slug":"teemo"}`, rec.Body.String())
}

func TestListSlugs(t *testing.T) {
	rec := newFixture(t).do(t, http.MethodGet, "/api/slugs")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.JSONEq(t, `{"total":3,"slugs":["ahri","garen","kai_sa"]}`, rec.Body.String())
}

func TestTierListKeepsEveryRow(t *testing.T) {
	rec := newFixture(t).do(t, http.MethodGet, "/api/tierlist")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Tiers []guide.TierGroup `json:"tiers"`
	}](t, rec)
	require.Len(t, body.Tiers, len(domain.RankTiers))
	assert.Equal(t, domain.RankSPlus, body.Tiers[0].Tier)
	assert.Len(t, body.Tiers[0].Champions, 1)
	assert.Empty(t, body.Tiers[len(body.Tiers)-1].Champions)
}

func TestListItems(t *testing.T) {
	f := newFixture(t)

	type itemList struct {
		Total int               `json:"total"`
		Items []domain.ItemCard `json:"items"`
	}

	body := decode[itemList](t, f.do(t, http.MethodGet, "/api/items"))
	require.Equal(t, 3, body.Total)
	assert.Equal(t, "Rabadon's Deathcap", body.Items[0].Name)
	assert.Equal(t, "Long Sword", body.Items[2].Name)

	body = decode[itemList](t, f.do(t, http.MethodGet, "/api/items?category=boots"))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Ionian Boots", body.Items[0].Name)

	body = decode[itemList](t, f.do(t, http.MethodGet, "/api/items?q=mage&tier=s"))
	require.Len(t, body.Items, 1)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/items?category=relic").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/items?tier=X").Code)
}

func TestListRunes(t *testing.T) {
	f := newFixture(t)

	type runeList struct {
		Total int           `json:"total"`
		Runes []domain.Rune `json:"runes"`
	}

	body := decode[runeList](t, f.do(t, http.MethodGet, "/api/runes"))
	assert.Equal(t, 3, body.Total)

	body = decode[runeList](t, f.do(t, http.MethodGet, "/api/runes?tree=resolve"))
	require.Len(t, body.Runes, 1)
	assert.Equal(t, "Grasp of the Undying", body.Runes[0].Name)
}

func TestClearCache(t *testing.T) {
	f := newFixture(t)
	_, ok := f.champions.Get(context.Background(), "ahri")
	require.True(t, ok)

	rec := f.do(t, http.MethodPost, "/api/cache/clear")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"cleared"}`, rec.Body.String())

	assert.Equal(t, []string{"ahri", "garen", "kai_sa"}, f.champions.AllSlugs(context.Background()))
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/cache/clear").Code)
}

func TestNilReferenceStores(t *testing.T) {
	champions, err := catalog.NewCatalog(catalog.Config{FS: championFiles()})
	require.NoError(t, err)
	h := NewHandler(guide.NewService(champions, nil, nil, nil), champions, nil, nil, nil)
	router := NewRouter(h, nil)

	for _, path := range []string{"/api/items", "/api/runes", "/api/items/featured"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cache/clear", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
