package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kapu/wildrift-guide-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Data.Dir = filepath.Join(root, "champions")
	cfg.Data.ItemsDir = filepath.Join(root, "items")
	cfg.Data.RunesDir = filepath.Join(root, "runes")
	cfg.Data.IndexPath = filepath.Join(root, "champion_index.json")
	cfg.Patch.Label = "7.0a"
	cfg.Server.GinMode = "test"

	writeFile(t, cfg.Data.Dir, "ahri.json", `{"name":"Ahri","roles":["Mage"],"tier":1}`)
	writeFile(t, cfg.Data.ItemsDir, "items.json", `[{"name":"Long Sword","cost":350}]`)
	return cfg
}

func TestBuildRequiresConfigAndLogger(t *testing.T) {
	_, err := Build(context.Background(), nil, zap.NewNop())
	assert.Error(t, err)

	_, err = Build(context.Background(), config.Default(), nil)
	assert.Error(t, err)
}

func TestBuildWiresServices(t *testing.T) {
	cfg := testConfig(t)
	c, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Redis)

	ahri, ok := c.Champions.Get(context.Background(), "ahri")
	require.True(t, ok)
	assert.Equal(t, "7.0a", ahri.Meta.Patch)

	_, err = os.Stat(cfg.Data.IndexPath)
	assert.NoError(t, err, "index artifact written after the first build")

	assert.Len(t, c.Items.All(context.Background()), 1)
	assert.Empty(t, c.Runes.All(context.Background()))
}

func TestBuildSurvivesUnreachableRedis(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Host = "127.0.0.1"
	cfg.Redis.Port = 1

	c, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Redis)
	assert.Equal(t, []string{"ahri"}, c.Champions.AllSlugs(context.Background()))
}

func TestRouterServesAPI(t *testing.T) {
	c, err := Build(context.Background(), testConfig(t), zap.NewNop())
	require.NoError(t, err)
	defer c.Close()

	router := c.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/slugs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":1,"slugs":["ahri"]}`, rec.Body.String())
}
