package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/kapu/wildrift-guide-go/internal/service/guide"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGroups() []guide.TierGroup {
	return []guide.TierGroup{
		{Tier: domain.RankSPlus, Champions: []domain.ChampionCard{
			{Name: "Ahri", Role: "Mage", Difficulty: domain.DifficultyMedium, Lanes: []string{"Mid"}, WinRate: "52.5%"},
			{Name: "Ари", Role: "Илбэчин", Difficulty: domain.DifficultyLow, Lanes: []string{"Mid", "Jungle"}, WinRate: "50%"},
		}},
		{Tier: domain.RankS, Champions: []domain.ChampionCard{}},
		{Tier: domain.RankA, Champions: []domain.ChampionCard{
			{Name: "Garen", Role: "Fighter", Difficulty: domain.DifficultyLow, Lanes: []string{"Baron"}, WinRate: "51%"},
		}},
	}
}

func TestTierTableAlignsColumns(t *testing.T) {
	out := TierTable(sampleGroups(), false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 5, "header, separator and three champions")
	assert.True(t, strings.HasPrefix(lines[0], "| Tier |"))
	assert.True(t, strings.HasPrefix(lines[1], "| ---"))
	assert.Contains(t, lines[3], "Ари")
	assert.Contains(t, lines[3], "Mid, Jungle")

	width := runewidth.StringWidth(lines[0])
	for _, line := range lines {
		assert.Equal(t, width, runewidth.StringWidth(line), line)
	}
}

func TestTierTableKeepEmpty(t *testing.T) {
	out := TierTable(sampleGroups(), true)
	assert.Contains(t, out, "| S    | -")
}

func TestTierTableTruncatesLongCells(t *testing.T) {
	groups := []guide.TierGroup{{Tier: domain.RankB, Champions: []domain.ChampionCard{
		{Name: strings.Repeat("Long", 20), Role: "Tank"},
	}}}
	out := TierTable(groups, false)
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, strings.Repeat("Long", 20))
}

func TestWriteTierTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTierTable(&buf, sampleGroups()))
	assert.Equal(t, TierTable(sampleGroups(), false), buf.String())
}
