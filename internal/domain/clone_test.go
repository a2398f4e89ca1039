package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChampionCloneIsDeep(t *testing.T) {
	orig := &Champion{
		Identity:       Identity{Slug: "ahri", DisplayName: "Ahri"},
		Classification: Classification{Lanes: []string{"Mid"}},
		Stats:          Stats{Base: map[string]StatValue{"health": {Base: 590}}},
		Abilities:      AbilitySet{Q: Ability{Name: "Orb", Damage: []float64{60}}},
		Builds:         BuildRecommendation{CoreItems: []ItemRef{{Name: "Luden's Echo"}}, Enchants: []string{}},
		LaneBuilds:     map[string]BuildRecommendation{"Mid": {CoreItems: []ItemRef{{Name: "Luden's Echo"}}}},
		Runes: RuneRecommendation{
			Primary: RuneTree{Tree: "Domination", Keystone: &RuneRef{Name: "Electrocute"}, Runes: []RuneRef{{Name: "Sudden Impact"}}},
		},
		Tips: []string{"Charm first"},
	}

	cp := orig.Clone()
	require.Equal(t, orig, cp)

	cp.Classification.Lanes[0] = "Jungle"
	cp.Stats.Base["health"] = StatValue{Base: 1}
	cp.Abilities.Q.Damage[0] = 0
	cp.Builds.CoreItems[0].Image = "luden.png"
	cp.LaneBuilds["Mid"].CoreItems[0].Image = "luden.png"
	cp.Runes.Primary.Keystone.Image = "electrocute.png"
	cp.Runes.Primary.Runes[0].Image = "impact.png"
	cp.Tips[0] = "changed"

	assert.Equal(t, "Mid", orig.Classification.Lanes[0])
	assert.Equal(t, 590.0, orig.Stats.Base["health"].Base)
	assert.Equal(t, 60.0, orig.Abilities.Q.Damage[0])
	assert.Empty(t, orig.Builds.CoreItems[0].Image)
	assert.Empty(t, orig.LaneBuilds["Mid"].CoreItems[0].Image)
	assert.Empty(t, orig.Runes.Primary.Keystone.Image)
	assert.Empty(t, orig.Runes.Primary.Runes[0].Image)
	assert.Equal(t, "Charm first", orig.Tips[0])

	assert.NotNil(t, cp.Builds.Enchants, "empty slices stay empty, not nil")
	assert.Nil(t, (*Champion)(nil).Clone())
}
