package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDifficultyBoundaries(t *testing.T) {
	cases := map[float64]DifficultyTier{
		0:          DifficultyLow,
		33:         DifficultyLow,
		33.5:       DifficultyMedium,
		34:         DifficultyMedium,
		66:         DifficultyMedium,
		67:         DifficultyHigh,
		100:        DifficultyHigh,
		-12:        DifficultyLow,
		math.NaN(): DifficultyLow,
	}
	for score, want := range cases {
		assert.Equal(t, want, ClassifyDifficulty(score), "score %v", score)
	}
}

func TestClassifyRank(t *testing.T) {
	assert.Equal(t, RankSPlus, ClassifyRank(1))
	assert.Equal(t, RankS, ClassifyRank(2))
	assert.Equal(t, RankA, ClassifyRank(3))
	assert.Equal(t, RankB, ClassifyRank(4))
	assert.Equal(t, RankC, ClassifyRank(5))

	for _, tier := range []int{0, -1, 6, 99} {
		assert.Equal(t, FallbackRankTier, ClassifyRank(tier), "tier %d", tier)
	}
}

func TestRankTierOrder(t *testing.T) {
	assert.Less(t, RankSPlus.Order(), RankS.Order())
	assert.Less(t, RankC.Order(), RankD.Order())
	assert.Equal(t, len(RankTiers), RankTier("Z").Order())
}

func TestParseRankTier(t *testing.T) {
	tier, ok := ParseRankTier(" s+ ")
	assert.True(t, ok)
	assert.Equal(t, RankSPlus, tier)

	_, ok = ParseRankTier("E")
	assert.False(t, ok)
}
