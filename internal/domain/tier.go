package domain

import (
	"math"
	"strings"
)

// RankTier is the tier-list placement of a champion, ordered best first.
type RankTier string

const (
	RankSPlus RankTier = "S+"
	RankS     RankTier = "S"
	RankA     RankTier = "A"
	RankB     RankTier = "B"
	RankC     RankTier = "C"
	RankD     RankTier = "D"
)

// FallbackRankTier is assigned when the source tier is missing or outside 1..5.
const FallbackRankTier = RankD

// RankTiers lists every rank in display order.
var RankTiers = []RankTier{RankSPlus, RankS, RankA, RankB, RankC, RankD}

// Order returns the position of the tier in RankTiers; unknown values sort last.
func (t RankTier) Order() int {
	for i, r := range RankTiers {
		if r == t {
			return i
		}
	}
	return len(RankTiers)
}

func (t RankTier) String() string {
	return string(t)
}

// ClassifyRank maps the scraper's 1..5 tier number onto a RankTier.
func ClassifyRank(tier int) RankTier {
	switch tier {
	case 1:
		return RankSPlus
	case 2:
		return RankS
	case 3:
		return RankA
	case 4:
		return RankB
	case 5:
		return RankC
	default:
		return FallbackRankTier
	}
}

// ParseRankTier accepts an already classified label such as "s+" or " A ".
func ParseRankTier(label string) (RankTier, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	for _, r := range RankTiers {
		if string(r) == label {
			return r, true
		}
	}
	return "", false
}

// DifficultyTier buckets the 0..100 difficulty score.
type DifficultyTier string

const (
	DifficultyLow    DifficultyTier = "Low"
	DifficultyMedium DifficultyTier = "Medium"
	DifficultyHigh   DifficultyTier = "High"
)

// ClassifyDifficulty thresholds the score at 33 and 66, boundaries belonging to the lower band.
func ClassifyDifficulty(score float64) DifficultyTier {
	if math.IsNaN(score) {
		score = 0
	}
	switch {
	case score <= 33:
		return DifficultyLow
	case score <= 66:
		return DifficultyMedium
	default:
		return DifficultyHigh
	}
}
