package domain

import (
	"maps"
	"slices"
)

// Clone returns a deep copy so callers can decorate a champion without touching a cached one.
func (c *Champion) Clone() *Champion {
	if c == nil {
		return nil
	}
	out := *c
	out.Classification.Lanes = slices.Clone(c.Classification.Lanes)
	out.Stats.Base = maps.Clone(c.Stats.Base)
	for _, name := range AbilitySlotNames {
		slot := out.Abilities.Slot(name)
		slot.Damage = slices.Clone(slot.Damage)
		slot.Notes = slices.Clone(slot.Notes)
	}
	out.Builds = c.Builds.Clone()
	if c.LaneBuilds != nil {
		out.LaneBuilds = make(map[string]BuildRecommendation, len(c.LaneBuilds))
		for lane, b := range c.LaneBuilds {
			out.LaneBuilds[lane] = b.Clone()
		}
	}
	out.Runes = c.Runes.Clone()
	out.SummonerSpells = slices.Clone(c.SummonerSpells)
	out.Counters.StrongAgainst = slices.Clone(c.Counters.StrongAgainst)
	out.Counters.WeakAgainst = slices.Clone(c.Counters.WeakAgainst)
	out.Tips = slices.Clone(c.Tips)
	return &out
}

func (b BuildRecommendation) Clone() BuildRecommendation {
	b.StartingItems = slices.Clone(b.StartingItems)
	b.CoreItems = slices.Clone(b.CoreItems)
	b.Boots = slices.Clone(b.Boots)
	b.SituationalItems = slices.Clone(b.SituationalItems)
	b.ExampleBuild = slices.Clone(b.ExampleBuild)
	b.Enchants = slices.Clone(b.Enchants)
	return b
}

func (r RuneRecommendation) Clone() RuneRecommendation {
	r.Primary = r.Primary.clone()
	r.Secondary = r.Secondary.clone()
	r.StatShards = slices.Clone(r.StatShards)
	return r
}

func (t RuneTree) clone() RuneTree {
	if t.Keystone != nil {
		ks := *t.Keystone
		t.Keystone = &ks
	}
	t.Runes = slices.Clone(t.Runes)
	return t
}
