package normalizer

import (
	"strings"

	"github.com/kapu/wildrift-guide-go/internal/constants"
	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/tidwall/gjson"
)

// Slot pairs an AbilitySet field with its one-letter key.
type Slot struct {
	Name   string
	Letter string
}

var Slots = []Slot{
	{Name: "passive", Letter: "P"},
	{Name: "q", Letter: "Q"},
	{Name: "w", Letter: "W"},
	{Name: "e", Letter: "E"},
	{Name: "r", Letter: "R"},
}

// KindForKey derives the ability kind from its key letter alone.
func KindForKey(letter string) domain.AbilityKind {
	switch keyLetter(letter) {
	case "P":
		return domain.AbilityPassive
	case "R":
		return domain.AbilityUltimate
	default:
		return domain.AbilityActive
	}
}

// keyLetter canonicalises "p", "Passive", "ult" and friends to a single upper-case letter.
func keyLetter(key string) string {
	key = strings.ToUpper(strings.TrimSpace(key))
	switch key {
	case "PASSIVE":
		return "P"
	case "ULT", "ULTIMATE":
		return "R"
	}
	if len(key) == 1 {
		return key
	}
	return ""
}

// FillAbility builds the ability for slot from raw, or an inert placeholder when raw is absent.
func FillAbility(slot Slot, raw gjson.Result) domain.Ability {
	ability := domain.Ability{
		Name:        constants.Placeholders.UnknownName,
		Key:         slot.Letter,
		Kind:        KindForKey(slot.Letter),
		Description: constants.Placeholders.AbilityDescription,
		Damage:      []float64{},
		DamageType:  "Physical",
		Notes:       []string{},
		Placeholder: true,
	}

	switch {
	case raw.Type == gjson.String && strings.TrimSpace(raw.String()) != "":
		ability.Name = strings.TrimSpace(raw.String())
		ability.Placeholder = false
	case raw.IsObject():
		ability.Placeholder = false
		if name := str(raw, "name", "title", "alt_text"); name != "" {
			ability.Name = name
		}
		if desc := str(raw, "description", "desc", "text"); desc != "" {
			ability.Description = desc
		}
		ability.Image = str(raw, "image", "icon")
		ability.Scaling = str(raw, "scaling", "ratio")
		ability.DamageType = damageType(str(raw, "damage_type", "damageType"))
		ability.Damage = damageValues(raw.Get("damage"))
		ability.Notes = names(first(raw, "notes", "tips"))
	}
	return ability
}

func damageType(s string) string {
	switch strings.ToLower(s) {
	case "magic", "magical":
		return "Magic"
	case "true":
		return "True"
	default:
		return "Physical"
	}
}

func damageValues(r gjson.Result) []float64 {
	out := []float64{}
	switch {
	case r.IsArray():
		for _, el := range r.Array() {
			if v, ok := asNumber(el); ok {
				out = append(out, v)
			}
		}
	case r.Type == gjson.Number:
		if v, ok := asNumber(r); ok {
			out = append(out, v)
		}
	case r.Type == gjson.String:
		out = append(out, parseNumbers(r.String())...)
	}
	return out
}

// findAbility resolves one slot through the map layout, a key match in the list
// layout, or a key-less entry at the slot's position.
func findAbility(list gjson.Result, idx int, slot Slot) gjson.Result {
	if list.IsObject() {
		return first(list, slot.Name, slot.Letter, strings.ToLower(slot.Letter))
	}
	if !list.IsArray() {
		return gjson.Result{}
	}

	entries := list.Array()
	for _, entry := range entries {
		if keyLetter(entry.Get("key").String()) == slot.Letter {
			return entry
		}
	}
	if idx < len(entries) {
		entry := entries[idx]
		if entry.IsObject() && strings.TrimSpace(entry.Get("key").String()) == "" {
			return entry
		}
	}
	return gjson.Result{}
}

func abilitySet(raw gjson.Result) domain.AbilitySet {
	list := first(raw, "abilities", "champion.abilities", "skills")
	var set domain.AbilitySet
	for i, slot := range Slots {
		*set.Slot(slot.Name) = FillAbility(slot, findAbility(list, i, slot))
	}
	return set
}
