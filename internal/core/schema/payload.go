package schema

import "github.com/example/rpgdash/internal/models"

// NormalizeData brings a module payload built outside the normalizer into
// canonical form: dice and enums are clamped, nil lists become empty and
// blank or duplicate nested ids are replaced with newID. The result is what a
// reload of the saved document would produce. A nil payload stays nil.
func NormalizeData(typ models.ModuleType, data models.ModuleData, newID func() string) models.ModuleData {
	if data == nil {
		return nil
	}
	obj, ok := asObject(toTree(data))
	if !ok {
		obj = object{}
	}
	return normalizeData(typ, obj, newID)
}

// normalizeData rebuilds the payload variant for typ from a decoded object.
// Types without a payload yield nil.
func normalizeData(typ models.ModuleType, d object, newID func() string) models.ModuleData {
	switch typ {
	case models.ModuleSkills:
		ids := newIDSet(newID)
		skills := []models.Skill{}
		for _, s := range d.objects("skills") {
			die := s.intOr("die", 4)
			if !validDice[die] {
				die = 4
			}
			skills = append(skills, models.Skill{
				ID:       ids.claim(s),
				Name:     s.strOr("name", ""),
				Die:      die,
				Modifier: s.intOr("modifier", 0),
				Notes:    s.strOr("notes", ""),
			})
		}
		return models.SkillsData{Skills: skills}

	case models.ModuleHindrances:
		ids := newIDSet(newID)
		hindrances := []models.Hindrance{}
		for _, h := range d.objects("hindrances") {
			kind := h.strOr("type", "")
			if kind != "major" && kind != "minor" {
				kind = ""
			}
			hindrances = append(hindrances, models.Hindrance{
				ID:    ids.claim(h),
				Name:  h.strOr("name", ""),
				Type:  kind,
				Notes: h.strOr("notes", ""),
			})
		}
		return models.HindrancesData{Hindrances: hindrances, Text: d.strOr("text", "")}

	case models.ModuleTextBlock:
		return models.TextData{Text: d.strOr("text", "")}

	case models.ModuleAncestralAbilities:
		ids := newIDSet(newID)
		abilities := []models.AncestralAbility{}
		for _, a := range d.objects("ancestral_abilities") {
			abilities = append(abilities, models.AncestralAbility{
				ID:    ids.claim(a),
				Name:  a.strOr("name", ""),
				Notes: a.strOr("notes", ""),
			})
		}
		return models.AncestralAbilitiesData{Abilities: abilities}

	case models.ModuleEdgesAdvancements:
		ids := newIDSet(newID)
		edges := []models.Edge{}
		for _, e := range d.objects("edges") {
			edges = append(edges, models.Edge{
				ID:    ids.claim(e),
				Name:  e.strOr("name", ""),
				Notes: e.strOr("notes", ""),
			})
		}
		advancements := map[string]models.Advancement{}
		if raw, ok := d.object("advancements"); ok {
			for slot := range raw {
				a, ok := raw.object(slot)
				if !ok {
					continue
				}
				advancements[slot] = models.Advancement{
					ID:    a.strOr("id", slot),
					Value: a.strOr("value", ""),
					Notes: a.strOr("notes", ""),
				}
			}
		}
		return models.EdgesAdvancementsData{Edges: edges, Advancements: advancements}

	case models.ModuleEquipment:
		ids := newIDSet(newID)
		items := []models.EquipmentItem{}
		for _, it := range d.objects("items") {
			items = append(items, models.EquipmentItem{
				ID:     ids.claim(it),
				Name:   it.strOr("name", ""),
				Cost:   it.numberOr("cost", 0),
				Weight: it.numberOr("weight", 0),
				Notes:  it.strOr("notes", ""),
			})
		}
		return models.EquipmentData{BaseGold: d.numberOr("baseGold", 0), Items: items}

	case models.ModulePowerPoints:
		return models.PowerPointsData{Current: d.intOr("current", 10), Max: d.intOr("max", 10)}

	case models.ModulePowers:
		ids := newIDSet(newID)
		powers := []models.Power{}
		for _, p := range d.objects("powers") {
			powers = append(powers, models.Power{
				ID:          ids.claim(p),
				Name:        p.strOr("name", ""),
				PowerPoints: p.intOr("powerPoints", 0),
				Range:       p.strOr("range", ""),
				Duration:    p.strOr("duration", ""),
				Effect:      p.strOr("effect", ""),
			})
		}
		return models.PowersData{Powers: powers}

	case models.ModuleWeapons:
		ids := newIDSet(newID)
		weapons := []models.Weapon{}
		for _, w := range d.objects("weapons") {
			weapons = append(weapons, models.Weapon{
				ID:     ids.claim(w),
				Name:   w.strOr("name", ""),
				Range:  w.strOr("range", ""),
				Damage: w.strOr("damage", ""),
				AP:     w.intOr("ap", 0),
				ROF:    w.intOr("rof", 1),
				Weight: w.numberOr("weight", 0),
				Notes:  w.strOr("notes", ""),
			})
		}
		return models.WeaponsData{Weapons: weapons}
	}
	return nil
}
