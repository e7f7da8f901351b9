package schema

import (
	"encoding/json"

	"github.com/example/rpgdash/internal/core/layout"
	"github.com/example/rpgdash/internal/core/ruleset"
	"github.com/example/rpgdash/internal/models"
)

// validDice are the die sizes a skill may use.
var validDice = map[int]bool{4: true, 6: true, 8: true, 10: true, 12: true}

// Normalize coerces arbitrary input into a document of the current version.
//
// Missing or wrong-typed top-level fields are taken from a fresh seed,
// collections that are not arrays become empty, entries that are not objects
// are dropped, modules of unknown type are dropped, layout fields are clamped
// and module payloads are rebuilt for their type. Normalize never panics and
// is idempotent.
func Normalize(input any) *models.Document {
	return normalize(input, CreateSeedData(), NewID)
}

// Decode parses a stored document. It returns the seed and false when raw is
// empty, is not JSON, or carries a version other than CurrentVersion.
func Decode(raw []byte) (*models.Document, bool) {
	if len(raw) == 0 {
		return CreateSeedData(), false
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return CreateSeedData(), false
	}
	if !RecognizedVersion(tree) {
		return CreateSeedData(), false
	}
	return Normalize(tree), true
}

// RecognizedVersion reports whether tree is an object whose version field is
// CurrentVersion.
func RecognizedVersion(tree any) bool {
	obj, ok := asObject(tree)
	if !ok {
		return false
	}
	v, ok := obj.number("version")
	return ok && v == CurrentVersion
}

func normalize(input any, seed *models.Document, newID func() string) *models.Document {
	obj, ok := asObject(toTree(input))
	if !ok {
		obj = object{}
	}

	campaign, ok := obj.object("campaign")
	if !ok {
		campaign = object{}
	}
	notes, ok := obj.object("notes")
	if !ok {
		notes = object{}
	}

	doc := &models.Document{
		Version: CurrentVersion,
		Campaign: models.Campaign{
			ID:           campaign.strOr("id", seed.Campaign.ID),
			Name:         campaign.strOr("name", seed.Campaign.Name),
			System:       campaign.strOr("system", seed.Campaign.System),
			CreatedAtISO: campaign.strOr("createdAtIso", seed.Campaign.CreatedAtISO),
		},
		Characters: []models.Character{},
		Sessions:   []models.Session{},
		Notes:      models.Notes{Campaign: notes.strOr("campaign", seed.Notes.Campaign)},
	}

	characterIDs := newIDSet(newID)
	for _, c := range obj.objects("characters") {
		doc.Characters = append(doc.Characters, normalizeCharacter(c, characterIDs, seed.Campaign.CreatedAtISO, newID))
	}

	sessionIDs := newIDSet(newID)
	for _, s := range obj.objects("sessions") {
		doc.Sessions = append(doc.Sessions, models.Session{
			ID:             sessionIDs.claim(s),
			Title:          s.strOr("title", ""),
			ScheduledAtISO: s.strOr("scheduledAtIso", ""),
			CreatedAtISO:   s.strOr("createdAtIso", seed.Campaign.CreatedAtISO),
			Address:        s.strOr("address", ""),
			CampaignName:   s.strOr("campaignName", ""),
			Notes:          s.strOr("notes", ""),
		})
	}

	return doc
}

func normalizeCharacter(c object, ids *idSet, createdAt string, newID func() string) models.Character {
	ch := models.Character{
		ID:           ids.claim(c),
		Name:         c.strOr("name", ""),
		System:       c.strOr("system", ""),
		PlayerName:   c.strOr("playerName", ""),
		Class:        c.strOr("class", ""),
		Race:         c.strOr("race", ""),
		Level:        normalizeLevel(c["level"]),
		Modules:      []models.Module{},
		CreatedAtISO: c.strOr("createdAtIso", createdAt),
		AvatarURL:    c.strOr("avatarUrl", ""),
		Background:   c.strOr("background", ""),
	}

	if s, ok := c.object("stats"); ok {
		hp, _ := s.object("hp")
		ch.Stats = &models.Stats{
			CA:              s.intOr("ca", 10),
			HP:              models.HitPoints{Current: hp.intOr("current", 10), Max: hp.intOr("max", 10)},
			Initiative:      s.intOr("initiative", 0),
			Pace:            s.intPtr("pace"),
			Parry:           s.intPtr("parry"),
			Toughness:       s.intPtr("toughness"),
			Wounds:          s.intPtr("wounds"),
			Fatigue:         s.intPtr("fatigue"),
			IsIncapacitated: s.boolPtr("isIncapacitated"),
		}
	}

	if a, ok := c.object("attributes"); ok {
		ch.Attributes = &models.Attributes{
			Agility:  a.intOr("agility", 4),
			Smarts:   a.intOr("smarts", 4),
			Spirit:   a.intOr("spirit", 4),
			Strength: a.intOr("strength", 4),
			Vigor:    a.intOr("vigor", 4),
		}
	}

	defaultSystem := models.SystemGeneric
	if ruleset.IsSavagePathfinder(ch.System) {
		defaultSystem = models.SystemSavagePathfinder
	}
	moduleIDs := newIDSet(newID)
	for _, m := range c.objects("modules") {
		if mod, ok := normalizeModule(m, moduleIDs, defaultSystem, newID); ok {
			ch.Modules = append(ch.Modules, mod)
		}
	}
	return ch
}

func normalizeLevel(v any) *models.Level {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return models.RankLevel(t)
	case float64:
		return models.NumericLevel(int(t))
	}
	return nil
}

func normalizeModule(m object, ids *idSet, defaultSystem models.ModuleSystem, newID func() string) (models.Module, bool) {
	typ := models.ModuleType(m.strOr("type", ""))
	if !typ.Valid() {
		return models.Module{}, false
	}
	system := models.ModuleSystem(m.strOr("system", ""))
	if !system.Valid() {
		system = defaultSystem
	}
	mod := models.Module{
		ID:     ids.claim(m),
		Type:   typ,
		System: system,
		Title:  m.strOr("title", ""),
		Notes:  m.strOr("notes", ""),
	}
	mod = layout.Apply(mod, layout.Placement{
		Column:  m.intOr("column", 0),
		Span:    m.intOr("span", 1),
		RowSpan: m.intOr("rowSpan", 1),
	})
	if data, ok := m.object("data"); ok {
		mod.Data = normalizeData(typ, data, newID)
	}
	return mod, true
}
