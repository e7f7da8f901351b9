// Package models defines the versioned campaign document shared by every layer.
//
// A Document is treated as immutable once published by the store: mutations
// build a new Document that shares untouched parts with the previous one.
// Callers must never modify a Document (or any slice reachable from it) in place.
package models

// DocumentVersion is the only schema version this module reads and writes.
const DocumentVersion = 1

// Document is the single root of truth for one campaign (RpgDataV1).
type Document struct {
	Version    int         `json:"version"`
	Campaign   Campaign    `json:"campaign"`
	Characters []Character `json:"characters"`
	Sessions   []Session   `json:"sessions"`
	Notes      Notes       `json:"notes"`
}

// Campaign identifies the campaign and its ruleset label.
type Campaign struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	System       string `json:"system"`
	CreatedAtISO string `json:"createdAtIso"`
}

// Notes holds the free-text campaign notes.
type Notes struct {
	Campaign string `json:"campaign"`
}

// Session is a scheduled play session.
type Session struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	ScheduledAtISO string `json:"scheduledAtIso"`
	CreatedAtISO   string `json:"createdAtIso"`
	Address        string `json:"address,omitempty"`
	CampaignName   string `json:"campaignName,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// Character is a player entity. Modules is ordered: the order is the
// dense-grid fill order of the character sheet.
type Character struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	System       string      `json:"system"`
	PlayerName   string      `json:"playerName"`
	Class        string      `json:"class,omitempty"`
	Race         string      `json:"race,omitempty"`
	Level        *Level      `json:"level,omitempty"`
	Stats        *Stats      `json:"stats,omitempty"`
	Attributes   *Attributes `json:"attributes,omitempty"`
	Modules      []Module    `json:"modules"`
	CreatedAtISO string      `json:"createdAtIso"`
	AvatarURL    string      `json:"avatarUrl,omitempty"`
	Background   string      `json:"background,omitempty"`
}

// HitPoints tracks current and maximum hit points.
type HitPoints struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// Stats are the denormalized combat fields rendered by combat_stats modules.
type Stats struct {
	CA              int       `json:"ca"`
	HP              HitPoints `json:"hp"`
	Initiative      int       `json:"initiative"`
	Pace            *int      `json:"pace,omitempty"`
	Parry           *int      `json:"parry,omitempty"`
	Toughness       *int      `json:"toughness,omitempty"`
	Wounds          *int      `json:"wounds,omitempty"`
	Fatigue         *int      `json:"fatigue,omitempty"`
	IsIncapacitated *bool     `json:"isIncapacitated,omitempty"`
}

// Attributes are the die sizes rendered by attributes modules.
type Attributes struct {
	Agility  int `json:"agility"`
	Smarts   int `json:"smarts"`
	Spirit   int `json:"spirit"`
	Strength int `json:"strength"`
	Vigor    int `json:"vigor"`
}

// DefaultStats returns the stats given to newly created characters.
func DefaultStats() *Stats {
	return &Stats{CA: 10, HP: HitPoints{Current: 10, Max: 10}, Initiative: 0}
}

// DefaultAttributes returns the attributes given to newly created characters.
func DefaultAttributes() *Attributes {
	return &Attributes{Agility: 4, Smarts: 4, Spirit: 4, Strength: 4, Vigor: 4}
}

// FindCharacter returns the character with the given id.
func (d *Document) FindCharacter(id string) (*Character, bool) {
	for i := range d.Characters {
		if d.Characters[i].ID == id {
			return &d.Characters[i], true
		}
	}
	return nil, false
}

// FindModule returns the module with the given id.
func (c *Character) FindModule(id string) (*Module, bool) {
	for i := range c.Modules {
		if c.Modules[i].ID == id {
			return &c.Modules[i], true
		}
	}
	return nil, false
}
