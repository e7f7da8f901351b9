package models

import (
	"encoding/json"
	"fmt"
)

// ModuleType is the closed set of character sheet module kinds.
type ModuleType string

const (
	ModuleCombatStats        ModuleType = "combat_stats"
	ModuleAttributes         ModuleType = "attributes"
	ModuleSkills             ModuleType = "skills"
	ModuleTextBlock          ModuleType = "text_block"
	ModuleHindrances         ModuleType = "hindrances"
	ModuleAncestralAbilities ModuleType = "ancestral_abilities"
	ModuleEdgesAdvancements  ModuleType = "edges_advancements"
	ModuleEquipment          ModuleType = "equipment"
	ModulePowerPoints        ModuleType = "power_points"
	ModulePowers             ModuleType = "powers"
	ModuleWeapons            ModuleType = "weapons"
)

// ModuleTypes lists every known module type in menu order.
var ModuleTypes = []ModuleType{
	ModuleCombatStats,
	ModuleAttributes,
	ModuleSkills,
	ModuleTextBlock,
	ModuleHindrances,
	ModuleAncestralAbilities,
	ModuleEdgesAdvancements,
	ModuleEquipment,
	ModulePowerPoints,
	ModulePowers,
	ModuleWeapons,
}

// Valid reports whether t is in the closed tag set.
func (t ModuleType) Valid() bool {
	for _, known := range ModuleTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ModuleSystem tags the ruleset that renders a module.
type ModuleSystem string

const (
	SystemSavagePathfinder ModuleSystem = "savage_pathfinder"
	SystemGeneric          ModuleSystem = "generic"
)

// Valid reports whether s is a known module system.
func (s ModuleSystem) Valid() bool {
	return s == SystemSavagePathfinder || s == SystemGeneric
}

// Module is a repositionable unit on a character sheet.
//
// Column is in [0,2]; Span and RowSpan are in [1,3]. Data holds the payload
// for Type and is nil for types that render from character fields.
type Module struct {
	ID      string       `json:"id"`
	Type    ModuleType   `json:"type"`
	System  ModuleSystem `json:"system"`
	Column  int          `json:"column"`
	Span    int          `json:"span"`
	RowSpan int          `json:"rowSpan"`
	Title   string       `json:"title,omitempty"`
	Notes   string       `json:"notes,omitempty"`
	Data    ModuleData   `json:"data,omitempty"`
}

// ModuleData is the payload variant owned by one module type.
type ModuleData interface {
	ModuleType() ModuleType
}

// Skill is one entry of a skills module.
type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Die      int    `json:"die"`
	Modifier int    `json:"modifier,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// SkillsData is the payload of a skills module.
type SkillsData struct {
	Skills []Skill `json:"skills"`
}

func (SkillsData) ModuleType() ModuleType { return ModuleSkills }

// Hindrance is one entry of a hindrances module. Type is "major" or "minor".
type Hindrance struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// HindrancesData is the payload of a hindrances module. Text carries the
// legacy free-text form.
type HindrancesData struct {
	Hindrances []Hindrance `json:"hindrances"`
	Text       string      `json:"text,omitempty"`
}

func (HindrancesData) ModuleType() ModuleType { return ModuleHindrances }

// TextData is the payload of a text_block module.
type TextData struct {
	Text string `json:"text"`
}

func (TextData) ModuleType() ModuleType { return ModuleTextBlock }

// AncestralAbility is one entry of an ancestral_abilities module.
type AncestralAbility struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

// AncestralAbilitiesData is the payload of an ancestral_abilities module.
type AncestralAbilitiesData struct {
	Abilities []AncestralAbility `json:"ancestral_abilities"`
}

func (AncestralAbilitiesData) ModuleType() ModuleType { return ModuleAncestralAbilities }

// Edge is one entry of an edges_advancements module.
type Edge struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

// Advancement fills one advancement slot (N1, N2, E0, ...).
type Advancement struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Notes string `json:"notes,omitempty"`
}

// EdgesAdvancementsData is the payload of an edges_advancements module.
// Advancements is keyed by slot id.
type EdgesAdvancementsData struct {
	Edges        []Edge                 `json:"edges"`
	Advancements map[string]Advancement `json:"advancements"`
}

func (EdgesAdvancementsData) ModuleType() ModuleType { return ModuleEdgesAdvancements }

// EquipmentItem is one entry of an equipment module.
type EquipmentItem struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Cost   float64 `json:"cost"`
	Weight float64 `json:"weight"`
	Notes  string  `json:"notes,omitempty"`
}

// EquipmentData is the payload of an equipment module.
type EquipmentData struct {
	BaseGold float64         `json:"baseGold"`
	Items    []EquipmentItem `json:"items"`
}

func (EquipmentData) ModuleType() ModuleType { return ModuleEquipment }

// PowerPointsData is the payload of a power_points module.
type PowerPointsData struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

func (PowerPointsData) ModuleType() ModuleType { return ModulePowerPoints }

// Power is one entry of a powers module.
type Power struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PowerPoints int    `json:"powerPoints"`
	Range       string `json:"range"`
	Duration    string `json:"duration"`
	Effect      string `json:"effect"`
}

// PowersData is the payload of a powers module.
type PowersData struct {
	Powers []Power `json:"powers"`
}

func (PowersData) ModuleType() ModuleType { return ModulePowers }

// Weapon is one entry of a weapons module.
type Weapon struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Range  string  `json:"range"`
	Damage string  `json:"damage"`
	AP     int     `json:"ap"`
	ROF    int     `json:"rof"`
	Weight float64 `json:"weight"`
	Notes  string  `json:"notes"`
}

// WeaponsData is the payload of a weapons module.
type WeaponsData struct {
	Weapons []Weapon `json:"weapons"`
}

func (WeaponsData) ModuleType() ModuleType { return ModuleWeapons }

// HasPayload reports whether modules of type t carry a Data payload.
func HasPayload(t ModuleType) bool {
	return t.Valid() && t != ModuleCombatStats && t != ModuleAttributes
}

// DecodeModuleData decodes raw into the payload variant for t. A nil or
// empty raw value yields a nil payload.
func DecodeModuleData(t ModuleType, raw json.RawMessage) (ModuleData, error) {
	if len(raw) == 0 || string(raw) == "null" || !HasPayload(t) {
		return nil, nil
	}
	var target ModuleData
	switch t {
	case ModuleSkills:
		var d SkillsData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		target = d
	case ModuleHindrances:
		var d HindrancesData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		target = d
	case ModuleTextBlock:
		var d TextData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		target = d
	case ModuleAncestralAbilities:
		var d AncestralAbilitiesData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		target = d
	case ModuleEdgesAdvancements:
		var d EdgesAdvancementsData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		target = d
	case ModuleEquipment:
		var d EquipmentData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		target = d
	case ModulePowerPoints:
		var d PowerPointsData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		target = d
	case ModulePowers:
		var d PowersData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		target = d
	case ModuleWeapons:
		var d WeaponsData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		target = d
	default:
		return nil, fmt.Errorf("module type %q has no payload", t)
	}
	return target, nil
}

// UnmarshalJSON decodes the module and its payload according to its type.
func (m *Module) UnmarshalJSON(data []byte) error {
	type plain Module
	var aux struct {
		plain
		Data json.RawMessage `json:"data,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	payload, err := DecodeModuleData(aux.Type, aux.Data)
	if err != nil {
		return fmt.Errorf("failed to decode %s module data: %w", aux.Type, err)
	}
	*m = Module(aux.plain)
	m.Data = payload
	return nil
}
