package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/example/rpgdash/internal/core/ruleset"
	"github.com/example/rpgdash/internal/models"
	"github.com/example/rpgdash/internal/ports/primary"
)

// CharacterAdapter translates character CLI operations to DataStore actions.
type CharacterAdapter struct {
	store primary.DataStore
	out   io.Writer
}

// NewCharacterAdapter creates a new CharacterAdapter.
func NewCharacterAdapter(store primary.DataStore, out io.Writer) *CharacterAdapter {
	return &CharacterAdapter{
		store: store,
		out:   out,
	}
}

// AddCharacterRequest carries the raw flag values for a new character.
type AddCharacterRequest struct {
	Name       string
	System     string
	PlayerName string
	Class      string
	Race       string
	Level      string
}

// StatsChange lists the combat stats to change. Nil fields are kept.
type StatsChange struct {
	CA            *int
	HP            *int
	HPMax         *int
	Initiative    *int
	Pace          *int
	Parry         *int
	Toughness     *int
	Wounds        *int
	Fatigue       *int
	Incapacitated *bool
}

// AttributesChange lists the attribute dice to change. Nil fields are kept.
type AttributesChange struct {
	Agility  *int
	Smarts   *int
	Spirit   *int
	Strength *int
	Vigor    *int
}

// List prints every character in sheet order.
func (a *CharacterAdapter) List(ctx context.Context) []models.Character {
	chars := a.store.GetState().Characters
	if len(chars) == 0 {
		fmt.Fprintln(a.out, "No characters found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first character:")
		fmt.Fprintln(a.out, "  rpgdash character add \"Artheon\" --player \"Jogador 1\" --system savage_pathfinder")
		return chars
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPLAYER\tSYSTEM\tLEVEL\tMODULES")
	fmt.Fprintln(w, "--\t----\t------\t------\t-----\t-------")
	for _, c := range chars {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			shortID(c.ID),
			c.Name,
			orDash(c.PlayerName),
			orDash(c.System),
			ruleset.FormatLevel(c.System, c.Level),
			len(c.Modules),
		)
	}
	w.Flush()
	return chars
}

// Add creates a character and returns its id.
func (a *CharacterAdapter) Add(ctx context.Context, req AddCharacterRequest) (string, error) {
	if strings.TrimSpace(req.Name) == "" {
		return "", fmt.Errorf("character name must not be empty")
	}
	level, err := ruleset.ParseLevel(req.System, req.Level)
	if err != nil {
		return "", err
	}
	input := primary.CharacterInput{
		Name:       req.Name,
		System:     req.System,
		PlayerName: req.PlayerName,
		Level:      level,
	}
	if req.Class != "" {
		input.Class = &req.Class
	}
	if req.Race != "" {
		input.Race = &req.Race
	}

	id := a.store.UpsertCharacter(ctx, input)
	fmt.Fprintf(a.out, "✓ Created character %s (%s)\n", strings.TrimSpace(req.Name), shortID(id))
	return id, nil
}

// Show prints a character sheet.
func (a *CharacterAdapter) Show(ctx context.Context, ref string) (*models.Character, error) {
	c, err := resolveCharacter(a.store.GetState(), ref)
	if err != nil {
		return nil, err
	}
	renderSheet(a.out, c)
	return c, nil
}

// Update applies a partial update to a character.
func (a *CharacterAdapter) Update(ctx context.Context, ref string, patch primary.CharacterPatch) error {
	if patch == (primary.CharacterPatch{}) {
		return fmt.Errorf("must specify at least one field to update")
	}
	c, err := resolveCharacter(a.store.GetState(), ref)
	if err != nil {
		return err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("character name must not be empty")
	}

	a.store.UpdateCharacter(ctx, c.ID, patch)
	fmt.Fprintf(a.out, "✓ Character %s updated\n", c.Name)
	return nil
}

// ParseLevelFor interprets a level flag against the character's system.
func (a *CharacterAdapter) ParseLevelFor(ref, input string) (*models.Level, error) {
	c, err := resolveCharacter(a.store.GetState(), ref)
	if err != nil {
		return nil, err
	}
	return ruleset.ParseLevel(c.System, input)
}

// Stats changes a character's combat stats.
func (a *CharacterAdapter) Stats(ctx context.Context, ref string, change StatsChange) error {
	if change == (StatsChange{}) {
		return fmt.Errorf("must specify at least one stat to change")
	}
	c, err := resolveCharacter(a.store.GetState(), ref)
	if err != nil {
		return err
	}

	stats := models.DefaultStats()
	if c.Stats != nil {
		copied := *c.Stats
		stats = &copied
	}
	setInt(&stats.CA, change.CA)
	setInt(&stats.HP.Current, change.HP)
	setInt(&stats.HP.Max, change.HPMax)
	setInt(&stats.Initiative, change.Initiative)
	setOptInt(&stats.Pace, change.Pace)
	setOptInt(&stats.Parry, change.Parry)
	setOptInt(&stats.Toughness, change.Toughness)
	setOptInt(&stats.Wounds, change.Wounds)
	setOptInt(&stats.Fatigue, change.Fatigue)
	if change.Incapacitated != nil {
		v := *change.Incapacitated
		stats.IsIncapacitated = &v
	}

	a.store.UpdateCharacterStats(ctx, c.ID, stats)
	fmt.Fprintf(a.out, "✓ Stats for %s updated (HP %d/%d, CA %d)\n", c.Name, stats.HP.Current, stats.HP.Max, stats.CA)
	return nil
}

// Attributes changes a character's attribute dice.
func (a *CharacterAdapter) Attributes(ctx context.Context, ref string, change AttributesChange) error {
	if change == (AttributesChange{}) {
		return fmt.Errorf("must specify at least one attribute to change")
	}
	for _, d := range []*int{change.Agility, change.Smarts, change.Spirit, change.Strength, change.Vigor} {
		if d != nil && !validDie(*d) {
			return fmt.Errorf("invalid die d%d, use one of d4, d6, d8, d10, d12", *d)
		}
	}
	c, err := resolveCharacter(a.store.GetState(), ref)
	if err != nil {
		return err
	}

	attrs := &models.Attributes{Agility: 4, Smarts: 4, Spirit: 4, Strength: 4, Vigor: 4}
	if c.Attributes != nil {
		copied := *c.Attributes
		attrs = &copied
	}
	setInt(&attrs.Agility, change.Agility)
	setInt(&attrs.Smarts, change.Smarts)
	setInt(&attrs.Spirit, change.Spirit)
	setInt(&attrs.Strength, change.Strength)
	setInt(&attrs.Vigor, change.Vigor)

	a.store.UpdateCharacterAttributes(ctx, c.ID, attrs)
	fmt.Fprintf(a.out, "✓ Attributes for %s updated\n", c.Name)
	return nil
}

// Remove deletes a character and its modules.
func (a *CharacterAdapter) Remove(ctx context.Context, ref string) error {
	c, err := resolveCharacter(a.store.GetState(), ref)
	if err != nil {
		return err
	}
	a.store.RemoveCharacter(ctx, c.ID)
	fmt.Fprintf(a.out, "✓ Removed character %s\n", c.Name)
	return nil
}

func validDie(d int) bool {
	switch d {
	case 4, 6, 8, 10, 12:
		return true
	}
	return false
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setOptInt(dst **int, v *int) {
	if v != nil {
		n := *v
		*dst = &n
	}
}
