package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/example/rpgdash/internal/core/layout"
	"github.com/example/rpgdash/internal/models"
	"github.com/example/rpgdash/internal/ports/primary"
)

// ModuleAdapter translates sheet module CLI operations to DataStore actions.
type ModuleAdapter struct {
	store primary.DataStore
	out   io.Writer
}

// NewModuleAdapter creates a new ModuleAdapter.
func NewModuleAdapter(store primary.DataStore, out io.Writer) *ModuleAdapter {
	return &ModuleAdapter{
		store: store,
		out:   out,
	}
}

// AddModuleRequest carries the raw flag values for a new module.
type AddModuleRequest struct {
	Type    string
	System  string
	Title   string
	Column  *int // 1-based, as shown on the sheet
	Span    *int
	RowSpan *int
}

// UpdateModuleRequest carries the raw flag values for a module update.
type UpdateModuleRequest struct {
	Title    *string
	Notes    *string
	System   *string
	Text     *string // text_block shorthand
	DataJSON string  // full payload for the module type
}

// Add appends a module to a character's sheet and returns its id.
func (a *ModuleAdapter) Add(ctx context.Context, charRef string, req AddModuleRequest) (string, error) {
	typ := models.ModuleType(req.Type)
	if !typ.Valid() {
		return "", fmt.Errorf("unknown module type %q (valid: %v)", req.Type, models.ModuleTypes)
	}
	c, err := resolveCharacter(a.store.GetState(), charRef)
	if err != nil {
		return "", err
	}

	input := primary.ModuleInput{
		Type:    typ,
		System:  models.ModuleSystem(req.System),
		Title:   req.Title,
		Span:    req.Span,
		RowSpan: req.RowSpan,
	}
	if input.System == "" {
		input.System = defaultModuleSystem(c.System)
	}
	if req.Column != nil {
		col := *req.Column - 1
		input.Column = &col
	}

	id := a.store.AddCharacterModule(ctx, c.ID, input)
	if id == "" {
		return "", fmt.Errorf("character %s no longer exists", c.Name)
	}
	fmt.Fprintf(a.out, "✓ Added %s module to %s (%s)\n", typ, c.Name, shortID(id))
	return id, nil
}

// Update applies a partial update to a module.
func (a *ModuleAdapter) Update(ctx context.Context, charRef, modRef string, req UpdateModuleRequest) error {
	c, m, err := a.resolve(charRef, modRef)
	if err != nil {
		return err
	}

	patch := primary.ModulePatch{Title: req.Title, Notes: req.Notes}
	if req.System != nil {
		sys := models.ModuleSystem(*req.System)
		if !sys.Valid() {
			return fmt.Errorf("unknown module system %q", *req.System)
		}
		patch.System = &sys
	}
	switch {
	case req.Text != nil && req.DataJSON != "":
		return fmt.Errorf("--text and --data are mutually exclusive")
	case req.Text != nil:
		if m.Type != models.ModuleTextBlock {
			return fmt.Errorf("--text only applies to text_block modules, %s is %s", moduleLabel(*m), m.Type)
		}
		patch.Data = models.TextData{Text: *req.Text}
	case req.DataJSON != "":
		if !models.HasPayload(m.Type) {
			return fmt.Errorf("%s modules have no data payload", m.Type)
		}
		if !json.Valid([]byte(req.DataJSON)) {
			return fmt.Errorf("--data is not valid JSON")
		}
		data, err := models.DecodeModuleData(m.Type, json.RawMessage(req.DataJSON))
		if err != nil {
			return fmt.Errorf("failed to decode module data: %w", err)
		}
		patch.Data = data
	}
	if patch.Title == nil && patch.Notes == nil && patch.System == nil && patch.Data == nil {
		return fmt.Errorf("must specify at least one field to update")
	}

	a.store.UpdateCharacterModule(ctx, c.ID, m.ID, patch)
	fmt.Fprintf(a.out, "✓ Module %s updated\n", moduleLabel(*m))
	return nil
}

// Remove deletes a module from a sheet.
func (a *ModuleAdapter) Remove(ctx context.Context, charRef, modRef string) error {
	c, m, err := a.resolve(charRef, modRef)
	if err != nil {
		return err
	}
	a.store.RemoveCharacterModule(ctx, c.ID, m.ID)
	fmt.Fprintf(a.out, "✓ Removed module %s from %s\n", moduleLabel(*m), c.Name)
	return nil
}

// Move reorders a module (up, down) or shifts its column (left, right).
func (a *ModuleAdapter) Move(ctx context.Context, charRef, modRef string, dir layout.Direction) error {
	c, m, err := a.resolve(charRef, modRef)
	if err != nil {
		return err
	}
	switch dir {
	case layout.Up, layout.Down:
		a.store.ReorderCharacterModule(ctx, c.ID, m.ID, dir == layout.Up)
	case layout.Left, layout.Right:
		a.store.MoveCharacterModuleColumn(ctx, c.ID, m.ID, dir == layout.Left)
	default:
		return fmt.Errorf("unknown direction %q", dir)
	}
	a.printPlacement(c.ID, m.ID)
	return nil
}

// CycleSpan advances a module's column span.
func (a *ModuleAdapter) CycleSpan(ctx context.Context, charRef, modRef string) error {
	c, m, err := a.resolve(charRef, modRef)
	if err != nil {
		return err
	}
	a.store.CycleCharacterModuleSpan(ctx, c.ID, m.ID)
	a.printPlacement(c.ID, m.ID)
	return nil
}

// CycleRowSpan advances a module's row span.
func (a *ModuleAdapter) CycleRowSpan(ctx context.Context, charRef, modRef string) error {
	c, m, err := a.resolve(charRef, modRef)
	if err != nil {
		return err
	}
	a.store.CycleCharacterModuleRowSpan(ctx, c.ID, m.ID)
	a.printPlacement(c.ID, m.ID)
	return nil
}

// Layout draws a character's module grid.
func (a *ModuleAdapter) Layout(ctx context.Context, charRef string) error {
	c, err := resolveCharacter(a.store.GetState(), charRef)
	if err != nil {
		return err
	}
	if len(c.Modules) == 0 {
		fmt.Fprintf(a.out, "%s has no modules.\n", c.Name)
		return nil
	}
	renderLayout(a.out, c)
	return nil
}

func (a *ModuleAdapter) resolve(charRef, modRef string) (*models.Character, *models.Module, error) {
	c, err := resolveCharacter(a.store.GetState(), charRef)
	if err != nil {
		return nil, nil, err
	}
	m, err := resolveModule(c, modRef)
	if err != nil {
		return nil, nil, err
	}
	return c, m, nil
}

func (a *ModuleAdapter) printPlacement(charID, moduleID string) {
	c, err := resolveCharacter(a.store.GetState(), charID)
	if err != nil {
		return
	}
	idx := layout.IndexOf(c.Modules, moduleID)
	if idx < 0 {
		return
	}
	m := c.Modules[idx]
	fmt.Fprintf(a.out, "✓ %s is #%d at column %d, span %d, rows %d\n", moduleLabel(m), idx+1, m.Column+1, m.Span, m.RowSpan)
}

func defaultModuleSystem(characterSystem string) models.ModuleSystem {
	if sys := models.ModuleSystem(characterSystem); sys.Valid() {
		return sys
	}
	return models.SystemGeneric
}
