// Package layout contains the pure placement logic for character sheet modules.
//
// The sheet is a dense three-column grid filled in module list order, so the
// list order is the vertical fill priority. Every function here is total:
// out-of-range values are clamped, unknown module ids are no-ops, and the
// input slice is never modified.
package layout

import (
	"github.com/example/rpgdash/internal/models"
)

// Grid bounds.
const (
	Columns   = 3
	MaxColumn = Columns - 1
	MinSpan   = 1
	MaxSpan   = 3
)

// Direction is a move request for a module.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Vertical reports whether d reorders the list.
func (d Direction) Vertical() bool { return d == Up || d == Down }

// Horizontal reports whether d migrates a module between columns.
func (d Direction) Horizontal() bool { return d == Left || d == Right }

// Placement is the layout part of a module.
type Placement struct {
	Column  int
	Span    int
	RowSpan int
}

// DefaultPlacement returns the placement of a newly created module of type t.
// edges_advancements reserves two rows in the last column for its edges and
// advancement slots.
func DefaultPlacement(t models.ModuleType) Placement {
	if t == models.ModuleEdgesAdvancements {
		return Placement{Column: 2, Span: 1, RowSpan: 2}
	}
	return Placement{Column: 0, Span: 1, RowSpan: 1}
}

// ClampColumn forces c into [0, MaxColumn].
func ClampColumn(c int) int {
	if c < 0 {
		return 0
	}
	if c > MaxColumn {
		return MaxColumn
	}
	return c
}

// ClampSpan forces s into [MinSpan, MaxSpan].
func ClampSpan(s int) int {
	if s < MinSpan {
		return MinSpan
	}
	if s > MaxSpan {
		return MaxSpan
	}
	return s
}

// Clamped returns p with every field forced into range.
func (p Placement) Clamped() Placement {
	return Placement{Column: ClampColumn(p.Column), Span: ClampSpan(p.Span), RowSpan: ClampSpan(p.RowSpan)}
}

// PlacementOf returns the clamped placement of m.
func PlacementOf(m models.Module) Placement {
	return Placement{Column: m.Column, Span: m.Span, RowSpan: m.RowSpan}.Clamped()
}

// Apply returns m with the clamped placement p.
func Apply(m models.Module, p Placement) models.Module {
	p = p.Clamped()
	m.Column, m.Span, m.RowSpan = p.Column, p.Span, p.RowSpan
	return m
}

// NextSpan advances a span or row span by one, wrapping from MaxSpan to MinSpan.
func NextSpan(s int) int {
	s = ClampSpan(s)
	if s >= MaxSpan {
		return MinSpan
	}
	return s + 1
}

// IndexOf returns the position of the module with id, or -1.
func IndexOf(modules []models.Module, id string) int {
	for i := range modules {
		if modules[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(modules []models.Module) []models.Module {
	out := make([]models.Module, len(modules))
	copy(out, modules)
	return out
}

// Reorder swaps the module with its neighbour in the list. Up moves it one
// position earlier, Down one position later. Moves past either end, unknown
// ids and horizontal directions return the list unchanged.
func Reorder(modules []models.Module, id string, dir Direction) []models.Module {
	i := IndexOf(modules, id)
	if i < 0 {
		return modules
	}
	j := -1
	switch dir {
	case Up:
		if i > 0 {
			j = i - 1
		}
	case Down:
		if i < len(modules)-1 {
			j = i + 1
		}
	}
	if j < 0 {
		return modules
	}
	out := clone(modules)
	out[i], out[j] = out[j], out[i]
	return out
}

// MoveColumn shifts the module one column left or right, clamped to the grid.
// The list order is unchanged.
func MoveColumn(modules []models.Module, id string, dir Direction) []models.Module {
	if !dir.Horizontal() {
		return modules
	}
	return Update(modules, id, func(m models.Module) models.Module {
		col := ClampColumn(m.Column)
		if dir == Left {
			m.Column = ClampColumn(col - 1)
		} else {
			m.Column = ClampColumn(col + 1)
		}
		return m
	})
}

// CycleSpan advances the module's column span 1 -> 2 -> 3 -> 1.
func CycleSpan(modules []models.Module, id string) []models.Module {
	return Update(modules, id, func(m models.Module) models.Module {
		m.Span = NextSpan(m.Span)
		return m
	})
}

// CycleRowSpan advances the module's row span 1 -> 2 -> 3 -> 1.
func CycleRowSpan(modules []models.Module, id string) []models.Module {
	return Update(modules, id, func(m models.Module) models.Module {
		m.RowSpan = NextSpan(m.RowSpan)
		return m
	})
}

// Update replaces the module with id by fn's result, clamping its placement.
// The id is preserved.
func Update(modules []models.Module, id string, fn func(models.Module) models.Module) []models.Module {
	i := IndexOf(modules, id)
	if i < 0 {
		return modules
	}
	out := clone(modules)
	next := fn(out[i])
	next.ID = out[i].ID
	out[i] = Apply(next, PlacementOf(next))
	return out
}

// Insert appends m with its placement clamped.
func Insert(modules []models.Module, m models.Module) []models.Module {
	out := make([]models.Module, 0, len(modules)+1)
	out = append(out, modules...)
	return append(out, Apply(m, PlacementOf(m)))
}

// Remove drops the module with id.
func Remove(modules []models.Module, id string) []models.Module {
	if IndexOf(modules, id) < 0 {
		return modules
	}
	out := make([]models.Module, 0, len(modules)-1)
	for _, m := range modules {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}
