package layout

import "github.com/example/rpgdash/internal/models"

// Cell is where a module lands on the grid. Row and Column are zero-based;
// Width and Height count grid tracks.
type Cell struct {
	ModuleID string
	Row      int
	Column   int
	Width    int
	Height   int
}

// Arrange performs the dense auto-placement the sheet renderer uses. Each
// module is anchored at its column and takes the earliest rows, scanning from
// the top, where its whole footprint is free. Modules earlier in the list are
// placed first. A span wider than the remaining columns is cut at the grid edge.
func Arrange(modules []models.Module) []Cell {
	occupied := make([][Columns]bool, 0, len(modules))
	cells := make([]Cell, 0, len(modules))

	fits := func(row, col, width, height int) bool {
		for r := row; r < row+height; r++ {
			if r >= len(occupied) {
				continue
			}
			for c := col; c < col+width; c++ {
				if occupied[r][c] {
					return false
				}
			}
		}
		return true
	}

	for _, m := range modules {
		p := PlacementOf(m)
		width := p.Span
		if width > Columns-p.Column {
			width = Columns - p.Column
		}
		row := 0
		for !fits(row, p.Column, width, p.RowSpan) {
			row++
		}
		for len(occupied) < row+p.RowSpan {
			occupied = append(occupied, [Columns]bool{})
		}
		for r := row; r < row+p.RowSpan; r++ {
			for c := p.Column; c < p.Column+width; c++ {
				occupied[r][c] = true
			}
		}
		cells = append(cells, Cell{ModuleID: m.ID, Row: row, Column: p.Column, Width: width, Height: p.RowSpan})
	}
	return cells
}

// Rows returns the number of grid rows cells occupy.
func Rows(cells []Cell) int {
	rows := 0
	for _, c := range cells {
		if end := c.Row + c.Height; end > rows {
			rows = end
		}
	}
	return rows
}
