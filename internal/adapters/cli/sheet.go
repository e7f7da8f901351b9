package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/example/rpgdash/internal/core/layout"
	"github.com/example/rpgdash/internal/core/ruleset"
	"github.com/example/rpgdash/internal/models"
)

const gridCellWidth = 18

func renderSheet(out io.Writer, c *models.Character) {
	fmt.Fprintf(out, "\n%s  %s\n", bold.Sprint(c.Name), faint.Sprint(shortID(c.ID)))
	fmt.Fprintf(out, "Player: %s\n", orDash(c.PlayerName))
	fmt.Fprintf(out, "System: %s\n", orDash(c.System))
	if c.Class != "" || c.Race != "" {
		fmt.Fprintf(out, "Class:  %s  Race: %s\n", orDash(c.Class), orDash(c.Race))
	}
	levelLabel := "Level: "
	if ruleset.IsSavagePathfinder(c.System) {
		levelLabel = "Rank:  "
	}
	fmt.Fprintf(out, "%s %s\n", levelLabel, ruleset.FormatLevel(c.System, c.Level))
	if c.Background != "" {
		fmt.Fprintf(out, "\n%s\n", c.Background)
	}

	if len(c.Modules) == 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, faint.Sprint("No modules on this sheet."))
		fmt.Fprintln(out)
		return
	}

	for i, m := range c.Modules {
		fmt.Fprintf(out, "\n%s %s %s\n",
			accent.Sprintf("[%d]", i+1),
			bold.Sprint(moduleLabel(m)),
			faint.Sprintf("(%s, col %d, span %d, rows %d)", shortID(m.ID), m.Column+1, m.Span, m.RowSpan),
		)
		for _, line := range describeModule(c, m) {
			fmt.Fprintf(out, "    %s\n", line)
		}
		if m.Notes != "" {
			fmt.Fprintf(out, "    %s\n", faint.Sprint(m.Notes))
		}
	}
	fmt.Fprintln(out)
}

// describeModule renders the body of one module as plain lines.
func describeModule(c *models.Character, m models.Module) []string {
	switch m.Type {
	case models.ModuleCombatStats:
		s := c.Stats
		if s == nil {
			s = models.DefaultStats()
		}
		lines := []string{fmt.Sprintf("CA %d  HP %d/%d  Initiative %s", s.CA, s.HP.Current, s.HP.Max, orZero(signed(s.Initiative)))}
		var extra []string
		if s.Pace != nil {
			extra = append(extra, fmt.Sprintf("Pace %d", *s.Pace))
		}
		if s.Parry != nil {
			extra = append(extra, fmt.Sprintf("Parry %d", *s.Parry))
		}
		if s.Toughness != nil {
			extra = append(extra, fmt.Sprintf("Toughness %d", *s.Toughness))
		}
		if s.Wounds != nil {
			extra = append(extra, fmt.Sprintf("Wounds %d", *s.Wounds))
		}
		if s.Fatigue != nil {
			extra = append(extra, fmt.Sprintf("Fatigue %d", *s.Fatigue))
		}
		if len(extra) > 0 {
			lines = append(lines, strings.Join(extra, "  "))
		}
		if s.IsIncapacitated != nil && *s.IsIncapacitated {
			lines = append(lines, failed.Sprint("Incapacitated"))
		}
		return lines

	case models.ModuleAttributes:
		a := c.Attributes
		if a == nil {
			a = &models.Attributes{Agility: 4, Smarts: 4, Spirit: 4, Strength: 4, Vigor: 4}
		}
		return []string{fmt.Sprintf("Agility %s  Smarts %s  Spirit %s  Strength %s  Vigor %s",
			die(a.Agility), die(a.Smarts), die(a.Spirit), die(a.Strength), die(a.Vigor))}
	}

	switch d := m.Data.(type) {
	case models.SkillsData:
		lines := make([]string, 0, len(d.Skills))
		for _, s := range d.Skills {
			lines = append(lines, fmt.Sprintf("%s %s%s", s.Name, die(s.Die), signed(s.Modifier)))
		}
		return emptyHint(lines, "no skills")
	case models.TextData:
		return emptyHint(nonEmptyLines(d.Text), "empty")
	case models.HindrancesData:
		lines := make([]string, 0, len(d.Hindrances))
		for _, h := range d.Hindrances {
			if h.Type != "" {
				lines = append(lines, fmt.Sprintf("%s (%s)", h.Name, h.Type))
			} else {
				lines = append(lines, h.Name)
			}
		}
		lines = append(lines, nonEmptyLines(d.Text)...)
		return emptyHint(lines, "no hindrances")
	case models.AncestralAbilitiesData:
		lines := make([]string, 0, len(d.Abilities))
		for _, ab := range d.Abilities {
			lines = append(lines, ab.Name)
		}
		return emptyHint(lines, "no abilities")
	case models.EdgesAdvancementsData:
		lines := make([]string, 0, len(d.Edges)+len(d.Advancements))
		for _, e := range d.Edges {
			lines = append(lines, e.Name)
		}
		slots := make([]string, 0, len(d.Advancements))
		for slot := range d.Advancements {
			slots = append(slots, slot)
		}
		sort.Strings(slots)
		for _, slot := range slots {
			if v := d.Advancements[slot].Value; v != "" {
				lines = append(lines, fmt.Sprintf("%s: %s", slot, v))
			}
		}
		return emptyHint(lines, "no edges")
	case models.EquipmentData:
		var cost, weight float64
		lines := make([]string, 0, len(d.Items)+1)
		for _, it := range d.Items {
			cost += it.Cost
			weight += it.Weight
			lines = append(lines, fmt.Sprintf("%s  %s po  %s lb", it.Name, money(it.Cost), money(it.Weight)))
		}
		lines = append(lines, fmt.Sprintf("Gold %s of %s  Weight %s lb", money(d.BaseGold-cost), money(d.BaseGold), money(weight)))
		return lines
	case models.PowerPointsData:
		return []string{fmt.Sprintf("Power points %d/%d", d.Current, d.Max)}
	case models.PowersData:
		lines := make([]string, 0, len(d.Powers))
		for _, p := range d.Powers {
			lines = append(lines, fmt.Sprintf("%s  %d PP  %s  %s", p.Name, p.PowerPoints, orDash(p.Range), orDash(p.Duration)))
		}
		return emptyHint(lines, "no powers")
	case models.WeaponsData:
		lines := make([]string, 0, len(d.Weapons))
		for _, w := range d.Weapons {
			lines = append(lines, fmt.Sprintf("%s  %s  %s  AP %d", w.Name, orDash(w.Damage), orDash(w.Range), w.AP))
		}
		return emptyHint(lines, "no weapons")
	}
	return []string{faint.Sprint("empty")}
}

// renderLayout draws the three-column grid the sheet renderer produces.
// Each cell shows the 1-based module position.
func renderLayout(out io.Writer, c *models.Character) {
	cells := layout.Arrange(c.Modules)
	rows := layout.Rows(cells)
	grid := make([][layout.Columns]string, rows)
	for i, cell := range cells {
		label := fmt.Sprintf("%d %s", i+1, moduleLabel(c.Modules[i]))
		for r := cell.Row; r < cell.Row+cell.Height; r++ {
			for col := cell.Column; col < cell.Column+cell.Width; col++ {
				grid[r][col] = label
			}
		}
	}

	border := "+" + strings.Repeat(strings.Repeat("-", gridCellWidth)+"+", layout.Columns)
	fmt.Fprintln(out, border)
	for _, row := range grid {
		var b strings.Builder
		b.WriteString("|")
		for _, label := range row {
			b.WriteString(fit(label, gridCellWidth))
			b.WriteString("|")
		}
		fmt.Fprintln(out, b.String())
		fmt.Fprintln(out, border)
	}
}

func fit(s string, width int) string {
	r := []rune(" " + s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return string(r) + strings.Repeat(" ", width-len(r))
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func emptyHint(lines []string, hint string) []string {
	if len(lines) == 0 {
		return []string{faint.Sprint(hint)}
	}
	return lines
}
