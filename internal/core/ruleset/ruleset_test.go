package ruleset

import (
	"errors"
	"testing"

	"github.com/example/rpgdash/internal/models"
)

func TestDefaultLevel(t *testing.T) {
	tests := []struct {
		name   string
		system string
		want   string
		isRank bool
	}{
		{name: "savage pathfinder starts as Novato", system: "savage_pathfinder", want: "Novato", isRank: true},
		{name: "system label is case and space insensitive", system: "  Savage_Pathfinder ", want: "Novato", isRank: true},
		{name: "generic starts at level 1", system: "generic", want: "1"},
		{name: "empty system starts at level 1", system: "", want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultLevel(tt.system)
			if got.IsRank() != tt.isRank {
				t.Errorf("IsRank = %v, want %v", got.IsRank(), tt.isRank)
			}
			if got.String() != tt.want {
				t.Errorf("DefaultLevel(%q) = %q, want %q", tt.system, got.String(), tt.want)
			}
		})
	}
}

func TestFormatLevel(t *testing.T) {
	tests := []struct {
		name   string
		system string
		level  *models.Level
		want   string
	}{
		{name: "rank on savage pathfinder", system: SavagePathfinder, level: models.RankLevel("Veterano"), want: "Veterano"},
		{name: "numeric maps to rank", system: SavagePathfinder, level: models.NumericLevel(2), want: "Experiente"},
		{name: "numeric out of range falls back", system: SavagePathfinder, level: models.NumericLevel(9), want: "Novato"},
		{name: "missing level on savage pathfinder", system: SavagePathfinder, level: nil, want: "Novato"},
		{name: "generic numeric", system: "generic", level: models.NumericLevel(7), want: "7"},
		{name: "generic missing", system: "generic", level: nil, want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLevel(tt.system, tt.level); got != tt.want {
				t.Errorf("FormatLevel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	if got, err := ParseLevel(SavagePathfinder, ""); got != nil || err != nil {
		t.Errorf("expected nil for empty input, got %v, %v", got, err)
	}
	if got, err := ParseLevel(SavagePathfinder, "heroico"); err != nil || got == nil || got.Rank != "Heroico" {
		t.Errorf("expected canonical rank Heroico, got %v, %v", got, err)
	}
	if got, err := ParseLevel("generic", "12"); err != nil || got == nil || got.IsRank() || got.Number != 12 {
		t.Errorf("expected numeric 12, got %v, %v", got, err)
	}
	if got, err := ParseLevel("generic", "12a"); err != nil || got == nil || got.Rank != "12a" {
		t.Errorf("expected free-form label 12a, got %v, %v", got, err)
	}
}

func TestParseLevelRejectsOverflow(t *testing.T) {
	got, err := ParseLevel("generic", "99999999999999999999999")
	if !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("expected ErrLevelOutOfRange, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no level, got %v", got)
	}
}
