// Package ruleset contains pure helpers for ruleset-specific character fields.
package ruleset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/rpgdash/internal/models"
)

// SavagePathfinder is the system label of the Savage Pathfinder ruleset.
const SavagePathfinder = string(models.SystemSavagePathfinder)

// ErrLevelOutOfRange is returned for a numeric level that does not fit an int.
var ErrLevelOutOfRange = errors.New("level out of range")

// Ranks are the Savage Pathfinder ranks in ascending order.
var Ranks = []string{"Novato", "Experiente", "Veterano", "Heroico", "Lendário"}

// IsSavagePathfinder reports whether system names the Savage Pathfinder ruleset.
func IsSavagePathfinder(system string) bool {
	return strings.ToLower(strings.TrimSpace(system)) == SavagePathfinder
}

// IsRank reports whether name is a Savage Pathfinder rank.
func IsRank(name string) bool {
	for _, r := range Ranks {
		if r == name {
			return true
		}
	}
	return false
}

// DefaultLevel returns the starting level for a new character of system:
// the first rank for Savage Pathfinder, level 1 otherwise.
func DefaultLevel(system string) *models.Level {
	if IsSavagePathfinder(system) {
		return models.RankLevel(Ranks[0])
	}
	return models.NumericLevel(1)
}

// FormatLevel renders level for a character of system. Numeric levels on a
// Savage Pathfinder character map onto ranks, falling back to the first rank.
func FormatLevel(system string, level *models.Level) string {
	if IsSavagePathfinder(system) {
		if level == nil {
			return Ranks[0]
		}
		if level.IsRank() {
			return level.Rank
		}
		if level.Number >= 1 && level.Number <= len(Ranks) {
			return Ranks[level.Number-1]
		}
		return Ranks[0]
	}
	if level == nil {
		return "1"
	}
	return level.String()
}

// ParseLevel interprets user input as a rank (for Savage Pathfinder) or a
// number. It returns nil when the input is empty. A string of digits too
// large for an int is rejected with ErrLevelOutOfRange.
func ParseLevel(system, input string) (*models.Level, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	if isDigits(input) {
		n, err := strconv.Atoi(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrLevelOutOfRange, input)
		}
		return models.NumericLevel(n), nil
	}
	if IsSavagePathfinder(system) {
		for _, r := range Ranks {
			if strings.EqualFold(r, input) {
				return models.RankLevel(r), nil
			}
		}
	}
	return models.RankLevel(input), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
