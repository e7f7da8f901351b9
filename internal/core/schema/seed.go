// Package schema owns the versioned document shape: the deterministic seed
// document and the normalisation every loaded value passes through.
package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/rpgdash/internal/core/layout"
	"github.com/example/rpgdash/internal/core/ruleset"
	"github.com/example/rpgdash/internal/models"
)

// CurrentVersion is the schema version produced by this package.
const CurrentVersion = models.DocumentVersion

// TimestampLayout is the ISO-8601 form used for every *ISO field.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FirstSessionDelay is how far in the future the seed schedules its session.
const FirstSessionDelay = 7 * 24 * time.Hour

// Seed texts.
const (
	SeedCampaignName   = "Minha Campanha"
	SeedCampaignSystem = "RPG"
	SeedSessionTitle   = "Sessão 1"
	SeedCampaignNotes  = "Resumo da campanha, ganchos, NPCs importantes..."
)

// FormatTimestamp renders t in TimestampLayout (UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.NewString()
}

// CreateSeedData returns a new default document stamped with the current time.
func CreateSeedData() *models.Document {
	return NewSeed(time.Now(), NewID)
}

// NewSeed builds the default document: a campaign, two Savage Pathfinder
// characters with combat_stats and attributes modules, one session one week
// after now, and starter campaign notes.
func NewSeed(now time.Time, newID func() string) *models.Document {
	createdAt := FormatTimestamp(now)

	seedCharacter := func(name, player string) models.Character {
		modules := make([]models.Module, 0, 2)
		for _, t := range []models.ModuleType{models.ModuleCombatStats, models.ModuleAttributes} {
			modules = layout.Insert(modules, layout.Apply(models.Module{
				ID:     newID(),
				Type:   t,
				System: models.SystemSavagePathfinder,
			}, layout.DefaultPlacement(t)))
		}
		return models.Character{
			ID:           newID(),
			Name:         name,
			System:       ruleset.SavagePathfinder,
			PlayerName:   player,
			Level:        ruleset.DefaultLevel(ruleset.SavagePathfinder),
			Stats:        models.DefaultStats(),
			Attributes:   models.DefaultAttributes(),
			Modules:      modules,
			CreatedAtISO: createdAt,
		}
	}

	return &models.Document{
		Version: CurrentVersion,
		Campaign: models.Campaign{
			ID:           newID(),
			Name:         SeedCampaignName,
			System:       SeedCampaignSystem,
			CreatedAtISO: createdAt,
		},
		Characters: []models.Character{
			seedCharacter("Artheon", "Jogador 1"),
			seedCharacter("Lys", "Jogador 2"),
		},
		Sessions: []models.Session{
			{
				ID:             newID(),
				Title:          SeedSessionTitle,
				ScheduledAtISO: FormatTimestamp(now.Add(FirstSessionDelay)),
				CreatedAtISO:   createdAt,
			},
		},
		Notes: models.Notes{Campaign: SeedCampaignNotes},
	}
}
