// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the CLI drives the application.
package primary

import (
	"context"
	"errors"

	"github.com/example/rpgdash/internal/models"
	"github.com/example/rpgdash/internal/ports/secondary"
)

// SyncState is the remote-readiness state of a DataStore.
type SyncState string

const (
	// SyncLocalOnly means mutations are persisted locally only.
	SyncLocalOnly SyncState = "local-only"
	// SyncReconciling means the one-time pull or initial push is in flight.
	SyncReconciling SyncState = "reconciling"
	// SyncMirrored means mutations are also upserted remotely after the debounce.
	SyncMirrored SyncState = "mirrored"
)

// ErrNotMirrored is returned by Push when no identity has been reconciled.
var ErrNotMirrored = errors.New("remote sync is not active")

// SyncStatus is the advisory sync state exposed to consumers.
type SyncStatus struct {
	State  SyncState
	UserID string
	Err    string // last remote failure, empty when healthy
}

// DataStore defines the primary port for the campaign document.
//
// The document returned by GetState and passed to subscribers is immutable:
// every action replaces it with a new value and never modifies the old one.
type DataStore interface {
	// GetState returns the current document.
	GetState() *models.Document

	// Subscribe registers fn to be called after every committed change.
	Subscribe(fn func(*models.Document)) (unsubscribe func())

	// Status reports the sync state and the last remote error.
	Status() SyncStatus

	// HandleAuthChange reacts to an identity transition from the auth collaborator.
	HandleAuthChange(state secondary.AuthState)

	// AwaitReconciled blocks until the in-flight reconciliation, if any, finishes.
	AwaitReconciled(ctx context.Context) error

	// Flush runs a pending debounced remote write immediately.
	Flush(ctx context.Context) error

	// Push writes the current document to the remote immediately.
	Push(ctx context.Context) error

	// SetCampaignName renames the campaign.
	SetCampaignName(ctx context.Context, name string)

	// SetCampaignSystem sets the campaign's game system label.
	SetCampaignSystem(ctx context.Context, system string)

	// UpsertCharacter creates a character (empty ID) or updates an existing one.
	// It returns the character id.
	UpsertCharacter(ctx context.Context, input CharacterInput) string

	// UpdateCharacter applies a partial update to a character.
	UpdateCharacter(ctx context.Context, id string, patch CharacterPatch)

	// UpdateCharacterStats replaces a character's stats.
	UpdateCharacterStats(ctx context.Context, id string, stats *models.Stats)

	// UpdateCharacterAttributes replaces a character's attribute dice.
	UpdateCharacterAttributes(ctx context.Context, id string, attributes *models.Attributes)

	// RemoveCharacter removes a character together with its modules.
	RemoveCharacter(ctx context.Context, id string)

	// AddCharacterModule appends a module to a character's sheet and returns
	// its id, or "" when the character does not exist.
	AddCharacterModule(ctx context.Context, characterID string, input ModuleInput) string

	// UpdateCharacterModule applies a partial update to a module.
	UpdateCharacterModule(ctx context.Context, characterID, moduleID string, patch ModulePatch)

	// ReorderCharacterModule swaps a module with its neighbour (up or down).
	ReorderCharacterModule(ctx context.Context, characterID, moduleID string, up bool)

	// MoveCharacterModuleColumn shifts a module one column (left or right).
	MoveCharacterModuleColumn(ctx context.Context, characterID, moduleID string, left bool)

	// CycleCharacterModuleSpan advances a module's column span 1→2→3→1.
	CycleCharacterModuleSpan(ctx context.Context, characterID, moduleID string)

	// CycleCharacterModuleRowSpan advances a module's row span 1→2→3→1.
	CycleCharacterModuleRowSpan(ctx context.Context, characterID, moduleID string)

	// RemoveCharacterModule removes a module from a character's sheet.
	RemoveCharacterModule(ctx context.Context, characterID, moduleID string)

	// AddSession schedules a session and returns its id.
	AddSession(ctx context.Context, input SessionInput) string

	// RemoveSession removes a session.
	RemoveSession(ctx context.Context, id string)

	// SetCampaignNotes replaces the campaign notes.
	SetCampaignNotes(ctx context.Context, notes string)

	// ResetToSeed replaces the document with a fresh seed.
	ResetToSeed(ctx context.Context)
}

// CharacterInput contains parameters for creating or replacing a character.
type CharacterInput struct {
	ID         string // empty creates a new character
	Name       string
	System     string
	PlayerName string
	Class      *string // nil keeps the existing value
	Race       *string
	Level      *models.Level // nil keeps the existing level, or the system default
}

// CharacterPatch contains the character fields to change. Nil fields are kept.
type CharacterPatch struct {
	Name       *string
	System     *string
	PlayerName *string
	Class      *string
	Race       *string
	Level      *models.Level
	AvatarURL  *string
	Background *string
}

// ModuleInput contains parameters for adding a module. Nil placement fields
// take the type's default placement.
type ModuleInput struct {
	Type    models.ModuleType
	System  models.ModuleSystem
	Title   string
	Column  *int
	Span    *int
	RowSpan *int
}

// ModulePatch contains the module fields to change. Nil fields are kept; a
// Data payload whose variant does not match the module type is ignored.
type ModulePatch struct {
	Title   *string
	Notes   *string
	System  *models.ModuleSystem
	Column  *int
	Span    *int
	RowSpan *int
	Data    models.ModuleData
}

// SessionInput contains parameters for scheduling a session.
type SessionInput struct {
	Title          string
	ScheduledAtISO string
	Address        string
	CampaignName   string
	Notes          string
}
