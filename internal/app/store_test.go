package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/example/rpgdash/internal/core/schema"
	"github.com/example/rpgdash/internal/models"
	"github.com/example/rpgdash/internal/ports/primary"
	"github.com/example/rpgdash/internal/ports/secondary"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testDebounce = 40 * time.Millisecond

var equateEmpty = cmpopts.EquateEmpty()

var signedIn = secondary.AuthState{
	User:       &secondary.Identity{UserID: "user-1", Email: "gm@example.com"},
	Configured: true,
}

func newTestStore(t *testing.T, slots *mockSlotStore, remote secondary.RemoteStore) *DataStoreImpl {
	t.Helper()
	if slots == nil {
		slots = newMockSlotStore()
	}
	store := NewDataStore(context.Background(), NewLocalPersistence(slots, "", zap.NewNop()), remote, zap.NewNop(), StoreOptions{
		Debounce:      testDebounce,
		RemoteTimeout: time.Second,
	})
	t.Cleanup(store.Close)
	return store
}

// newMirroredStore returns a store that has reconciled user-1 against an
// empty remote, with the initial push already recorded.
func newMirroredStore(t *testing.T) (*DataStoreImpl, *mockRemoteStore) {
	t.Helper()
	remote := newMockRemoteStore()
	store := newTestStore(t, nil, remote)
	store.HandleAuthChange(signedIn)
	if err := store.AwaitReconciled(context.Background()); err != nil {
		t.Fatalf("AwaitReconciled: %v", err)
	}
	if got := store.Status().State; got != primary.SyncMirrored {
		t.Fatalf("State = %s, want mirrored", got)
	}
	return store, remote
}

func decodeWrite(t *testing.T, w remoteWrite) *models.Document {
	t.Helper()
	doc, ok := schema.Decode(w.Doc)
	if !ok {
		t.Fatalf("remote write is not a recognised document: %s", w.Doc)
	}
	return doc
}

// ============================================================================
// Construction and local persistence
// ============================================================================

func TestNewDataStore_SeedsEmptySlot(t *testing.T) {
	store := newTestStore(t, nil, nil)

	doc := store.GetState()
	if len(doc.Characters) != 2 || len(doc.Sessions) != 1 {
		t.Errorf("expected seed document, got %d characters and %d sessions", len(doc.Characters), len(doc.Sessions))
	}
	if got := store.Status().State; got != primary.SyncLocalOnly {
		t.Errorf("State = %s, want local-only", got)
	}
}

func TestNewDataStore_LoadsStoredDocument(t *testing.T) {
	slots := newMockSlotStore()
	slots.values[DefaultDataKey] = `{"version": 1, "campaign": {"id": "c", "name": "Westmarch"}, "characters": [], "sessions": [], "notes": {"campaign": "n"}}`

	store := newTestStore(t, slots, nil)

	if got := store.GetState().Campaign.Name; got != "Westmarch" {
		t.Errorf("Campaign.Name = %q, want Westmarch", got)
	}
}

func TestActions_PersistBeforeReturning(t *testing.T) {
	slots := newMockSlotStore()
	store := newTestStore(t, slots, nil)
	ctx := context.Background()

	store.SetCampaignName(ctx, "Rise of the Runelords")

	reloaded := NewLocalPersistence(slots, "", nil).Load(ctx)
	if diff := cmp.Diff(store.GetState(), reloaded, equateEmpty); diff != "" {
		t.Errorf("local slot differs from memory (-memory +slot):\n%s", diff)
	}
}

func TestActions_SaveFailureKeepsMemory(t *testing.T) {
	slots := newMockSlotStore()
	store := newTestStore(t, slots, nil)
	slots.setErr = fmt.Errorf("quota exceeded")

	store.SetCampaignNotes(context.Background(), "kept in memory")

	if got := store.GetState().Notes.Campaign; got != "kept in memory" {
		t.Errorf("Notes = %q, want in-memory update to survive a failed save", got)
	}
}

func TestActions_UnknownIDsAreNoOps(t *testing.T) {
	slots := newMockSlotStore()
	store := newTestStore(t, slots, nil)
	ctx := context.Background()
	before := store.GetState()
	writes := slots.setCount()

	store.RemoveCharacter(ctx, "missing")
	store.UpdateCharacterStats(ctx, "missing", models.DefaultStats())
	store.CycleCharacterModuleSpan(ctx, "missing", "missing")
	store.RemoveSession(ctx, "missing")
	if id := store.AddCharacterModule(ctx, "missing", primary.ModuleInput{Type: models.ModuleSkills}); id != "" {
		t.Errorf("AddCharacterModule on unknown character returned %q", id)
	}

	if store.GetState() != before {
		t.Error("expected the document to be left untouched")
	}
	if slots.setCount() != writes {
		t.Errorf("expected no writes, got %d", slots.setCount()-writes)
	}
}

func TestActions_DoNotMutatePreviousDocument(t *testing.T) {
	store := newTestStore(t, nil, nil)
	ctx := context.Background()
	before := store.GetState()
	snapshot := schema.Normalize(before)

	charID := before.Characters[0].ID
	store.SetCampaignName(ctx, "Changed")
	store.UpdateCharacter(ctx, charID, primary.CharacterPatch{Name: strPtr("Renamed")})
	store.CycleCharacterModuleSpan(ctx, charID, before.Characters[0].Modules[0].ID)
	store.RemoveSession(ctx, before.Sessions[0].ID)

	if diff := cmp.Diff(snapshot, before, equateEmpty); diff != "" {
		t.Errorf("previous document was mutated (-want +got):\n%s", diff)
	}
}

func TestSubscribe(t *testing.T) {
	store := newTestStore(t, nil, nil)
	ctx := context.Background()

	var seen []string
	unsubscribe := store.Subscribe(func(d *models.Document) {
		seen = append(seen, d.Campaign.Name)
	})
	store.SetCampaignName(ctx, "one")
	store.SetCampaignName(ctx, "two")
	unsubscribe()
	store.SetCampaignName(ctx, "three")

	if diff := cmp.Diff([]string{"one", "two"}, seen); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

// ============================================================================
// Characters and sessions
// ============================================================================

func TestUpsertCharacter_DefaultLevel(t *testing.T) {
	tests := []struct {
		system string
		want   string
	}{
		{system: "savage_pathfinder", want: "Novato"},
		{system: "generic", want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.system, func(t *testing.T) {
			store := newTestStore(t, nil, nil)

			id := store.UpsertCharacter(context.Background(), primary.CharacterInput{
				Name: "  Kara  ", System: tt.system, PlayerName: " Ana ",
			})

			doc := store.GetState()
			c := doc.Characters[0]
			if c.ID != id {
				t.Fatalf("expected new character to be prepended, first is %s", c.ID)
			}
			if c.Level == nil || c.Level.String() != tt.want {
				t.Errorf("Level = %v, want %s", c.Level, tt.want)
			}
			if tt.system == "savage_pathfinder" && !c.Level.IsRank() {
				t.Error("expected a rank level, not a number")
			}
			if tt.system == "generic" && c.Level.IsRank() {
				t.Error("expected a numeric level, not a rank")
			}
			if c.Name != "Kara" || c.PlayerName != "Ana" {
				t.Errorf("names not trimmed: %q / %q", c.Name, c.PlayerName)
			}
			if diff := cmp.Diff(models.DefaultStats(), c.Stats); diff != "" {
				t.Errorf("stats mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(models.DefaultAttributes(), c.Attributes); diff != "" {
				t.Errorf("attributes mismatch (-want +got):\n%s", diff)
			}
			if c.Modules == nil || len(c.Modules) != 0 {
				t.Errorf("Modules = %v, want empty", c.Modules)
			}
		})
	}
}

func TestUpsertCharacter_ExistingKeepsSheet(t *testing.T) {
	store := newTestStore(t, nil, nil)
	ctx := context.Background()
	original := store.GetState().Characters[1]

	id := store.UpsertCharacter(ctx, primary.CharacterInput{
		ID: original.ID, Name: "Lys Renamed", System: original.System, PlayerName: "Bia",
		Race: strPtr("Elfa"),
	})

	doc := store.GetState()
	if id != original.ID {
		t.Errorf("id = %s, want %s", id, original.ID)
	}
	if len(doc.Characters) != 2 {
		t.Fatalf("characters = %d, want 2 (update, not insert)", len(doc.Characters))
	}
	got := doc.Characters[1]
	if got.Name != "Lys Renamed" || got.Race != "Elfa" || got.PlayerName != "Bia" {
		t.Errorf("identity fields not updated: %+v", got)
	}
	if got.CreatedAtISO != original.CreatedAtISO {
		t.Error("expected creation time to be kept")
	}
	if diff := cmp.Diff(original.Modules, got.Modules); diff != "" {
		t.Errorf("modules changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(original.Level, got.Level); diff != "" {
		t.Errorf("level changed (-want +got):\n%s", diff)
	}
}

func TestUpdateCharacter(t *testing.T) {
	store := newTestStore(t, nil, nil)
	ctx := context.Background()
	id := store.GetState().Characters[0].ID

	store.UpdateCharacter(ctx, id, primary.CharacterPatch{
		Class:      strPtr("Guerreiro"),
		Level:      models.RankLevel("Veterano"),
		Background: strPtr("Órfão de Sandpoint"),
	})
	stats := &models.Stats{CA: 16, HP: models.HitPoints{Current: 4, Max: 12}, Initiative: 2}
	store.UpdateCharacterStats(ctx, id, stats)
	store.UpdateCharacterAttributes(ctx, id, &models.Attributes{Agility: 8, Smarts: 4, Spirit: 6, Strength: 10, Vigor: 8})

	c, _ := store.GetState().FindCharacter(id)
	if c.Class != "Guerreiro" || c.Level.Rank != "Veterano" || c.Background == "" {
		t.Errorf("patch not applied: %+v", c)
	}
	if c.Name != "Artheon" {
		t.Errorf("Name = %q, want untouched", c.Name)
	}
	if c.Stats.CA != 16 || c.Attributes.Strength != 10 {
		t.Errorf("stats/attributes not replaced: %+v %+v", c.Stats, c.Attributes)
	}
}

func TestRemoveCharacterRemovesModules(t *testing.T) {
	store := newTestStore(t, nil, nil)
	doc := store.GetState()
	removed := doc.Characters[0]

	store.RemoveCharacter(context.Background(), removed.ID)

	after := store.GetState()
	if len(after.Characters) != 1 {
		t.Fatalf("characters = %d, want 1", len(after.Characters))
	}
	for _, m := range removed.Modules {
		if _, ok := after.Characters[0].FindModule(m.ID); ok {
			t.Errorf("module %s survived its character", m.ID)
		}
	}
}

func TestSessions(t *testing.T) {
	store := newTestStore(t, nil, nil)
	ctx := context.Background()
	seedSession := store.GetState().Sessions[0].ID

	id := store.AddSession(ctx, primary.SessionInput{
		Title: "  Sessão 2 ", ScheduledAtISO: "2026-11-01T20:00:00.000Z", Address: "Casa do Rui",
	})

	sessions := store.GetState().Sessions
	if len(sessions) != 2 || sessions[0].ID != id {
		t.Fatalf("expected new session first, got %+v", sessions)
	}
	if sessions[0].Title != "Sessão 2" || sessions[0].Address != "Casa do Rui" || sessions[0].CreatedAtISO == "" {
		t.Errorf("session fields not set: %+v", sessions[0])
	}

	store.RemoveSession(ctx, seedSession)
	sessions = store.GetState().Sessions
	if len(sessions) != 1 || sessions[0].ID != id {
		t.Errorf("expected only the new session to remain, got %+v", sessions)
	}
}

func TestResetToSeed(t *testing.T) {
	store := newTestStore(t, nil, nil)
	ctx := context.Background()
	store.SetCampaignName(ctx, "Changed")
	store.RemoveCharacter(ctx, store.GetState().Characters[0].ID)

	store.ResetToSeed(ctx)

	doc := store.GetState()
	if doc.Campaign.Name != schema.SeedCampaignName || len(doc.Characters) != 2 {
		t.Errorf("expected a fresh seed, got %q with %d characters", doc.Campaign.Name, len(doc.Characters))
	}
}

// ============================================================================
// Module layout actions
// ============================================================================

func TestModuleActions(t *testing.T) {
	store := newTestStore(t, nil, nil)
	ctx := context.Background()
	charID := store.GetState().Characters[0].ID

	edgesID := store.AddCharacterModule(ctx, charID, primary.ModuleInput{
		Type: models.ModuleEdgesAdvancements, System: models.SystemSavagePathfinder,
	})
	skillsID := store.AddCharacterModule(ctx, charID, primary.ModuleInput{
		Type: models.ModuleSkills, System: models.SystemSavagePathfinder, Title: "Perícias",
		Column: intPtr(7), Span: intPtr(2),
	})
	if edgesID == "" || skillsID == "" {
		t.Fatal("expected module ids")
	}

	module := func(id string) models.Module {
		t.Helper()
		c, _ := store.GetState().FindCharacter(charID)
		m, ok := c.FindModule(id)
		if !ok {
			t.Fatalf("module %s not found", id)
		}
		return *m
	}

	if m := module(edgesID); m.Column != 2 || m.Span != 1 || m.RowSpan != 2 {
		t.Errorf("edges placement = %d/%d/%d, want 2/1/2", m.Column, m.Span, m.RowSpan)
	}
	if m := module(skillsID); m.Column != 2 || m.Span != 2 || m.RowSpan != 1 {
		t.Errorf("skills placement = %d/%d/%d, want clamped 2/2/1", m.Column, m.Span, m.RowSpan)
	}

	for i := 0; i < 5; i++ {
		store.MoveCharacterModuleColumn(ctx, charID, skillsID, true)
	}
	if m := module(skillsID); m.Column != 0 {
		t.Errorf("Column = %d after moving left 5 times, want 0", m.Column)
	}

	store.CycleCharacterModuleSpan(ctx, charID, skillsID)
	store.CycleCharacterModuleRowSpan(ctx, charID, skillsID)
	if m := module(skillsID); m.Span != 3 || m.RowSpan != 2 {
		t.Errorf("span/rowSpan = %d/%d, want 3/2", m.Span, m.RowSpan)
	}

	store.ReorderCharacterModule(ctx, charID, skillsID, true)
	c, _ := store.GetState().FindCharacter(charID)
	if c.Modules[2].ID != skillsID || c.Modules[3].ID != edgesID {
		t.Errorf("expected skills to move above edges")
	}

	data := models.SkillsData{Skills: []models.Skill{{ID: "s1", Name: "Luta", Die: 8}}}
	store.UpdateCharacterModule(ctx, charID, skillsID, primary.ModulePatch{
		Notes: strPtr("treino"),
		Data:  data,
	})
	store.UpdateCharacterModule(ctx, charID, skillsID, primary.ModulePatch{
		Data: models.TextData{Text: "wrong variant"},
	})
	m := module(skillsID)
	if m.Notes != "treino" {
		t.Errorf("Notes = %q, want treino", m.Notes)
	}
	if diff := cmp.Diff(models.ModuleData(data), m.Data); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}

	store.RemoveCharacterModule(ctx, charID, edgesID)
	c, _ = store.GetState().FindCharacter(charID)
	if _, ok := c.FindModule(edgesID); ok || len(c.Modules) != 3 {
		t.Errorf("expected edges module removed, %d modules remain", len(c.Modules))
	}
}

func TestAddCharacterModule_RejectsUnknownType(t *testing.T) {
	store := newTestStore(t, nil, nil)
	charID := store.GetState().Characters[0].ID

	if id := store.AddCharacterModule(context.Background(), charID, primary.ModuleInput{Type: "laser_cannon"}); id != "" {
		t.Errorf("expected unknown module type to be ignored, got %q", id)
	}
}

// ============================================================================
// Reconciliation
// ============================================================================

func TestReconcile_EmptyRemotePushesLocal(t *testing.T) {
	store, remote := newMirroredStore(t)

	writes := remote.writes()
	if len(writes) != 1 {
		t.Fatalf("upserts = %d, want 1 initial push", len(writes))
	}
	if writes[0].UserID != "user-1" {
		t.Errorf("UserID = %s, want user-1", writes[0].UserID)
	}
	if diff := cmp.Diff(store.GetState(), decodeWrite(t, writes[0]), equateEmpty); diff != "" {
		t.Errorf("pushed document differs from local (-local +pushed):\n%s", diff)
	}
}

func TestReconcile_RemoteWins(t *testing.T) {
	slots := newMockSlotStore()
	remote := newMockRemoteStore()
	remote.docs["user-1"] = []byte(`{"version": 1, "campaign": {"id": "remote", "name": "From Cloud"}, "characters": [], "sessions": [], "notes": {"campaign": ""}}`)
	store := newTestStore(t, slots, remote)

	var notified *models.Document
	store.Subscribe(func(d *models.Document) { notified = d })
	store.HandleAuthChange(signedIn)
	if err := store.AwaitReconciled(context.Background()); err != nil {
		t.Fatalf("AwaitReconciled: %v", err)
	}

	doc := store.GetState()
	if doc.Campaign.Name != "From Cloud" || len(doc.Characters) != 0 {
		t.Errorf("expected remote document to replace local, got %q", doc.Campaign.Name)
	}
	if notified != doc {
		t.Error("expected subscribers to receive the pulled document")
	}
	if reloaded := NewLocalPersistence(slots, "", nil).Load(context.Background()); reloaded.Campaign.Name != "From Cloud" {
		t.Errorf("pulled document not saved locally, slot has %q", reloaded.Campaign.Name)
	}
	if len(remote.writes()) != 0 {
		t.Errorf("expected no upsert when the remote copy exists, got %d", len(remote.writes()))
	}
	if got := store.Status(); got.State != primary.SyncMirrored || got.UserID != "user-1" {
		t.Errorf("Status = %+v, want mirrored for user-1", got)
	}
}

func TestReconcile_UnrecognisedRemoteVersionUsesSeed(t *testing.T) {
	for name, raw := range map[string]string{
		"missing version": `{"campaign": {"name": "Ancient"}}`,
		"future version":  `{"version": 2, "campaign": {"name": "Future"}}`,
		"not an object":   `"garbage"`,
	} {
		t.Run(name, func(t *testing.T) {
			remote := newMockRemoteStore()
			remote.docs["user-1"] = []byte(raw)
			store := newTestStore(t, nil, remote)
			store.SetCampaignName(context.Background(), "Local edit")

			store.HandleAuthChange(signedIn)
			if err := store.AwaitReconciled(context.Background()); err != nil {
				t.Fatalf("AwaitReconciled: %v", err)
			}

			doc := store.GetState()
			if doc.Campaign.Name != schema.SeedCampaignName || len(doc.Characters) != 2 {
				t.Errorf("expected seed document, got %q", doc.Campaign.Name)
			}
			if store.Status().State != primary.SyncMirrored {
				t.Errorf("State = %s, want mirrored", store.Status().State)
			}
		})
	}
}

func TestReconcile_FailureFallsBackToLocalOnly(t *testing.T) {
	remote := newMockRemoteStore()
	remote.selectErr = errRemoteDown
	store := newTestStore(t, nil, remote)

	store.HandleAuthChange(signedIn)
	if err := store.AwaitReconciled(context.Background()); err != nil {
		t.Fatalf("AwaitReconciled: %v", err)
	}

	status := store.Status()
	if status.State != primary.SyncLocalOnly {
		t.Errorf("State = %s, want local-only", status.State)
	}
	if status.Err == "" {
		t.Error("expected the remote error to be exposed")
	}

	store.SetCampaignName(context.Background(), "still editable")
	time.Sleep(3 * testDebounce)
	if got := store.GetState().Campaign.Name; got != "still editable" {
		t.Errorf("Campaign.Name = %q, want local edit applied", got)
	}
	if len(remote.writes()) != 0 {
		t.Errorf("expected no upsert while local-only, got %d", len(remote.writes()))
	}
}

func TestReconcile_InitialPushFailure(t *testing.T) {
	remote := newMockRemoteStore()
	remote.upsertErr = errRemoteDown
	store := newTestStore(t, nil, remote)

	store.HandleAuthChange(signedIn)
	if err := store.AwaitReconciled(context.Background()); err != nil {
		t.Fatalf("AwaitReconciled: %v", err)
	}

	if got := store.Status(); got.State != primary.SyncLocalOnly || got.Err == "" {
		t.Errorf("Status = %+v, want local-only with error", got)
	}
}

func TestReconcile_RemotePullDiscardsEditsWhileReconciling(t *testing.T) {
	remote := newMockRemoteStore()
	remote.docs["user-1"] = []byte(`{"version": 1, "campaign": {"name": "Remote"}}`)
	remote.selectGate = make(chan struct{})
	store := newTestStore(t, nil, remote)

	store.HandleAuthChange(signedIn)
	waitFor(t, "remote select", func() bool { return remote.selectCount() == 1 })
	if got := store.Status().State; got != primary.SyncReconciling {
		t.Fatalf("State = %s, want reconciling", got)
	}

	store.SetCampaignNotes(context.Background(), "typed during reconcile")
	close(remote.selectGate)
	if err := store.AwaitReconciled(context.Background()); err != nil {
		t.Fatalf("AwaitReconciled: %v", err)
	}
	time.Sleep(3 * testDebounce)

	if len(remote.writes()) != 0 {
		t.Errorf("expected no remote write for edits made while reconciling, got %d", len(remote.writes()))
	}
	if got := store.GetState().Campaign.Name; got != "Remote" {
		t.Errorf("Campaign.Name = %q, want remote document to win", got)
	}
}

func TestHandleAuthChange_Transitions(t *testing.T) {
	remote := newMockRemoteStore()
	store := newTestStore(t, nil, remote)

	store.HandleAuthChange(secondary.AuthState{Loading: true, Configured: true})
	if remote.selectCount() != 0 || store.Status().State != primary.SyncLocalOnly {
		t.Error("loading state must be ignored")
	}

	store.HandleAuthChange(secondary.AuthState{User: signedIn.User, Configured: false})
	if remote.selectCount() != 0 {
		t.Error("unconfigured deployments must not touch the remote")
	}

	store.HandleAuthChange(signedIn)
	store.HandleAuthChange(signedIn)
	if err := store.AwaitReconciled(context.Background()); err != nil {
		t.Fatalf("AwaitReconciled: %v", err)
	}
	if remote.selectCount() != 1 {
		t.Errorf("selects = %d, want exactly one per identity transition", remote.selectCount())
	}

	store.HandleAuthChange(secondary.AuthState{Configured: true})
	if got := store.Status(); got.State != primary.SyncLocalOnly || got.UserID != "" {
		t.Errorf("Status = %+v, want local-only after sign-out", got)
	}
	writes := len(remote.writes())
	store.SetCampaignName(context.Background(), "offline")
	time.Sleep(3 * testDebounce)
	if len(remote.writes()) != writes {
		t.Error("expected no mirroring after sign-out")
	}
}

func TestHandleAuthChange_NoRemoteConfigured(t *testing.T) {
	store := newTestStore(t, nil, nil)

	store.HandleAuthChange(signedIn)

	if got := store.Status().State; got != primary.SyncLocalOnly {
		t.Errorf("State = %s, want local-only without a remote store", got)
	}
}

func TestAttach(t *testing.T) {
	remote := newMockRemoteStore()
	auth := newMockAuthProvider(secondary.AuthState{Loading: true, Configured: true})
	store := newTestStore(t, nil, remote)

	store.Attach(context.Background(), auth)
	if remote.selectCount() != 0 {
		t.Fatal("expected no reconciliation while auth is loading")
	}

	auth.set(signedIn)
	if err := store.AwaitReconciled(context.Background()); err != nil {
		t.Fatalf("AwaitReconciled: %v", err)
	}
	if got := store.Status().State; got != primary.SyncMirrored {
		t.Errorf("State = %s, want mirrored", got)
	}

	store.Close()
	if auth.subscriberCount() != 0 {
		t.Errorf("expected Close to detach from auth, %d subscribers left", auth.subscriberCount())
	}
}

// ============================================================================
// Debounced mirroring
// ============================================================================

func TestMirror_RapidEditsCoalesce(t *testing.T) {
	store, remote := newMirroredStore(t)
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		store.SetCampaignNotes(ctx, fmt.Sprintf("edit %d", i))
	}

	waitFor(t, "debounced upsert", func() bool { return len(remote.writes()) == 2 })
	time.Sleep(3 * testDebounce)

	writes := remote.writes()
	if len(writes) != 2 {
		t.Fatalf("upserts = %d, want the initial push plus exactly one debounced write", len(writes))
	}
	if got := decodeWrite(t, writes[1]).Notes.Campaign; got != "edit 10" {
		t.Errorf("mirrored notes = %q, want the final edit", got)
	}
}

func TestMirror_ResetSchedulesWrite(t *testing.T) {
	store, remote := newMirroredStore(t)
	store.SetCampaignName(context.Background(), "Changed")
	store.ResetToSeed(context.Background())

	waitFor(t, "debounced upsert", func() bool { return len(remote.writes()) == 2 })
	if got := decodeWrite(t, remote.writes()[1]).Campaign.Name; got != schema.SeedCampaignName {
		t.Errorf("mirrored name = %q, want seed name", got)
	}
}

func TestMirror_CloseCancelsPendingWrite(t *testing.T) {
	store, remote := newMirroredStore(t)

	store.SetCampaignName(context.Background(), "never mirrored")
	store.Close()
	time.Sleep(3 * testDebounce)

	if got := len(remote.writes()); got != 1 {
		t.Errorf("upserts = %d, want only the initial push", got)
	}
}

func TestMirror_FlushWritesImmediately(t *testing.T) {
	remote := newMockRemoteStore()
	store := NewDataStore(context.Background(), NewLocalPersistence(newMockSlotStore(), "", nil), remote, zap.NewNop(), StoreOptions{
		Debounce: time.Hour,
	})
	defer store.Close()
	store.HandleAuthChange(signedIn)
	if err := store.AwaitReconciled(context.Background()); err != nil {
		t.Fatalf("AwaitReconciled: %v", err)
	}

	store.SetCampaignName(context.Background(), "flushed")
	if err := store.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	writes := remote.writes()
	if len(writes) != 2 {
		t.Fatalf("upserts = %d, want 2", len(writes))
	}
	if got := decodeWrite(t, writes[1]).Campaign.Name; got != "flushed" {
		t.Errorf("mirrored name = %q, want flushed", got)
	}
	if err := store.Flush(context.Background()); err != nil {
		t.Errorf("Flush with nothing pending: %v", err)
	}
	if len(remote.writes()) != 2 {
		t.Error("expected Flush with nothing pending to be a no-op")
	}
}

func TestMirror_Push(t *testing.T) {
	local := newTestStore(t, nil, newMockRemoteStore())
	if err := local.Push(context.Background()); !errors.Is(err, primary.ErrNotMirrored) {
		t.Errorf("Push while local-only = %v, want ErrNotMirrored", err)
	}

	store, remote := newMirroredStore(t)
	store.SetCampaignName(context.Background(), "pushed")
	if err := store.Push(context.Background()); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := store.Push(context.Background()); err != nil {
		t.Fatalf("second Push: %v", err)
	}

	writes := remote.writes()
	if len(writes) != 3 {
		t.Fatalf("upserts = %d, want initial push plus two explicit pushes", len(writes))
	}
	if got := decodeWrite(t, writes[2]).Campaign.Name; got != "pushed" {
		t.Errorf("mirrored name = %q, want pushed", got)
	}
	time.Sleep(3 * testDebounce)
	if got := len(remote.writes()); got != 3 {
		t.Errorf("upserts = %d after debounce, want the pending write superseded", got)
	}
}

func TestSignOut_SendsPendingWriteForPreviousUser(t *testing.T) {
	store, remote := newMirroredStore(t)

	store.SetCampaignName(context.Background(), "before sign-out")
	store.HandleAuthChange(secondary.AuthState{Configured: true})
	store.SetCampaignName(context.Background(), "after sign-out")

	waitFor(t, "pending write", func() bool { return len(remote.writes()) == 2 })
	time.Sleep(3 * testDebounce)

	writes := remote.writes()
	if len(writes) != 2 {
		t.Fatalf("upserts = %d, want initial push plus the pending write", len(writes))
	}
	if writes[1].UserID != "user-1" {
		t.Errorf("pending write went to %q, want user-1", writes[1].UserID)
	}
	if got := decodeWrite(t, writes[1]).Campaign.Name; got != "before sign-out" {
		t.Errorf("mirrored name = %q, want the name as of sign-out", got)
	}
}

func TestMirror_WriteFailureIsAdvisory(t *testing.T) {
	store, remote := newMirroredStore(t)
	remote.mu.Lock()
	remote.upsertErr = errRemoteDown
	remote.mu.Unlock()

	store.SetCampaignName(context.Background(), "edited offline")
	waitFor(t, "sync error", func() bool { return store.Status().Err != "" })

	if got := store.GetState().Campaign.Name; got != "edited offline" {
		t.Errorf("Campaign.Name = %q, want local edit kept", got)
	}
	if got := store.Status().State; got != primary.SyncMirrored {
		t.Errorf("State = %s, want mirrored", got)
	}
}

func TestRemoteDocumentMirrorsLocalSchema(t *testing.T) {
	_, remote := newMirroredStore(t)
	var raw map[string]any
	if err := json.Unmarshal(remote.writes()[0].Doc, &raw); err != nil {
		t.Fatalf("remote document is not JSON: %v", err)
	}
	for _, key := range []string{"version", "campaign", "characters", "sessions", "notes"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("remote document missing %q", key)
		}
	}
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

// ============================================================================
// Payload normalization and remote write ordering
// ============================================================================

func TestUpdateCharacterModule_NormalizesPayload(t *testing.T) {
	ctx := context.Background()
	slots := newMockSlotStore()
	store := newTestStore(t, slots, nil)
	charID := store.GetState().Characters[0].ID
	modID := store.AddCharacterModule(ctx, charID, primary.ModuleInput{Type: models.ModuleSkills})

	data, err := models.DecodeModuleData(models.ModuleSkills, json.RawMessage(`{"skills":[{"name":"Luta","die":7},{"name":"Tiro","die":7}]}`))
	if err != nil {
		t.Fatalf("DecodeModuleData: %v", err)
	}
	store.UpdateCharacterModule(ctx, charID, modID, primary.ModulePatch{Data: data})

	c, _ := store.GetState().FindCharacter(charID)
	m, ok := c.FindModule(modID)
	if !ok {
		t.Fatal("module missing after update")
	}
	skills := m.Data.(models.SkillsData).Skills
	if len(skills) != 2 {
		t.Fatalf("skills = %d, want 2", len(skills))
	}
	if skills[0].ID == "" || skills[1].ID == "" || skills[0].ID == skills[1].ID {
		t.Errorf("skill ids = %q, %q, want distinct generated ids", skills[0].ID, skills[1].ID)
	}
	for _, s := range skills {
		if s.Die != 4 {
			t.Errorf("%s die = %d, want invalid die replaced by 4", s.Name, s.Die)
		}
	}

	reloaded := newTestStore(t, slots, nil)
	if diff := cmp.Diff(store.GetState(), reloaded.GetState(), equateEmpty); diff != "" {
		t.Errorf("in-memory document differs from the reloaded one (-memory +reloaded):\n%s", diff)
	}
}

func TestReconcile_EditsDuringInitialPushAreMirrored(t *testing.T) {
	remote := newMockRemoteStore()
	gate := make(chan struct{})
	remote.upsertGate = gate
	store := newTestStore(t, nil, remote)

	store.HandleAuthChange(signedIn)
	waitFor(t, "initial push", func() bool { return remote.upsertCount() == 1 })
	store.SetCampaignNotes(context.Background(), "typed during initial push")
	close(gate)

	if err := store.AwaitReconciled(context.Background()); err != nil {
		t.Fatalf("AwaitReconciled: %v", err)
	}
	waitFor(t, "follow-up write", func() bool { return len(remote.writes()) == 2 })

	writes := remote.writes()
	if got := decodeWrite(t, writes[1]).Notes.Campaign; got != "typed during initial push" {
		t.Errorf("remote notes = %q, want the edit made during the push", got)
	}
}

func TestReconcile_NoFollowUpWriteWithoutEdits(t *testing.T) {
	_, remote := newMirroredStore(t)
	time.Sleep(3 * testDebounce)
	if got := len(remote.writes()); got != 1 {
		t.Errorf("upserts = %d, want only the initial push", got)
	}
}

func TestSwitchIdentity_SendsWriteWhoseTimerAlreadyFired(t *testing.T) {
	store, remote := newMirroredStore(t)
	store.SetCampaignName(context.Background(), "before sign-out")

	// Hold the lock past the debounce so the timer fires and its callback
	// blocks waiting for it.
	store.mu.Lock()
	time.Sleep(3 * testDebounce)
	store.switchIdentityLocked("")
	store.mu.Unlock()

	waitFor(t, "pending write", func() bool { return len(remote.writes()) == 2 })
	time.Sleep(3 * testDebounce)

	writes := remote.writes()
	if len(writes) != 2 {
		t.Fatalf("upserts = %d, want initial push plus the pending write", len(writes))
	}
	if writes[1].UserID != "user-1" {
		t.Errorf("pending write went to %q, want user-1", writes[1].UserID)
	}
	if got := decodeWrite(t, writes[1]).Campaign.Name; got != "before sign-out" {
		t.Errorf("mirrored name = %q, want before sign-out", got)
	}
}

func TestUpsert_SkipsOlderSnapshot(t *testing.T) {
	store, remote := newMirroredStore(t)
	ctx := context.Background()

	newer := schema.CreateSeedData()
	newer.Campaign.Name = "newer"
	older := schema.CreateSeedData()
	older.Campaign.Name = "older"

	if err := store.upsert(ctx, "user-1", newer, 100); err != nil {
		t.Fatalf("upsert newer: %v", err)
	}
	if err := store.upsert(ctx, "user-1", older, 99); err != nil {
		t.Fatalf("upsert older: %v", err)
	}

	writes := remote.writes()
	if len(writes) != 2 {
		t.Fatalf("upserts = %d, want the older snapshot skipped", len(writes))
	}
	if got := decodeWrite(t, writes[1]).Campaign.Name; got != "newer" {
		t.Errorf("remote name = %q, want newer", got)
	}

	// The same snapshot may be written again (an explicit push).
	if err := store.upsert(ctx, "user-1", newer, 100); err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if got := len(remote.writes()); got != 3 {
		t.Errorf("upserts = %d, want a repeated snapshot written", got)
	}
}
