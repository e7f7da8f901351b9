package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/rpgdash/internal/core/layout"
	"github.com/example/rpgdash/internal/core/ruleset"
	"github.com/example/rpgdash/internal/core/schema"
	"github.com/example/rpgdash/internal/models"
	"github.com/example/rpgdash/internal/ports/primary"
	"github.com/example/rpgdash/internal/ports/secondary"
)

// Store defaults.
const (
	DefaultDebounce      = 600 * time.Millisecond
	DefaultRemoteTimeout = 10 * time.Second
)

// StoreOptions tunes a DataStoreImpl. Zero values take the defaults.
type StoreOptions struct {
	Debounce      time.Duration
	RemoteTimeout time.Duration
	Now           func() time.Time
	NewID         func() string
}

// Ensure DataStoreImpl implements the interface
var _ primary.DataStore = (*DataStoreImpl)(nil)

// DataStoreImpl is the reconciling store: one in-memory document, persisted
// locally on every action and mirrored to the remote store once an identity
// has been reconciled.
type DataStoreImpl struct {
	local         *LocalPersistence
	remote        secondary.RemoteStore
	logger        *zap.Logger
	debounce      time.Duration
	remoteTimeout time.Duration
	now           func() time.Time
	newID         func() string

	mu          sync.Mutex
	doc         *models.Document
	docSeq      uint64 // bumped whenever doc is replaced
	subscribers map[int]func(*models.Document)
	nextSubID   int
	state       primary.SyncState
	syncErr     string
	userID      string
	closed      bool

	// reconciliation
	generation      uint64
	cancelReconcile context.CancelFunc
	reconcileDone   chan struct{}

	// debounced remote write
	timer       *time.Timer
	timerSeq    uint64
	pendingUser string

	detach []func()

	upsertMu sync.Mutex
	written  map[string]uint64 // last docSeq upserted per user, guarded by upsertMu
	wg       sync.WaitGroup
}

// NewDataStore creates a store and loads the local document. remote may be
// nil when remote sync is not configured.
func NewDataStore(ctx context.Context, local *LocalPersistence, remote secondary.RemoteStore, logger *zap.Logger, opts StoreOptions) *DataStoreImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.RemoteTimeout <= 0 {
		opts.RemoteTimeout = DefaultRemoteTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = schema.NewID
	}
	return &DataStoreImpl{
		local:         local,
		remote:        remote,
		logger:        logger,
		debounce:      opts.Debounce,
		remoteTimeout: opts.RemoteTimeout,
		now:           opts.Now,
		newID:         opts.NewID,
		doc:           local.Load(ctx),
		subscribers:   make(map[int]func(*models.Document)),
		written:       make(map[string]uint64),
		state:         primary.SyncLocalOnly,
	}
}

// GetState returns the current document.
func (s *DataStoreImpl) GetState() *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Subscribe registers fn to be called after every committed change.
func (s *DataStoreImpl) Subscribe(fn func(*models.Document)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Status reports the sync state and the last remote error.
func (s *DataStoreImpl) Status() primary.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return primary.SyncStatus{State: s.state, UserID: s.userID, Err: s.syncErr}
}

// Attach subscribes the store to auth and replays its current state. The
// subscription ends when ctx is done or the store is closed.
func (s *DataStoreImpl) Attach(ctx context.Context, auth secondary.AuthProvider) {
	unsubscribe := auth.Subscribe(s.HandleAuthChange)
	stop := context.AfterFunc(ctx, unsubscribe)

	s.mu.Lock()
	s.detach = append(s.detach, func() {
		stop()
		unsubscribe()
	})
	s.mu.Unlock()

	s.HandleAuthChange(auth.State())
}

// HandleAuthChange reacts to identity transitions. Loading states are
// ignored; a signed-out or unconfigured state drops back to local-only and a
// new identity starts reconciliation in the background.
func (s *DataStoreImpl) HandleAuthChange(state secondary.AuthState) {
	if state.Loading {
		return
	}
	userID := ""
	if state.Configured && s.remote != nil {
		userID = state.UserID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.switchIdentityLocked(userID)
}

// switchIdentityLocked moves the store to userID ("" for local-only). A
// write still pending for the previous identity is sent at once with the
// document as of the switch.
func (s *DataStoreImpl) switchIdentityLocked(userID string) {
	if s.closed || userID == s.userID {
		return
	}

	if s.cancelReconcile != nil {
		s.cancelReconcile()
		s.cancelReconcile = nil
	}
	if s.timer != nil {
		// A stopped timer hands its wg slot to the goroutine. One that
		// already fired is blocked on mu and returns on the bumped timerSeq.
		if !s.timer.Stop() {
			s.wg.Add(1)
		}
		prevUser, doc, seq := s.pendingUser, s.doc, s.docSeq
		go func() {
			defer s.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), s.remoteTimeout)
			defer cancel()
			_ = s.upsert(ctx, prevUser, doc, seq)
		}()
	}
	s.timer = nil
	s.timerSeq++

	s.generation++
	s.userID = userID
	s.syncErr = ""

	if userID == "" {
		s.state = primary.SyncLocalOnly
		return
	}

	s.state = primary.SyncReconciling
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancelReconcile = cancel
	s.reconcileDone = done
	gen := s.generation

	s.wg.Add(1)
	go s.reconcile(ctx, gen, userID, done)
}

// AwaitReconciled blocks until the latest reconciliation finishes or ctx is done.
func (s *DataStoreImpl) AwaitReconciled(ctx context.Context) error {
	s.mu.Lock()
	done := s.reconcileDone
	s.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *DataStoreImpl) reconcile(ctx context.Context, gen uint64, userID string, done chan struct{}) {
	defer s.wg.Done()
	defer close(done)

	ctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	log := s.logger.With(zap.String("user_id", userID))
	log.Debug("reconciling with remote")

	raw, found, err := s.remote.Select(ctx, userID)
	if err != nil {
		s.finishReconcile(gen, 0, fmt.Errorf("failed to fetch remote document: %w", err))
		return
	}

	if found {
		doc, recognised := schema.Decode(raw)
		if !recognised {
			log.Warn("remote document is not a recognised version, using seed")
		}
		s.mu.Lock()
		if s.generation != gen || s.closed {
			s.mu.Unlock()
			return
		}
		s.doc = doc
		s.docSeq++
		s.local.Save(ctx, doc)
		s.state = primary.SyncMirrored
		subs := s.subscribersLocked()
		s.mu.Unlock()

		log.Info("pulled remote document")
		notify(subs, doc)
		return
	}

	s.mu.Lock()
	if s.generation != gen || s.closed {
		s.mu.Unlock()
		return
	}
	local, seq := schema.Normalize(s.doc), s.docSeq
	s.mu.Unlock()

	if err := s.upsert(ctx, userID, local, seq); err != nil {
		s.finishReconcile(gen, seq, fmt.Errorf("failed to push initial document: %w", err))
		return
	}
	log.Info("pushed local document as initial remote copy")
	s.finishReconcile(gen, seq, nil)
}

// finishReconcile settles the reconciliation of generation gen. pushed is the
// docSeq of the snapshot sent as the initial remote copy; edits made while it
// was in flight are scheduled for the remote.
func (s *DataStoreImpl) finishReconcile(gen, pushed uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen || s.closed {
		return
	}
	if err != nil {
		s.logger.Error("remote sync unavailable", zap.String("user_id", s.userID), zap.Error(err))
		s.state = primary.SyncLocalOnly
		s.syncErr = err.Error()
		return
	}
	s.state = primary.SyncMirrored
	if s.docSeq != pushed {
		s.scheduleLocked()
	}
}

// Flush runs a pending debounced remote write immediately and returns its error.
func (s *DataStoreImpl) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer == nil {
		s.mu.Unlock()
		return nil
	}
	if s.timer.Stop() {
		s.wg.Done()
	}
	s.timer = nil
	s.timerSeq++
	userID, doc, seq := s.pendingUser, s.doc, s.docSeq
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()
	return s.upsert(ctx, userID, doc, seq)
}

// Push writes the current document to the remote immediately, superseding
// any pending debounced write. It returns primary.ErrNotMirrored unless the
// store is mirrored.
func (s *DataStoreImpl) Push(ctx context.Context) error {
	s.mu.Lock()
	if s.closed || s.state != primary.SyncMirrored {
		s.mu.Unlock()
		return primary.ErrNotMirrored
	}
	if s.timer != nil && s.timer.Stop() {
		s.wg.Done()
	}
	s.timer = nil
	s.timerSeq++
	userID, doc, seq := s.userID, s.doc, s.docSeq
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()
	return s.upsert(ctx, userID, doc, seq)
}

// Close stops the pending remote write and any reconciliation, then waits
// for in-flight remote work. No remote write starts after Close returns.
func (s *DataStoreImpl) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil && s.timer.Stop() {
		s.wg.Done()
	}
	s.timer = nil
	if s.cancelReconcile != nil {
		s.cancelReconcile()
		s.cancelReconcile = nil
	}
	detach := s.detach
	s.detach = nil
	s.mu.Unlock()

	for _, fn := range detach {
		fn()
	}
	s.wg.Wait()
}

// commit runs one action: next is computed from the current document under
// the lock, persisted locally and, when mirrored, scheduled for the remote.
// An update that returns the current document is a no-op.
func (s *DataStoreImpl) commit(ctx context.Context, update func(*models.Document) *models.Document) {
	s.mu.Lock()
	prev := s.doc
	next := update(prev)
	if next == prev {
		s.mu.Unlock()
		return
	}
	s.doc = next
	s.docSeq++
	s.local.Save(ctx, next)
	if s.state == primary.SyncMirrored && !s.closed {
		s.scheduleLocked()
	}
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, next)
}

// scheduleLocked (re)arms the debounce timer. The write is keyed by the
// identity current at scheduling time and sends the document current at
// fire time.
func (s *DataStoreImpl) scheduleLocked() {
	if s.timer != nil && s.timer.Stop() {
		s.wg.Done()
	}
	s.timerSeq++
	seq := s.timerSeq
	s.pendingUser = s.userID
	s.wg.Add(1)
	s.timer = time.AfterFunc(s.debounce, func() {
		defer s.wg.Done()
		s.fire(seq)
	})
}

func (s *DataStoreImpl) fire(seq uint64) {
	s.mu.Lock()
	if s.closed || seq != s.timerSeq {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	userID, doc, seq := s.pendingUser, s.doc, s.docSeq
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.remoteTimeout)
	defer cancel()
	_ = s.upsert(ctx, userID, doc, seq)
}

// upsert writes doc, the snapshot taken at docSeq seq, for userID. Upserts
// are serialised and a snapshot older than the last one written for userID
// is skipped; failures are logged and recorded as the advisory sync error.
func (s *DataStoreImpl) upsert(ctx context.Context, userID string, doc *models.Document, seq uint64) error {
	s.upsertMu.Lock()
	defer s.upsertMu.Unlock()
	if seq < s.written[userID] {
		s.logger.Debug("skipping stale remote write", zap.String("user_id", userID), zap.Uint64("seq", seq))
		return nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := s.remote.Upsert(ctx, userID, raw); err != nil {
		s.logger.Error("failed to upsert remote document", zap.String("user_id", userID), zap.Error(err))
		s.mu.Lock()
		s.syncErr = err.Error()
		s.mu.Unlock()
		return fmt.Errorf("failed to upsert remote document: %w", err)
	}
	s.written[userID] = seq
	s.mu.Lock()
	s.syncErr = ""
	s.mu.Unlock()
	s.logger.Debug("mirrored document", zap.String("user_id", userID), zap.Int("bytes", len(raw)))
	return nil
}

func (s *DataStoreImpl) subscribersLocked() []func(*models.Document) {
	subs := make([]func(*models.Document), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(*models.Document), doc *models.Document) {
	for _, fn := range subs {
		fn(doc)
	}
}

func (s *DataStoreImpl) timestamp() string {
	return schema.FormatTimestamp(s.now())
}

// ============================================================================
// Actions
// ============================================================================

// SetCampaignName renames the campaign.
func (s *DataStoreImpl) SetCampaignName(ctx context.Context, name string) {
	s.commit(ctx, func(d *models.Document) *models.Document {
		next := *d
		next.Campaign.Name = name
		return &next
	})
}

// SetCampaignSystem sets the campaign's game system label.
func (s *DataStoreImpl) SetCampaignSystem(ctx context.Context, system string) {
	s.commit(ctx, func(d *models.Document) *models.Document {
		next := *d
		next.Campaign.System = system
		return &next
	})
}

// UpsertCharacter creates a character or replaces the identity fields of an
// existing one. New characters are prepended with default stats, d4
// attributes, no modules and the system's default level. Existing characters
// keep their stats, attributes, modules and creation time, and any class,
// race or level the input leaves nil.
func (s *DataStoreImpl) UpsertCharacter(ctx context.Context, input primary.CharacterInput) string {
	id := input.ID
	if id == "" {
		id = s.newID()
	}
	s.commit(ctx, func(d *models.Document) *models.Document {
		prev, exists := d.FindCharacter(id)

		ch := models.Character{
			ID:           id,
			Name:         strings.TrimSpace(input.Name),
			System:       input.System,
			PlayerName:   strings.TrimSpace(input.PlayerName),
			CreatedAtISO: s.timestamp(),
		}
		if exists {
			ch.Class, ch.Race, ch.Level = prev.Class, prev.Race, prev.Level
			ch.Stats, ch.Attributes, ch.Modules = prev.Stats, prev.Attributes, prev.Modules
			ch.CreatedAtISO = prev.CreatedAtISO
			ch.AvatarURL, ch.Background = prev.AvatarURL, prev.Background
		} else {
			ch.Stats = models.DefaultStats()
			ch.Attributes = models.DefaultAttributes()
			ch.Modules = []models.Module{}
		}
		if input.Class != nil {
			ch.Class = *input.Class
		}
		if input.Race != nil {
			ch.Race = *input.Race
		}
		if input.Level != nil {
			ch.Level = input.Level
		}
		if ch.Level == nil {
			ch.Level = ruleset.DefaultLevel(input.System)
		}

		next := *d
		if exists {
			next.Characters = replaceCharacter(d.Characters, ch)
		} else {
			next.Characters = append([]models.Character{ch}, d.Characters...)
		}
		return &next
	})
	return id
}

// UpdateCharacter applies patch to the character with id.
func (s *DataStoreImpl) UpdateCharacter(ctx context.Context, id string, patch primary.CharacterPatch) {
	s.commit(ctx, withCharacter(id, func(c models.Character) models.Character {
		setString(&c.Name, patch.Name)
		setString(&c.System, patch.System)
		setString(&c.PlayerName, patch.PlayerName)
		setString(&c.Class, patch.Class)
		setString(&c.Race, patch.Race)
		setString(&c.AvatarURL, patch.AvatarURL)
		setString(&c.Background, patch.Background)
		if patch.Level != nil {
			c.Level = patch.Level
		}
		return c
	}))
}

// UpdateCharacterStats replaces the stats of the character with id.
func (s *DataStoreImpl) UpdateCharacterStats(ctx context.Context, id string, stats *models.Stats) {
	s.commit(ctx, withCharacter(id, func(c models.Character) models.Character {
		c.Stats = stats
		return c
	}))
}

// UpdateCharacterAttributes replaces the attributes of the character with id.
func (s *DataStoreImpl) UpdateCharacterAttributes(ctx context.Context, id string, attributes *models.Attributes) {
	s.commit(ctx, withCharacter(id, func(c models.Character) models.Character {
		c.Attributes = attributes
		return c
	}))
}

// RemoveCharacter removes the character with id and its modules.
func (s *DataStoreImpl) RemoveCharacter(ctx context.Context, id string) {
	s.commit(ctx, func(d *models.Document) *models.Document {
		if _, ok := d.FindCharacter(id); !ok {
			return d
		}
		next := *d
		next.Characters = make([]models.Character, 0, len(d.Characters)-1)
		for _, c := range d.Characters {
			if c.ID != id {
				next.Characters = append(next.Characters, c)
			}
		}
		return &next
	})
}

// AddCharacterModule appends a module to the character's sheet.
func (s *DataStoreImpl) AddCharacterModule(ctx context.Context, characterID string, input primary.ModuleInput) string {
	if !input.Type.Valid() {
		s.logger.Warn("ignoring module of unknown type", zap.String("type", string(input.Type)))
		return ""
	}
	system := input.System
	if !system.Valid() {
		system = models.SystemGeneric
	}

	p := layout.DefaultPlacement(input.Type)
	if input.Column != nil {
		p.Column = *input.Column
	}
	if input.Span != nil {
		p.Span = *input.Span
	}
	if input.RowSpan != nil {
		p.RowSpan = *input.RowSpan
	}

	id := s.newID()
	added := false
	s.commit(ctx, withModules(characterID, func(modules []models.Module) []models.Module {
		added = true
		return layout.Insert(modules, layout.Apply(models.Module{
			ID:     id,
			Type:   input.Type,
			System: system,
			Title:  input.Title,
		}, p))
	}))
	if !added {
		return ""
	}
	return id
}

// UpdateCharacterModule applies patch to a module; its id and type never change.
func (s *DataStoreImpl) UpdateCharacterModule(ctx context.Context, characterID, moduleID string, patch primary.ModulePatch) {
	s.commit(ctx, withModules(characterID, func(modules []models.Module) []models.Module {
		return layout.Update(modules, moduleID, func(m models.Module) models.Module {
			setString(&m.Title, patch.Title)
			setString(&m.Notes, patch.Notes)
			if patch.System != nil && patch.System.Valid() {
				m.System = *patch.System
			}
			if patch.Column != nil {
				m.Column = *patch.Column
			}
			if patch.Span != nil {
				m.Span = *patch.Span
			}
			if patch.RowSpan != nil {
				m.RowSpan = *patch.RowSpan
			}
			if patch.Data != nil && patch.Data.ModuleType() == m.Type {
				m.Data = schema.NormalizeData(m.Type, patch.Data, s.newID)
			}
			return m
		})
	}))
}

// ReorderCharacterModule swaps a module with its previous (up) or next neighbour.
func (s *DataStoreImpl) ReorderCharacterModule(ctx context.Context, characterID, moduleID string, up bool) {
	dir := layout.Down
	if up {
		dir = layout.Up
	}
	s.commit(ctx, withModules(characterID, func(modules []models.Module) []models.Module {
		return layout.Reorder(modules, moduleID, dir)
	}))
}

// MoveCharacterModuleColumn shifts a module one column left or right.
func (s *DataStoreImpl) MoveCharacterModuleColumn(ctx context.Context, characterID, moduleID string, left bool) {
	dir := layout.Right
	if left {
		dir = layout.Left
	}
	s.commit(ctx, withModules(characterID, func(modules []models.Module) []models.Module {
		return layout.MoveColumn(modules, moduleID, dir)
	}))
}

// CycleCharacterModuleSpan advances a module's column span.
func (s *DataStoreImpl) CycleCharacterModuleSpan(ctx context.Context, characterID, moduleID string) {
	s.commit(ctx, withModules(characterID, func(modules []models.Module) []models.Module {
		return layout.CycleSpan(modules, moduleID)
	}))
}

// CycleCharacterModuleRowSpan advances a module's row span.
func (s *DataStoreImpl) CycleCharacterModuleRowSpan(ctx context.Context, characterID, moduleID string) {
	s.commit(ctx, withModules(characterID, func(modules []models.Module) []models.Module {
		return layout.CycleRowSpan(modules, moduleID)
	}))
}

// RemoveCharacterModule removes a module from the character's sheet.
func (s *DataStoreImpl) RemoveCharacterModule(ctx context.Context, characterID, moduleID string) {
	s.commit(ctx, withModules(characterID, func(modules []models.Module) []models.Module {
		return layout.Remove(modules, moduleID)
	}))
}

// AddSession prepends a new session.
func (s *DataStoreImpl) AddSession(ctx context.Context, input primary.SessionInput) string {
	id := s.newID()
	s.commit(ctx, func(d *models.Document) *models.Document {
		session := models.Session{
			ID:             id,
			Title:          strings.TrimSpace(input.Title),
			ScheduledAtISO: input.ScheduledAtISO,
			CreatedAtISO:   s.timestamp(),
			Address:        input.Address,
			CampaignName:   input.CampaignName,
			Notes:          input.Notes,
		}
		next := *d
		next.Sessions = append([]models.Session{session}, d.Sessions...)
		return &next
	})
	return id
}

// RemoveSession removes the session with id.
func (s *DataStoreImpl) RemoveSession(ctx context.Context, id string) {
	s.commit(ctx, func(d *models.Document) *models.Document {
		idx := -1
		for i := range d.Sessions {
			if d.Sessions[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return d
		}
		next := *d
		next.Sessions = make([]models.Session, 0, len(d.Sessions)-1)
		next.Sessions = append(next.Sessions, d.Sessions[:idx]...)
		next.Sessions = append(next.Sessions, d.Sessions[idx+1:]...)
		return &next
	})
}

// SetCampaignNotes replaces the campaign notes.
func (s *DataStoreImpl) SetCampaignNotes(ctx context.Context, notes string) {
	s.commit(ctx, func(d *models.Document) *models.Document {
		next := *d
		next.Notes.Campaign = notes
		return &next
	})
}

// ResetToSeed replaces the document with a fresh seed.
func (s *DataStoreImpl) ResetToSeed(ctx context.Context) {
	s.commit(ctx, func(*models.Document) *models.Document {
		return schema.NewSeed(s.now(), s.newID)
	})
}

// withCharacter returns an update that rewrites one character. Unknown ids
// leave the document untouched.
func withCharacter(id string, fn func(models.Character) models.Character) func(*models.Document) *models.Document {
	return func(d *models.Document) *models.Document {
		c, ok := d.FindCharacter(id)
		if !ok {
			return d
		}
		updated := fn(*c)
		updated.ID = id
		next := *d
		next.Characters = replaceCharacter(d.Characters, updated)
		return &next
	}
}

// withModules returns an update that rewrites one character's module list.
func withModules(characterID string, fn func([]models.Module) []models.Module) func(*models.Document) *models.Document {
	return withCharacter(characterID, func(c models.Character) models.Character {
		c.Modules = fn(c.Modules)
		return c
	})
}

func replaceCharacter(characters []models.Character, ch models.Character) []models.Character {
	out := make([]models.Character, len(characters))
	for i, c := range characters {
		if c.ID == ch.ID {
			out[i] = ch
		} else {
			out[i] = c
		}
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
