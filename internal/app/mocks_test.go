package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/example/rpgdash/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.SlotStore            = (*mockSlotStore)(nil)
	_ secondary.RemoteStore          = (*mockRemoteStore)(nil)
	_ secondary.AuthProvider         = (*mockAuthProvider)(nil)
	_ secondary.AttachmentRepository = (*mockAttachmentRepository)(nil)
)

// mockSlotStore implements secondary.SlotStore for testing.
type mockSlotStore struct {
	mu     sync.Mutex
	values map[string]string
	sets   int
	getErr error
	setErr error
}

func newMockSlotStore() *mockSlotStore {
	return &mockSlotStore{values: make(map[string]string)}
}

func (m *mockSlotStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockSlotStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockSlotStore) setCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// mockRemoteStore implements secondary.RemoteStore for testing. Select and
// Upsert block on selectGate and upsertGate when they are set.
type mockRemoteStore struct {
	mu          sync.Mutex
	docs        map[string][]byte
	upserts     []remoteWrite
	selects     int
	selectErr   error
	upsertErr   error
	selectGate  chan struct{}
	upsertGate  chan struct{}
	upsertCalls int
}

type remoteWrite struct {
	UserID string
	Doc    []byte
}

func newMockRemoteStore() *mockRemoteStore {
	return &mockRemoteStore{docs: make(map[string][]byte)}
}

func (m *mockRemoteStore) Select(ctx context.Context, userID string) ([]byte, bool, error) {
	m.mu.Lock()
	m.selects++
	gate := m.selectGate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selectErr != nil {
		return nil, false, m.selectErr
	}
	doc, ok := m.docs[userID]
	return doc, ok, nil
}

func (m *mockRemoteStore) Upsert(ctx context.Context, userID string, doc []byte) error {
	m.mu.Lock()
	m.upsertCalls++
	gate := m.upsertGate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts = append(m.upserts, remoteWrite{UserID: userID, Doc: doc})
	m.docs[userID] = doc
	return nil
}

func (m *mockRemoteStore) writes() []remoteWrite {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]remoteWrite, len(m.upserts))
	copy(out, m.upserts)
	return out
}

func (m *mockRemoteStore) upsertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upsertCalls
}

func (m *mockRemoteStore) selectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selects
}

// mockAuthProvider implements secondary.AuthProvider for testing.
type mockAuthProvider struct {
	mu     sync.Mutex
	state  secondary.AuthState
	subs   map[int]func(secondary.AuthState)
	nextID int
}

func newMockAuthProvider(state secondary.AuthState) *mockAuthProvider {
	return &mockAuthProvider{state: state, subs: make(map[int]func(secondary.AuthState))}
}

func (m *mockAuthProvider) State() secondary.AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *mockAuthProvider) Subscribe(fn func(secondary.AuthState)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

func (m *mockAuthProvider) set(state secondary.AuthState) {
	m.mu.Lock()
	m.state = state
	subs := make([]func(secondary.AuthState), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()
	for _, fn := range subs {
		fn(state)
	}
}

func (m *mockAuthProvider) subscriberCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// mockAttachmentRepository implements secondary.AttachmentRepository for testing.
type mockAttachmentRepository struct {
	records map[string]*secondary.AttachmentRecord
	putErr  error
	listErr error
}

func newMockAttachmentRepository() *mockAttachmentRepository {
	return &mockAttachmentRepository{records: make(map[string]*secondary.AttachmentRecord)}
}

func (m *mockAttachmentRepository) Put(ctx context.Context, record *secondary.AttachmentRecord) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.records[record.ID] = record
	return nil
}

func (m *mockAttachmentRepository) List(ctx context.Context, category string) ([]*secondary.AttachmentRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*secondary.AttachmentRecord
	for _, r := range m.records {
		if category != "" && r.Category != category {
			continue
		}
		meta := *r
		meta.Content = nil
		out = append(out, &meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (m *mockAttachmentRepository) Get(ctx context.Context, id string) (*secondary.AttachmentRecord, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	return r, nil
}

func (m *mockAttachmentRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.records[id]; !ok {
		return secondary.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

var errRemoteDown = errors.New("remote down")

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
