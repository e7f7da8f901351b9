package app

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/example/rpgdash/internal/core/schema"
	"github.com/example/rpgdash/internal/models"
	"github.com/example/rpgdash/internal/ports/secondary"
)

// DefaultDataKey is the local slot holding the serialised document.
const DefaultDataKey = "rpg-dashboard:data"

// LocalPersistence reads and writes the document in one durable local slot.
// Failures are logged and never returned: the in-memory document stays
// authoritative for the session.
type LocalPersistence struct {
	slots  secondary.SlotStore
	key    string
	logger *zap.Logger
}

// NewLocalPersistence creates a LocalPersistence over slots. An empty key
// uses DefaultDataKey.
func NewLocalPersistence(slots secondary.SlotStore, key string, logger *zap.Logger) *LocalPersistence {
	if key == "" {
		key = DefaultDataKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalPersistence{slots: slots, key: key, logger: logger}
}

// Load returns the stored document, or a fresh seed when the slot is absent,
// unreadable, unparseable or holds an unrecognised version.
func (p *LocalPersistence) Load(ctx context.Context) *models.Document {
	raw, ok, err := p.slots.Get(ctx, p.key)
	if err != nil {
		p.logger.Warn("failed to read local document, using seed", zap.String("key", p.key), zap.Error(err))
		return schema.CreateSeedData()
	}
	if !ok {
		return schema.CreateSeedData()
	}
	doc, recognised := schema.Decode([]byte(raw))
	if !recognised {
		p.logger.Warn("local document is not a recognised version, using seed", zap.String("key", p.key))
	}
	return doc
}

// Save serialises doc and writes it before returning.
func (p *LocalPersistence) Save(ctx context.Context, doc *models.Document) {
	raw, err := json.Marshal(doc)
	if err != nil {
		p.logger.Error("failed to encode document", zap.Error(err))
		return
	}
	if err := p.slots.Set(ctx, p.key, string(raw)); err != nil {
		p.logger.Error("failed to save local document", zap.String("key", p.key), zap.Error(err))
	}
}
