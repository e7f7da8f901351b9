// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when a keyed record does not exist.
var ErrNotFound = errors.New("not found")

// SlotStore is a durable string-keyed slot, the local copy of the document.
type SlotStore interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
}

// RemoteStore is a keyed document table addressable by identity.
// Both operations are idempotent and replace whole documents.
type RemoteStore interface {
	// Select returns the document stored for userID. found is false when no
	// row exists for the user.
	Select(ctx context.Context, userID string) (doc []byte, found bool, err error)

	// Upsert stores doc for userID, overwriting any previous document.
	Upsert(ctx context.Context, userID string, doc []byte) error
}

// AttachmentRepository defines the secondary port for binary reference files
// (rulebooks, handouts) kept next to the campaign.
type AttachmentRepository interface {
	// Put persists a new attachment including its content.
	Put(ctx context.Context, record *AttachmentRecord) error

	// List returns attachment metadata, newest first. An empty category
	// returns every attachment. Content is not populated.
	List(ctx context.Context, category string) ([]*AttachmentRecord, error)

	// Get retrieves an attachment with its content. Returns ErrNotFound when
	// the id is unknown.
	Get(ctx context.Context, id string) (*AttachmentRecord, error)

	// Delete removes an attachment. Returns ErrNotFound when the id is unknown.
	Delete(ctx context.Context, id string) error
}

// AttachmentRecord represents an attachment as stored in persistence.
type AttachmentRecord struct {
	ID        string
	Name      string
	Category  string // the game system the file belongs to
	Size      int64
	MIME      string
	CreatedAt string // ISO-8601 UTC
	Content   []byte
}
